package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/internal/storage"
	"github.com/mmynk/receiptbook/pkg/api"
)

// ReportBuilder builds sales reports. Errors may be Connect errors.
type ReportBuilder interface {
	Report(ctx context.Context, req *api.GenerateSalesReportRequest) (*models.SalesReport, error)
}

// Handler serves printable PDFs:
//
//	GET /print/receipts/{id}
//	GET /print/report?seller_id=&start_date=&end_date=&commission=
type Handler struct {
	receipts storage.ReceiptStore
	reports  ReportBuilder
	mux      *http.ServeMux
}

// NewHandler creates a Handler over the given receipt store and report builder.
func NewHandler(receipts storage.ReceiptStore, reports ReportBuilder) *Handler {
	h := &Handler{receipts: receipts, reports: reports, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /print/receipts/{id}", h.receipt)
	h.mux.HandleFunc("GET /print/report", h.report)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	receipt, err := h.receipts.GetReceipt(r.Context(), id)
	if err != nil {
		writeError(w, "load receipt", err)
		return
	}

	var buf bytes.Buffer
	if err := RenderReceipt(&buf, receipt); err != nil {
		writeError(w, "render receipt", err)
		return
	}

	slog.Info("Receipt printed", "receipt_id", receipt.ID, "receipt_number", receipt.ReceiptNumber)
	writePDF(w, fmt.Sprintf("receipt-%04d.pdf", receipt.ReceiptNumber), buf.Bytes())
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &api.GenerateSalesReportRequest{
		SellerId:  q.Get("seller_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
	if raw := q.Get("commission"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "invalid commission", http.StatusBadRequest)
			return
		}
		req.CommissionOverride = &rate
	}

	report, err := h.reports.Report(r.Context(), req)
	if err != nil {
		writeError(w, "build report", err)
		return
	}

	var buf bytes.Buffer
	if err := RenderSalesReport(&buf, report); err != nil {
		writeError(w, "render report", err)
		return
	}

	writePDF(w, fmt.Sprintf("sales-report-%s-%s.pdf", report.StartDate, report.EndDate), buf.Bytes())
}

func writePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	default:
		switch connect.CodeOf(err) {
		case connect.CodeInvalidArgument:
			status = http.StatusBadRequest
		case connect.CodeNotFound:
			status = http.StatusNotFound
		}
	}

	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err)
		http.Error(w, "failed to "+op, status)
		return
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		http.Error(w, connectErr.Message(), status)
		return
	}
	http.Error(w, err.Error(), status)
}
