package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptbook/internal/calculator"
	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/internal/storage"
	"github.com/mmynk/receiptbook/pkg/api"
)

// ReportService implements the Connect ReportService.
type ReportService struct {
	store storage.Store
}

// NewReportService creates a new ReportService with the given storage backend.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// GenerateSalesReport totals a seller's receipts between two dates, both
// inclusive, and computes the commission owed.
func (s *ReportService) GenerateSalesReport(ctx context.Context, req *connect.Request[api.GenerateSalesReportRequest]) (*connect.Response[api.GenerateSalesReportResponse], error) {
	slog.Info("GenerateSalesReport request received",
		"seller_id", req.Msg.SellerId,
		"start_date", req.Msg.StartDate,
		"end_date", req.Msg.EndDate,
	)

	report, err := s.Report(ctx, req.Msg)
	if err != nil {
		return nil, err
	}

	slog.Info("GenerateSalesReport successful",
		"seller", report.Seller,
		"receipts", len(report.Receipts),
		"total_sales", report.TotalSales,
		"total_commission", report.TotalCommission,
	)

	return connect.NewResponse(&api.GenerateSalesReportResponse{Report: toAPIReport(report)}), nil
}

// Report builds the sales report described by req. Errors are Connect errors.
func (s *ReportService) Report(ctx context.Context, req *api.GenerateSalesReportRequest) (*models.SalesReport, error) {
	startDate := strings.TrimSpace(req.StartDate)
	endDate := strings.TrimSpace(req.EndDate)
	if strings.TrimSpace(req.SellerId) == "" || startDate == "" || endDate == "" {
		return nil, invalidArgument(errors.New("please fill in seller, start date and end date"))
	}

	seller, err := s.store.GetSeller(ctx, req.SellerId)
	if err != nil {
		return nil, storeError("load seller", err)
	}

	rate := seller.Commission
	if req.CommissionOverride != nil {
		rate = *req.CommissionOverride
		if err := validateSellerForm(seller.Name, rate); err != nil {
			return nil, invalidArgument(err)
		}
	}

	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return nil, storeError("list receipts", err)
	}

	report, err := calculator.BuildSalesReport(seller, receipts, startDate, endDate, rate)
	if err != nil {
		return nil, invalidArgument(err)
	}

	// Only a report that was actually produced may change the stored rate.
	if req.CommissionOverride != nil && req.PersistCommission && rate != seller.Commission {
		if err := s.store.UpdateSellerCommission(ctx, seller.ID, rate); err != nil {
			return nil, storeError("save seller", err)
		}
		slog.Info("Seller commission updated", "seller_id", seller.ID, "commission", rate)
	}
	return report, nil
}
