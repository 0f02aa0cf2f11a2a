package printing

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/internal/service"
	"github.com/mmynk/receiptbook/internal/storage/sqlite"
)

func sampleReceipt() *models.Receipt {
	return &models.Receipt{
		ID:            "r1",
		ReceiptNumber: 7,
		Date:          "2024-03-05",
		Seller:        "João",
		Items: []models.LineItem{
			{Order: "A1", Description: "Caderno", Quantity: 2, UnitPrice: 10, Total: 20},
			{Description: "Caneta", Quantity: 1, UnitPrice: 1234.5, Total: 1234.5},
		},
		TotalAmount: 1254.5,
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "R$ 1,234.50", Money(1234.5))
	assert.Equal(t, "R$ 0.00", Money(0))
	assert.Equal(t, "#0042", ReceiptNumber(42))
}

func TestRenderReceipt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReceipt(&buf, sampleReceipt()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output is not a PDF")
}

func TestRenderSalesReport(t *testing.T) {
	receipt := sampleReceipt()
	report := &models.SalesReport{
		Seller:          "João",
		StartDate:       "2024-03-01",
		EndDate:         "2024-03-31",
		CommissionRate:  5,
		TotalSales:      receipt.TotalAmount,
		TotalCommission: 62.73,
		Receipts:        []models.Receipt{*receipt},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSalesReport(&buf, report))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	report.Receipts = nil
	require.NoError(t, RenderSalesReport(&buf, report))
}

func TestHandler(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "print.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	seller := &models.Seller{Name: "Ana", StartRange: 1, EndRange: 50, Active: true, Commission: 5}
	require.NoError(t, store.CreateSeller(ctx, seller))
	receipt := sampleReceipt()
	receipt.ID = ""
	receipt.Seller = seller.Name
	receipt.SellerID = seller.ID
	require.NoError(t, store.CreateReceipt(ctx, receipt))

	server := httptest.NewServer(NewHandler(store, service.NewReportService(store)))
	t.Cleanup(server.Close)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"receipt", "/print/receipts/" + receipt.ID, http.StatusOK},
		{"missing receipt", "/print/receipts/nonexistent-id", http.StatusNotFound},
		{"report", "/print/report?seller_id=" + seller.ID + "&start_date=2024-03-01&end_date=2024-03-31", http.StatusOK},
		{"report with commission", "/print/report?seller_id=" + seller.ID + "&start_date=2024-03-01&end_date=2024-03-31&commission=7.5", http.StatusOK},
		{"report missing dates", "/print/report?seller_id=" + seller.ID, http.StatusBadRequest},
		{"report bad commission", "/print/report?seller_id=" + seller.ID + "&start_date=2024-03-01&end_date=2024-03-31&commission=lots", http.StatusBadRequest},
		{"report unknown seller", "/print/report?seller_id=nope&start_date=2024-03-01&end_date=2024-03-31", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == http.StatusOK {
				assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
			}
		})
	}
}
