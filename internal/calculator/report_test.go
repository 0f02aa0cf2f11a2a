package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/receiptbook/internal/models"
)

func TestBuildSalesReport(t *testing.T) {
	ana := &models.Seller{ID: "a", Name: "Ana", StartRange: 1, EndRange: 50, Commission: 5}

	receipts := []*models.Receipt{
		{ReceiptNumber: 3, Date: "2024-03-10", Seller: "Ana", TotalAmount: 100},
		{ReceiptNumber: 1, Date: "2024-03-01", Seller: "Ana", TotalAmount: 50.5},
		{ReceiptNumber: 2, Date: "2024-03-31", Seller: "Ana", TotalAmount: 20},
		{ReceiptNumber: 4, Date: "2024-04-01", Seller: "Ana", TotalAmount: 1000},
		{ReceiptNumber: 60, Date: "2024-03-15", Seller: "Bruno", TotalAmount: 70},
		{ReceiptNumber: 5, Date: "not-a-date", Seller: "Ana", TotalAmount: 10},
	}

	tests := []struct {
		name         string
		start, end   string
		rate         float64
		wantErr      bool
		validateFunc func(t *testing.T, r *models.SalesReport)
	}{
		{
			name:  "inclusive bounds and seller filter",
			start: "2024-03-01",
			end:   "2024-03-31",
			rate:  5,
			validateFunc: func(t *testing.T, r *models.SalesReport) {
				// 50.5 + 100 + 20 = 170.5, commission 8.525 -> 8.53
				if len(r.Receipts) != 3 {
					t.Fatalf("expected 3 receipts, got %d", len(r.Receipts))
				}
				if math.Abs(r.TotalSales-170.5) > 0.001 {
					t.Errorf("TotalSales = %v, want 170.5", r.TotalSales)
				}
				if math.Abs(r.TotalCommission-8.53) > 0.001 {
					t.Errorf("TotalCommission = %v, want 8.53", r.TotalCommission)
				}
				if r.Receipts[0].ReceiptNumber != 1 || r.Receipts[2].ReceiptNumber != 2 {
					t.Errorf("receipts not ordered by date: %+v", r.Receipts)
				}
			},
		},
		{
			name:  "single day range",
			start: "2024-04-01",
			end:   "2024-04-01",
			rate:  10,
			validateFunc: func(t *testing.T, r *models.SalesReport) {
				if r.TotalSales != 1000 || r.TotalCommission != 100 {
					t.Errorf("got sales %v commission %v, want 1000 and 100", r.TotalSales, r.TotalCommission)
				}
			},
		},
		{
			name:  "no receipts in range",
			start: "2023-01-01",
			end:   "2023-12-31",
			rate:  5,
			validateFunc: func(t *testing.T, r *models.SalesReport) {
				if len(r.Receipts) != 0 || r.TotalSales != 0 || r.TotalCommission != 0 {
					t.Errorf("expected empty report, got %+v", r)
				}
			},
		},
		{name: "start after end", start: "2024-04-01", end: "2024-03-01", rate: 5, wantErr: true},
		{name: "invalid start", start: "01/03/2024", end: "2024-03-31", rate: 5, wantErr: true},
		{name: "missing end", start: "2024-03-01", end: "", rate: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := BuildSalesReport(ana, receipts, tt.start, tt.end, tt.rate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildSalesReport() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, report)
			}
		})
	}
}

func TestBuildSalesReport_NilSeller(t *testing.T) {
	if _, err := BuildSalesReport(nil, nil, "2024-01-01", "2024-01-31", 5); err == nil {
		t.Error("expected error for nil seller")
	}
}
