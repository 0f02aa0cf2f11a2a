package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/pkg/api"
)

func TestGenerateSalesReport(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	ana := mustCreateSeller(t, c, "Ana", 1, 50)
	bruno := mustCreateSeller(t, c, "Bruno", 51, 100)

	mustCreateReceipt(t, c, ana.Id, 1, "2024-01-01", item(1, 100))
	mustCreateReceipt(t, c, ana.Id, 2, "2024-01-15", item(2, 50))
	mustCreateReceipt(t, c, ana.Id, 3, "2024-01-31", item(4, 25))
	mustCreateReceipt(t, c, ana.Id, 4, "2024-02-01", item(1, 1000))
	mustCreateReceipt(t, c, bruno.Id, 51, "2024-01-10", item(1, 500))

	resp, err := c.reports.GenerateSalesReport(context.Background(), connect.NewRequest(&api.GenerateSalesReportRequest{
		SellerId:  ana.Id,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	}))
	if err != nil {
		t.Fatalf("GenerateSalesReport failed: %v", err)
	}

	report := resp.Msg.Report
	if len(report.Receipts) != 3 {
		t.Fatalf("expected 3 receipts with both ends inclusive, got %d", len(report.Receipts))
	}
	if report.TotalSales != 300 {
		t.Errorf("expected total sales 300, got %v", report.TotalSales)
	}
	if report.CommissionRate != 5 {
		t.Errorf("expected seller commission 5, got %v", report.CommissionRate)
	}
	if report.TotalCommission != 15 {
		t.Errorf("expected commission 15, got %v", report.TotalCommission)
	}
	if report.Receipts[0].Date != "2024-01-01" || report.Receipts[2].Date != "2024-01-31" {
		t.Errorf("expected receipts in date order, got %s..%s", report.Receipts[0].Date, report.Receipts[2].Date)
	}
}

func TestGenerateSalesReport_CommissionOverride(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	ana := mustCreateSeller(t, c, "Ana", 1, 50)
	mustCreateReceipt(t, c, ana.Id, 1, "2024-05-10", item(2, 100))

	override := 10.0
	resp, err := c.reports.GenerateSalesReport(context.Background(), connect.NewRequest(&api.GenerateSalesReportRequest{
		SellerId:           ana.Id,
		StartDate:          "2024-05-01",
		EndDate:            "2024-05-31",
		CommissionOverride: &override,
	}))
	if err != nil {
		t.Fatalf("GenerateSalesReport failed: %v", err)
	}
	if resp.Msg.Report.TotalCommission != 20 {
		t.Errorf("expected commission 20, got %v", resp.Msg.Report.TotalCommission)
	}

	seller, err := c.sellers.GetSeller(context.Background(), connect.NewRequest(&api.GetSellerRequest{SellerId: ana.Id}))
	if err != nil {
		t.Fatalf("GetSeller failed: %v", err)
	}
	if seller.Msg.Seller.Commission != 5 {
		t.Errorf("expected stored commission to stay 5, got %v", seller.Msg.Seller.Commission)
	}

	_, err = c.reports.GenerateSalesReport(context.Background(), connect.NewRequest(&api.GenerateSalesReportRequest{
		SellerId:           ana.Id,
		StartDate:          "2024-05-01",
		EndDate:            "2024-05-31",
		CommissionOverride: &override,
		PersistCommission:  true,
	}))
	if err != nil {
		t.Fatalf("GenerateSalesReport failed: %v", err)
	}

	seller, err = c.sellers.GetSeller(context.Background(), connect.NewRequest(&api.GetSellerRequest{SellerId: ana.Id}))
	if err != nil {
		t.Fatalf("GetSeller failed: %v", err)
	}
	if seller.Msg.Seller.Commission != 10 {
		t.Errorf("expected persisted commission 10, got %v", seller.Msg.Seller.Commission)
	}
}

func TestGenerateSalesReport_FailedReportKeepsCommission(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	ana := mustCreateSeller(t, c, "Ana", 1, 50)
	override := 42.0

	_, err := c.reports.GenerateSalesReport(context.Background(), connect.NewRequest(&api.GenerateSalesReportRequest{
		SellerId:           ana.Id,
		StartDate:          "2024-02-01",
		EndDate:            "2024-01-01",
		CommissionOverride: &override,
		PersistCommission:  true,
	}))
	expectCode(t, err, connect.CodeInvalidArgument)

	seller, err := c.sellers.GetSeller(context.Background(), connect.NewRequest(&api.GetSellerRequest{SellerId: ana.Id}))
	if err != nil {
		t.Fatalf("GetSeller failed: %v", err)
	}
	if seller.Msg.Seller.Commission != 5 {
		t.Errorf("expected stored commission to stay 5, got %v", seller.Msg.Seller.Commission)
	}
}

func TestGenerateSalesReport_PersistKeepsSellerChanges(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	ana := mustCreateSeller(t, c, "Ana", 1, 50)
	mustCreateReceipt(t, c, ana.Id, 1, "2024-05-10", item(1, 100))

	// Saved after the report service loaded its copy of the seller.
	if err := c.store.UpdateSeller(context.Background(), &models.Seller{
		ID: ana.Id, Name: "Ana", StartRange: 1, EndRange: 80, Active: true, Commission: 5,
	}); err != nil {
		t.Fatalf("UpdateSeller failed: %v", err)
	}

	override := 8.0
	_, err := c.reports.GenerateSalesReport(context.Background(), connect.NewRequest(&api.GenerateSalesReportRequest{
		SellerId:           ana.Id,
		StartDate:          "2024-05-01",
		EndDate:            "2024-05-31",
		CommissionOverride: &override,
		PersistCommission:  true,
	}))
	if err != nil {
		t.Fatalf("GenerateSalesReport failed: %v", err)
	}

	seller, err := c.sellers.GetSeller(context.Background(), connect.NewRequest(&api.GetSellerRequest{SellerId: ana.Id}))
	if err != nil {
		t.Fatalf("GetSeller failed: %v", err)
	}
	if seller.Msg.Seller.Commission != 8 {
		t.Errorf("expected persisted commission 8, got %v", seller.Msg.Seller.Commission)
	}
	if seller.Msg.Seller.EndRange != 80 {
		t.Errorf("expected range end 80 to be kept, got %d", seller.Msg.Seller.EndRange)
	}
}

func TestGenerateSalesReport_Errors(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	ana := mustCreateSeller(t, c, "Ana", 1, 50)
	tooHigh := 250.0

	tests := []struct {
		name string
		req  *api.GenerateSalesReportRequest
		code connect.Code
	}{
		{"missing seller", &api.GenerateSalesReportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}, connect.CodeInvalidArgument},
		{"missing dates", &api.GenerateSalesReportRequest{SellerId: ana.Id}, connect.CodeInvalidArgument},
		{"start after end", &api.GenerateSalesReportRequest{SellerId: ana.Id, StartDate: "2024-02-01", EndDate: "2024-01-01"}, connect.CodeInvalidArgument},
		{"bad date", &api.GenerateSalesReportRequest{SellerId: ana.Id, StartDate: "yesterday", EndDate: "2024-01-01"}, connect.CodeInvalidArgument},
		{"bad override", &api.GenerateSalesReportRequest{SellerId: ana.Id, StartDate: "2024-01-01", EndDate: "2024-01-31", CommissionOverride: &tooHigh}, connect.CodeInvalidArgument},
		{"unknown seller", &api.GenerateSalesReportRequest{SellerId: "nonexistent-id", StartDate: "2024-01-01", EndDate: "2024-01-31"}, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.reports.GenerateSalesReport(context.Background(), connect.NewRequest(tt.req))
			expectCode(t, err, tt.code)
		})
	}
}

func TestGenerateSalesReport_Empty(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	ana := mustCreateSeller(t, c, "Ana", 1, 50)

	resp, err := c.reports.GenerateSalesReport(context.Background(), connect.NewRequest(&api.GenerateSalesReportRequest{
		SellerId:  ana.Id,
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	}))
	if err != nil {
		t.Fatalf("GenerateSalesReport failed: %v", err)
	}
	if resp.Msg.Report.TotalSales != 0 || resp.Msg.Report.TotalCommission != 0 {
		t.Errorf("expected zero totals, got %+v", resp.Msg.Report)
	}
}
