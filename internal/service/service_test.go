package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"connectrpc.com/connect"
	"github.com/brianvoe/gofakeit/v7"

	"github.com/mmynk/receiptbook/internal/metrics"
	"github.com/mmynk/receiptbook/internal/storage/sqlite"
	"github.com/mmynk/receiptbook/pkg/api"
	"github.com/mmynk/receiptbook/pkg/api/apiconnect"
)

type testClients struct {
	sellers  apiconnect.SellerServiceClient
	receipts apiconnect.ReceiptServiceClient
	reports  apiconnect.ReportServiceClient
	store    *sqlite.SQLiteStore
}

// setupTestServer creates a test server with all three services over a temp database.
func setupTestServer(t *testing.T) (*testClients, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSellerServiceHandler(NewSellerService(store, DefaultPolicy())))
	mux.Handle(apiconnect.NewReceiptServiceHandler(NewReceiptService(store, metrics.New())))
	mux.Handle(apiconnect.NewReportServiceHandler(NewReportService(store)))

	server := httptest.NewServer(mux)

	clients := &testClients{
		sellers:  apiconnect.NewSellerServiceClient(http.DefaultClient, server.URL),
		receipts: apiconnect.NewReceiptServiceClient(http.DefaultClient, server.URL),
		reports:  apiconnect.NewReportServiceClient(http.DefaultClient, server.URL),
		store:    store,
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return clients, cleanup
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}

func mustCreateSeller(t *testing.T, c *testClients, name string, start, end int) *api.Seller {
	t.Helper()

	resp, err := c.sellers.CreateSeller(context.Background(), connect.NewRequest(&api.CreateSellerRequest{
		Name:       name,
		StartRange: start,
		EndRange:   end,
	}))
	if err != nil {
		t.Fatalf("CreateSeller(%s) failed: %v", name, err)
	}
	return resp.Msg.Seller
}

func mustCreateReceipt(t *testing.T, c *testClients, sellerID string, number int, date string, items ...api.LineItem) *api.CreateReceiptResponse {
	t.Helper()

	if len(items) == 0 {
		items = []api.LineItem{item(1, 10)}
	}
	resp, err := c.receipts.CreateReceipt(context.Background(), connect.NewRequest(&api.CreateReceiptRequest{
		SellerId:      sellerID,
		ReceiptNumber: number,
		Date:          date,
		Items:         items,
	}))
	if err != nil {
		t.Fatalf("CreateReceipt(#%d) failed: %v", number, err)
	}
	return resp.Msg
}

func item(quantity, unitPrice float64) api.LineItem {
	return api.LineItem{
		Description: gofakeit.ProductName(),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
}
