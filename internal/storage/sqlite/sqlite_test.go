package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "receiptbook-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func fakeItems(n int) []models.LineItem {
	items := make([]models.LineItem, n)
	for i := range items {
		qty := float64(gofakeit.Number(1, 5))
		price := gofakeit.Price(1, 100)
		items[i] = models.LineItem{
			Order:       gofakeit.DigitN(3),
			Description: gofakeit.ProductName(),
			Quantity:    qty,
			UnitPrice:   price,
			Total:       qty * price,
		}
	}
	return items
}

func TestSQLiteStore_Sellers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateSeller generates ID and timestamp", func(t *testing.T) {
		seller := &models.Seller{Name: gofakeit.Name(), StartRange: 1, EndRange: 50, Active: true, Commission: 5}

		if err := store.CreateSeller(ctx, seller); err != nil {
			t.Fatalf("CreateSeller failed: %v", err)
		}
		if seller.ID == "" {
			t.Error("Expected seller ID to be generated")
		}
		if seller.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetSeller(ctx, seller.ID)
		if err != nil {
			t.Fatalf("GetSeller failed: %v", err)
		}
		if *got != *seller {
			t.Errorf("GetSeller mismatch: got %+v, want %+v", got, seller)
		}
	})

	t.Run("GetSeller returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetSeller(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListSellers orders by range start", func(t *testing.T) {
		late := &models.Seller{Name: "Late", StartRange: 200, EndRange: 240, Active: false}
		early := &models.Seller{Name: "Early", StartRange: 100, EndRange: 140, Active: true}
		for _, s := range []*models.Seller{late, early} {
			if err := store.CreateSeller(ctx, s); err != nil {
				t.Fatalf("CreateSeller failed: %v", err)
			}
		}

		sellers, err := store.ListSellers(ctx)
		if err != nil {
			t.Fatalf("ListSellers failed: %v", err)
		}
		if len(sellers) != 3 {
			t.Fatalf("Expected 3 sellers, got %d", len(sellers))
		}
		if sellers[1].Name != "Early" || sellers[2].Name != "Late" {
			t.Errorf("Unexpected order: %s, %s", sellers[1].Name, sellers[2].Name)
		}
		if sellers[2].Active {
			t.Error("Expected Late to be inactive")
		}
	})

	t.Run("UpdateSeller returns ErrNotFound for unknown seller", func(t *testing.T) {
		err := store.UpdateSeller(ctx, &models.Seller{ID: "missing", Name: "x", StartRange: 1, EndRange: 2})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateSellerCommission changes only the commission", func(t *testing.T) {
		seller := &models.Seller{Name: gofakeit.Name(), StartRange: 300, EndRange: 340, Active: true, Commission: 5}
		if err := store.CreateSeller(ctx, seller); err != nil {
			t.Fatalf("CreateSeller failed: %v", err)
		}

		// A rename saved after the commission snapshot was taken must survive.
		renamed := *seller
		renamed.Name = "Renamed " + seller.Name
		if err := store.UpdateSeller(ctx, &renamed); err != nil {
			t.Fatalf("UpdateSeller failed: %v", err)
		}
		if err := store.UpdateSellerCommission(ctx, seller.ID, 12.5); err != nil {
			t.Fatalf("UpdateSellerCommission failed: %v", err)
		}

		got, err := store.GetSeller(ctx, seller.ID)
		if err != nil {
			t.Fatalf("GetSeller failed: %v", err)
		}
		if got.Commission != 12.5 {
			t.Errorf("Expected commission 12.5, got %v", got.Commission)
		}
		if got.Name != renamed.Name || got.StartRange != 300 || got.EndRange != 340 {
			t.Errorf("Expected other fields untouched, got %+v", got)
		}

		if err := store.UpdateSellerCommission(ctx, "missing", 1); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteSeller returns ErrNotFound for unknown seller", func(t *testing.T) {
		if err := store.DeleteSeller(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Receipts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ana := &models.Seller{Name: "Ana", StartRange: 1, EndRange: 50, Active: true, Commission: 5}
	if err := store.CreateSeller(ctx, ana); err != nil {
		t.Fatalf("CreateSeller failed: %v", err)
	}

	newReceipt := func(number int, date string) *models.Receipt {
		items := fakeItems(2)
		return &models.Receipt{
			ReceiptNumber: number,
			Date:          date,
			Seller:        ana.Name,
			SellerID:      ana.ID,
			Items:         items,
			TotalAmount:   items[0].Total + items[1].Total,
		}
	}

	t.Run("CreateReceipt and GetReceipt round trip", func(t *testing.T) {
		original := newReceipt(1, "2024-03-01")
		if err := store.CreateReceipt(ctx, original); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}
		if original.ID == "" || original.CreatedAt == 0 {
			t.Fatal("Expected ID and CreatedAt to be generated")
		}

		got, err := store.GetReceipt(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetReceipt failed: %v", err)
		}
		if got.ReceiptNumber != 1 || got.Date != "2024-03-01" || got.Seller != "Ana" || got.SellerID != ana.ID {
			t.Errorf("Receipt mismatch: %+v", got)
		}
		if len(got.Items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(got.Items))
		}
		for i, item := range got.Items {
			if item != original.Items[i] {
				t.Errorf("Item %d mismatch: got %+v, want %+v", i, item, original.Items[i])
			}
		}
	})

	t.Run("CreateReceipt rejects duplicate number for same seller", func(t *testing.T) {
		err := store.CreateReceipt(ctx, newReceipt(1, "2024-03-02"))
		if !errors.Is(err, storage.ErrDuplicateNumber) {
			t.Errorf("Expected ErrDuplicateNumber, got %v", err)
		}
	})

	t.Run("UsedReceiptNumbers and LastReceiptNumbers", func(t *testing.T) {
		for _, n := range []int{3, 2} {
			if err := store.CreateReceipt(ctx, newReceipt(n, "2024-03-05")); err != nil {
				t.Fatalf("CreateReceipt failed: %v", err)
			}
		}

		used, err := store.UsedReceiptNumbers(ctx, "Ana")
		if err != nil {
			t.Fatalf("UsedReceiptNumbers failed: %v", err)
		}
		if len(used) != 3 || used[0] != 1 || used[2] != 3 {
			t.Errorf("Unexpected used numbers: %v", used)
		}

		last, err := store.LastReceiptNumbers(ctx)
		if err != nil {
			t.Fatalf("LastReceiptNumbers failed: %v", err)
		}
		if last["Ana"] != 2 {
			t.Errorf("Expected last number 2 (most recently saved), got %d", last["Ana"])
		}
	})

	t.Run("SearchReceipts by number and date", func(t *testing.T) {
		if err := store.CreateReceipt(ctx, newReceipt(12, "2024-04-10")); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		byNumber, err := store.SearchReceipts(ctx, "2", models.SearchByNumber)
		if err != nil {
			t.Fatalf("SearchReceipts failed: %v", err)
		}
		if len(byNumber) != 2 {
			t.Errorf("Expected receipts 2 and 12, got %d results", len(byNumber))
		}

		byDate, err := store.SearchReceipts(ctx, "2024-04", models.SearchByDate)
		if err != nil {
			t.Fatalf("SearchReceipts failed: %v", err)
		}
		if len(byDate) != 1 || byDate[0].ReceiptNumber != 12 {
			t.Errorf("Expected only receipt 12, got %+v", byDate)
		}
		if len(byDate[0].Items) != 2 {
			t.Errorf("Expected items to be loaded, got %d", len(byDate[0].Items))
		}

		none, err := store.SearchReceipts(ctx, "%", models.SearchByDate)
		if err != nil {
			t.Fatalf("SearchReceipts failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("Expected literal %% to match nothing, got %d", len(none))
		}
	})

	t.Run("UpdateReceipt replaces items", func(t *testing.T) {
		r := newReceipt(20, "2024-05-01")
		if err := store.CreateReceipt(ctx, r); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		r.Items = fakeItems(1)
		r.TotalAmount = r.Items[0].Total
		r.Date = "2024-05-02"
		if err := store.UpdateReceipt(ctx, r); err != nil {
			t.Fatalf("UpdateReceipt failed: %v", err)
		}

		got, err := store.GetReceipt(ctx, r.ID)
		if err != nil {
			t.Fatalf("GetReceipt failed: %v", err)
		}
		if len(got.Items) != 1 || got.Date != "2024-05-02" {
			t.Errorf("Update not applied: %+v", got)
		}

		r.ReceiptNumber = 1
		if err := store.UpdateReceipt(ctx, r); !errors.Is(err, storage.ErrDuplicateNumber) {
			t.Errorf("Expected ErrDuplicateNumber when moving onto a used number, got %v", err)
		}
	})

	t.Run("DeleteReceipt", func(t *testing.T) {
		r := newReceipt(30, "2024-05-03")
		if err := store.CreateReceipt(ctx, r); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}
		if err := store.DeleteReceipt(ctx, r.ID); err != nil {
			t.Fatalf("DeleteReceipt failed: %v", err)
		}
		if _, err := store.GetReceipt(ctx, r.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteReceipt(ctx, r.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteStore_SellerLifecycleKeepsReceipts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seller := &models.Seller{Name: "Bruno", StartRange: 100, EndRange: 150, Active: true}
	if err := store.CreateSeller(ctx, seller); err != nil {
		t.Fatalf("CreateSeller failed: %v", err)
	}
	receipt := &models.Receipt{
		ReceiptNumber: 100,
		Date:          "2024-06-01",
		Seller:        seller.Name,
		SellerID:      seller.ID,
		Items:         fakeItems(1),
	}
	if err := store.CreateReceipt(ctx, receipt); err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	t.Run("rename follows to linked receipts", func(t *testing.T) {
		seller.Name = "Bruno Silva"
		if err := store.UpdateSeller(ctx, seller); err != nil {
			t.Fatalf("UpdateSeller failed: %v", err)
		}

		got, err := store.GetReceipt(ctx, receipt.ID)
		if err != nil {
			t.Fatalf("GetReceipt failed: %v", err)
		}
		if got.Seller != "Bruno Silva" {
			t.Errorf("Expected renamed seller on receipt, got %q", got.Seller)
		}

		last, err := store.LastReceiptNumbers(ctx)
		if err != nil {
			t.Fatalf("LastReceiptNumbers failed: %v", err)
		}
		if last["Bruno Silva"] != 100 {
			t.Errorf("Expected last number to follow rename, got %v", last)
		}
	})

	t.Run("delete keeps receipts and unlinks them", func(t *testing.T) {
		if err := store.DeleteSeller(ctx, seller.ID); err != nil {
			t.Fatalf("DeleteSeller failed: %v", err)
		}

		got, err := store.GetReceipt(ctx, receipt.ID)
		if err != nil {
			t.Fatalf("Receipt should survive seller deletion: %v", err)
		}
		if got.SellerID != "" {
			t.Errorf("Expected seller link to be cleared, got %q", got.SellerID)
		}
		if got.Seller != "Bruno Silva" {
			t.Errorf("Expected seller name to be kept, got %q", got.Seller)
		}
	})
}
