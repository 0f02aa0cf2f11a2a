// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/receiptbook/internal/models"
)

var (
	// ErrNotFound is returned when a seller or receipt does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateNumber is returned when a seller already has a receipt with the same number.
	ErrDuplicateNumber = errors.New("receipt number already used by seller")
)

// Store defines the interface for seller and receipt storage operations.
// Every method is atomic: a failed call leaves the stored collections unchanged.
type Store interface {
	SellerStore
	ReceiptStore

	// Close releases any resources held by the store.
	Close() error
}

// SellerStore persists sellers.
type SellerStore interface {
	// CreateSeller persists a new seller.
	// The seller.ID and seller.CreatedAt fields are populated by the store when empty.
	CreateSeller(ctx context.Context, seller *models.Seller) error

	// GetSeller retrieves a seller by ID. Returns ErrNotFound if missing.
	GetSeller(ctx context.Context, sellerID string) (*models.Seller, error)

	// ListSellers returns all sellers ordered by range start.
	ListSellers(ctx context.Context) ([]*models.Seller, error)

	// UpdateSeller replaces an existing seller. When the name changes, receipts
	// linked to the seller are renamed in the same transaction.
	UpdateSeller(ctx context.Context, seller *models.Seller) error

	// UpdateSellerCommission changes only the seller's commission rate,
	// leaving name, range and status as stored. Returns ErrNotFound if missing.
	UpdateSellerCommission(ctx context.Context, sellerID string, commission float64) error

	// DeleteSeller removes a seller. Its receipts are kept and unlinked.
	DeleteSeller(ctx context.Context, sellerID string) error
}

// ReceiptStore persists receipts and the last-issued-number map.
type ReceiptStore interface {
	// CreateReceipt persists a new receipt with its items and records its
	// number as the last one issued under the seller's name.
	// Returns ErrDuplicateNumber if the seller already used the number.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a receipt with its items. Returns ErrNotFound if missing.
	GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)

	// UpdateReceipt replaces an existing receipt and its items.
	UpdateReceipt(ctx context.Context, receipt *models.Receipt) error

	// DeleteReceipt removes a receipt and its items.
	DeleteReceipt(ctx context.Context, receiptID string) error

	// ListReceipts returns every receipt, newest date first.
	ListReceipts(ctx context.Context) ([]*models.Receipt, error)

	// SearchReceipts returns receipts whose number or date contains query.
	SearchReceipts(ctx context.Context, query string, field models.SearchField) ([]*models.Receipt, error)

	// UsedReceiptNumbers returns the numbers of all receipts saved under sellerName.
	UsedReceiptNumbers(ctx context.Context, sellerName string) ([]int, error)

	// LastReceiptNumbers returns the last number issued per seller name.
	LastReceiptNumbers(ctx context.Context) (map[string]int, error)
}
