package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/internal/storage"
)

const receiptColumns = "r.id, r.receipt_number, r.date, r.seller, r.seller_id, r.total_amount, r.created_at"

// CreateReceipt persists a new receipt and its items, and records its number
// as the last one issued for the seller.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	// Generate ID if not set
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkNumberFree(ctx, tx, receipt); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO receipts (id, receipt_number, date, seller, seller_id, total_amount, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			receipt.ID, receipt.ReceiptNumber, receipt.Date, receipt.Seller,
			nullString(receipt.SellerID), receipt.TotalAmount, receipt.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert receipt: %w", err)
		}

		if err := insertItems(ctx, tx, receipt); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO last_receipt_numbers (seller, receipt_number) VALUES (?, ?)
			 ON CONFLICT(seller) DO UPDATE SET receipt_number = excluded.receipt_number`,
			receipt.Seller, receipt.ReceiptNumber,
		)
		if err != nil {
			return fmt.Errorf("failed to record last receipt number: %w", err)
		}
		return nil
	})
}

// GetReceipt retrieves a receipt by ID, including its items.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	receipts, err := s.queryReceipts(ctx, "r.id = ?", receiptID)
	if err != nil {
		return nil, err
	}
	if len(receipts) == 0 {
		return nil, fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	return receipts[0], nil
}

// UpdateReceipt replaces an existing receipt and all of its items.
func (s *SQLiteStore) UpdateReceipt(ctx context.Context, receipt *models.Receipt) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM receipts WHERE id = ?", receipt.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("receipt %s: %w", receipt.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check receipt existence: %w", err)
		}

		if err := checkNumberFree(ctx, tx, receipt); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE receipts SET receipt_number = ?, date = ?, seller = ?, seller_id = ?, total_amount = ?
			 WHERE id = ?`,
			receipt.ReceiptNumber, receipt.Date, receipt.Seller, nullString(receipt.SellerID),
			receipt.TotalAmount, receipt.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update receipt: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM line_items WHERE receipt_id = ?", receipt.ID); err != nil {
			return fmt.Errorf("failed to delete old items: %w", err)
		}
		return insertItems(ctx, tx, receipt)
	})
}

// DeleteReceipt removes a receipt by ID. Items are removed by cascade.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, receiptID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	return nil
}

// ListReceipts retrieves all receipts.
func (s *SQLiteStore) ListReceipts(ctx context.Context) ([]*models.Receipt, error) {
	return s.queryReceipts(ctx, "1 = 1")
}

// SearchReceipts retrieves receipts whose number or date contains query.
// An empty query matches every receipt.
func (s *SQLiteStore) SearchReceipts(ctx context.Context, query string, field models.SearchField) ([]*models.Receipt, error) {
	pattern := "%" + escapeLike(query) + "%"
	switch field {
	case models.SearchByDate:
		return s.queryReceipts(ctx, `r.date LIKE ? ESCAPE '\'`, pattern)
	default:
		return s.queryReceipts(ctx, `CAST(r.receipt_number AS TEXT) LIKE ? ESCAPE '\'`, pattern)
	}
}

// UsedReceiptNumbers returns every number saved under the seller name.
func (s *SQLiteStore) UsedReceiptNumbers(ctx context.Context, sellerName string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT receipt_number FROM receipts WHERE seller = ? ORDER BY receipt_number",
		sellerName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get used receipt numbers: %w", err)
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan receipt number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipt numbers: %w", err)
	}

	return numbers, nil
}

// LastReceiptNumbers returns the last number issued per seller name.
func (s *SQLiteStore) LastReceiptNumbers(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT seller, receipt_number FROM last_receipt_numbers")
	if err != nil {
		return nil, fmt.Errorf("failed to get last receipt numbers: %w", err)
	}
	defer rows.Close()

	last := make(map[string]int)
	for rows.Next() {
		var seller string
		var n int
		if err := rows.Scan(&seller, &n); err != nil {
			return nil, fmt.Errorf("failed to scan last receipt number: %w", err)
		}
		last[seller] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate last receipt numbers: %w", err)
	}

	return last, nil
}

// queryReceipts loads receipts matching where (over alias r) and their items
// with two queries.
func (s *SQLiteStore) queryReceipts(ctx context.Context, where string, args ...any) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+receiptColumns+" FROM receipts r WHERE "+where+" ORDER BY r.date DESC, r.receipt_number DESC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.Receipt
	byID := make(map[string]*models.Receipt)
	for rows.Next() {
		r := &models.Receipt{}
		var sellerID sql.NullString
		if err := rows.Scan(&r.ID, &r.ReceiptNumber, &r.Date, &r.Seller, &sellerID,
			&r.TotalAmount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		if sellerID.Valid {
			r.SellerID = sellerID.String
		}
		receipts = append(receipts, r)
		byID[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}
	rows.Close()

	if len(receipts) == 0 {
		return receipts, nil
	}

	itemRows, err := s.db.QueryContext(ctx,
		`SELECT li.receipt_id, li.order_label, li.description, li.quantity, li.unit_price, li.total
		 FROM line_items li JOIN receipts r ON r.id = li.receipt_id
		 WHERE `+where+` ORDER BY li.receipt_id, li.position`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var receiptID string
		var item models.LineItem
		if err := itemRows.Scan(&receiptID, &item.Order, &item.Description,
			&item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if r, ok := byID[receiptID]; ok {
			r.Items = append(r.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return receipts, nil
}

func checkNumberFree(ctx context.Context, tx *sql.Tx, receipt *models.Receipt) error {
	var exists int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM receipts WHERE seller = ? AND receipt_number = ? AND id != ?",
		receipt.Seller, receipt.ReceiptNumber, receipt.ID,
	).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%s #%d: %w", receipt.Seller, receipt.ReceiptNumber, storage.ErrDuplicateNumber)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check receipt number: %w", err)
	}
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, receipt *models.Receipt) error {
	for i, item := range receipt.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO line_items (receipt_id, position, order_label, description, quantity, unit_price, total)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			receipt.ID, i, item.Order, item.Description, item.Quantity, item.UnitPrice, item.Total,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
