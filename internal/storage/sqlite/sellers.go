package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/internal/storage"
)

const sellerColumns = "id, name, start_range, end_range, active, commission, created_at"

// CreateSeller persists a new seller to the database.
func (s *SQLiteStore) CreateSeller(ctx context.Context, seller *models.Seller) error {
	// Generate ID if not set
	if seller.ID == "" {
		seller.ID = uuid.New().String()
	}
	if seller.CreatedAt == 0 {
		seller.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sellers ("+sellerColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		seller.ID, seller.Name, seller.StartRange, seller.EndRange,
		boolToInt(seller.Active), seller.Commission, seller.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert seller: %w", err)
	}

	return nil
}

// GetSeller retrieves a seller by ID.
func (s *SQLiteStore) GetSeller(ctx context.Context, sellerID string) (*models.Seller, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+sellerColumns+" FROM sellers WHERE id = ?",
		sellerID,
	)

	seller, err := scanSeller(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("seller %s: %w", sellerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}

	return seller, nil
}

// ListSellers retrieves all sellers ordered by the start of their range.
func (s *SQLiteStore) ListSellers(ctx context.Context) ([]*models.Seller, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+sellerColumns+" FROM sellers ORDER BY start_range, name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}
	defer rows.Close()

	var sellers []*models.Seller
	for rows.Next() {
		seller, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seller: %w", err)
		}
		sellers = append(sellers, seller)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sellers: %w", err)
	}

	return sellers, nil
}

// UpdateSeller updates an existing seller and renames its linked receipts.
func (s *SQLiteStore) UpdateSeller(ctx context.Context, seller *models.Seller) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var oldName string
		err := tx.QueryRowContext(ctx, "SELECT name FROM sellers WHERE id = ?", seller.ID).Scan(&oldName)
		if err == sql.ErrNoRows {
			return fmt.Errorf("seller %s: %w", seller.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check seller existence: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE sellers SET name = ?, start_range = ?, end_range = ?, active = ?, commission = ?
			 WHERE id = ?`,
			seller.Name, seller.StartRange, seller.EndRange, boolToInt(seller.Active), seller.Commission,
			seller.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update seller: %w", err)
		}

		if oldName == seller.Name {
			return nil
		}

		// Receipts keep the seller name; follow the rename for linked ones
		if _, err := tx.ExecContext(ctx,
			"UPDATE receipts SET seller = ? WHERE seller_id = ?",
			seller.Name, seller.ID,
		); err != nil {
			return fmt.Errorf("failed to rename seller receipts: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE OR REPLACE last_receipt_numbers SET seller = ? WHERE seller = ?",
			seller.Name, oldName,
		); err != nil {
			return fmt.Errorf("failed to rename last receipt number: %w", err)
		}
		return nil
	})
}

// UpdateSellerCommission sets the commission column alone.
func (s *SQLiteStore) UpdateSellerCommission(ctx context.Context, sellerID string, commission float64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE sellers SET commission = ? WHERE id = ?", commission, sellerID)
	if err != nil {
		return fmt.Errorf("failed to update seller commission: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update seller commission: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("seller %s: %w", sellerID, storage.ErrNotFound)
	}
	return nil
}

// DeleteSeller removes a seller by ID. Receipts keep the seller name.
func (s *SQLiteStore) DeleteSeller(ctx context.Context, sellerID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sellers WHERE id = ?", sellerID)
	if err != nil {
		return fmt.Errorf("failed to delete seller: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete seller: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("seller %s: %w", sellerID, storage.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeller(row rowScanner) (*models.Seller, error) {
	seller := &models.Seller{}
	var active int
	if err := row.Scan(&seller.ID, &seller.Name, &seller.StartRange, &seller.EndRange,
		&active, &seller.Commission, &seller.CreatedAt); err != nil {
		return nil, err
	}
	seller.Active = active != 0
	return seller, nil
}
