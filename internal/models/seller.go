package models

// Seller represents a salesperson with a reserved range of receipt numbers.
type Seller struct {
	// ID is the unique identifier for the seller (UUID format).
	ID string

	// Name is the display name printed on receipts.
	Name string

	// StartRange is the first receipt number reserved for this seller (inclusive).
	StartRange int

	// EndRange is the last receipt number reserved for this seller (inclusive).
	// Ranges of different sellers never overlap.
	EndRange int

	// Active marks sellers that can be picked for new receipts.
	Active bool

	// Commission is the percentage of total sales paid to the seller (0-100).
	Commission float64

	// CreatedAt is the Unix timestamp when the seller was created.
	CreatedAt int64
}

// HasRange reports whether the seller has a receipt range assigned.
// Sellers imported from older data may have none.
func (s *Seller) HasRange() bool {
	return !(s.StartRange == 0 && s.EndRange == 0)
}

// Contains reports whether number lies within the seller's range. A seller
// without a range contains no numbers.
func (s *Seller) Contains(number int) bool {
	return s.HasRange() && number >= s.StartRange && number <= s.EndRange
}
