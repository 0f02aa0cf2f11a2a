package models

// MaxLineItems is the number of line items a paper receipt has room for.
const MaxLineItems = 5

// DateLayout is the layout of receipt and report dates (ISO calendar date).
const DateLayout = "2006-01-02"

// Receipt represents a single recorded sale.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// ReceiptNumber is the number printed on the paper receipt.
	// It must lie within the seller's range when the receipt is saved.
	ReceiptNumber int

	// Date is the issue date in DateLayout format.
	Date string

	// Seller is the seller's name at the time of sale.
	Seller string

	// SellerID links the receipt to its seller. Empty once the seller is deleted.
	SellerID string

	// Items are the ordered line items (at most MaxLineItems).
	Items []LineItem

	// TotalAmount is the sum of all line item totals.
	TotalAmount float64

	// CreatedAt is the Unix timestamp when the receipt was saved.
	CreatedAt int64
}

// LineItem represents one product line on a receipt.
type LineItem struct {
	// Order is a free-text order label.
	Order string

	// Description is the product description.
	Description string

	// Quantity must be positive.
	Quantity float64

	// UnitPrice must be positive.
	UnitPrice float64

	// Total is Quantity × UnitPrice, recomputed whenever either changes.
	Total float64
}

// SearchField selects which receipt field a search query matches.
type SearchField int

const (
	SearchByNumber SearchField = iota
	SearchByDate
)
