package models

// SalesReport is a seller's sales and commission over a date range.
type SalesReport struct {
	Seller   string
	SellerID string

	// StartDate and EndDate bound the report (inclusive, DateLayout format).
	StartDate string
	EndDate   string

	// CommissionRate is the percentage applied to TotalSales.
	CommissionRate float64

	TotalSales      float64
	TotalCommission float64

	// Receipts are the receipts counted in the report, ordered by date then number.
	Receipts []Receipt
}
