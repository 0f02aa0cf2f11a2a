// Package api defines the receiptbook.v1 wire messages exchanged by the
// Connect services. Messages are encoded as JSON with lowerCamelCase field
// names.
package api

// Seller is a salesperson with a reserved range of receipt numbers.
type Seller struct {
	Id         string  `json:"id"`
	Name       string  `json:"name"`
	StartRange int     `json:"startRange"`
	EndRange   int     `json:"endRange"`
	Active     bool    `json:"active"`
	Commission float64 `json:"commission"`
	CreatedAt  int64   `json:"createdAt"`
}

// LineItem is one product line on a receipt. Total is ignored on input.
type LineItem struct {
	Order       string  `json:"order"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Receipt is a recorded sale.
type Receipt struct {
	Id            string     `json:"id"`
	ReceiptNumber int        `json:"receiptNumber"`
	Date          string     `json:"date"`
	Seller        string     `json:"seller"`
	SellerId      string     `json:"sellerId,omitempty"`
	Items         []LineItem `json:"items"`
	TotalAmount   float64    `json:"totalAmount"`
	CreatedAt     int64      `json:"createdAt"`
}

// SalesReport is a seller's sales and commission over a date range.
type SalesReport struct {
	Seller          string    `json:"seller"`
	SellerId        string    `json:"sellerId"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	CommissionRate  float64   `json:"commissionRate"`
	TotalSales      float64   `json:"totalSales"`
	TotalCommission float64   `json:"totalCommission"`
	Receipts        []Receipt `json:"receipts"`
}

// SellerService messages

type CreateSellerRequest struct {
	Name       string `json:"name"`
	StartRange int    `json:"startRange"`
	EndRange   int    `json:"endRange"`
	// Active defaults to true when omitted.
	Active *bool `json:"active,omitempty"`
	// Commission defaults to the configured default rate when omitted.
	Commission *float64 `json:"commission,omitempty"`
}

type CreateSellerResponse struct {
	Seller *Seller `json:"seller"`
}

type UpdateSellerRequest struct {
	SellerId   string  `json:"sellerId"`
	Name       string  `json:"name"`
	StartRange int     `json:"startRange"`
	EndRange   int     `json:"endRange"`
	Active     bool    `json:"active"`
	Commission float64 `json:"commission"`
}

type UpdateSellerResponse struct {
	Seller *Seller `json:"seller"`
}

type DeleteSellerRequest struct {
	SellerId string `json:"sellerId"`
}

type DeleteSellerResponse struct{}

type GetSellerRequest struct {
	SellerId string `json:"sellerId"`
}

type GetSellerResponse struct {
	Seller *Seller `json:"seller"`
}

type ListSellersRequest struct {
	ActiveOnly bool `json:"activeOnly"`
}

type ListSellersResponse struct {
	Sellers []*Seller `json:"sellers"`
}

type CheckRangeRequest struct {
	StartRange      int    `json:"startRange"`
	EndRange        int    `json:"endRange"`
	ExcludeSellerId string `json:"excludeSellerId,omitempty"`
}

type CheckRangeResponse struct {
	Available bool `json:"available"`
	// Reason explains why the range cannot be used.
	Reason string `json:"reason,omitempty"`
}

type FindSellerByNumberRequest struct {
	ReceiptNumber int `json:"receiptNumber"`
}

type FindSellerByNumberResponse struct {
	// Seller is nil when no active seller owns the number.
	Seller *Seller `json:"seller,omitempty"`
}

type UpdateCommissionRequest struct {
	SellerId   string  `json:"sellerId"`
	Commission float64 `json:"commission"`
}

type UpdateCommissionResponse struct {
	Seller *Seller `json:"seller"`
}

// ReceiptService messages

type CalculateTotalsRequest struct {
	Items []LineItem `json:"items"`
}

type CalculateTotalsResponse struct {
	Items       []LineItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

type NextReceiptNumberRequest struct {
	SellerId string `json:"sellerId"`
}

type NextReceiptNumberResponse struct {
	ReceiptNumber int `json:"receiptNumber"`
	// Exhausted is set when every number in the seller's range is used.
	Exhausted bool `json:"exhausted"`
	// Legacy is set when the number was derived from the last issued
	// number because the seller has no range.
	Legacy     bool `json:"legacy"`
	LastIssued int  `json:"lastIssued,omitempty"`
}

type ValidateReceiptNumberRequest struct {
	SellerId      string `json:"sellerId"`
	ReceiptNumber int    `json:"receiptNumber"`
}

type ValidateReceiptNumberResponse struct {
	Valid bool `json:"valid"`
}

type CreateReceiptRequest struct {
	SellerId      string     `json:"sellerId"`
	ReceiptNumber int        `json:"receiptNumber"`
	Date          string     `json:"date"`
	Items         []LineItem `json:"items"`
}

type CreateReceiptResponse struct {
	Receipt *Receipt `json:"receipt"`
	// Next holds the number to offer for the seller's following receipt.
	Next *NextReceiptNumberResponse `json:"next"`
}

type GetReceiptRequest struct {
	ReceiptId string `json:"receiptId"`
}

type GetReceiptResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type UpdateReceiptRequest struct {
	ReceiptId     string     `json:"receiptId"`
	SellerId      string     `json:"sellerId"`
	ReceiptNumber int        `json:"receiptNumber"`
	Date          string     `json:"date"`
	Items         []LineItem `json:"items"`
}

type UpdateReceiptResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type DeleteReceiptRequest struct {
	ReceiptId string `json:"receiptId"`
}

type DeleteReceiptResponse struct{}

type ListReceiptsRequest struct{}

type ListReceiptsResponse struct {
	Receipts []*Receipt `json:"receipts"`
}

// SearchType selects the receipt field a search matches.
type SearchType string

const (
	SearchTypeNumber SearchType = "number"
	SearchTypeDate   SearchType = "date"
)

type SearchReceiptsRequest struct {
	Query string     `json:"query"`
	Type  SearchType `json:"type"`
}

type SearchReceiptsResponse struct {
	Receipts []*Receipt `json:"receipts"`
}

// ReportService messages

type GenerateSalesReportRequest struct {
	SellerId  string `json:"sellerId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	// CommissionOverride replaces the seller's commission for this report.
	CommissionOverride *float64 `json:"commissionOverride,omitempty"`
	// PersistCommission saves CommissionOverride to the seller.
	PersistCommission bool `json:"persistCommission"`
}

type GenerateSalesReportResponse struct {
	Report *SalesReport `json:"report"`
}
