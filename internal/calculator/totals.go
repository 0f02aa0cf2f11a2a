package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/receiptbook/internal/models"
)

// LineTotal computes quantity × unit price rounded to cents.
func LineTotal(quantity, unitPrice float64) float64 {
	return decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(unitPrice)).
		Round(2).
		InexactFloat64()
}

// ApplyTotals returns a copy of items with every Total recomputed from
// quantity and unit price. Totals supplied by callers are ignored.
func ApplyTotals(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, item := range items {
		item.Total = LineTotal(item.Quantity, item.UnitPrice)
		out[i] = item
	}
	return out
}

// ReceiptTotal sums the recomputed totals of all items.
func ReceiptTotal(items []models.LineItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(LineTotal(item.Quantity, item.UnitPrice)))
	}
	return sum.Round(2).InexactFloat64()
}

// Commission computes rate percent of totalSales, rounded to cents.
func Commission(totalSales, rate float64) float64 {
	return decimal.NewFromFloat(totalSales).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}
