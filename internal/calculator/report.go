package calculator

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/receiptbook/internal/models"
)

// BuildSalesReport collects the seller's receipts dated between startDate and
// endDate (both inclusive, whole days) and computes total sales and the
// commission at rate percent.
//
// Receipts are matched by seller name, since receipts carry the name that
// was printed on them. Receipts with unparseable dates are skipped.
func BuildSalesReport(seller *models.Seller, receipts []*models.Receipt, startDate, endDate string, rate float64) (*models.SalesReport, error) {
	if seller == nil {
		return nil, fmt.Errorf("seller is required")
	}
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if start.After(end) {
		return nil, fmt.Errorf("start date %s is after end date %s", startDate, endDate)
	}

	report := &models.SalesReport{
		Seller:         seller.Name,
		SellerID:       seller.ID,
		StartDate:      startDate,
		EndDate:        endDate,
		CommissionRate: rate,
		Receipts:       []models.Receipt{},
	}

	total := decimal.Zero
	for _, r := range receipts {
		if r.Seller != seller.Name {
			continue
		}
		day, err := time.Parse(models.DateLayout, r.Date)
		if err != nil {
			continue
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		report.Receipts = append(report.Receipts, *r)
		total = total.Add(decimal.NewFromFloat(r.TotalAmount))
	}

	sort.SliceStable(report.Receipts, func(i, j int) bool {
		a, b := report.Receipts[i], report.Receipts[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.ReceiptNumber < b.ReceiptNumber
	})

	report.TotalSales = total.Round(2).InexactFloat64()
	report.TotalCommission = Commission(report.TotalSales, rate)
	return report, nil
}
