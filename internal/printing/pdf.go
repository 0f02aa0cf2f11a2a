// Package printing renders receipts and sales reports as A4 PDF documents.
package printing

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"

	"github.com/mmynk/receiptbook/internal/models"
)

// Currency prefixes every amount on printed documents.
var Currency = "R$"

const displayDate = "02/01/2006"

// Money formats an amount with thousands separators and two decimals.
func Money(amount float64) string {
	return Currency + " " + humanize.FormatFloat("#,###.##", amount)
}

// ReceiptNumber formats a receipt number the way it is printed.
func ReceiptNumber(n int) string {
	return fmt.Sprintf("#%04d", n)
}

func formatDate(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayDate)
}

func newDocument() (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

// RenderReceipt writes a printable receipt to w.
func RenderReceipt(w io.Writer, r *models.Receipt) error {
	pdf, tr := newDocument()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, "SALES RECEIPT", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(0, 8, ReceiptNumber(r.ReceiptNumber), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 7, "Date:", "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 7, "Seller:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(90, 7, formatDate(r.Date), "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 7, tr(r.Seller), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	widths := []float64{25, 70, 20, 32, 33}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range []string{"Order", "Description", "Qty", "Unit price", "Total"} {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 9, h, "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for _, item := range r.Items {
		pdf.CellFormat(widths[0], 8, tr(item.Order), "B", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, tr(item.Description), "B", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, humanize.Ftoa(item.Quantity), "B", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, Money(item.UnitPrice), "B", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, Money(item.Total), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Total: "+Money(r.TotalAmount), "T", 1, "R", false, 0, "")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Thank you for your purchase!", "T", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, time.Now().Format(displayDate), "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

// RenderSalesReport writes a printable sales report to w.
func RenderSalesReport(w io.Writer, report *models.SalesReport) error {
	pdf, tr := newDocument()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, "SALES REPORT", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(0, 8, tr(report.Seller), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	period := fmt.Sprintf("%s to %s", formatDate(report.StartDate), formatDate(report.EndDate))
	pdf.CellFormat(0, 7, period, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Commission rate: %s%%", humanize.Ftoa(report.CommissionRate)), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 9, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, "Receipt", "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, r := range report.Receipts {
		pdf.CellFormat(60, 8, formatDate(r.Date), "B", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, ReceiptNumber(r.ReceiptNumber), "B", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, Money(r.TotalAmount), "B", 1, "R", false, 0, "")
	}
	if len(report.Receipts) == 0 {
		pdf.CellFormat(180, 8, "No receipts in this period.", "B", 1, "C", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 7, "Total sales:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(90, 7, "Total commission:", "T", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(90, 10, Money(report.TotalSales), "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 10, Money(report.TotalCommission), "", 1, "R", false, 0, "")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "Generated on "+time.Now().Format(displayDate), "T", 1, "C", false, 0, "")

	return pdf.Output(w)
}
