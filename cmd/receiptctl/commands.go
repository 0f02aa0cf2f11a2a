package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"

	"github.com/mmynk/receiptbook/internal/printing"
	"github.com/mmynk/receiptbook/pkg/api"
)

func runSellers(ctx context.Context, c *client, args []string) error {
	fs := newFlagSet("sellers")
	var activeOnly bool
	fs.BoolVar(&activeOnly, "active", false, "only active sellers")
	if err := fs.Parse(true, args); err != nil {
		return err
	}

	resp, err := c.sellers.ListSellers(ctx, connect.NewRequest(&api.ListSellersRequest{ActiveOnly: activeOnly}))
	if err != nil {
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.RightAlign(3)
	table.AddRow("NAME", "RANGE", "ACTIVE", "COMMISSION", "SINCE")
	for _, s := range resp.Msg.Sellers {
		table.AddRow(
			s.Name,
			fmt.Sprintf("%04d-%04d", s.StartRange, s.EndRange),
			yesNo(s.Active),
			humanize.Ftoa(s.Commission)+"%",
			humanize.Time(time.Unix(s.CreatedAt, 0)),
		)
	}
	fmt.Fprintln(c.out, table)
	return nil
}

func runAddSeller(ctx context.Context, c *client, args []string) error {
	fs := newFlagSet("add-seller")
	var (
		name       string
		start, end int
		commission float64
	)
	fs.StringVar(&name, "name", "", "seller name")
	fs.IntVar(&start, "start", 0, "first receipt number")
	fs.IntVar(&end, "end", 0, "last receipt number")
	fs.Float64Var(&commission, "commission", -1, "commission percentage (server default when omitted)")
	if err := fs.Parse(true, args); err != nil {
		return err
	}
	if err := requireFlag("name", name); err != nil {
		return err
	}

	req := &api.CreateSellerRequest{Name: name, StartRange: start, EndRange: end}
	if commission >= 0 {
		req.Commission = &commission
	}
	resp, err := c.sellers.CreateSeller(ctx, connect.NewRequest(req))
	if err != nil {
		return err
	}

	s := resp.Msg.Seller
	fmt.Fprintf(c.out, "created %s with receipts %04d-%04d\n", s.Name, s.StartRange, s.EndRange)
	return nil
}

func runNext(ctx context.Context, c *client, args []string) error {
	fs := newFlagSet("next")
	var seller string
	fs.StringVar(&seller, "seller", "", "seller name or ID")
	if err := fs.Parse(true, args); err != nil {
		return err
	}
	s, err := c.findSeller(ctx, seller)
	if err != nil {
		return err
	}

	resp, err := c.receipts.NextReceiptNumber(ctx, connect.NewRequest(&api.NextReceiptNumberRequest{SellerId: s.Id}))
	if err != nil {
		return err
	}

	next := resp.Msg
	line := printing.ReceiptNumber(next.ReceiptNumber)
	if next.Legacy {
		line += " (no range assigned, suggested from last issued)"
	}
	fmt.Fprintln(c.out, line)
	return nil
}

func runReceipts(ctx context.Context, c *client, args []string) error {
	fs := newFlagSet("receipts")
	var query, by string
	fs.StringVar(&query, "search", "", "number or date fragment to match")
	fs.StringVar(&by, "by", string(api.SearchTypeNumber), "field to search: number or date")
	if err := fs.Parse(true, args); err != nil {
		return err
	}

	resp, err := c.receipts.SearchReceipts(ctx, connect.NewRequest(&api.SearchReceiptsRequest{
		Query: query,
		Type:  api.SearchType(by),
	}))
	if err != nil {
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.RightAlign(3)
	table.RightAlign(4)
	table.AddRow("NUMBER", "DATE", "SELLER", "ITEMS", "TOTAL")
	for _, r := range resp.Msg.Receipts {
		table.AddRow(
			printing.ReceiptNumber(r.ReceiptNumber),
			r.Date,
			r.Seller,
			len(r.Items),
			printing.Money(r.TotalAmount),
		)
	}
	fmt.Fprintln(c.out, table)
	fmt.Fprintf(c.out, "%s found\n", pluralize(len(resp.Msg.Receipts), "receipt"))
	return nil
}

func runReport(ctx context.Context, c *client, args []string) error {
	fs := newFlagSet("report")
	var (
		seller, from, to string
		commission       float64
		save             bool
	)
	fs.StringVar(&seller, "seller", "", "seller name or ID")
	fs.StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	fs.StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	fs.Float64Var(&commission, "commission", -1, "override the seller's commission percentage")
	fs.BoolVar(&save, "save", false, "store the overridden commission on the seller")
	if err := fs.Parse(true, args); err != nil {
		return err
	}
	s, err := c.findSeller(ctx, seller)
	if err != nil {
		return err
	}

	req := &api.GenerateSalesReportRequest{SellerId: s.Id, StartDate: from, EndDate: to}
	if commission >= 0 {
		req.CommissionOverride = &commission
		req.PersistCommission = save
	}
	resp, err := c.reports.GenerateSalesReport(ctx, connect.NewRequest(req))
	if err != nil {
		return err
	}

	report := resp.Msg.Report
	table := uitable.New()
	table.RightAlign(2)
	table.AddRow("DATE", "RECEIPT", "AMOUNT")
	for _, r := range report.Receipts {
		table.AddRow(r.Date, printing.ReceiptNumber(r.ReceiptNumber), printing.Money(r.TotalAmount))
	}
	table.AddRow("", "", "")
	table.AddRow("Total sales", "", printing.Money(report.TotalSales))
	table.AddRow("Commission "+humanize.Ftoa(report.CommissionRate)+"%", "", printing.Money(report.TotalCommission))

	fmt.Fprintf(c.out, "%s, %s to %s\n\n", report.Seller, report.StartDate, report.EndDate)
	fmt.Fprintln(c.out, table)
	return nil
}

// findSeller resolves a seller by ID or case-insensitive name.
func (c *client) findSeller(ctx context.Context, ref string) (*api.Seller, error) {
	if err := requireFlag("seller", ref); err != nil {
		return nil, err
	}
	resp, err := c.sellers.ListSellers(ctx, connect.NewRequest(&api.ListSellersRequest{}))
	if err != nil {
		return nil, err
	}
	for _, s := range resp.Msg.Sellers {
		if s.Id == ref || strings.EqualFold(s.Name, ref) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no seller named %q", ref)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
