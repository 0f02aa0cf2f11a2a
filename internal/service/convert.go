package service

import (
	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/pkg/api"
)

func toAPISeller(s *models.Seller) *api.Seller {
	if s == nil {
		return nil
	}
	return &api.Seller{
		Id:         s.ID,
		Name:       s.Name,
		StartRange: s.StartRange,
		EndRange:   s.EndRange,
		Active:     s.Active,
		Commission: s.Commission,
		CreatedAt:  s.CreatedAt,
	}
}

func toAPIItems(items []models.LineItem) []api.LineItem {
	out := make([]api.LineItem, len(items))
	for i, item := range items {
		out[i] = api.LineItem{
			Order:       item.Order,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		}
	}
	return out
}

func fromAPIItems(items []api.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, item := range items {
		out[i] = models.LineItem{
			Order:       item.Order,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return out
}

func toAPIReceipt(r *models.Receipt) *api.Receipt {
	if r == nil {
		return nil
	}
	return &api.Receipt{
		Id:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		Date:          r.Date,
		Seller:        r.Seller,
		SellerId:      r.SellerID,
		Items:         toAPIItems(r.Items),
		TotalAmount:   r.TotalAmount,
		CreatedAt:     r.CreatedAt,
	}
}

func toAPIReceipts(receipts []*models.Receipt) []*api.Receipt {
	out := make([]*api.Receipt, len(receipts))
	for i, r := range receipts {
		out[i] = toAPIReceipt(r)
	}
	return out
}

func toAPIReport(r *models.SalesReport) *api.SalesReport {
	receipts := make([]api.Receipt, len(r.Receipts))
	for i := range r.Receipts {
		receipts[i] = *toAPIReceipt(&r.Receipts[i])
	}
	return &api.SalesReport{
		Seller:          r.Seller,
		SellerId:        r.SellerID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		CommissionRate:  r.CommissionRate,
		TotalSales:      r.TotalSales,
		TotalCommission: r.TotalCommission,
		Receipts:        receipts,
	}
}
