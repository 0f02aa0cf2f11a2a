package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptbook/internal/allocator"
	"github.com/mmynk/receiptbook/internal/calculator"
	"github.com/mmynk/receiptbook/internal/metrics"
	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/internal/storage"
	"github.com/mmynk/receiptbook/pkg/api"
)

// ReceiptService implements the Connect ReceiptService.
type ReceiptService struct {
	store   storage.Store
	metrics *metrics.Metrics

	// mu serializes number validation with the write that claims the number.
	mu sync.Mutex
}

// NewReceiptService creates a new ReceiptService. m may be nil.
func NewReceiptService(store storage.Store, m *metrics.Metrics) *ReceiptService {
	return &ReceiptService{store: store, metrics: m}
}

// CalculateTotals previews item and receipt totals without saving anything.
func (s *ReceiptService) CalculateTotals(ctx context.Context, req *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error) {
	if len(req.Msg.Items) > models.MaxLineItems {
		return nil, invalidArgument(fmt.Errorf("a receipt holds at most %d items", models.MaxLineItems))
	}

	items := calculator.ApplyTotals(fromAPIItems(req.Msg.Items))

	return connect.NewResponse(&api.CalculateTotalsResponse{
		Items:       toAPIItems(items),
		TotalAmount: calculator.ReceiptTotal(items),
	}), nil
}

// NextReceiptNumber suggests the lowest unused number in the seller's range.
func (s *ReceiptService) NextReceiptNumber(ctx context.Context, req *connect.Request[api.NextReceiptNumberRequest]) (*connect.Response[api.NextReceiptNumberResponse], error) {
	seller, err := s.store.GetSeller(ctx, req.Msg.SellerId)
	if err != nil {
		return nil, storeError("load seller", err)
	}

	next, err := s.nextNumber(ctx, seller)
	if err != nil {
		return nil, err
	}
	if next.Exhausted {
		return nil, connect.NewError(connect.CodeResourceExhausted,
			fmt.Errorf("%w: %s has used every number in %s", allocator.ErrRangeExhausted, seller.Name, formatRange(seller)))
	}

	slog.Info("NextReceiptNumber successful",
		"seller", seller.Name,
		"receipt_number", next.ReceiptNumber,
		"legacy", next.Legacy,
	)

	return connect.NewResponse(next), nil
}

// ValidateReceiptNumber reports whether the number lies in the seller's range.
func (s *ReceiptService) ValidateReceiptNumber(ctx context.Context, req *connect.Request[api.ValidateReceiptNumberRequest]) (*connect.Response[api.ValidateReceiptNumberResponse], error) {
	sellers, err := s.store.ListSellers(ctx)
	if err != nil {
		return nil, storeError("list sellers", err)
	}
	valid := allocator.ValidateReceiptNumber(sellers, req.Msg.ReceiptNumber, req.Msg.SellerId)
	return connect.NewResponse(&api.ValidateReceiptNumberResponse{Valid: valid}), nil
}

// CreateReceipt validates and saves a receipt, then suggests the seller's
// next number.
func (s *ReceiptService) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error) {
	slog.Info("CreateReceipt request received",
		"seller_id", req.Msg.SellerId,
		"receipt_number", req.Msg.ReceiptNumber,
		"items_count", len(req.Msg.Items),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	receipt, seller, err := s.buildReceipt(ctx, req.Msg.SellerId, req.Msg.ReceiptNumber, req.Msg.Date, req.Msg.Items)
	if err != nil {
		return nil, err
	}
	if !seller.Active {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("seller %s is inactive", seller.Name))
	}

	if err := s.store.CreateReceipt(ctx, receipt); err != nil {
		return nil, storeError("save receipt", err)
	}
	s.metrics.ReceiptSaved(receipt.Seller, receipt.TotalAmount)

	slog.Info("Receipt created",
		"receipt_id", receipt.ID,
		"receipt_number", receipt.ReceiptNumber,
		"seller", receipt.Seller,
		"total", receipt.TotalAmount,
	)

	next, err := s.nextNumber(ctx, seller)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.CreateReceiptResponse{
		Receipt: toAPIReceipt(receipt),
		Next:    next,
	}), nil
}

// GetReceipt retrieves a receipt by ID.
func (s *ReceiptService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	receipt, err := s.store.GetReceipt(ctx, req.Msg.ReceiptId)
	if err != nil {
		return nil, storeError("load receipt", err)
	}
	return connect.NewResponse(&api.GetReceiptResponse{Receipt: toAPIReceipt(receipt)}), nil
}

// UpdateReceipt replaces a receipt, applying the same checks as CreateReceipt
// except for the seller's active flag.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	slog.Info("UpdateReceipt request received",
		"receipt_id", req.Msg.ReceiptId,
		"receipt_number", req.Msg.ReceiptNumber,
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.GetReceipt(ctx, req.Msg.ReceiptId)
	if err != nil {
		return nil, storeError("load receipt", err)
	}

	receipt, _, err := s.buildReceipt(ctx, req.Msg.SellerId, req.Msg.ReceiptNumber, req.Msg.Date, req.Msg.Items)
	if err != nil {
		return nil, err
	}
	receipt.ID = existing.ID
	receipt.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateReceipt(ctx, receipt); err != nil {
		return nil, storeError("save receipt", err)
	}

	slog.Info("UpdateReceipt successful", "receipt_id", receipt.ID, "total", receipt.TotalAmount)

	return connect.NewResponse(&api.UpdateReceiptResponse{Receipt: toAPIReceipt(receipt)}), nil
}

// DeleteReceipt removes a receipt. Its number becomes available again.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	slog.Info("DeleteReceipt request received", "receipt_id", req.Msg.ReceiptId)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteReceipt(ctx, req.Msg.ReceiptId); err != nil {
		return nil, storeError("delete receipt", err)
	}
	return connect.NewResponse(&api.DeleteReceiptResponse{}), nil
}

// ListReceipts returns every receipt, newest first.
func (s *ReceiptService) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return nil, storeError("list receipts", err)
	}

	slog.Info("ListReceipts successful", "count", len(receipts))

	return connect.NewResponse(&api.ListReceiptsResponse{Receipts: toAPIReceipts(receipts)}), nil
}

// SearchReceipts matches receipts by number or date substring. A blank query
// lists everything.
func (s *ReceiptService) SearchReceipts(ctx context.Context, req *connect.Request[api.SearchReceiptsRequest]) (*connect.Response[api.SearchReceiptsResponse], error) {
	query := strings.TrimSpace(req.Msg.Query)

	var field models.SearchField
	switch req.Msg.Type {
	case api.SearchTypeNumber, "":
		field = models.SearchByNumber
	case api.SearchTypeDate:
		field = models.SearchByDate
	default:
		return nil, invalidArgument(fmt.Errorf("unknown search type %q", req.Msg.Type))
	}

	var (
		receipts []*models.Receipt
		err      error
	)
	if query == "" {
		receipts, err = s.store.ListReceipts(ctx)
	} else {
		receipts, err = s.store.SearchReceipts(ctx, query, field)
	}
	if err != nil {
		return nil, storeError("search receipts", err)
	}

	slog.Info("SearchReceipts successful", "query", query, "type", req.Msg.Type, "count", len(receipts))

	return connect.NewResponse(&api.SearchReceiptsResponse{Receipts: toAPIReceipts(receipts)}), nil
}

// buildReceipt runs the save checks and returns the receipt with totals
// computed, together with its seller.
func (s *ReceiptService) buildReceipt(ctx context.Context, sellerID string, number int, date string, items []api.LineItem) (*models.Receipt, *models.Seller, error) {
	if strings.TrimSpace(sellerID) == "" {
		return nil, nil, invalidArgument(errors.New("please select a seller"))
	}

	sellers, err := s.store.ListSellers(ctx)
	if err != nil {
		return nil, nil, storeError("list sellers", err)
	}
	var seller *models.Seller
	for _, candidate := range sellers {
		if candidate.ID == sellerID {
			seller = candidate
			break
		}
	}
	if seller == nil {
		return nil, nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("seller %s: %w", sellerID, storage.ErrNotFound))
	}

	if !seller.HasRange() {
		return nil, nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("seller %s has no receipt range assigned", seller.Name))
	}
	if !allocator.ValidateReceiptNumber(sellers, number, sellerID) {
		return nil, nil, invalidArgument(fmt.Errorf("%w: use a number between %04d and %04d for %s",
			allocator.ErrNumberOutOfRange, seller.StartRange, seller.EndRange, seller.Name))
	}

	date, err = normalizeDate(date)
	if err != nil {
		return nil, nil, invalidArgument(err)
	}

	lineItems := fromAPIItems(items)
	if err := validateItems(lineItems); err != nil {
		return nil, nil, invalidArgument(err)
	}
	lineItems = calculator.ApplyTotals(lineItems)

	return &models.Receipt{
		ReceiptNumber: number,
		Date:          date,
		Seller:        seller.Name,
		SellerID:      seller.ID,
		Items:         lineItems,
		TotalAmount:   calculator.ReceiptTotal(lineItems),
	}, seller, nil
}

// nextNumber computes the number to offer for the seller's next receipt.
// Sellers without a range get an advisory number from the last issued one.
func (s *ReceiptService) nextNumber(ctx context.Context, seller *models.Seller) (*api.NextReceiptNumberResponse, error) {
	last, err := s.store.LastReceiptNumbers(ctx)
	if err != nil {
		return nil, storeError("load last receipt numbers", err)
	}
	resp := &api.NextReceiptNumberResponse{LastIssued: last[seller.Name]}

	if !seller.HasRange() {
		resp.ReceiptNumber = allocator.LegacyNextNumber(last, seller.Name)
		resp.Legacy = true
		return resp, nil
	}

	used, err := s.store.UsedReceiptNumbers(ctx, seller.Name)
	if err != nil {
		return nil, storeError("load used receipt numbers", err)
	}
	n, ok := allocator.NextAvailableNumber(seller, used)
	if !ok {
		s.metrics.RangeExhausted(seller.Name)
		slog.Warn("Receipt range exhausted", "seller", seller.Name, "range", formatRange(seller))
		resp.Exhausted = true
		return resp, nil
	}
	resp.ReceiptNumber = n
	return resp, nil
}
