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
	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/internal/storage"
	"github.com/mmynk/receiptbook/pkg/api"
)

// SellerService implements the Connect SellerService.
type SellerService struct {
	store  storage.Store
	policy Policy

	// mu serializes range checks with the writes that depend on them.
	mu sync.Mutex
}

// NewSellerService creates a new SellerService with the given storage backend.
func NewSellerService(store storage.Store, policy Policy) *SellerService {
	return &SellerService{store: store, policy: policy}
}

// CreateSeller registers a seller with a reserved range of receipt numbers.
func (s *SellerService) CreateSeller(ctx context.Context, req *connect.Request[api.CreateSellerRequest]) (*connect.Response[api.CreateSellerResponse], error) {
	slog.Info("CreateSeller request received",
		"name", req.Msg.Name,
		"start_range", req.Msg.StartRange,
		"end_range", req.Msg.EndRange,
	)

	seller := &models.Seller{
		Name:       strings.TrimSpace(req.Msg.Name),
		StartRange: req.Msg.StartRange,
		EndRange:   req.Msg.EndRange,
		Active:     true,
		Commission: s.policy.DefaultCommission,
	}
	if req.Msg.Active != nil {
		seller.Active = *req.Msg.Active
	}
	if req.Msg.Commission != nil {
		seller.Commission = *req.Msg.Commission
	}
	if err := validateSellerForm(seller.Name, seller.Commission); err != nil {
		return nil, invalidArgument(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSeller(ctx, seller); err != nil {
		return nil, err
	}
	if err := s.store.CreateSeller(ctx, seller); err != nil {
		return nil, storeError("save seller", err)
	}

	slog.Info("Seller created", "seller_id", seller.ID, "range", formatRange(seller))

	return connect.NewResponse(&api.CreateSellerResponse{Seller: toAPISeller(seller)}), nil
}

// UpdateSeller replaces a seller's name, range, status and commission.
func (s *SellerService) UpdateSeller(ctx context.Context, req *connect.Request[api.UpdateSellerRequest]) (*connect.Response[api.UpdateSellerResponse], error) {
	slog.Info("UpdateSeller request received",
		"seller_id", req.Msg.SellerId,
		"start_range", req.Msg.StartRange,
		"end_range", req.Msg.EndRange,
	)

	name := strings.TrimSpace(req.Msg.Name)
	if err := validateSellerForm(name, req.Msg.Commission); err != nil {
		return nil, invalidArgument(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seller, err := s.store.GetSeller(ctx, req.Msg.SellerId)
	if err != nil {
		return nil, storeError("load seller", err)
	}
	previousName := seller.Name

	seller.Name = name
	seller.StartRange = req.Msg.StartRange
	seller.EndRange = req.Msg.EndRange
	seller.Active = req.Msg.Active
	seller.Commission = req.Msg.Commission

	if err := s.checkSeller(ctx, seller); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSeller(ctx, seller); err != nil {
		return nil, storeError("save seller", err)
	}

	if previousName != seller.Name {
		slog.Info("Seller renamed", "seller_id", seller.ID, "from", previousName, "to", seller.Name)
	}
	slog.Info("UpdateSeller successful", "seller_id", seller.ID)

	return connect.NewResponse(&api.UpdateSellerResponse{Seller: toAPISeller(seller)}), nil
}

// DeleteSeller removes a seller. Receipts issued by the seller are kept.
func (s *SellerService) DeleteSeller(ctx context.Context, req *connect.Request[api.DeleteSellerRequest]) (*connect.Response[api.DeleteSellerResponse], error) {
	slog.Info("DeleteSeller request received", "seller_id", req.Msg.SellerId)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteSeller(ctx, req.Msg.SellerId); err != nil {
		return nil, storeError("delete seller", err)
	}

	slog.Info("Seller deleted", "seller_id", req.Msg.SellerId)

	return connect.NewResponse(&api.DeleteSellerResponse{}), nil
}

// GetSeller retrieves a seller by ID.
func (s *SellerService) GetSeller(ctx context.Context, req *connect.Request[api.GetSellerRequest]) (*connect.Response[api.GetSellerResponse], error) {
	seller, err := s.store.GetSeller(ctx, req.Msg.SellerId)
	if err != nil {
		return nil, storeError("load seller", err)
	}
	return connect.NewResponse(&api.GetSellerResponse{Seller: toAPISeller(seller)}), nil
}

// ListSellers returns sellers ordered by range start.
func (s *SellerService) ListSellers(ctx context.Context, req *connect.Request[api.ListSellersRequest]) (*connect.Response[api.ListSellersResponse], error) {
	sellers, err := s.store.ListSellers(ctx)
	if err != nil {
		return nil, storeError("list sellers", err)
	}

	out := make([]*api.Seller, 0, len(sellers))
	for _, seller := range sellers {
		if req.Msg.ActiveOnly && !seller.Active {
			continue
		}
		out = append(out, toAPISeller(seller))
	}

	slog.Info("ListSellers successful", "count", len(out), "active_only", req.Msg.ActiveOnly)

	return connect.NewResponse(&api.ListSellersResponse{Sellers: out}), nil
}

// CheckRange reports whether a range could be assigned, without saving anything.
func (s *SellerService) CheckRange(ctx context.Context, req *connect.Request[api.CheckRangeRequest]) (*connect.Response[api.CheckRangeResponse], error) {
	sellers, err := s.store.ListSellers(ctx)
	if err != nil {
		return nil, storeError("list sellers", err)
	}

	resp := &api.CheckRangeResponse{Available: true}
	err = allocator.CheckRange(sellers, req.Msg.StartRange, req.Msg.EndRange, s.policy.MaxRangeWidth, req.Msg.ExcludeSellerId)
	if err != nil {
		resp.Available = false
		resp.Reason = err.Error()
	}
	return connect.NewResponse(resp), nil
}

// FindSellerByNumber returns the active seller whose range holds the number.
func (s *SellerService) FindSellerByNumber(ctx context.Context, req *connect.Request[api.FindSellerByNumberRequest]) (*connect.Response[api.FindSellerByNumberResponse], error) {
	sellers, err := s.store.ListSellers(ctx)
	if err != nil {
		return nil, storeError("list sellers", err)
	}
	seller := allocator.SellerForNumber(sellers, req.Msg.ReceiptNumber)
	return connect.NewResponse(&api.FindSellerByNumberResponse{Seller: toAPISeller(seller)}), nil
}

// UpdateCommission changes only a seller's commission rate.
func (s *SellerService) UpdateCommission(ctx context.Context, req *connect.Request[api.UpdateCommissionRequest]) (*connect.Response[api.UpdateCommissionResponse], error) {
	slog.Info("UpdateCommission request received",
		"seller_id", req.Msg.SellerId,
		"commission", req.Msg.Commission,
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	seller, err := s.store.GetSeller(ctx, req.Msg.SellerId)
	if err != nil {
		return nil, storeError("load seller", err)
	}
	if err := validateSellerForm(seller.Name, req.Msg.Commission); err != nil {
		return nil, invalidArgument(err)
	}

	seller.Commission = req.Msg.Commission
	if err := s.store.UpdateSellerCommission(ctx, seller.ID, seller.Commission); err != nil {
		return nil, storeError("save seller", err)
	}

	return connect.NewResponse(&api.UpdateCommissionResponse{Seller: toAPISeller(seller)}), nil
}

// checkSeller validates the seller's range against every other seller and
// rejects names already in use. Receipts are matched to sellers by name.
func (s *SellerService) checkSeller(ctx context.Context, seller *models.Seller) error {
	sellers, err := s.store.ListSellers(ctx)
	if err != nil {
		return storeError("list sellers", err)
	}

	for _, other := range sellers {
		if other.ID != seller.ID && strings.EqualFold(other.Name, seller.Name) {
			return connect.NewError(connect.CodeAlreadyExists,
				fmt.Errorf("a seller named %q already exists", other.Name))
		}
	}

	err = allocator.CheckRange(sellers, seller.StartRange, seller.EndRange, s.policy.MaxRangeWidth, seller.ID)
	if err != nil {
		if errors.Is(err, allocator.ErrRangeOverlap) {
			slog.Warn("Range conflict", "start_range", seller.StartRange, "end_range", seller.EndRange, "error", err)
		}
		return rangeError(err)
	}
	return nil
}
