package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptbook/pkg/api"
)

// SellerServiceName is the fully-qualified name of the SellerService.
const SellerServiceName = "receiptbook.v1.SellerService"

const (
	SellerServiceCreateSellerProcedure       = "/receiptbook.v1.SellerService/CreateSeller"
	SellerServiceUpdateSellerProcedure       = "/receiptbook.v1.SellerService/UpdateSeller"
	SellerServiceDeleteSellerProcedure       = "/receiptbook.v1.SellerService/DeleteSeller"
	SellerServiceGetSellerProcedure          = "/receiptbook.v1.SellerService/GetSeller"
	SellerServiceListSellersProcedure        = "/receiptbook.v1.SellerService/ListSellers"
	SellerServiceCheckRangeProcedure         = "/receiptbook.v1.SellerService/CheckRange"
	SellerServiceFindSellerByNumberProcedure = "/receiptbook.v1.SellerService/FindSellerByNumber"
	SellerServiceUpdateCommissionProcedure   = "/receiptbook.v1.SellerService/UpdateCommission"
)

// SellerServiceHandler is implemented by the seller management service.
type SellerServiceHandler interface {
	CreateSeller(context.Context, *connect.Request[api.CreateSellerRequest]) (*connect.Response[api.CreateSellerResponse], error)
	UpdateSeller(context.Context, *connect.Request[api.UpdateSellerRequest]) (*connect.Response[api.UpdateSellerResponse], error)
	DeleteSeller(context.Context, *connect.Request[api.DeleteSellerRequest]) (*connect.Response[api.DeleteSellerResponse], error)
	GetSeller(context.Context, *connect.Request[api.GetSellerRequest]) (*connect.Response[api.GetSellerResponse], error)
	ListSellers(context.Context, *connect.Request[api.ListSellersRequest]) (*connect.Response[api.ListSellersResponse], error)
	CheckRange(context.Context, *connect.Request[api.CheckRangeRequest]) (*connect.Response[api.CheckRangeResponse], error)
	FindSellerByNumber(context.Context, *connect.Request[api.FindSellerByNumberRequest]) (*connect.Response[api.FindSellerByNumberResponse], error)
	UpdateCommission(context.Context, *connect.Request[api.UpdateCommissionRequest]) (*connect.Response[api.UpdateCommissionResponse], error)
}

// NewSellerServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewSellerServiceHandler(svc SellerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		SellerServiceCreateSellerProcedure:       connect.NewUnaryHandler(SellerServiceCreateSellerProcedure, svc.CreateSeller, opts...),
		SellerServiceUpdateSellerProcedure:       connect.NewUnaryHandler(SellerServiceUpdateSellerProcedure, svc.UpdateSeller, opts...),
		SellerServiceDeleteSellerProcedure:       connect.NewUnaryHandler(SellerServiceDeleteSellerProcedure, svc.DeleteSeller, opts...),
		SellerServiceGetSellerProcedure:          connect.NewUnaryHandler(SellerServiceGetSellerProcedure, svc.GetSeller, opts...),
		SellerServiceListSellersProcedure:        connect.NewUnaryHandler(SellerServiceListSellersProcedure, svc.ListSellers, opts...),
		SellerServiceCheckRangeProcedure:         connect.NewUnaryHandler(SellerServiceCheckRangeProcedure, svc.CheckRange, opts...),
		SellerServiceFindSellerByNumberProcedure: connect.NewUnaryHandler(SellerServiceFindSellerByNumberProcedure, svc.FindSellerByNumber, opts...),
		SellerServiceUpdateCommissionProcedure:   connect.NewUnaryHandler(SellerServiceUpdateCommissionProcedure, svc.UpdateCommission, opts...),
	}
	return "/" + SellerServiceName + "/", route(handlers)
}

// SellerServiceClient is a client for the SellerService.
type SellerServiceClient interface {
	CreateSeller(context.Context, *connect.Request[api.CreateSellerRequest]) (*connect.Response[api.CreateSellerResponse], error)
	UpdateSeller(context.Context, *connect.Request[api.UpdateSellerRequest]) (*connect.Response[api.UpdateSellerResponse], error)
	DeleteSeller(context.Context, *connect.Request[api.DeleteSellerRequest]) (*connect.Response[api.DeleteSellerResponse], error)
	GetSeller(context.Context, *connect.Request[api.GetSellerRequest]) (*connect.Response[api.GetSellerResponse], error)
	ListSellers(context.Context, *connect.Request[api.ListSellersRequest]) (*connect.Response[api.ListSellersResponse], error)
	CheckRange(context.Context, *connect.Request[api.CheckRangeRequest]) (*connect.Response[api.CheckRangeResponse], error)
	FindSellerByNumber(context.Context, *connect.Request[api.FindSellerByNumberRequest]) (*connect.Response[api.FindSellerByNumberResponse], error)
	UpdateCommission(context.Context, *connect.Request[api.UpdateCommissionRequest]) (*connect.Response[api.UpdateCommissionResponse], error)
}

// NewSellerServiceClient constructs a client for the SellerService served at baseURL.
func NewSellerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SellerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &sellerServiceClient{
		createSeller:       connect.NewClient[api.CreateSellerRequest, api.CreateSellerResponse](httpClient, baseURL+SellerServiceCreateSellerProcedure, opts...),
		updateSeller:       connect.NewClient[api.UpdateSellerRequest, api.UpdateSellerResponse](httpClient, baseURL+SellerServiceUpdateSellerProcedure, opts...),
		deleteSeller:       connect.NewClient[api.DeleteSellerRequest, api.DeleteSellerResponse](httpClient, baseURL+SellerServiceDeleteSellerProcedure, opts...),
		getSeller:          connect.NewClient[api.GetSellerRequest, api.GetSellerResponse](httpClient, baseURL+SellerServiceGetSellerProcedure, opts...),
		listSellers:        connect.NewClient[api.ListSellersRequest, api.ListSellersResponse](httpClient, baseURL+SellerServiceListSellersProcedure, opts...),
		checkRange:         connect.NewClient[api.CheckRangeRequest, api.CheckRangeResponse](httpClient, baseURL+SellerServiceCheckRangeProcedure, opts...),
		findSellerByNumber: connect.NewClient[api.FindSellerByNumberRequest, api.FindSellerByNumberResponse](httpClient, baseURL+SellerServiceFindSellerByNumberProcedure, opts...),
		updateCommission:   connect.NewClient[api.UpdateCommissionRequest, api.UpdateCommissionResponse](httpClient, baseURL+SellerServiceUpdateCommissionProcedure, opts...),
	}
}

type sellerServiceClient struct {
	createSeller       *connect.Client[api.CreateSellerRequest, api.CreateSellerResponse]
	updateSeller       *connect.Client[api.UpdateSellerRequest, api.UpdateSellerResponse]
	deleteSeller       *connect.Client[api.DeleteSellerRequest, api.DeleteSellerResponse]
	getSeller          *connect.Client[api.GetSellerRequest, api.GetSellerResponse]
	listSellers        *connect.Client[api.ListSellersRequest, api.ListSellersResponse]
	checkRange         *connect.Client[api.CheckRangeRequest, api.CheckRangeResponse]
	findSellerByNumber *connect.Client[api.FindSellerByNumberRequest, api.FindSellerByNumberResponse]
	updateCommission   *connect.Client[api.UpdateCommissionRequest, api.UpdateCommissionResponse]
}

func (c *sellerServiceClient) CreateSeller(ctx context.Context, req *connect.Request[api.CreateSellerRequest]) (*connect.Response[api.CreateSellerResponse], error) {
	return c.createSeller.CallUnary(ctx, req)
}

func (c *sellerServiceClient) UpdateSeller(ctx context.Context, req *connect.Request[api.UpdateSellerRequest]) (*connect.Response[api.UpdateSellerResponse], error) {
	return c.updateSeller.CallUnary(ctx, req)
}

func (c *sellerServiceClient) DeleteSeller(ctx context.Context, req *connect.Request[api.DeleteSellerRequest]) (*connect.Response[api.DeleteSellerResponse], error) {
	return c.deleteSeller.CallUnary(ctx, req)
}

func (c *sellerServiceClient) GetSeller(ctx context.Context, req *connect.Request[api.GetSellerRequest]) (*connect.Response[api.GetSellerResponse], error) {
	return c.getSeller.CallUnary(ctx, req)
}

func (c *sellerServiceClient) ListSellers(ctx context.Context, req *connect.Request[api.ListSellersRequest]) (*connect.Response[api.ListSellersResponse], error) {
	return c.listSellers.CallUnary(ctx, req)
}

func (c *sellerServiceClient) CheckRange(ctx context.Context, req *connect.Request[api.CheckRangeRequest]) (*connect.Response[api.CheckRangeResponse], error) {
	return c.checkRange.CallUnary(ctx, req)
}

func (c *sellerServiceClient) FindSellerByNumber(ctx context.Context, req *connect.Request[api.FindSellerByNumberRequest]) (*connect.Response[api.FindSellerByNumberResponse], error) {
	return c.findSellerByNumber.CallUnary(ctx, req)
}

func (c *sellerServiceClient) UpdateCommission(ctx context.Context, req *connect.Request[api.UpdateCommissionRequest]) (*connect.Response[api.UpdateCommissionResponse], error) {
	return c.updateCommission.CallUnary(ctx, req)
}

// route dispatches on the exact procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
