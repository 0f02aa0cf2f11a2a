package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptbook/pkg/api"
)

// ReceiptServiceName is the fully-qualified name of the ReceiptService.
const ReceiptServiceName = "receiptbook.v1.ReceiptService"

const (
	ReceiptServiceCalculateTotalsProcedure       = "/receiptbook.v1.ReceiptService/CalculateTotals"
	ReceiptServiceNextReceiptNumberProcedure     = "/receiptbook.v1.ReceiptService/NextReceiptNumber"
	ReceiptServiceValidateReceiptNumberProcedure = "/receiptbook.v1.ReceiptService/ValidateReceiptNumber"
	ReceiptServiceCreateReceiptProcedure         = "/receiptbook.v1.ReceiptService/CreateReceipt"
	ReceiptServiceGetReceiptProcedure            = "/receiptbook.v1.ReceiptService/GetReceipt"
	ReceiptServiceUpdateReceiptProcedure         = "/receiptbook.v1.ReceiptService/UpdateReceipt"
	ReceiptServiceDeleteReceiptProcedure         = "/receiptbook.v1.ReceiptService/DeleteReceipt"
	ReceiptServiceListReceiptsProcedure          = "/receiptbook.v1.ReceiptService/ListReceipts"
	ReceiptServiceSearchReceiptsProcedure        = "/receiptbook.v1.ReceiptService/SearchReceipts"
)

// ReceiptServiceHandler is implemented by the receipt service.
type ReceiptServiceHandler interface {
	CalculateTotals(context.Context, *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error)
	NextReceiptNumber(context.Context, *connect.Request[api.NextReceiptNumberRequest]) (*connect.Response[api.NextReceiptNumberResponse], error)
	ValidateReceiptNumber(context.Context, *connect.Request[api.ValidateReceiptNumberRequest]) (*connect.Response[api.ValidateReceiptNumberResponse], error)
	CreateReceipt(context.Context, *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error)
	DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error)
	SearchReceipts(context.Context, *connect.Request[api.SearchReceiptsRequest]) (*connect.Response[api.SearchReceiptsResponse], error)
}

// NewReceiptServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		ReceiptServiceCalculateTotalsProcedure:       connect.NewUnaryHandler(ReceiptServiceCalculateTotalsProcedure, svc.CalculateTotals, opts...),
		ReceiptServiceNextReceiptNumberProcedure:     connect.NewUnaryHandler(ReceiptServiceNextReceiptNumberProcedure, svc.NextReceiptNumber, opts...),
		ReceiptServiceValidateReceiptNumberProcedure: connect.NewUnaryHandler(ReceiptServiceValidateReceiptNumberProcedure, svc.ValidateReceiptNumber, opts...),
		ReceiptServiceCreateReceiptProcedure:         connect.NewUnaryHandler(ReceiptServiceCreateReceiptProcedure, svc.CreateReceipt, opts...),
		ReceiptServiceGetReceiptProcedure:            connect.NewUnaryHandler(ReceiptServiceGetReceiptProcedure, svc.GetReceipt, opts...),
		ReceiptServiceUpdateReceiptProcedure:         connect.NewUnaryHandler(ReceiptServiceUpdateReceiptProcedure, svc.UpdateReceipt, opts...),
		ReceiptServiceDeleteReceiptProcedure:         connect.NewUnaryHandler(ReceiptServiceDeleteReceiptProcedure, svc.DeleteReceipt, opts...),
		ReceiptServiceListReceiptsProcedure:          connect.NewUnaryHandler(ReceiptServiceListReceiptsProcedure, svc.ListReceipts, opts...),
		ReceiptServiceSearchReceiptsProcedure:        connect.NewUnaryHandler(ReceiptServiceSearchReceiptsProcedure, svc.SearchReceipts, opts...),
	}
	return "/" + ReceiptServiceName + "/", route(handlers)
}

// ReceiptServiceClient is a client for the ReceiptService.
type ReceiptServiceClient interface {
	CalculateTotals(context.Context, *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error)
	NextReceiptNumber(context.Context, *connect.Request[api.NextReceiptNumberRequest]) (*connect.Response[api.NextReceiptNumberResponse], error)
	ValidateReceiptNumber(context.Context, *connect.Request[api.ValidateReceiptNumberRequest]) (*connect.Response[api.ValidateReceiptNumberResponse], error)
	CreateReceipt(context.Context, *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error)
	DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error)
	SearchReceipts(context.Context, *connect.Request[api.SearchReceiptsRequest]) (*connect.Response[api.SearchReceiptsResponse], error)
}

// NewReceiptServiceClient constructs a client for the ReceiptService served at baseURL.
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReceiptServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &receiptServiceClient{
		calculateTotals:       connect.NewClient[api.CalculateTotalsRequest, api.CalculateTotalsResponse](httpClient, baseURL+ReceiptServiceCalculateTotalsProcedure, opts...),
		nextReceiptNumber:     connect.NewClient[api.NextReceiptNumberRequest, api.NextReceiptNumberResponse](httpClient, baseURL+ReceiptServiceNextReceiptNumberProcedure, opts...),
		validateReceiptNumber: connect.NewClient[api.ValidateReceiptNumberRequest, api.ValidateReceiptNumberResponse](httpClient, baseURL+ReceiptServiceValidateReceiptNumberProcedure, opts...),
		createReceipt:         connect.NewClient[api.CreateReceiptRequest, api.CreateReceiptResponse](httpClient, baseURL+ReceiptServiceCreateReceiptProcedure, opts...),
		getReceipt:            connect.NewClient[api.GetReceiptRequest, api.GetReceiptResponse](httpClient, baseURL+ReceiptServiceGetReceiptProcedure, opts...),
		updateReceipt:         connect.NewClient[api.UpdateReceiptRequest, api.UpdateReceiptResponse](httpClient, baseURL+ReceiptServiceUpdateReceiptProcedure, opts...),
		deleteReceipt:         connect.NewClient[api.DeleteReceiptRequest, api.DeleteReceiptResponse](httpClient, baseURL+ReceiptServiceDeleteReceiptProcedure, opts...),
		listReceipts:          connect.NewClient[api.ListReceiptsRequest, api.ListReceiptsResponse](httpClient, baseURL+ReceiptServiceListReceiptsProcedure, opts...),
		searchReceipts:        connect.NewClient[api.SearchReceiptsRequest, api.SearchReceiptsResponse](httpClient, baseURL+ReceiptServiceSearchReceiptsProcedure, opts...),
	}
}

type receiptServiceClient struct {
	calculateTotals       *connect.Client[api.CalculateTotalsRequest, api.CalculateTotalsResponse]
	nextReceiptNumber     *connect.Client[api.NextReceiptNumberRequest, api.NextReceiptNumberResponse]
	validateReceiptNumber *connect.Client[api.ValidateReceiptNumberRequest, api.ValidateReceiptNumberResponse]
	createReceipt         *connect.Client[api.CreateReceiptRequest, api.CreateReceiptResponse]
	getReceipt            *connect.Client[api.GetReceiptRequest, api.GetReceiptResponse]
	updateReceipt         *connect.Client[api.UpdateReceiptRequest, api.UpdateReceiptResponse]
	deleteReceipt         *connect.Client[api.DeleteReceiptRequest, api.DeleteReceiptResponse]
	listReceipts          *connect.Client[api.ListReceiptsRequest, api.ListReceiptsResponse]
	searchReceipts        *connect.Client[api.SearchReceiptsRequest, api.SearchReceiptsResponse]
}

func (c *receiptServiceClient) CalculateTotals(ctx context.Context, req *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error) {
	return c.calculateTotals.CallUnary(ctx, req)
}

func (c *receiptServiceClient) NextReceiptNumber(ctx context.Context, req *connect.Request[api.NextReceiptNumberRequest]) (*connect.Response[api.NextReceiptNumberResponse], error) {
	return c.nextReceiptNumber.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ValidateReceiptNumber(ctx context.Context, req *connect.Request[api.ValidateReceiptNumberRequest]) (*connect.Response[api.ValidateReceiptNumberResponse], error) {
	return c.validateReceiptNumber.CallUnary(ctx, req)
}

func (c *receiptServiceClient) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error) {
	return c.createReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	return c.getReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	return c.updateReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	return c.deleteReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	return c.listReceipts.CallUnary(ctx, req)
}

func (c *receiptServiceClient) SearchReceipts(ctx context.Context, req *connect.Request[api.SearchReceiptsRequest]) (*connect.Response[api.SearchReceiptsResponse], error) {
	return c.searchReceipts.CallUnary(ctx, req)
}
