package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptbook/pkg/api"
)

// ReportServiceName is the fully-qualified name of the ReportService.
const ReportServiceName = "receiptbook.v1.ReportService"

const (
	ReportServiceGenerateSalesReportProcedure = "/receiptbook.v1.ReportService/GenerateSalesReport"
)

// ReportServiceHandler is implemented by the sales report service.
type ReportServiceHandler interface {
	GenerateSalesReport(context.Context, *connect.Request[api.GenerateSalesReportRequest]) (*connect.Response[api.GenerateSalesReportResponse], error)
}

// NewReportServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		ReportServiceGenerateSalesReportProcedure: connect.NewUnaryHandler(ReportServiceGenerateSalesReportProcedure, svc.GenerateSalesReport, opts...),
	}
	return "/" + ReportServiceName + "/", route(handlers)
}

// ReportServiceClient is a client for the ReportService.
type ReportServiceClient interface {
	GenerateSalesReport(context.Context, *connect.Request[api.GenerateSalesReportRequest]) (*connect.Response[api.GenerateSalesReportResponse], error)
}

// NewReportServiceClient constructs a client for the ReportService served at baseURL.
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &reportServiceClient{
		generateSalesReport: connect.NewClient[api.GenerateSalesReportRequest, api.GenerateSalesReportResponse](httpClient, baseURL+ReportServiceGenerateSalesReportProcedure, opts...),
	}
}

type reportServiceClient struct {
	generateSalesReport *connect.Client[api.GenerateSalesReportRequest, api.GenerateSalesReportResponse]
}

func (c *reportServiceClient) GenerateSalesReport(ctx context.Context, req *connect.Request[api.GenerateSalesReportRequest]) (*connect.Response[api.GenerateSalesReportResponse], error) {
	return c.generateSalesReport.CallUnary(ctx, req)
}
