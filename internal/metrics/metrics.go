// Package metrics exposes Prometheus collectors for the receipt book.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "receiptbook"

// Metrics holds every collector on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests    *prometheus.CounterVec
	rpcDuration    *prometheus.HistogramVec
	receiptsSaved  *prometheus.CounterVec
	salesAmount    *prometheus.CounterVec
	rangeExhausted *prometheus.CounterVec
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "Total number of RPCs by procedure and result code",
			},
			[]string{"procedure", "code"},
		),
		rpcDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_duration_seconds",
				Help:      "RPC duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"procedure"},
		),
		receiptsSaved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "receipts_saved_total",
				Help:      "Total number of receipts saved by seller",
			},
			[]string{"seller"},
		),
		salesAmount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sales_amount_total",
				Help:      "Sum of saved receipt totals by seller",
			},
			[]string{"seller"},
		),
		rangeExhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "range_exhausted_total",
				Help:      "Number of times a seller had no receipt number left",
			},
			[]string{"seller"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.receiptsSaved,
		m.salesAmount,
		m.rangeExhausted,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RPC records one completed RPC.
func (m *Metrics) RPC(procedure, code string, duration time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(duration.Seconds())
}

// ReceiptSaved records a newly saved receipt.
func (m *Metrics) ReceiptSaved(seller string, amount float64) {
	if m == nil {
		return
	}
	m.receiptsSaved.WithLabelValues(seller).Inc()
	m.salesAmount.WithLabelValues(seller).Add(amount)
}

// RangeExhausted records a seller running out of receipt numbers.
func (m *Metrics) RangeExhausted(seller string) {
	if m == nil {
		return
	}
	m.rangeExhausted.WithLabelValues(seller).Inc()
}
