package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the API client.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorsTotal     *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comparador_api_requests_total",
			Help: "Total requests issued to the price API.",
		},
		[]string{"endpoint"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "comparador_api_request_duration_seconds",
			Help:    "Price API request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comparador_api_errors_total",
			Help: "Total price API errors by endpoint and type.",
		},
		[]string{"endpoint", "error_type"},
	)

	registry.MustRegister(requests, requestDuration, errorsTotal)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requests,
		RequestDuration: requestDuration,
		ErrorsTotal:     errorsTotal,
	}
}

func (m *Metrics) IncRequest(endpoint string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) ObserveDuration(endpoint string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metrics) IncError(endpoint, errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(endpoint, errorType).Inc()
}

// Summary returns the request and error totals across all endpoints.
func (m *Metrics) Summary() (requests, errors float64) {
	if m == nil {
		return 0, 0
	}
	families, err := m.Registry.Gather()
	if err != nil {
		return 0, 0
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch family.GetName() {
			case "comparador_api_requests_total":
				requests += metric.GetCounter().GetValue()
			case "comparador_api_errors_total":
				errors += metric.GetCounter().GetValue()
			}
		}
	}
	return requests, errors
}
