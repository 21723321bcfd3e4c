package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the transporter
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Import Metrics
	RecordsImportedTotal *prometheus.CounterVec
	ImportDuration       *prometheus.HistogramVec

	// Auth Metrics
	AuthFailuresTotal *prometheus.CounterVec
}

// NewMetricsRegistry registers every metric with reg. Tests pass a fresh
// prometheus.NewRegistry(); the server passes prometheus.DefaultRegisterer.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transporter_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transporter_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "transporter_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),

		// Import Metrics
		RecordsImportedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transporter_records_imported_total",
				Help: "Import attempts by entity and outcome (created, existing, invalid, not_found, error)",
			},
			[]string{"entity", "outcome"},
		),
		ImportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transporter_import_duration_seconds",
				Help:    "Time spent mapping and persisting one record",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"entity"},
		),

		// Auth Metrics
		AuthFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transporter_auth_failures_total",
				Help: "Rejected requests by credential type",
			},
			[]string{"method"},
		),
	}
}

// ObserveImport records one import outcome.
func (m *MetricsRegistry) ObserveImport(entity, outcome string, elapsed time.Duration) {
	m.RecordsImportedTotal.WithLabelValues(entity, outcome).Inc()
	m.ImportDuration.WithLabelValues(entity).Observe(elapsed.Seconds())
}
