package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Scoutradioz
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Render Metrics
	RenderDuration   prometheus.HistogramVec
	RedirectDuration prometheus.HistogramVec

	// Sync Metrics
	SyncOperationDuration prometheus.HistogramVec
	SyncRecordsTotal      prometheus.CounterVec
	SyncFailuresTotal     prometheus.CounterVec

	// Upload Metrics
	UploadsTotal    prometheus.CounterVec
	UploadSizeBytes prometheus.Histogram
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoutradioz_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoutradioz_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scoutradioz_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Render Metrics
		RenderDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoutradioz_render_duration_seconds",
				Help:    "Time from request start to response render completion",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"endpoint"},
		),
		RedirectDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoutradioz_redirect_duration_seconds",
				Help:    "Time from request start to redirect completion",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"endpoint"},
		),

		// Sync Metrics
		SyncOperationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoutradioz_sync_operation_duration_seconds",
				Help:    "Sync operation execution time in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
		SyncRecordsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoutradioz_sync_records_total",
				Help: "Total records written to the local store by sync operation",
			},
			[]string{"operation"},
		),
		SyncFailuresTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoutradioz_sync_failures_total",
				Help: "Total failed sync operations by operation and failure kind",
			},
			[]string{"operation", "kind"},
		),

		// Upload Metrics
		UploadsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoutradioz_uploads_total",
				Help: "Total pit image uploads by outcome",
			},
			[]string{"outcome"},
		),
		UploadSizeBytes: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scoutradioz_upload_size_bytes",
				Help:    "Pit image upload size distribution in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
	}
}
