package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	entityOpsTotal     *prometheus.CounterVec
	analysisTotal      *prometheus.CounterVec
	uploadRequests     *prometheus.CounterVec
	uploadRejected     *prometheus.CounterVec
	uploadLatency      prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eunoia_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eunoia_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		entityOpsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eunoia_entity_operations_total",
			Help: "Total number of entity gateway operations.",
		}, []string{"entity", "operation", "outcome"})

		analysisTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eunoia_analysis_total",
			Help: "Background analysis runs by kind and outcome.",
		}, []string{"kind", "outcome"})

		uploadRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eunoia_upload_requests_total",
			Help: "Accepted uploads by detected type.",
		}, []string{"type"})

		uploadRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eunoia_upload_rejected_total",
			Help: "Rejected uploads by reason.",
		}, []string{"reason"})

		uploadLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eunoia_upload_duration_seconds",
			Help:    "Time spent validating and storing uploads.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			entityOpsTotal,
			analysisTotal,
			uploadRequests,
			uploadRejected,
			uploadLatency,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// EntityOps exposes the entity gateway operation counter.
func EntityOps() *prometheus.CounterVec {
	RegisterMetrics()
	return entityOpsTotal
}

// AnalysisRuns exposes the background analysis counter.
func AnalysisRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return analysisTotal
}

// UploadRequests exposes the accepted upload counter.
func UploadRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRequests
}

// UploadRejected exposes the rejected upload counter.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejected
}

// UploadLatency exposes the upload duration histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatency
}
