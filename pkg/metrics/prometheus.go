// Package metrics provides Prometheus metrics for the codearena client.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Latency buckets in milliseconds. Lint runs are sub-millisecond, backend calls
// can take seconds while code is graded.
var defaultBuckets = []float64{0.1, 0.5, 1, 5, 10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

// Manager manages all Prometheus metrics for the client.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Backend API
	apiRequests        *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiErrors          *prometheus.CounterVec

	// Editor linting
	lintRuns        prometheus.Counter
	lintLatency     prometheus.Histogram
	lintAnnotations *prometheus.CounterVec

	// User-visible outcomes
	runOutcomes     *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	problemsLoaded  prometheus.Gauge
	alertsShown     prometheus.Counter
	catalogFallback prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "codearena",
		subsystem:        "client",
		histogramBuckets: defaultBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.apiRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "api_requests_total",
		Help:        "Backend API requests by endpoint, method and status code",
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.apiRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "api_request_duration_milliseconds",
		Help:        "Backend API round trip in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.apiErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "api_errors_total",
		Help:        "Backend API failures by endpoint and kind (transport, status, decode)",
		ConstLabels: constLabels,
	}, []string{"endpoint", "kind"})

	m.lintRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lint_runs_total",
		Help:        "Full-buffer lint passes",
		ConstLabels: constLabels,
	})

	m.lintLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lint_duration_milliseconds",
		Help:        "Time spent in one lint pass in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.lintAnnotations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lint_annotations_total",
		Help:        "Lint annotations produced by severity",
		ConstLabels: constLabels,
	}, []string{"severity"})

	m.runOutcomes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Public-test runs by outcome (passed, partial, failed, error)",
		ConstLabels: constLabels,
	}, []string{"outcome"})

	m.submissions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "submissions_total",
		Help:        "Graded submissions by replay result",
		ConstLabels: constLabels,
	}, []string{"replay_result"})

	m.problemsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "problems_loaded",
		Help:        "Number of problems in the last loaded list",
		ConstLabels: constLabels,
	})

	m.alertsShown = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "alerts_total",
		Help:        "Error alerts shown to the user",
		ConstLabels: constLabels,
	})

	m.catalogFallback = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "catalog_fallback_total",
		Help:        "Problem details served from the static catalog after a failed fetch",
		ConstLabels: constLabels,
	})
}

// RecordAPIRequest records one completed backend request.
func RecordAPIRequest(endpoint, method, statusCode string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.apiRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	globalManager.apiRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(latencyMs)
}

// RecordAPIError records a failed backend call.
func RecordAPIError(endpoint, kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.apiErrors.WithLabelValues(endpoint, kind).Inc()
}

// RecordLintRun records one lint pass.
func RecordLintRun(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.lintRuns.Inc()
	globalManager.lintLatency.Observe(latencyMs)
}

// RecordLintAnnotation counts one annotation of the given severity.
func RecordLintAnnotation(severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.lintAnnotations.WithLabelValues(severity).Inc()
}

// RecordRunOutcome counts a public-test run.
func RecordRunOutcome(outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.runOutcomes.WithLabelValues(outcome).Inc()
}

// RecordSubmission counts a graded submission.
func RecordSubmission(replayResult string) {
	if !globalManager.enabled {
		return
	}
	globalManager.submissions.WithLabelValues(replayResult).Inc()
}

// UpdateProblemsLoaded sets the size of the loaded problem list.
func UpdateProblemsLoaded(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.problemsLoaded.Set(float64(count))
}

// RecordAlert counts an error alert.
func RecordAlert() {
	if !globalManager.enabled {
		return
	}
	globalManager.alertsShown.Inc()
}

// RecordCatalogFallback counts a detail served from the static catalog.
func RecordCatalogFallback() {
	if !globalManager.enabled {
		return
	}
	globalManager.catalogFallback.Inc()
}

// Handler serves the custom registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}
