// Package metrics provides Prometheus metrics for the xpdash service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeExpired  = "expired"
	OutcomeFallback = "fallback"
)

// Manager manages all Prometheus metrics for the xpdash service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Upstream Metrics - GraphQL and sign-in calls
	upstreamQueries   *prometheus.CounterVec
	upstreamLatency   *prometheus.HistogramVec
	queryFallbacks    *prometheus.CounterVec
	skillQueryShapes  *prometheus.CounterVec
	loginAttempts     *prometheus.CounterVec
	sessionsExpired   prometheus.Counter
	upstreamRecords   *prometheus.HistogramVec
	upstreamBytesRead prometheus.Counter

	// Dashboard Metrics - Engine runs and chart output
	dashboardBuilds        *prometheus.CounterVec
	dashboardBuildDuration prometheus.Histogram
	chartRenders           *prometheus.CounterVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "xpdash",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// RefreshInterval is how often callers should sample system gauges.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Upstream Metrics - One series per named GraphQL query
	m.upstreamQueries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "upstream_queries_total",
			Help:      "Total number of upstream GraphQL queries by query name and outcome",
		},
		[]string{"query", "outcome"},
	)

	m.upstreamLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "upstream_query_latency_milliseconds",
			Help:      "Upstream GraphQL query latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"query"},
	)

	m.queryFallbacks = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "query_fallbacks_total",
			Help:      "Optional queries that failed and were replaced by their default value",
		},
		[]string{"query"},
	)

	m.skillQueryShapes = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "skill_query_shape_total",
			Help:      "Skill query shape accepted by the server",
		},
		[]string{"shape"},
	)

	m.loginAttempts = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "login_attempts_total",
			Help:      "Sign-in attempts by outcome",
		},
		[]string{"outcome"},
	)

	m.sessionsExpired = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sessions_expired_total",
		Help:      "Requests rejected because the session token expired",
	})

	m.upstreamRecords = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "upstream_records",
			Help:      "Records returned per upstream query",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		},
		[]string{"query"},
	)

	m.upstreamBytesRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "upstream_bytes_read_total",
		Help:      "Response bytes read from the upstream API",
	})

	// Dashboard Metrics - Engine runs
	m.dashboardBuilds = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "dashboard_builds_total",
			Help:      "Dashboard builds by outcome",
		},
		[]string{"outcome"},
	)

	m.dashboardBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "dashboard_build_duration_milliseconds",
		Help:      "End-to-end dashboard build duration in milliseconds, fetch included",
		Buckets:   m.histogramBuckets,
	})

	m.chartRenders = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "chart_renders_total",
			Help:      "Charts rendered by chart name",
		},
		[]string{"chart"},
	)

	// Enhanced Error Metrics - Detailed error tracking
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "errors_by_component_total",
			Help:      "Total errors by component and type",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "errors_by_type_total",
			Help:      "Total errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "errors_by_endpoint_total",
			Help:      "Total errors by endpoint, method and type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of operations that ended in an error, in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

func on() bool { return globalManager != nil && globalManager.enabled }

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if on() {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if on() {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// Upstream Metrics Functions.

// RecordUpstreamQuery counts a GraphQL query and observes its latency.
func RecordUpstreamQuery(query, outcome string, latencyMs float64) {
	if on() {
		globalManager.upstreamQueries.WithLabelValues(query, outcome).Inc()
		globalManager.upstreamLatency.WithLabelValues(query).Observe(latencyMs)
	}
}

// RecordUpstreamRecords observes how many records a query returned.
func RecordUpstreamRecords(query string, count int) {
	if on() {
		globalManager.upstreamRecords.WithLabelValues(query).Observe(float64(count))
	}
}

// RecordUpstreamBytes adds to the upstream bytes counter.
func RecordUpstreamBytes(n int) {
	if on() && n > 0 {
		globalManager.upstreamBytesRead.Add(float64(n))
	}
}

// RecordQueryFallback counts an optional query replaced by its default.
func RecordQueryFallback(query string) {
	if on() {
		globalManager.queryFallbacks.WithLabelValues(query).Inc()
	}
}

// RecordSkillQueryShape counts which skill query shape the server accepted.
func RecordSkillQueryShape(shape string) {
	if on() {
		globalManager.skillQueryShapes.WithLabelValues(shape).Inc()
	}
}

// RecordLoginAttempt counts a sign-in attempt by outcome.
func RecordLoginAttempt(outcome string) {
	if on() {
		globalManager.loginAttempts.WithLabelValues(outcome).Inc()
	}
}

// RecordSessionExpired counts a request rejected for an expired token.
func RecordSessionExpired() {
	if on() {
		globalManager.sessionsExpired.Inc()
	}
}

// Dashboard Metrics Functions.

// RecordDashboardBuild counts a dashboard build and observes its duration.
func RecordDashboardBuild(outcome string, durationMs float64) {
	if on() {
		globalManager.dashboardBuilds.WithLabelValues(outcome).Inc()
		globalManager.dashboardBuildDuration.Observe(durationMs)
	}
}

// RecordChartRender counts a rendered chart.
func RecordChartRender(chart string) {
	if on() {
		globalManager.chartRenders.WithLabelValues(chart).Inc()
	}
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if on() {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if on() {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if on() {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if on() {
		globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
	}
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if on() {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if on() {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if on() {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// Global returns the process-wide manager.
func Global() *Manager { return globalManager }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
