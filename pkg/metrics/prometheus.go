// Package metrics provides Prometheus metrics for the status chart pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared by callers.
const (
	StrategyDirect  = "direct"
	StrategyBrowser = "browser"

	SeriesPrimary = "primary"
	SeriesOverlay = "overlay"

	ProducerBrowser = "browser"
	ProducerSynth   = "synth"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Acquisition
	fetchAttempts *prometheus.CounterVec
	seriesFetches *prometheus.CounterVec

	// Rendering
	chartsRendered *prometheus.CounterVec
	renderLatency  prometheus.Histogram

	// Pipeline
	pipelineRuns     *prometheus.CounterVec
	pipelineDuration prometheus.Histogram
	snapshots        *prometheus.CounterVec

	// Derived indicators of the last successful run
	onlineUsers prometheus.Gauge
	errorRate   prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
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
		namespace:        "vrcstatus",
		subsystem:        "pipeline",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 15000, 30000},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.fetchAttempts = auto.NewCounterVec(
		m.counterOpts("fetch_attempts_total", "Page acquisition attempts by strategy and result"),
		[]string{"strategy", "result"},
	)
	m.seriesFetches = auto.NewCounterVec(
		m.counterOpts("series_fetches_total", "Series payload fetches by kind and result"),
		[]string{"kind", "result"},
	)

	m.chartsRendered = auto.NewCounterVec(
		m.counterOpts("charts_rendered_total", "Charts stored by producer"),
		[]string{"producer"},
	)
	m.renderLatency = auto.NewHistogram(
		m.histogramOpts("render_duration_milliseconds", "Chart synthesis duration in milliseconds"),
	)

	m.pipelineRuns = auto.NewCounterVec(
		m.counterOpts("runs_total", "Pipeline invocations by outcome"),
		[]string{"outcome"},
	)
	m.pipelineDuration = auto.NewHistogram(
		m.histogramOpts("run_duration_milliseconds", "Pipeline invocation duration in milliseconds"),
	)
	m.snapshots = auto.NewCounterVec(
		m.counterOpts("snapshots_total", "Report image captures by result"),
		[]string{"result"},
	)

	m.onlineUsers = auto.NewGauge(
		m.gaugeOpts("online_users", "Latest online users sample of the last successful run"),
	)
	m.errorRate = auto.NewGauge(
		m.gaugeOpts("api_error_rate", "Latest API error rate sample of the last successful run"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}

// RecordFetchAttempt counts one acquisition attempt.
func RecordFetchAttempt(strategy string, ok bool) {
	globalManager.fetchAttempts.WithLabelValues(strategy, result(ok)).Inc()
}

// RecordSeriesFetch counts one series fetch.
func RecordSeriesFetch(kind string, ok bool) {
	globalManager.seriesFetches.WithLabelValues(kind, result(ok)).Inc()
}

// RecordChartRendered counts one stored chart.
func RecordChartRendered(producer string) {
	globalManager.chartsRendered.WithLabelValues(producer).Inc()
}

// RecordRenderLatency records chart synthesis latency in milliseconds.
func RecordRenderLatency(latencyMs float64) {
	globalManager.renderLatency.Observe(latencyMs)
}

// RecordPipelineRun counts one invocation and its duration.
func RecordPipelineRun(outcome string, durationMs float64) {
	globalManager.pipelineRuns.WithLabelValues(outcome).Inc()
	globalManager.pipelineDuration.Observe(durationMs)
}

// RecordSnapshot counts one report capture.
func RecordSnapshot(ok bool) {
	globalManager.snapshots.WithLabelValues(result(ok)).Inc()
}

// UpdateOnlineUsers sets the latest online users sample.
func UpdateOnlineUsers(v float64) {
	globalManager.onlineUsers.Set(v)
}

// UpdateErrorRate sets the latest API error rate sample.
func UpdateErrorRate(v float64) {
	globalManager.errorRate.Set(v)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
