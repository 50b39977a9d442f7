// Package metrics provides Prometheus metrics for the vgsales explorer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the vgsales service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Dataset Metrics - populated once at startup
	datasetRows         prometheus.Gauge
	datasetRecords      prometheus.Gauge
	datasetLoadDuration prometheus.Histogram
	viewEntries         *prometheus.GaugeVec

	// Pipeline Metrics - one recomputation per filter change
	recomputations   *prometheus.CounterVec
	recomputeLatency prometheus.Histogram
	emptyResults     *prometheus.CounterVec
	stateChanges     *prometheus.CounterVec
	chartRenders     *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vgsales",
		subsystem:        "explorer",
		histogramBuckets: prometheus.DefBuckets,
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
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGauge(m.gaugeOpts("dataset_rows", "Number of title rows in the loaded dataset"))
	m.datasetRecords = auto.NewGauge(m.gaugeOpts("dataset_records", "Number of per-region sale records in the loaded dataset"))
	m.datasetLoadDuration = auto.NewHistogram(m.histogramOpts("dataset_load_duration_milliseconds", "Time spent loading the dataset"))
	m.viewEntries = auto.NewGaugeVec(m.gaugeOpts("view_entries", "Number of grouped entries per view"), []string{"entity"})

	m.recomputations = auto.NewCounterVec(m.counterOpts("recomputations_total", "Bundles computed by active tab"), []string{"tab"})
	m.recomputeLatency = auto.NewHistogram(m.histogramOpts("recompute_latency_milliseconds", "Latency of a full bundle recomputation"))
	m.emptyResults = auto.NewCounterVec(m.counterOpts("empty_results_total", "Rankings that matched no records"), []string{"entity"})
	m.stateChanges = auto.NewCounterVec(m.counterOpts("state_changes_total", "Filter state changes by field"), []string{"field"})
	m.chartRenders = auto.NewCounterVec(m.counterOpts("chart_renders_total", "Chart documents rendered by entity"), []string{"entity"})

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds", "Average GC pause time in milliseconds"))
}

// Dataset Metrics Functions.

// UpdateDatasetRows sets the number of title rows loaded.
func UpdateDatasetRows(count int) {
	globalManager.datasetRows.Set(float64(count))
}

// UpdateDatasetRecords sets the number of per-region records loaded.
func UpdateDatasetRecords(count int) {
	globalManager.datasetRecords.Set(float64(count))
}

// RecordDatasetLoadDuration records how long the dataset load took.
func RecordDatasetLoadDuration(durationMs float64) {
	globalManager.datasetLoadDuration.Observe(durationMs)
}

// UpdateViewEntries sets the number of grouped entries of a view.
func UpdateViewEntries(entity string, count int) {
	globalManager.viewEntries.WithLabelValues(entity).Set(float64(count))
}

// Pipeline Metrics Functions.

// RecordRecomputation counts one bundle computation for the given tab.
func RecordRecomputation(tab string) {
	globalManager.recomputations.WithLabelValues(tab).Inc()
}

// RecordRecomputeLatency records a recomputation latency in milliseconds.
func RecordRecomputeLatency(latencyMs float64) {
	globalManager.recomputeLatency.Observe(latencyMs)
}

// RecordEmptyResult counts a ranking for entity that matched nothing.
func RecordEmptyResult(entity string) {
	globalManager.emptyResults.WithLabelValues(entity).Inc()
}

// RecordStateChange counts a change of one filter field.
func RecordStateChange(field string) {
	globalManager.stateChanges.WithLabelValues(field).Inc()
}

// RecordChartRender counts a chart document rendered for entity.
func RecordChartRender(entity string) {
	globalManager.chartRenders.WithLabelValues(entity).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
