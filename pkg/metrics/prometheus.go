// Package metrics provides Prometheus metrics for the squad formation service.
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

// Manager manages all Prometheus metrics for the squads service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Formation Metrics - What the engine produced and how
	formations        *prometheus.CounterVec
	formationLatency  *prometheus.HistogramVec
	formationFallback *prometheus.CounterVec
	repairReassigned  prometheus.Counter
	squadsCreated     prometheus.Counter

	// Pool Metrics - Current participant and squad state
	totalParticipants    prometheus.Gauge
	eligibleParticipants prometheus.Gauge
	totalSquads          prometheus.Gauge

	// Normalizer Metrics - Skill text cache effectiveness
	normalizerCacheHits   prometheus.Counter
	normalizerCacheMisses prometheus.Counter

	// Repository Metrics
	repositoryLatency *prometheus.HistogramVec

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
		namespace:        "squads",
		subsystem:        "service",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// name applies the configured metric prefix.
func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     m.histogramBuckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	// Formation Metrics
	m.formations = auto.NewCounterVec(
		m.counterOpts("formations_total", "Total number of formation runs by type and outcome"),
		[]string{"type", "outcome"},
	)
	m.formationLatency = auto.NewHistogramVec(
		m.histogramOpts("formation_latency_milliseconds", "Formation run latency in milliseconds"),
		[]string{"type"},
	)
	m.formationFallback = auto.NewCounterVec(
		m.counterOpts("formation_fallbacks_total", "Total number of runs that fell back to a random partition, by failing state"),
		[]string{"reason"},
	)
	m.repairReassigned = auto.NewCounter(
		m.counterOpts("repair_reassigned_total", "Total number of participants reassigned by partition repair"),
	)
	m.squadsCreated = auto.NewCounter(
		m.counterOpts("squads_created_total", "Total number of squads persisted"),
	)

	// Pool Metrics
	m.totalParticipants = auto.NewGauge(
		m.gaugeOpts("participants", "Number of registered participants"),
	)
	m.eligibleParticipants = auto.NewGauge(
		m.gaugeOpts("eligible_participants", "Number of present participants not yet in a squad"),
	)
	m.totalSquads = auto.NewGauge(
		m.gaugeOpts("squads", "Number of persisted squads"),
	)

	// Normalizer Metrics
	m.normalizerCacheHits = auto.NewCounter(
		m.counterOpts("normalizer_cache_hits_total", "Skill normalizer cache hits"),
	)
	m.normalizerCacheMisses = auto.NewCounter(
		m.counterOpts("normalizer_cache_misses_total", "Skill normalizer cache misses"),
	)

	// Repository Metrics
	m.repositoryLatency = auto.NewHistogramVec(
		m.histogramOpts("repository_operation_latency_milliseconds", "Repository operation latency in milliseconds"),
		[]string{"operation"},
	)

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	// Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by HTTP endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "Current heap memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Current number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_milliseconds", "GC pause time in milliseconds"),
	)
}

// Enabled reports whether recording is on.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval returns how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RecordFormation counts a formation run.
func (m *Manager) RecordFormation(formationType, outcome string) {
	if m.enabled {
		m.formations.WithLabelValues(formationType, outcome).Inc()
	}
}

// RecordFormationLatency observes a run's latency in milliseconds.
func (m *Manager) RecordFormationLatency(formationType string, latencyMs float64) {
	if m.enabled {
		m.formationLatency.WithLabelValues(formationType).Observe(latencyMs)
	}
}

// RecordFormationFallback counts a random fallback, labeled by the failing state.
func (m *Manager) RecordFormationFallback(reason string) {
	if m.enabled {
		m.formationFallback.WithLabelValues(reason).Inc()
	}
}

// RecordRepairReassigned adds n reassigned participants.
func (m *Manager) RecordRepairReassigned(n int) {
	if m.enabled && n > 0 {
		m.repairReassigned.Add(float64(n))
	}
}

// RecordSquadsCreated adds n persisted squads.
func (m *Manager) RecordSquadsCreated(n int) {
	if m.enabled && n > 0 {
		m.squadsCreated.Add(float64(n))
	}
}

// The package-level helpers below record on the global manager.

// RecordFormation counts a formation run by type and outcome.
func RecordFormation(formationType, outcome string) {
	globalManager.RecordFormation(formationType, outcome)
}

// RecordFormationLatency records formation latency in milliseconds.
func RecordFormationLatency(formationType string, latencyMs float64) {
	globalManager.RecordFormationLatency(formationType, latencyMs)
}

// RecordFormationFallback counts a random fallback.
func RecordFormationFallback(reason string) {
	globalManager.RecordFormationFallback(reason)
}

// RecordRepairReassigned adds n participants reassigned by repair.
func RecordRepairReassigned(n int) {
	globalManager.RecordRepairReassigned(n)
}

// RecordSquadsCreated adds n persisted squads.
func RecordSquadsCreated(n int) {
	globalManager.RecordSquadsCreated(n)
}

// UpdateTotalParticipants updates the registered participants gauge.
func UpdateTotalParticipants(count int) {
	globalManager.totalParticipants.Set(float64(count))
}

// UpdateEligibleParticipants updates the eligible participants gauge.
func UpdateEligibleParticipants(count int) {
	globalManager.eligibleParticipants.Set(float64(count))
}

// UpdateTotalSquads updates the persisted squads gauge.
func UpdateTotalSquads(count int) {
	globalManager.totalSquads.Set(float64(count))
}

// RecordNormalizerCacheHit counts a normalizer cache hit.
func RecordNormalizerCacheHit() {
	globalManager.normalizerCacheHits.Inc()
}

// RecordNormalizerCacheMiss counts a normalizer cache miss.
func RecordNormalizerCacheMiss() {
	globalManager.normalizerCacheMisses.Inc()
}

// RecordRepositoryLatency records a repository operation latency in milliseconds.
func RecordRepositoryLatency(operation string, latencyMs float64) {
	globalManager.repositoryLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage updates the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval returns the global manager's gauge refresh interval.
func RefreshInterval() time.Duration {
	return globalManager.RefreshInterval()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
