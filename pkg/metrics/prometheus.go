// Package metrics provides Prometheus metrics for the eloedge injury service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the eloedge service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core Business Metrics - adjustment pipeline health
	adjustmentsComputed prometheus.Counter
	adjustmentMagnitude prometheus.Histogram
	fallbacksByReason   *prometheus.CounterVec

	// Cache Metrics - lookup outcomes and occupancy
	cacheLookups       *prometheus.CounterVec
	cacheEntries       prometheus.Gauge
	refreshShared      prometheus.Counter
	refreshFailures    prometheus.Counter
	snapshotSaveErrors prometheus.Counter

	// Feed Metrics - upstream fetch behavior
	feedFetches        prometheus.Counter
	feedFetchErrors    prometheus.Counter
	feedFetchLatency   prometheus.Histogram
	feedRecordsSkipped prometheus.Counter

	// Classifier Metrics
	unknownPlayers prometheus.Counter

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
		namespace:        "eloedge",
		subsystem:        "injury",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.adjustmentsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "adjustments_computed_total",
		Help:      "Total number of injury adjustments computed",
	})

	m.adjustmentMagnitude = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "adjustment_magnitude_elo",
		Help:      "Histogram of absolute injury adjustment magnitude in Elo points",
		Buckets:   []float64{5, 10, 20, 35, 50, 75, 100},
	})

	m.fallbacksByReason = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fallbacks_total",
			Help:      "Total number of baseline fallbacks by reason",
		},
		[]string{"reason"},
	)

	m.cacheLookups = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_lookups_total",
			Help:      "Total number of cache lookups by outcome (fresh, stale, miss)",
		},
		[]string{"outcome"},
	)

	m.cacheEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_entries",
		Help:      "Current number of team reports held in the cache",
	})

	m.refreshShared = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_shared_total",
		Help:      "Total number of refresh calls collapsed into an in-flight fetch",
	})

	m.refreshFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_failures_total",
		Help:      "Total number of cache refresh attempts that failed",
	})

	m.snapshotSaveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_save_errors_total",
		Help:      "Total number of snapshot persistence failures (non-fatal)",
	})

	m.feedFetches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_fetches_total",
		Help:      "Total number of upstream injury feed fetches attempted",
	})

	m.feedFetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_fetch_errors_total",
		Help:      "Total number of upstream injury feed fetch failures",
	})

	m.feedFetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_fetch_latency_milliseconds",
		Help:      "Histogram of upstream feed fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.feedRecordsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_records_skipped_total",
		Help:      "Total number of malformed feed entries skipped during normalization",
	})

	m.unknownPlayers = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unknown_players_total",
		Help:      "Total number of players classified by the default tier",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordAdjustmentComputed increments the adjustment counter and observes magnitude.
func RecordAdjustmentComputed(magnitude float64) {
	globalManager.adjustmentsComputed.Inc()
	if magnitude < 0 {
		magnitude = -magnitude
	}
	globalManager.adjustmentMagnitude.Observe(magnitude)
}

// RecordFallback counts a baseline fallback by reason.
func RecordFallback(reason string) {
	globalManager.fallbacksByReason.WithLabelValues(reason).Inc()
}

// RecordCacheLookup counts a cache lookup by outcome (fresh, stale, miss).
func RecordCacheLookup(outcome string) {
	globalManager.cacheLookups.WithLabelValues(outcome).Inc()
}

// UpdateCacheEntries sets the current cache occupancy.
func UpdateCacheEntries(count int) {
	globalManager.cacheEntries.Set(float64(count))
}

// RecordRefreshShared counts a refresh call that joined an in-flight fetch.
func RecordRefreshShared() {
	globalManager.refreshShared.Inc()
}

// RecordRefreshFailure counts a failed cache refresh attempt.
func RecordRefreshFailure() {
	globalManager.refreshFailures.Inc()
}

// RecordSnapshotSaveError counts a snapshot persistence failure.
func RecordSnapshotSaveError() {
	globalManager.snapshotSaveErrors.Inc()
}

// RecordFeedFetch counts an attempted upstream fetch.
func RecordFeedFetch() {
	globalManager.feedFetches.Inc()
}

// RecordFeedFetchError counts a failed upstream fetch.
func RecordFeedFetchError() {
	globalManager.feedFetchErrors.Inc()
}

// RecordFeedFetchLatency observes upstream fetch latency in milliseconds.
func RecordFeedFetchLatency(latencyMs float64) {
	globalManager.feedFetchLatency.Observe(latencyMs)
}

// RecordFeedRecordSkipped counts a malformed feed entry dropped during normalization.
func RecordFeedRecordSkipped() {
	globalManager.feedRecordsSkipped.Inc()
}

// RecordUnknownPlayer counts a player resolved to the default tier.
func RecordUnknownPlayer() {
	globalManager.unknownPlayers.Inc()
}

// RecordHTTPRequest counts an HTTP request by endpoint, method and status.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}
