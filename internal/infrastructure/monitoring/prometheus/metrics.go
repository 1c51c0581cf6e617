package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric family the service emits.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Scoring operations
	OperationsTotal   CounterVec
	OperationDuration HistogramVec
	FallbacksTotal    CounterVec

	// External ML service
	MLRequestsTotal   CounterVec
	MLRequestDuration HistogramVec
	MLBreakerState    GaugeVec

	// Cache coordinator
	CacheRequestsTotal  CounterVec
	CacheHitsTotal      CounterVec
	CacheCoalescedTotal CounterVec
	CacheEvictionsTotal CounterVec
	CacheStoreErrors    CounterVec

	// Event publishing
	EventsPublishedTotal CounterVec

	// Brief standardization
	BriefQualityScore HistogramVec
	BriefComplexity   HistogramVec
}

var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultMLDurationBuckets   = []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30}
	DefaultScoreBuckets        = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	DefaultComplexityBuckets   = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
)

// NewAppMetrics registers all metric families on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method")

	m.OperationsTotal = collector.RegisterCounter("operations_total", "Scoring operations by source of the result", "operation", "source")
	m.OperationDuration = collector.RegisterHistogram("operation_duration_seconds", "Scoring operation latency including cache", DefaultHTTPDurationBuckets, "operation")
	m.FallbacksTotal = collector.RegisterCounter("fallbacks_total", "Operations answered by local heuristics", "operation", "reason")

	m.MLRequestsTotal = collector.RegisterCounter("ml_requests_total", "Calls to the external ML service", "endpoint", "outcome")
	m.MLRequestDuration = collector.RegisterHistogram("ml_request_duration_seconds", "External ML call latency", DefaultMLDurationBuckets, "endpoint")
	m.MLBreakerState = collector.RegisterGauge("ml_breaker_open", "1 while the ML circuit breaker is open", "client")

	m.CacheRequestsTotal = collector.RegisterCounter("cache_requests_total", "Cache coordinator lookups", "prefix")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache coordinator hits", "prefix", "tier")
	m.CacheCoalescedTotal = collector.RegisterCounter("cache_coalesced_total", "Callers that joined an in-flight computation", "prefix")
	m.CacheEvictionsTotal = collector.RegisterCounter("cache_evictions_total", "Entries removed by the sweep")
	m.CacheStoreErrors = collector.RegisterCounter("cache_store_errors_total", "Shared store failures", "op")

	m.EventsPublishedTotal = collector.RegisterCounter("events_published_total", "Events handed to the publisher", "type", "status")

	m.BriefQualityScore = collector.RegisterHistogram("brief_quality_score", "Overall quality of standardized briefs", DefaultScoreBuckets, "category")
	m.BriefComplexity = collector.RegisterHistogram("brief_complexity_score", "Technical complexity of standardized briefs", DefaultComplexityBuckets, "category")

	return m
}

// NewNoopAppMetrics returns metrics that discard every update.
func NewNoopAppMetrics() *AppMetrics {
	return NewAppMetrics(NewNoopCollector())
}

// RecordHTTPRequest records a finished HTTP request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordOperation records a scoring operation. source is "ml", "fallback" or
// "default".
func (m *AppMetrics) RecordOperation(operation, source string, d time.Duration) {
	m.OperationsTotal.WithLabelValues(operation, source).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordFallback records a degraded answer and the reason the ML path failed.
func (m *AppMetrics) RecordFallback(operation, reason string) {
	m.FallbacksTotal.WithLabelValues(operation, reason).Inc()
}

// RecordMLCall records one call to the external ML service.
func (m *AppMetrics) RecordMLCall(endpoint, outcome string, d time.Duration) {
	m.MLRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.MLRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// SetBreakerOpen mirrors the breaker state.
func (m *AppMetrics) SetBreakerOpen(client string, open bool) {
	v := 0.0
	if open {
		v = 1
	}
	m.MLBreakerState.WithLabelValues(client).Set(v)
}

// RecordBrief records the quality and complexity of a standardized brief.
func (m *AppMetrics) RecordBrief(category string, quality, complexity float64) {
	m.BriefQualityScore.WithLabelValues(category).Observe(quality)
	m.BriefComplexity.WithLabelValues(category).Observe(complexity)
}

// ObserveCall records one ML call; it lets AppMetrics serve as the ML
// client's call observer.
func (m *AppMetrics) ObserveCall(endpoint, outcome string, d time.Duration) {
	m.RecordMLCall(endpoint, outcome, d)
}

// CacheLookup records a coordinator lookup. tier is "memory", "store" or
// "miss".
func (m *AppMetrics) CacheLookup(prefix, tier string) {
	m.CacheRequestsTotal.WithLabelValues(prefix).Inc()
	if tier != "miss" {
		m.CacheHitsTotal.WithLabelValues(prefix, tier).Inc()
	}
}

func (m *AppMetrics) CacheCoalesced(prefix string) {
	m.CacheCoalescedTotal.WithLabelValues(prefix).Inc()
}

func (m *AppMetrics) CacheEvicted(n int) {
	m.CacheEvictionsTotal.WithLabelValues().Add(float64(n))
}

func (m *AppMetrics) CacheStoreError(op string) {
	m.CacheStoreErrors.WithLabelValues(op).Inc()
}

// RecordEvent records a publish attempt.
func (m *AppMetrics) RecordEvent(eventType string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EventsPublishedTotal.WithLabelValues(eventType, status).Inc()
}

//Personal.AI order the ending
