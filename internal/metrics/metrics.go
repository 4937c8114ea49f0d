// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/nosubvod/internal/apperr"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Upstream GraphQL / CDN Metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream GraphQL and CDN calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"target"}, // "gql", "usher", "cdn"
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_errors_total",
			Help: "Total number of failed upstream calls",
		},
		[]string{"target", "error_type"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "catalog", "variant_proxy", "recommend"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Variant Proxy Metrics
	ProxyRegistrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "variant_proxy_registrations_total",
			Help: "Total number of upstream URLs admitted to the proxy allowlist",
		},
	)

	ProxyRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "variant_proxy_rejections_total",
			Help: "Total number of proxy registrations or lookups refused",
		},
		[]string{"stage", "reason"}, // stage: "register", "resolve"
	)

	// Manifest Metrics
	ManifestsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "manifests_generated_total",
			Help: "Total number of playlists served",
		},
		[]string{"kind"}, // "vod_master", "live_master", "variant"
	)

	ManifestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "manifest_errors_total",
			Help: "Total number of playlist generation failures",
		},
		[]string{"kind", "error_type"},
	)

	VODQualitiesProbed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vod_qualities_probed",
			Help:    "Number of renditions that answered the existence probe",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6},
		},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent computing a recommendation feed",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Candidate pool size before ranking",
			Buckets: []float64{0, 10, 25, 50, 100, 200, 400},
		},
	)

	RecommendSourceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_source_errors_total",
			Help: "Candidate source fetches that failed and were skipped",
		},
		[]string{"source"}, // "subscription"
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of persistent store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Total number of persistent store errors",
		},
		[]string{"operation", "collection"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_value_log_gc_runs_total",
			Help: "Badger value log GC passes",
		},
		[]string{"result"}, // "rewritten", "noop", "error"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstream records the outcome of one upstream call.
func RecordUpstream(target string, duration time.Duration, err error) {
	UpstreamRequestDuration.WithLabelValues(target).Observe(duration.Seconds())
	if err != nil {
		UpstreamErrors.WithLabelValues(target, ErrorType(err)).Inc()
	}
}

// RecordManifest records a served playlist or a failure to build one.
func RecordManifest(kind string, err error) {
	if err != nil {
		ManifestErrors.WithLabelValues(kind, ErrorType(err)).Inc()
		return
	}
	ManifestsGenerated.WithLabelValues(kind).Inc()
}

// RecordStoreOperation records a persistent store operation
func RecordStoreOperation(operation, collection string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation, collection).Inc()
	}
}

// ErrorType maps an error onto a bounded label value.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, apperr.ErrValidation):
		return "validation"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrUpstream):
		return "upstream"
	default:
		return "other"
	}
}
