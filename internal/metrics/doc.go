// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry at package init via
promauto and are exposed at /metrics:

	curl http://localhost:23455/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by httprate (counter)

Upstream Metrics:
  - upstream_request_duration_seconds: GraphQL, usher and CDN call latency
    Labels: target
  - upstream_errors_total: Failed upstream calls
    Labels: target, error_type

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_entries
    Labels: cache_type

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total
    Labels: name, result
  - circuit_breaker_consecutive_failures
  - circuit_breaker_state_transitions_total

Gateway Metrics:
  - variant_proxy_registrations_total, variant_proxy_rejections_total
  - manifests_generated_total, manifest_errors_total
    Labels: kind
  - vod_qualities_probed: Renditions found per VOD master build
  - recommend_duration_seconds, recommend_candidates,
    recommend_source_errors_total

Store Metrics:
  - store_operation_duration_seconds, store_errors_total
    Labels: operation, collection
  - store_value_log_gc_runs_total

# Error Labels

ErrorType folds any error into one of none, validation, not_found, upstream
or other so that label cardinality stays bounded.
*/
package metrics
