// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package middleware provides the gateway's own HTTP middleware. All
components have chi's func(http.Handler) http.Handler shape.

Key Components:

  - RequestID: X-Request-ID propagation into chi and logging contexts
  - PrometheusMetrics: request counters, latency histograms, in-flight gauge
  - AccessLog: one structured log line per request

Middleware Stack:

The router applies, in order:

	r.Use(middleware.RequestID)          // IDs first so every later log line has them
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(...))
	r.Use(middleware.PrometheusMetrics)  // per /api route group

Metric Labels:

PrometheusMetrics labels by chi route pattern, so /api/vod/123/chat and
/api/vod/456/chat share the series endpoint="/api/vod/{id}/chat". Requests
that match no route are labeled "unmatched".
*/
package middleware
