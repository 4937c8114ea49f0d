// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package api exposes the gateway over HTTP using the chi router.

# Route Groups

  - /health and /metrics: liveness and Prometheus exposition, unthrottled
  - /api/vod, /api/live/{login}/master.m3u8, /api/stream: HLS playlists
  - /api/trends, /api/live, /api/search: discovery backed by the catalog
  - /api/user: channel profile, videos and live state
  - /api/history, /api/watchlist, /api/subs, /api/settings: the persisted library

# Middleware

Every request passes through request ID assignment, real IP extraction,
access logging, panic recovery and CORS. The /api group adds a per-client
rate limit, Prometheus request metrics and gzip for JSON bodies.

# Errors

Failures are returned as {"error": "<message>"}. The status follows the
error kind from internal/apperr:

	apperr.ErrValidation -> 400
	apperr.ErrNotFound   -> 404
	anything else        -> 500

Only the apperr message reaches the client; the wrapped cause is logged.

# Dependencies

Handler depends on four small interfaces (Catalog, Playlists, Feed,
Library) rather than concrete services, so tests substitute fakes.
*/
package api
