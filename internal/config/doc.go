// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package config provides centralized configuration management for NoSubVOD.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (CONFIG_PATH, ./config.yaml or /etc/nosubvod/config.yaml), then
environment variables. Only the variables listed below are read.

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 23455)
  - HTTP_TIMEOUT: Per-request read/write timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)

Upstream:
  - GQL_URL: GraphQL endpoint (default: https://gql.twitch.tv/gql)
  - GQL_CLIENT_ID: Client-Id header value
  - UPSTREAM_USER_AGENT: User-Agent header (default: Mozilla/5.0)
  - UPSTREAM_TIMEOUT: GraphQL and playlist fetch timeout (default: 15s)
  - PROBE_TIMEOUT: Rendition probe timeout (default: 5s)
  - UPSTREAM_RPS, UPSTREAM_BURST: GraphQL pacing (default: 20 rps, burst 40)
  - VARIANT_PROXY_TTL: Proxy token lifetime (default: 300s)

Store:
  - DATA_DIR: Badger directory and legacy history.json location (default: ./data)
  - STORE_IN_MEMORY: Keep everything in memory (default: false)
  - STORE_GC_INTERVAL: Value log GC period (default: 10m)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: Per-IP limit (default: 600 per 1m)
  - DISABLE_RATE_LIMIT: Turn per-IP limiting off

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

Recommendation feed:
  - RECOMMEND_FEED_SIZE: Items returned by /api/trends (default: 40)
  - RECOMMEND_CANDIDATE_CAP: Ranked pool size before diversification (default: 120)
  - RECOMMEND_CACHE_TTL: Feed cache lifetime (default: 900s)
  - RECOMMEND_WARM_INTERVAL: Background recompute period, 0 disables (default: 10m)
*/
package config
