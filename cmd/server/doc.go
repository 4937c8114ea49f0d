// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package main is the entry point for the NoSubVOD gateway.

NoSubVOD serves a personal Twitch-like front end: it builds HLS master
playlists for past broadcasts and live channels, relays variant playlists
through short-lived tokens, proxies catalog lookups to the platform's GraphQL
API, keeps watch history, a watchlist and local subscriptions, and ranks a
personalized trending feed.

# Application Architecture

	RootSupervisor ("nosubvod")
	├── DataSupervisor ("data-layer")
	│   └── Store GC (Badger value log, on-disk stores only)
	├── WorkerSupervisor ("worker-layer")
	│   └── Feed Warmer (optional, RECOMMEND_WARM_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional config.yaml, environment
 2. Logging: zerolog with JSON/console output modes
 3. Listener: the HTTP port is bound here; failure exits the process
 4. Caches: catalog payloads, variant proxy targets, computed feeds
 5. Upstream: GraphQL client behind a circuit breaker, CDN fetcher
 6. Services: proxy registry, manifest builder, catalog, recommendation engine
 7. Store: Badger, importing a legacy history.json once
 8. HTTP: chi router and middleware
 9. Supervisor Tree: Suture v4 process supervision

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
SHUTDOWN_TIMEOUT, then the store is closed.

# Example Usage

	export HTTP_PORT=23455
	export DATA_DIR=/var/lib/nosubvod
	./nosubvod
*/
package main
