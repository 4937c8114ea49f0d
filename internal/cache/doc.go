// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package cache provides the time-bounded key/value store that every other
component uses to avoid redundant upstream calls.

# Overview

  - Generic over the value type: Cache[[]byte] for upstream JSON payloads,
    Cache[string] for proxy targets
  - Per-entry TTL supplied on every Set
  - sync.RWMutex: many concurrent readers, one writer
  - Lazy expiry: stale entries read as misses and are overwritten on the next
    Set; no goroutine sweeps the map
  - Injectable clock.Clock so expiry can be tested deterministically
  - Hit and miss counters exported to Prometheus under the cache's name

# Usage Example

	c := cache.New[[]byte]("catalog", nil)
	if payload, ok := c.Get("user_" + login); ok {
	    return decode(payload)
	}
	payload := fetch()
	c.Set("user_"+login, payload, time.Hour)

# Lifecycle

Caches are created once in cmd/server and injected into the components that
need them. They live for the process lifetime.
*/
package cache
