// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/nosubvod/internal/clock"
	"github.com/tomtom215/nosubvod/internal/metrics"
)

// Entry is a cached value with its absolute expiry instant.
type Entry[V any] struct {
	Value     V
	ExpiresAt time.Time
}

// Cache is a thread-safe map with per-entry TTL.
//
// There is no background eviction. An expired entry is reported as a miss and
// stays in memory until the key is written again or Purge is called.
type Cache[V any] struct {
	name    string
	clock   clock.Clock
	mu      sync.RWMutex
	entries map[string]Entry[V]

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	TotalKeys int64
}

// New creates an empty cache. The name labels its Prometheus counters; a nil
// clock means the system clock.
//
// Example:
//
//	registry := cache.New[string]("variant_proxy", nil)
//	registry.Set(token, url, 300*time.Second)
//	if url, ok := registry.Get(token); ok {
//	    // serve url
//	}
func New[V any](name string, clk clock.Clock) *Cache[V] {
	if clk == nil {
		clk = clock.System{}
	}
	return &Cache[V]{
		name:    name,
		clock:   clk,
		entries: make(map[string]Entry[V]),
	}
}

// Get returns the value for key if it has not yet expired. Absent and
// expired keys are indistinguishable.
//
// Thread Safety: read lock only; concurrent Gets never block each other.
func (c *Cache[V]) Get(key string) (V, bool) {
	now := c.clock.Now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !now.Before(entry.ExpiresAt) {
		c.misses.Add(1)
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		var zero V
		return zero, false
	}

	c.hits.Add(1)
	metrics.CacheHits.WithLabelValues(c.name).Inc()
	return entry.Value, true
}

// Set stores value under key for ttl, replacing any previous entry.
// A ttl of zero or less stores an entry that is already expired.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	expires := c.clock.Now().Add(ttl)

	c.mu.Lock()
	c.entries[key] = Entry[V]{Value: value, ExpiresAt: expires}
	c.mu.Unlock()

	c.sets.Add(1)
}

// Delete removes key. Missing keys are ignored.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every expired entry and returns how many were removed.
// Nothing calls it on a timer; it exists for callers that want to bound memory.
func (c *Cache[V]) Purge() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of hit, miss and write counters.
func (c *Cache[V]) GetStats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Sets:      c.sets.Load(),
		TotalKeys: int64(c.Len()),
	}
}

// HitRate returns hits / (hits + misses) as a percentage.
func (c *Cache[V]) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}
