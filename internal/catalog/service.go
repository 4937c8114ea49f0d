// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package catalog

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/cache"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

// Service runs catalog queries.
type Service struct {
	gql   upstream.Querier
	cache cache.Cacher[[]byte]
}

// New creates a catalog over gql, caching payloads in c.
func New(gql upstream.Querier, c cache.Cacher[[]byte]) *Service {
	return &Service{gql: gql, cache: c}
}

func query[T any](ctx context.Context, s *Service, req upstream.Request) (*T, error) {
	return upstream.Query[T](context.WithoutCancel(ctx), s.gql, req)
}

// cached returns the value stored under key, or calls fetch and stores its
// result for ttl. Errors are not cached. A payload that no longer decodes is
// treated as a miss.
func cached[T any](ctx context.Context, s *Service, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if payload, ok := s.cache.Get(key); ok {
		var v T
		if err := json.Unmarshal(payload, &v); err == nil {
			return v, nil
		}
		logging.CtxDebug(ctx).Str("key", key).Msg("Discarding undecodable cache entry")
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	s.store(ctx, key, v, ttl)
	return v, nil
}

func (s *Service) store(ctx context.Context, key string, v any, ttl time.Duration) {
	payload, err := json.Marshal(v)
	if err != nil {
		logging.CtxWarn(ctx).Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}
	s.cache.Set(key, payload, ttl)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cursorKey is the cache key component for an optional cursor.
func cursorKey(after string) string {
	if after == "" {
		return "first"
	}
	return after
}

// withAfter adds the after variable when a cursor is given.
func withAfter(vars map[string]any, after string) map[string]any {
	if after != "" {
		vars["after"] = after
	}
	return vars
}
