// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package main

import (
	"fmt"

	"github.com/tomtom215/nosubvod/internal/api"
	"github.com/tomtom215/nosubvod/internal/cache"
	"github.com/tomtom215/nosubvod/internal/catalog"
	"github.com/tomtom215/nosubvod/internal/clock"
	"github.com/tomtom215/nosubvod/internal/config"
	"github.com/tomtom215/nosubvod/internal/ident"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/manifest"
	"github.com/tomtom215/nosubvod/internal/proxy"
	"github.com/tomtom215/nosubvod/internal/recommend"
	"github.com/tomtom215/nosubvod/internal/recommend/reranking"
	"github.com/tomtom215/nosubvod/internal/store"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

var (
	_ api.Catalog   = (*catalog.Service)(nil)
	_ api.Playlists = (*manifest.Service)(nil)
	_ api.Feed      = (*recommend.Engine)(nil)
	_ api.Library   = (*store.Store)(nil)
)

// components holds the stateless services shared by the HTTP handlers and
// background workers.
type components struct {
	catalog   *catalog.Service
	manifests *manifest.Service
	engine    *recommend.Engine
}

// buildComponents wires caches, the upstream clients and every service that
// sits on top of them.
func buildComponents(cfg *config.Config) (*components, error) {
	clk := clock.System{}
	ids := ident.Random{}

	catalogCache := cache.New[[]byte]("catalog", clk)
	variantCache := cache.New[string]("variant_proxy", clk)
	feedCache := cache.New[[]byte]("feed", clk)

	gql := upstream.NewBreakerClient(upstream.NewClient(&cfg.Upstream))
	fetcher := upstream.NewHTTPFetcher(&cfg.Upstream, "cdn")

	registry := proxy.New(variantCache, ids, cfg.Cache.VariantTTL)
	manifests := manifest.New(&cfg.Upstream, gql, fetcher, registry, ids, clk)
	cat := catalog.New(gql, catalogCache)

	engine, err := recommend.NewEngine(engineConfig(&cfg.Recommend), cat, feedCache, clk)
	if err != nil {
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}
	for _, rr := range reranking.Default() {
		engine.RegisterReranker(rr)
	}

	logging.Info().
		Str("gql_url", cfg.Upstream.GQLURL).
		Dur("variant_ttl", cfg.Cache.VariantTTL).
		Int("feed_size", cfg.Recommend.FeedSize).
		Msg("Upstream services initialized")

	return &components{catalog: cat, manifests: manifests, engine: engine}, nil
}

// engineConfig overlays the user-facing recommendation settings on the
// engine defaults. Zero values keep the default.
func engineConfig(rc *config.RecommendConfig) *recommend.Config {
	ec := recommend.DefaultConfig()
	if rc.FeedSize > 0 {
		ec.Limits.FeedSize = rc.FeedSize
	}
	if rc.CandidateCap > 0 {
		ec.Limits.MaxCandidates = max(rc.CandidateCap, ec.Limits.FeedSize)
	}
	if rc.CacheTTL > 0 {
		ec.Cache.TTL = rc.CacheTTL
	}
	return ec
}
