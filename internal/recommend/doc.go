// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

// Package recommend builds the personalised "trending" VOD feed.
//
// # Architecture
//
// A feed is produced in four stages:
//
//   - Profile: game, channel and language affinities learned from the most
//     recent watch history and the subscription list
//   - Sourcing: candidate videos from the user's top categories (French-only
//     and unfiltered) and from subscribed channels, fetched concurrently
//   - Scoring: a quality gate on length and views, then popularity,
//     affinity, language, subscription and freshness signals
//   - Reranking: registered Rerankers (see the reranking package) cap
//     videos per channel and interleave French and foreign content
//
// # Caching
//
// Feeds are cached for Config.Cache.TTL under a fingerprint of the viewing
// state, so two requests with the same history and subscriptions share one
// computation. History timestamps are bucketed to ten minutes.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), catalogSvc, feedCache, nil)
//	for _, rr := range reranking.Default() {
//	    engine.RegisterReranker(rr)
//	}
//	feed := engine.Trending(ctx, history, subs)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Reranker registration takes an
// exclusive lock; feed computation only reads.
package recommend
