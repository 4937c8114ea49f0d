// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

// Package reranking implements the post-processing passes of the trending
// feed.
//
// Rerankers operate on candidates that are already scored and sorted:
//
//	Scoring -> ChannelCap -> LanguageInterleave -> Feed
//	(relevance)  (variety)     (language balance)
//
// # Available Rerankers
//
// ChannelCap:
//   - Keeps at most 3 videos from a subscribed or previously watched channel
//   - Keeps at most 2 from any other channel
//   - Excess videos are dropped in score order
//
// LanguageInterleave:
//   - Splits candidates into preferred-language and foreign pools
//   - Mixes foreign videos in at the profile's foreign ratio
//   - Never lets either language run for more than four videos in a row
//     while the other pool still has videos
//
// # Interface
//
// All rerankers implement recommend.Reranker:
//
//	type Reranker interface {
//	    Name() string
//	    Rerank(ctx context.Context, items []ScoredVideo, profile *Profile, k int) []ScoredVideo
//	}
//
// # Usage Example
//
//	for _, rr := range reranking.Default() {
//	    engine.RegisterReranker(rr)
//	}
package reranking

import "github.com/tomtom215/nosubvod/internal/recommend"

// Default returns the production pipeline: ChannelCap then
// LanguageInterleave.
func Default() []recommend.Reranker {
	return []recommend.Reranker{NewChannelCap(), NewLanguageInterleave()}
}
