// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package recommend

import (
	"context"
	"sort"

	"github.com/tomtom215/nosubvod/internal/models"
)

// ScoredVideo is a candidate with its relevance score.
type ScoredVideo struct {
	Video models.Video `json:"video"`
	Score float64      `json:"score"`
}

// Language returns the candidate's normalized language code.
func (s ScoredVideo) Language() string {
	return NormalizeLanguage(s.Video.LanguageCode())
}

// Channel returns the candidate's lowercased owner login.
func (s ScoredVideo) Channel() string {
	return NormalizeChannel(s.Video.OwnerLogin())
}

// SortByScore orders items by descending score. Ties keep their input order.
func SortByScore(items []ScoredVideo) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

// Videos strips the scores.
func Videos(items []ScoredVideo) []models.Video {
	out := make([]models.Video, len(items))
	for i, it := range items {
		out[i] = it.Video
	}
	return out
}

// Reranker post-processes a scored candidate list.
type Reranker interface {
	// Name returns the reranker identifier (e.g., "channel_cap").
	Name() string

	// Rerank reorders or filters items, which arrive sorted by score.
	// It returns at most k items.
	Rerank(ctx context.Context, items []ScoredVideo, profile *Profile, k int) []ScoredVideo
}

// Source supplies candidate and watched-video metadata. Implemented by the
// catalog service.
type Source interface {
	// VideosByIDs returns metadata for the given ids; missing videos are
	// skipped and failures yield an empty list.
	VideosByIDs(ctx context.Context, ids []string) []models.Video

	// GameVideos lists a category's videos; failures yield an empty list.
	GameVideos(ctx context.Context, game string, languages []string, first int) []models.Video

	// UserVideos lists a channel's recent videos.
	UserVideos(ctx context.Context, login string) ([]models.Video, error)
}
