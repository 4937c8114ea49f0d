// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package reranking

import (
	"context"
	"math"

	"github.com/tomtom215/nosubvod/internal/recommend"
)

// streakLength is how many recent picks are inspected for a run of one
// language.
const streakLength = 4

// LanguageInterleave mixes preferred-language and foreign videos.
//
// At each position a foreign video is chosen when the recent picks are not
// all foreign and either the foreign count is below
// floor(position * ratio), the preferred pool is empty, or the last four
// picks were all in the preferred language. Otherwise the best remaining
// preferred video is taken, falling back to whichever pool is left.
type LanguageInterleave struct {
	// ratio overrides the profile's foreign ratio when positive.
	ratio float64
}

// NewLanguageInterleave creates an interleaver that takes its ratio from the
// profile.
func NewLanguageInterleave() *LanguageInterleave {
	return &LanguageInterleave{}
}

// NewFixedInterleave creates an interleaver with a constant foreign ratio.
func NewFixedInterleave(ratio float64) *LanguageInterleave {
	return &LanguageInterleave{ratio: ratio}
}

// Name returns the reranker identifier.
func (l *LanguageInterleave) Name() string {
	return "language_interleave"
}

// Rerank builds a feed of at most k items.
func (l *LanguageInterleave) Rerank(_ context.Context, items []recommend.ScoredVideo, profile *recommend.Profile, k int) []recommend.ScoredVideo {
	if len(items) == 0 || k <= 0 {
		return items
	}

	ratio := l.ratio
	if ratio <= 0 && profile != nil {
		ratio = profile.ForeignRatio()
	}

	var preferred, foreign []recommend.ScoredVideo
	for _, it := range items {
		if it.Language() == recommend.PreferredLanguage {
			preferred = append(preferred, it)
		} else {
			foreign = append(foreign, it)
		}
	}
	recommend.SortByScore(preferred)
	recommend.SortByScore(foreign)

	feed := make([]recommend.ScoredVideo, 0, min(k, len(items)))
	isForeign := make([]bool, 0, cap(feed))
	pi, fi, foreignAdded := 0, 0, 0

	for len(feed) < k && (pi < len(preferred) || fi < len(foreign)) {
		preferredRun, foreignRun := streaks(isForeign)
		target := int(math.Floor(float64(len(feed)+1) * ratio))

		pickForeign := !foreignRun && fi < len(foreign) &&
			(foreignAdded < target || pi >= len(preferred) || preferredRun)

		switch {
		case pickForeign, pi >= len(preferred):
			feed = append(feed, foreign[fi])
			isForeign = append(isForeign, true)
			fi++
			foreignAdded++
		default:
			feed = append(feed, preferred[pi])
			isForeign = append(isForeign, false)
			pi++
		}
	}
	return feed
}

// streaks inspects the last streakLength picks. preferredRun needs a full
// window of preferred picks; foreignRun needs at least one pick, all foreign.
func streaks(isForeign []bool) (preferredRun, foreignRun bool) {
	window := isForeign[max(0, len(isForeign)-streakLength):]
	if len(window) == 0 {
		return false, false
	}
	allForeign, allPreferred := true, true
	for _, f := range window {
		if f {
			allPreferred = false
		} else {
			allForeign = false
		}
	}
	return allPreferred && len(window) == streakLength, allForeign
}
