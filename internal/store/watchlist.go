// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package store

import (
	"context"

	"github.com/tomtom215/nosubvod/internal/models"
)

// Watchlist returns saved videos in the order they were added.
func (s *Store) Watchlist(ctx context.Context) []models.WatchlistEntry {
	return nonNil(read[[]models.WatchlistEntry](ctx, s, "read", CollectionWatchlist))
}

// AddToWatchlist appends entry unless its video is already saved. AddedAt
// is set to now.
func (s *Store) AddToWatchlist(ctx context.Context, entry models.WatchlistEntry) ([]models.WatchlistEntry, error) {
	w, err := mutate(ctx, s, "add", CollectionWatchlist, func(w *[]models.WatchlistEntry) bool {
		for _, existing := range *w {
			if existing.VODID == entry.VODID {
				return false
			}
		}
		entry.AddedAt = s.nowMillis()
		*w = append(*w, entry)
		return true
	})
	return nonNil(w), err
}

// RemoveFromWatchlist drops a video. Unknown ids are ignored.
func (s *Store) RemoveFromWatchlist(ctx context.Context, vodID string) ([]models.WatchlistEntry, error) {
	w, err := mutate(ctx, s, "remove", CollectionWatchlist, func(w *[]models.WatchlistEntry) bool {
		kept := (*w)[:0]
		for _, e := range *w {
			if e.VODID != vodID {
				kept = append(kept, e)
			}
		}
		*w = nonNil(kept)
		return true
	})
	return nonNil(w), err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
