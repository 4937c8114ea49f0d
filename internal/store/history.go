// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package store

import (
	"context"

	"github.com/tomtom215/nosubvod/internal/models"
)

// History returns every history entry keyed by video id.
func (s *Store) History(ctx context.Context) map[string]models.HistoryEntry {
	h := read[map[string]models.HistoryEntry](ctx, s, "read", CollectionHistory)
	if h == nil {
		h = map[string]models.HistoryEntry{}
	}
	return h
}

// HistoryByID returns the entry for one video.
func (s *Store) HistoryByID(ctx context.Context, vodID string) (models.HistoryEntry, bool) {
	e, ok := s.History(ctx)[vodID]
	return e, ok
}

// UpsertHistory records progress on a video. Negative timecodes are stored
// as zero and UpdatedAt is set to now.
func (s *Store) UpsertHistory(ctx context.Context, vodID string, timecode, duration float64) (models.HistoryEntry, error) {
	entry := models.HistoryEntry{
		VODID:     vodID,
		Timecode:  max(timecode, 0),
		Duration:  duration,
		UpdatedAt: s.nowMillis(),
	}
	_, err := mutate(ctx, s, "upsert", CollectionHistory, func(h *map[string]models.HistoryEntry) bool {
		if *h == nil {
			*h = make(map[string]models.HistoryEntry)
		}
		(*h)[vodID] = entry
		return true
	})
	if err != nil {
		return models.HistoryEntry{}, err
	}
	return entry, nil
}
