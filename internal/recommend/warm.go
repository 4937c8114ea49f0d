// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package recommend

import (
	"context"

	"github.com/tomtom215/nosubvod/internal/models"
)

// ViewingState reads the persisted history and subscriptions.
type ViewingState interface {
	History(ctx context.Context) map[string]models.HistoryEntry
	Subs(ctx context.Context) []models.SubEntry
}

// Warmer precomputes the feed for the current viewing state so the first
// request after a change does not wait on upstream.
type Warmer struct {
	engine *Engine
	state  ViewingState
}

// NewWarmer creates a Warmer.
func NewWarmer(engine *Engine, state ViewingState) *Warmer {
	return &Warmer{engine: engine, state: state}
}

// Warm computes (or refreshes from cache) the current feed and returns its
// length.
func (w *Warmer) Warm(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	feed := w.engine.Trending(ctx, w.state.History(ctx), w.state.Subs(ctx))
	return len(feed), nil
}
