// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"net/http"

	"github.com/tomtom215/nosubvod/internal/models"
)

// Trends handles GET /api/trends
//
// The feed is ranked from the stored watch history and subscriptions. It
// never fails: with no usable signal the engine falls back to generic
// trending videos.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videos := h.feed.Trending(ctx, h.library.History(ctx), h.library.Subs(ctx))
	if videos == nil {
		videos = []models.Video{}
	}
	respondJSON(w, http.StatusOK, videos)
}
