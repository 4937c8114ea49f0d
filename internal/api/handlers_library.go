// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/nosubvod/internal/catalog"
	"github.com/tomtom215/nosubvod/internal/models"
	"github.com/tomtom215/nosubvod/internal/validation"
)

const (
	minHistoryListLimit = 1
	maxHistoryListLimit = 100
)

// History handles GET /api/history
//
// The body maps vodId to its watch position.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.library.History(r.Context()))
}

// UpdateHistory handles POST /api/history
//
// Body: {"vodId": "...", "timecode": 12.5, "duration": 3600}
// vodId and timecode are required. The stored entry is returned.
func (h *Handler) UpdateHistory(w http.ResponseWriter, r *http.Request) {
	const invalid = "Invalid parameters"

	var req HistoryRequest
	if err := decodeJSON(w, r, &req, invalid); err != nil {
		respondError(w, r, err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, verr.AsAppError(invalid))
		return
	}

	duration := 0.0
	if req.Duration != nil {
		duration = *req.Duration
	}

	entry, err := h.library.UpsertHistory(r.Context(), *req.VODID, *req.Timecode, duration)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// HistoryList handles GET /api/history/list?limit=
//
// Entries are sorted most recently watched first and each carries the
// video's current metadata under "vod", or null when the video is gone.
// Without a limit every entry is returned.
func (h *Handler) HistoryList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	history := h.library.History(ctx)

	entries := make([]models.HistoryEntry, 0, len(history))
	for _, e := range history {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].UpdatedAt != entries[j].UpdatedAt {
			return entries[i].UpdatedAt > entries[j].UpdatedAt
		}
		return entries[i].VODID < entries[j].VODID
	})

	if queryString(r, "limit") != "" {
		limit := getClampedIntParam(r, "limit", maxHistoryListLimit, minHistoryListLimit, maxHistoryListLimit)
		if len(entries) > limit {
			entries = entries[:limit]
		}
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.VODID
	}
	byID := make(map[string]*models.Video, len(ids))
	for start := 0; start < len(ids); start += catalog.MaxBatchIDs {
		end := min(start+catalog.MaxBatchIDs, len(ids))
		for _, v := range h.catalog.VideosByIDs(ctx, ids[start:end]) {
			byID[v.ID] = &v
		}
	}

	items := make([]models.HistoryListItem, len(entries))
	for i, e := range entries {
		items[i] = models.HistoryListItem{HistoryEntry: e, VOD: byID[e.VODID]}
	}
	respondJSON(w, http.StatusOK, items)
}

// HistoryByID handles GET /api/history/{id}
//
// The body is the entry, or null when the video has never been watched.
func (h *Handler) HistoryByID(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.library.HistoryByID(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// Watchlist handles GET /api/watchlist
func (h *Handler) Watchlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.library.Watchlist(r.Context()))
}

// AddToWatchlist handles POST /api/watchlist and returns the updated list.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	const invalid = "Invalid watchlist payload"

	var req WatchlistRequest
	if err := decodeJSON(w, r, &req, invalid); err != nil {
		respondError(w, r, err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, verr.AsAppError(invalid))
		return
	}

	list, err := h.library.AddToWatchlist(r.Context(), req.Entry())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// RemoveFromWatchlist handles DELETE /api/watchlist/{id} and returns the
// updated list. Unknown ids are not an error.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	list, err := h.library.RemoveFromWatchlist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Subs handles GET /api/subs
func (h *Handler) Subs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.library.Subs(r.Context()))
}

// AddSub handles POST /api/subs and returns the updated list.
func (h *Handler) AddSub(w http.ResponseWriter, r *http.Request) {
	const invalid = "Invalid sub payload"

	var req SubRequest
	if err := decodeJSON(w, r, &req, invalid); err != nil {
		respondError(w, r, err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, verr.AsAppError(invalid))
		return
	}

	subs, err := h.library.AddSub(r.Context(), req.Entry())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

// RemoveSub handles DELETE /api/subs/{login} and returns the updated list.
func (h *Handler) RemoveSub(w http.ResponseWriter, r *http.Request) {
	subs, err := h.library.RemoveSub(r.Context(), chi.URLParam(r, "login"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

// Settings handles GET /api/settings
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.library.Settings(r.Context()))
}

// UpdateSettings handles POST /api/settings
//
// Only fields present in the body are changed. The full settings object is
// returned.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := decodeJSON(w, r, &req, "Invalid settings payload"); err != nil {
		respondError(w, r, err)
		return
	}

	settings, err := h.library.UpdateSettings(r.Context(), req.OneSync)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
