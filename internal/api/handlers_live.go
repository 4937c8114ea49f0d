// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/models"
)

const (
	defaultLiveLimit   = 24
	minLiveLimit       = 8
	maxLiveLimit       = 48
	defaultSearchLimit = 24
)

// LiveMaster handles GET /api/live/{login}/master.m3u8
func (h *Handler) LiveMaster(w http.ResponseWriter, r *http.Request) {
	login := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "login")))
	if login == "" {
		respondError(w, r, apperr.Validation("Missing channel login"))
		return
	}

	ctx := logging.ContextWithField(r.Context(), "channel", sanitizeLogValue(login))
	body, err := h.playlists.LiveMaster(ctx, login)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondM3U8(w, body)
}

// Live handles GET /api/live?limit=&cursor=
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	limit := getClampedIntParam(r, "limit", defaultLiveLimit, minLiveLimit, maxLiveLimit)

	page, err := h.catalog.LiveStreams(r.Context(), limit, queryString(r, "cursor"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// TopCategories handles GET /api/live/top-categories
func (h *Handler) TopCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.TopCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

// LiveCategory handles GET /api/live/category?name=&cursor=&limit=
func (h *Handler) LiveCategory(w http.ResponseWriter, r *http.Request) {
	name := queryString(r, "name")
	if name == "" {
		respondError(w, r, apperr.Validation("Missing category name"))
		return
	}
	limit := getClampedIntParam(r, "limit", defaultLiveLimit, minLiveLimit, maxLiveLimit)

	page, err := h.catalog.LiveByCategory(r.Context(), name, limit, queryString(r, "cursor"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// LiveSearch handles GET /api/live/search?q=&limit=
func (h *Handler) LiveSearch(w http.ResponseWriter, r *http.Request) {
	q := queryString(r, "q")
	if q == "" {
		respondError(w, r, apperr.Validation("Missing query"))
		return
	}

	page, err := h.catalog.SearchLive(r.Context(), q, getIntParam(r, "limit", defaultSearchLimit))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// LiveStatus handles GET /api/live/status?logins=a,b
//
// The response maps each live login to its stream. Offline and unknown
// logins are absent.
func (h *Handler) LiveStatus(w http.ResponseWriter, r *http.Request) {
	logins := parseCommaSeparated(r.URL.Query().Get("logins"))
	if len(logins) == 0 {
		respondJSON(w, http.StatusOK, models.LiveStatusMap{})
		return
	}

	status := h.catalog.LiveStatus(r.Context(), logins)
	if status == nil {
		status = models.LiveStatusMap{}
	}
	respondJSON(w, http.StatusOK, status)
}
