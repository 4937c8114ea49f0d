// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/models"
)

const (
	defaultCategoryVODLimit = 36
	minCategoryVODLimit     = 4
	maxCategoryVODLimit     = 50
)

// CategoryVODs handles GET /api/search/category-vods?name=&cursor=&limit=
//
// A blank name yields an empty page rather than an error.
func (h *Handler) CategoryVODs(w http.ResponseWriter, r *http.Request) {
	name := queryString(r, "name")
	if name == "" {
		respondJSON(w, http.StatusOK, models.VideoPage{Items: []models.Video{}})
		return
	}
	limit := getClampedIntParam(r, "limit", defaultCategoryVODLimit, minCategoryVODLimit, maxCategoryVODLimit)

	respondJSON(w, http.StatusOK, h.catalog.CategoryVideos(r.Context(), name, limit, queryString(r, "cursor")))
}

// SearchChannels handles GET /api/search/channels?q=
func (h *Handler) SearchChannels(w http.ResponseWriter, r *http.Request) {
	q := queryString(r, "q")
	if q == "" {
		respondJSON(w, http.StatusOK, []models.UserInfo{})
		return
	}

	channels, err := h.catalog.SearchChannels(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if channels == nil {
		channels = []models.UserInfo{}
	}
	respondJSON(w, http.StatusOK, channels)
}

// SearchGlobal handles GET /api/search/global?q=
//
// Results mix channels, categories and videos in upstream order and are
// passed through unmodified.
func (h *Handler) SearchGlobal(w http.ResponseWriter, r *http.Request) {
	q := queryString(r, "q")
	if q == "" {
		respondJSON(w, http.StatusOK, []json.RawMessage{})
		return
	}

	items, err := h.catalog.SearchGlobal(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	respondJSON(w, http.StatusOK, items)
}
