// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/logging"
)

// VODChat handles GET /api/vod/{id}/chat?offset=
//
// offset is the position in seconds from which to read comments and
// defaults to zero.
func (h *Handler) VODChat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	offset := max(getFloatParam(r, "offset", 0), 0)

	page, err := h.catalog.VideoChat(r.Context(), id, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// VODMarkers handles GET /api/vod/{id}/markers
func (h *Handler) VODMarkers(w http.ResponseWriter, r *http.Request) {
	markers, err := h.catalog.VideoMarkers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, markers)
}

// VODMaster handles GET /api/vod/{id}/master.m3u8
func (h *Handler) VODMaster(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logging.ContextWithField(r.Context(), "vod_id", sanitizeLogValue(id))

	body, err := h.playlists.VODMaster(ctx, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondM3U8(w, body)
}

// VariantPlaylist handles GET /api/stream/variant.m3u8?id=
//
// The id is a relay token minted while building a master playlist. The
// response is the upstream media playlist with every segment URI made
// absolute.
func (h *Handler) VariantPlaylist(w http.ResponseWriter, r *http.Request) {
	token := queryString(r, "id")
	if token == "" {
		respondError(w, r, apperr.Validation("Missing id parameter"))
		return
	}

	body, err := h.playlists.Variant(r.Context(), token)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondM3U8(w, body)
}
