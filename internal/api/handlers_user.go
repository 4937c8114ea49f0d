// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/models"
)

// User handles GET /api/user/{login}
//
// Every lookup failure is reported as 404 so the client treats an upstream
// outage the same as an unknown channel.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	login := strings.TrimSpace(chi.URLParam(r, "login"))

	user, err := h.catalog.UserInfo(r.Context(), login)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			logging.CtxWarn(r.Context()).Err(err).
				Str("login", sanitizeLogValue(login)).
				Msg("User lookup failed")
		}
		respondError(w, r, apperr.NotFound("User not found"))
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UserVODs handles GET /api/user/{login}/vods
func (h *Handler) UserVODs(w http.ResponseWriter, r *http.Request) {
	videos, err := h.catalog.UserVideos(r.Context(), strings.TrimSpace(chi.URLParam(r, "login")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if videos == nil {
		videos = []models.Video{}
	}
	respondJSON(w, http.StatusOK, videos)
}

// UserLive handles GET /api/user/{login}/live
//
// The body is the live stream, or null when the channel is offline.
func (h *Handler) UserLive(w http.ResponseWriter, r *http.Request) {
	stream, err := h.catalog.UserLive(r.Context(), strings.TrimSpace(chi.URLParam(r, "login")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stream)
}
