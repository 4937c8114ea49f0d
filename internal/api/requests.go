// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"github.com/tomtom215/nosubvod/internal/models"
)

// HistoryRequest is the body of POST /api/history. Duration is optional and
// defaults to zero.
type HistoryRequest struct {
	VODID    *string  `json:"vodId" validate:"required"`
	Timecode *float64 `json:"timecode" validate:"required"`
	Duration *float64 `json:"duration"`
}

// SubRequest is the body of POST /api/subs. All three fields are required.
type SubRequest struct {
	Login           string `json:"login" validate:"notblank,max=64"`
	DisplayName     string `json:"displayName" validate:"required"`
	ProfileImageURL string `json:"profileImageURL" validate:"required"`
}

// Entry converts the request into a stored subscription.
func (s *SubRequest) Entry() models.SubEntry {
	return models.SubEntry{
		Login:           s.Login,
		DisplayName:     s.DisplayName,
		ProfileImageURL: s.ProfileImageURL,
	}
}

// WatchlistRequest is the body of POST /api/watchlist. The server sets
// addedAt, so a client-supplied value is ignored.
type WatchlistRequest struct {
	VODID               string `json:"vodId" validate:"notblank"`
	Title               string `json:"title"`
	PreviewThumbnailURL string `json:"previewThumbnailURL"`
	LengthSeconds       uint64 `json:"lengthSeconds"`
}

// Entry converts the request into a watchlist entry.
func (w *WatchlistRequest) Entry() models.WatchlistEntry {
	return models.WatchlistEntry{
		VODID:               w.VODID,
		Title:               w.Title,
		PreviewThumbnailURL: w.PreviewThumbnailURL,
		LengthSeconds:       w.LengthSeconds,
	}
}

// SettingsRequest is the body of POST /api/settings. A missing oneSync
// leaves the stored value unchanged.
type SettingsRequest struct {
	OneSync *bool `json:"oneSync"`
}
