// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package models

// HistoryEntry records how far a video has been watched. There is at most
// one entry per VODID.
type HistoryEntry struct {
	VODID     string  `json:"vodId"`
	Timecode  float64 `json:"timecode"`
	Duration  float64 `json:"duration"`
	UpdatedAt uint64  `json:"updatedAt"` // unix milliseconds
}

// HistoryListItem is a HistoryEntry with the video's current metadata, or a
// null vod when the video is no longer available upstream.
type HistoryListItem struct {
	HistoryEntry
	VOD *Video `json:"vod"`
}

// WatchlistEntry is a video saved for later.
type WatchlistEntry struct {
	VODID               string `json:"vodId"`
	Title               string `json:"title"`
	PreviewThumbnailURL string `json:"previewThumbnailURL"`
	LengthSeconds       uint64 `json:"lengthSeconds"`
	AddedAt             uint64 `json:"addedAt"` // unix milliseconds
}

// SubEntry is a followed channel. Login is stored lowercased.
type SubEntry struct {
	Login           string `json:"login"`
	DisplayName     string `json:"displayName"`
	ProfileImageURL string `json:"profileImageURL"`
}

// Settings holds the user's experience preferences.
type Settings struct {
	OneSync bool `json:"oneSync"`
}

// PersistedData is the legacy single-document layout of history.json.
type PersistedData struct {
	History   map[string]HistoryEntry `json:"history"`
	Watchlist []WatchlistEntry        `json:"watchlist"`
	Subs      []SubEntry              `json:"subs"`
	Settings  Settings                `json:"settings"`
}
