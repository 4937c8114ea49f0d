// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/catalog"
	"github.com/tomtom215/nosubvod/internal/models"
)

// Catalog is the read-only upstream lookup surface. Satisfied by
// *catalog.Service.
type Catalog interface {
	VideoChat(ctx context.Context, id string, offset float64) (*catalog.ChatPage, error)
	VideoMarkers(ctx context.Context, id string) (json.RawMessage, error)
	VideosByIDs(ctx context.Context, ids []string) []models.Video
	CategoryVideos(ctx context.Context, game string, first int, after string) models.VideoPage

	TopCategories(ctx context.Context) ([]models.Category, error)
	LiveStreams(ctx context.Context, first int, after string) (models.LiveStreamsPage, error)
	LiveByCategory(ctx context.Context, name string, first int, after string) (models.LiveStreamsPage, error)
	SearchLive(ctx context.Context, q string, first int) (models.LiveStreamsPage, error)
	LiveStatus(ctx context.Context, logins []string) models.LiveStatusMap

	UserInfo(ctx context.Context, login string) (models.UserInfo, error)
	UserVideos(ctx context.Context, login string) ([]models.Video, error)
	UserLive(ctx context.Context, login string) (*models.LiveStream, error)
	SearchChannels(ctx context.Context, q string) ([]models.UserInfo, error)
	SearchGlobal(ctx context.Context, q string) ([]json.RawMessage, error)
}

// Playlists builds and relays HLS playlists. Satisfied by *manifest.Service.
type Playlists interface {
	VODMaster(ctx context.Context, id string) (string, error)
	LiveMaster(ctx context.Context, login string) (string, error)
	Variant(ctx context.Context, token string) (string, error)
}

// Feed ranks recommendations. Satisfied by *recommend.Engine.
type Feed interface {
	Trending(ctx context.Context, history map[string]models.HistoryEntry, subs []models.SubEntry) []models.Video
}

// Library is the persisted per-user state. Satisfied by *store.Store.
type Library interface {
	History(ctx context.Context) map[string]models.HistoryEntry
	HistoryByID(ctx context.Context, id string) (models.HistoryEntry, bool)
	UpsertHistory(ctx context.Context, id string, timecode, duration float64) (models.HistoryEntry, error)

	Watchlist(ctx context.Context) []models.WatchlistEntry
	AddToWatchlist(ctx context.Context, entry models.WatchlistEntry) ([]models.WatchlistEntry, error)
	RemoveFromWatchlist(ctx context.Context, id string) ([]models.WatchlistEntry, error)

	Subs(ctx context.Context) []models.SubEntry
	AddSub(ctx context.Context, entry models.SubEntry) ([]models.SubEntry, error)
	RemoveSub(ctx context.Context, login string) ([]models.SubEntry, error)

	Settings(ctx context.Context) models.Settings
	UpdateSettings(ctx context.Context, oneSync *bool) (models.Settings, error)
}

// Handler serves every /api endpoint.
type Handler struct {
	catalog   Catalog
	playlists Playlists
	feed      Feed
	library   Library
	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(cat Catalog, playlists Playlists, feed Feed, library Library) *Handler {
	return &Handler{
		catalog:   cat,
		playlists: playlists,
		feed:      feed,
		library:   library,
		startTime: time.Now(),
	}
}
