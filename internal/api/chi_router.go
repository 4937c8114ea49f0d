// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/nosubvod/internal/middleware"
)

// compressionLevel is the gzip level for JSON responses.
const compressionLevel = 5

// Router wires the handler and middleware into a chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: chiMw}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})

	// ========================
	// Operational Endpoints
	// ========================
	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// API Endpoints
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(compressionLevel, "application/json"))

		// Playback
		r.Get("/vod/{id}/master.m3u8", router.handler.VODMaster)
		r.Get("/vod/{id}/chat", router.handler.VODChat)
		r.Get("/vod/{id}/markers", router.handler.VODMarkers)
		r.Get("/live/{login}/master.m3u8", router.handler.LiveMaster)
		r.Get("/stream/variant.m3u8", router.handler.VariantPlaylist)

		// Discovery
		r.Get("/trends", router.handler.Trends)
		r.Get("/live", router.handler.Live)
		r.Get("/live/top-categories", router.handler.TopCategories)
		r.Get("/live/category", router.handler.LiveCategory)
		r.Get("/live/search", router.handler.LiveSearch)
		r.Get("/live/status", router.handler.LiveStatus)
		r.Get("/search/category-vods", router.handler.CategoryVODs)
		r.Get("/search/channels", router.handler.SearchChannels)
		r.Get("/search/global", router.handler.SearchGlobal)

		// Channels
		r.Get("/user/{login}", router.handler.User)
		r.Get("/user/{login}/vods", router.handler.UserVODs)
		r.Get("/user/{login}/live", router.handler.UserLive)

		// Library
		r.Get("/history", router.handler.History)
		r.Post("/history", router.handler.UpdateHistory)
		r.Get("/history/list", router.handler.HistoryList)
		r.Get("/history/{id}", router.handler.HistoryByID)

		r.Get("/watchlist", router.handler.Watchlist)
		r.Post("/watchlist", router.handler.AddToWatchlist)
		r.Delete("/watchlist/{id}", router.handler.RemoveFromWatchlist)

		r.Get("/subs", router.handler.Subs)
		r.Post("/subs", router.handler.AddSub)
		r.Delete("/subs/{login}", router.handler.RemoveSub)

		r.Get("/settings", router.handler.Settings)
		r.Post("/settings", router.handler.UpdateSettings)
	})

	return r
}
