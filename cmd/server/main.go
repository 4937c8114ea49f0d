// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/nosubvod/internal/api"
	"github.com/tomtom215/nosubvod/internal/config"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/metrics"
	"github.com/tomtom215/nosubvod/internal/recommend"
	"github.com/tomtom215/nosubvod/internal/store"
	"github.com/tomtom215/nosubvod/internal/supervisor"
	"github.com/tomtom215/nosubvod/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const uptimeInterval = 15 * time.Second

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	startTime := time.Now()

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("data_dir", cfg.Store.DataDir).
		Bool("in_memory", cfg.Store.InMemory).
		Msg("Starting NoSubVOD with supervisor tree")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	// A port that cannot be bound is fatal; it is never retried.
	ln, err := services.Listen(cfg.Server.Addr())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to bind HTTP listener")
	}

	// Runs after every other deferred cleanup, including the store Close.
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	comps, err := buildComponents(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize components")
	}

	st, err := store.Open(&cfg.Store, nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store opened successfully")

	if len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Info().Msg("CORS allows any origin (CORS_ORIGINS=*)")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(comps.catalog, comps.manifests, comps.engine, st)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security)))

	server := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// ========================================
	// Supervisor Tree
	// ========================================
	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout + 5*time.Second
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if !cfg.Store.InMemory {
		tree.AddDataService(services.NewStoreGCService(st, cfg.Store.GCInterval, logging.WithComponent("store-gc")))
		logging.Info().Dur("interval", cfg.Store.GCInterval).Msg("Store GC service added")
	}

	if cfg.Recommend.WarmInterval > 0 {
		warmer := recommend.NewWarmer(comps.engine, st)
		tree.AddWorkerService(services.NewFeedWarmService(warmer, services.FeedWarmServiceConfig{
			WarmOnStartup: true,
			Interval:      cfg.Recommend.WarmInterval,
		}, logging.WithComponent("feed-warmer")))
		logging.Info().Dur("interval", cfg.Recommend.WarmInterval).Msg("Feed warm service added")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, ln, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go trackUptime(ctx, startTime)

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
		exitCode = 1
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if exitCode == 0 {
		logging.Info().Msg("Application stopped gracefully")
	}
}

// trackUptime publishes app_uptime_seconds until ctx is done.
func trackUptime(ctx context.Context, start time.Time) {
	ticker := time.NewTicker(uptimeInterval)
	defer ticker.Stop()

	for {
		metrics.AppUptime.Set(time.Since(start).Seconds())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
