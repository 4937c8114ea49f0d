// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// FeedWarmer recomputes the recommendation feed for the current viewing
// state. Satisfied by *recommend.Warmer.
type FeedWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// FeedWarmServiceConfig holds configuration for the feed warm service.
type FeedWarmServiceConfig struct {
	// WarmOnStartup computes the feed as soon as the service starts.
	WarmOnStartup bool

	// Interval is how often the feed is recomputed. Default: 10m.
	Interval time.Duration

	// Timeout bounds a single warm cycle. Default: 2m.
	Timeout time.Duration
}

// FeedWarmService keeps the trending feed cache populated so the first page
// load after idle time does not wait on a dozen upstream queries.
type FeedWarmService struct {
	warmer FeedWarmer
	config FeedWarmServiceConfig
	logger zerolog.Logger
	name   string
}

// NewFeedWarmService creates a new feed warm service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFeedWarmService(warmer FeedWarmer, cfg FeedWarmServiceConfig, logger zerolog.Logger) *FeedWarmService {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &FeedWarmService{
		warmer: warmer,
		config: cfg,
		logger: logger.With().Str("service", "feed-warmer").Logger(),
		name:   "feed-warm-service",
	}
}

// Serve implements the suture.Service interface. Warm failures are logged
// and retried on the next tick; they never crash the service.
func (s *FeedWarmService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("warm_on_startup", s.config.WarmOnStartup).
		Dur("interval", s.config.Interval).
		Msg("feed warm service starting")

	if s.config.WarmOnStartup {
		s.warm(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("feed warm service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.warm(ctx)
		}
	}
}

func (s *FeedWarmService) warm(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	n, err := s.warmer.Warm(warmCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("feed warm failed")
		return
	}
	s.logger.Debug().
		Int("videos", n).
		Dur("duration", time.Since(start)).
		Msg("feed warmed")
}

// String returns the service name for logging.
func (s *FeedWarmService) String() string {
	return s.name
}
