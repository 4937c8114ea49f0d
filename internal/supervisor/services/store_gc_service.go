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

// GarbageCollector reclaims value log space. Satisfied by *store.Store.
type GarbageCollector interface {
	RunGC() (int, error)
}

// StoreGCService runs Badger value log garbage collection on a fixed
// interval. History updates rewrite the whole collection on every progress
// report, so the value log grows quickly without it.
type StoreGCService struct {
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStoreGCService creates the service. A non-positive interval means 10
// minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStoreGCService(gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		gc:       gc,
		interval: interval,
		logger:   logger.With().Str("service", "store-gc").Logger(),
		name:     "store-gc-service",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rewritten, err := s.gc.RunGC()
			if err != nil {
				s.logger.Warn().Err(err).Int("rewritten", rewritten).Msg("value log GC failed")
				continue
			}
			if rewritten > 0 {
				s.logger.Info().Int("rewritten", rewritten).Msg("value log GC reclaimed space")
			}
		}
	}
}

// String returns the service name for logging.
func (s *StoreGCService) String() string {
	return s.name
}
