// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Sourcing controls where candidates come from.
	Sourcing SourcingConfig `json:"sourcing"`

	// Limits contains pipeline size limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains feed caching parameters.
	Cache CacheConfig `json:"cache"`
}

// SourcingConfig controls candidate sourcing.
type SourcingConfig struct {
	// HistoryWindow is how many of the most recent history entries feed the
	// profile and the cache fingerprint.
	// Default: 35.
	HistoryWindow int `json:"history_window"`

	// TopGames is how many of the highest-affinity categories are queried.
	// Default: 3.
	TopGames int `json:"top_games"`

	// AnchorGame is always queried in addition to the top games.
	// Default: "Just Chatting".
	AnchorGame string `json:"anchor_game"`

	// MaxGames bounds the number of categories queried.
	// Default: 4.
	MaxGames int `json:"max_games"`

	// VideosPerGame is the page size of each category query.
	// Default: 18.
	VideosPerGame int `json:"videos_per_game"`

	// MaxSubscriptions bounds how many subscribed channels are queried.
	// Default: 10.
	MaxSubscriptions int `json:"max_subscriptions"`
}

// LimitsConfig contains pipeline size limits.
type LimitsConfig struct {
	// MaxCandidates is how many scored candidates survive into reranking.
	// Default: 120.
	MaxCandidates int `json:"max_candidates"`

	// FeedSize is the length of the returned feed.
	// Default: 40.
	FeedSize int `json:"feed_size"`
}

// CacheConfig contains feed caching parameters.
type CacheConfig struct {
	// TTL is how long a computed feed is reused.
	// Default: 15m.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Sourcing: SourcingConfig{
			HistoryWindow:    35,
			TopGames:         3,
			AnchorGame:       "Just Chatting",
			MaxGames:         4,
			VideosPerGame:    18,
			MaxSubscriptions: 10,
		},
		Limits: LimitsConfig{
			MaxCandidates: 120,
			FeedSize:      40,
		},
		Cache: CacheConfig{
			TTL: 900 * time.Second,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Sourcing.HistoryWindow < 1 {
		return fmt.Errorf("sourcing.history_window must be positive, got %d", c.Sourcing.HistoryWindow)
	}
	if c.Sourcing.TopGames < 0 {
		return fmt.Errorf("sourcing.top_games must be non-negative, got %d", c.Sourcing.TopGames)
	}
	if c.Sourcing.MaxGames < 1 {
		return fmt.Errorf("sourcing.max_games must be positive, got %d", c.Sourcing.MaxGames)
	}
	if c.Sourcing.VideosPerGame < 1 {
		return fmt.Errorf("sourcing.videos_per_game must be positive, got %d", c.Sourcing.VideosPerGame)
	}
	if c.Sourcing.MaxSubscriptions < 0 {
		return fmt.Errorf("sourcing.max_subscriptions must be non-negative, got %d", c.Sourcing.MaxSubscriptions)
	}

	if c.Limits.FeedSize < 1 {
		return fmt.Errorf("limits.feed_size must be positive, got %d", c.Limits.FeedSize)
	}
	if c.Limits.MaxCandidates < c.Limits.FeedSize {
		return fmt.Errorf("limits.max_candidates must be >= limits.feed_size, got %d < %d", c.Limits.MaxCandidates, c.Limits.FeedSize)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %v", c.Cache.TTL)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
