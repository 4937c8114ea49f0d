// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	addr := cfg.Server.Addr()
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Cache     CacheConfig     `koanf:"cache"`
	Store     StoreConfig     `koanf:"store"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // read/write timeout per request
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful shutdown budget
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig describes how the gateway talks to the platform's GraphQL API
// and media CDNs.
type UpstreamConfig struct {
	GQLURL    string `koanf:"gql_url"`
	ClientID  string `koanf:"client_id"`
	UserAgent string `koanf:"user_agent"`

	// Timeout bounds every GraphQL call and playlist fetch.
	Timeout time.Duration `koanf:"timeout"`

	// ProbeTimeout bounds each rendition existence probe during VOD master
	// generation. A probe that times out marks the rendition unavailable.
	ProbeTimeout time.Duration `koanf:"probe_timeout"`

	// RequestsPerSecond paces outgoing GraphQL requests; 0 disables pacing.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// CacheConfig holds TTLs that are not tied to a single catalog operation
type CacheConfig struct {
	// VariantTTL is how long a registered proxy token stays resolvable.
	VariantTTL time.Duration `koanf:"variant_ttl"`
}

// StoreConfig configures the persisted history/watchlist/subs/settings store
type StoreConfig struct {
	// DataDir holds the Badger database and, for one-time import, a legacy
	// history.json document.
	DataDir string `koanf:"data_dir"`

	// InMemory runs Badger without touching disk. Nothing survives a restart.
	InMemory bool `koanf:"in_memory"`

	// GCInterval is how often the value log GC service runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SecurityConfig holds CORS and rate limiting settings. There is no
// authentication; the gateway serves a single local user.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds zerolog settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to every entry.
	Caller bool `koanf:"caller"`
}

// RecommendConfig tunes the trending feed
type RecommendConfig struct {
	FeedSize     int           `koanf:"feed_size"`
	CandidateCap int           `koanf:"candidate_cap"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`

	// WarmInterval is how often the background service recomputes the feed
	// for the current history so /trends answers from cache. 0 disables it.
	WarmInterval time.Duration `koanf:"warm_interval"`
}
