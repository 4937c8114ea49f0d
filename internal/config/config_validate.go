// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateUpstream(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got: %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got: %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got: %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateUpstream() error {
	if err := validateEndpointURL(c.Upstream.GQLURL, "GQL_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Upstream.ClientID) == "" {
		return fmt.Errorf("GQL_CLIENT_ID must not be empty")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got: %v", c.Upstream.Timeout)
	}
	if c.Upstream.ProbeTimeout <= 0 {
		return fmt.Errorf("PROBE_TIMEOUT must be positive, got: %v", c.Upstream.ProbeTimeout)
	}
	if c.Upstream.RequestsPerSecond < 0 {
		return fmt.Errorf("UPSTREAM_RPS must not be negative, got: %v", c.Upstream.RequestsPerSecond)
	}
	if c.Upstream.RequestsPerSecond > 0 && c.Upstream.Burst < 1 {
		return fmt.Errorf("UPSTREAM_BURST must be at least 1 when pacing is enabled, got: %d", c.Upstream.Burst)
	}
	if c.Cache.VariantTTL <= 0 {
		return fmt.Errorf("VARIANT_PROXY_TTL must be positive, got: %v", c.Cache.VariantTTL)
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && strings.TrimSpace(c.Store.DataDir) == "" {
		return fmt.Errorf("DATA_DIR is required unless STORE_IN_MEMORY=true")
	}
	if c.Store.GCInterval < 0 {
		return fmt.Errorf("STORE_GC_INTERVAL must not be negative, got: %v", c.Store.GCInterval)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin (use * for any)")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got: %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got: %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.FeedSize < 1 {
		return fmt.Errorf("RECOMMEND_FEED_SIZE must be at least 1, got: %d", c.Recommend.FeedSize)
	}
	if c.Recommend.CandidateCap < c.Recommend.FeedSize {
		return fmt.Errorf("RECOMMEND_CANDIDATE_CAP (%d) must not be below RECOMMEND_FEED_SIZE (%d)",
			c.Recommend.CandidateCap, c.Recommend.FeedSize)
	}
	if c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive, got: %v", c.Recommend.CacheTTL)
	}
	if c.Recommend.WarmInterval < 0 {
		return fmt.Errorf("RECOMMEND_WARM_INTERVAL must not be negative, got: %v", c.Recommend.WarmInterval)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled", "":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got: %s", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got: %s", c.Logging.Format)
	}
	return nil
}
