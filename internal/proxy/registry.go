// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package proxy

import (
	"regexp"
	"strings"
	"time"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/cache"
	"github.com/tomtom215/nosubvod/internal/ident"
	"github.com/tomtom215/nosubvod/internal/metrics"
)

const (
	// DefaultTTL is how long a registered target stays resolvable.
	DefaultTTL = 300 * time.Second

	// RelayPath is the endpoint that serves registered targets.
	RelayPath = "/api/stream/variant.m3u8"

	keyPrefix = "variant_proxy_"
)

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// Registry maps opaque tokens to sanitized upstream URLs.
type Registry struct {
	targets cache.Cacher[string]
	ids     ident.Source
	ttl     time.Duration
}

// New creates a registry backed by targets. A non-positive ttl means DefaultTTL.
func New(targets cache.Cacher[string], ids ident.Source, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{targets: targets, ids: ids, ttl: ttl}
}

// Register validates and sanitizes target, stores it and returns a fresh
// token. Invalid targets yield an apperr.ErrValidation error.
func (r *Registry) Register(target string) (string, error) {
	sanitized, err := Sanitize(target)
	if err != nil {
		return "", err
	}
	token := r.ids.Token()
	r.targets.Set(keyPrefix+token, sanitized, r.ttl)
	metrics.ProxyRegistrations.Inc()
	return token, nil
}

// Resolve returns the URL registered under token.
func (r *Registry) Resolve(token string) (string, error) {
	token = strings.TrimSpace(token)
	if !tokenPattern.MatchString(token) {
		metrics.ProxyRejections.WithLabelValues("resolve", "malformed_id").Inc()
		return "", apperr.Validation("Invalid variant proxy id")
	}
	target, ok := r.targets.Get(keyPrefix + token)
	if !ok {
		metrics.ProxyRejections.WithLabelValues("resolve", "expired").Inc()
		return "", apperr.NotFound("Variant proxy target not found or expired")
	}
	return target, nil
}

// RegisterPath registers target and returns its relay path.
func (r *Registry) RegisterPath(target string) (string, error) {
	token, err := r.Register(target)
	if err != nil {
		return "", err
	}
	return ProxyPath(token), nil
}

// ProxyPath renders the relay path for token.
func ProxyPath(token string) string {
	return RelayPath + "?id=" + Encode(token)
}
