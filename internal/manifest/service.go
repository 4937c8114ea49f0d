// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package manifest

import (
	"time"

	"github.com/tomtom215/nosubvod/internal/clock"
	"github.com/tomtom215/nosubvod/internal/config"
	"github.com/tomtom215/nosubvod/internal/ident"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

// Registry is the part of the variant proxy registry manifests depend on.
type Registry interface {
	RegisterPath(target string) (string, error)
	Resolve(token string) (string, error)
}

// Service generates and relays playlists.
type Service struct {
	gql      upstream.Querier
	fetcher  upstream.Fetcher
	registry Registry
	ids      ident.Source
	clock    clock.Clock

	probeTimeout time.Duration
	fetchTimeout time.Duration
	usherURL     string
}

const (
	defaultProbeTimeout = 5 * time.Second
	defaultFetchTimeout = 15 * time.Second
)

// New creates a Service. A nil clock means the system clock.
func New(cfg *config.UpstreamConfig, gql upstream.Querier, fetcher upstream.Fetcher, registry Registry, ids ident.Source, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	probeTimeout, fetchTimeout := cfg.ProbeTimeout, cfg.Timeout
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Service{
		gql:          gql,
		fetcher:      fetcher,
		registry:     registry,
		ids:          ids,
		clock:        clk,
		probeTimeout: probeTimeout,
		fetchTimeout: fetchTimeout,
		usherURL:     DefaultUsherURL,
	}
}
