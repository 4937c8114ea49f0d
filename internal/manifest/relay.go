// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package manifest

import (
	"context"
	"strings"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/metrics"
)

// Variant fetches the rendition playlist registered under token and returns
// it with absolute segment URLs.
func (s *Service) Variant(ctx context.Context, token string) (string, error) {
	playlist, err := s.variant(ctx, token)
	metrics.RecordManifest("variant", err)
	return playlist, err
}

func (s *Service) variant(ctx context.Context, token string) (string, error) {
	target, err := s.registry.Resolve(token)
	if err != nil {
		return "", err
	}

	resp, err := s.timedGet(ctx, target, s.fetchTimeout)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", apperr.Upstream("Upstream HTTP %d", resp.Status)
	}

	return RewriteVariant(string(resp.Body), target), nil
}

// RewriteVariant switches muted segment names in and prefixes relative
// references, bare or URI attribute, with the directory of target.
func RewriteVariant(body, target string) string {
	base := baseDir(target)
	p := parsePlaylist(strings.ReplaceAll(body, "-unmuted", "-muted"))
	p.mapURIs(func(ref string) string {
		if isAbsolute(ref) {
			return ref
		}
		return base + ref
	})
	return p.String()
}
