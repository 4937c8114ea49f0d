// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package manifest

import (
	"context"
	"fmt"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/metrics"
	"github.com/tomtom215/nosubvod/internal/proxy"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

// DefaultUsherURL is the live master playlist endpoint; the channel login and
// ".m3u8" are appended.
const DefaultUsherURL = "https://usher.ttvnw.net/api/channel/hls/"

const playbackTokenQuery = `query PlaybackAccessToken_Template($login: String!) { streamPlaybackAccessToken(channelName: $login, params: {platform: "web", playerBackend: "mediaplayer", playerType: "site"}) { value signature } }`

type playbackTokenSchema struct {
	Token *struct {
		Value     *string `json:"value"`
		Signature *string `json:"signature"`
	} `json:"streamPlaybackAccessToken"`
}

// PlaybackGrant is a signed live playback token.
type PlaybackGrant struct {
	Value     string
	Signature string
}

// FetchPlaybackGrant requests a live playback token for login.
func (s *Service) FetchPlaybackGrant(ctx context.Context, login string) (*PlaybackGrant, error) {
	data, err := upstream.Query[playbackTokenSchema](ctx, s.gql, upstream.Request{
		OperationName: "PlaybackAccessToken_Template",
		Query:         playbackTokenQuery,
		Variables:     map[string]any{"login": login},
	})
	if err != nil {
		return nil, err
	}
	if data.Token == nil || data.Token.Value == nil {
		return nil, apperr.Upstream("Missing token value")
	}
	if data.Token.Signature == nil {
		return nil, apperr.Upstream("Missing token signature")
	}
	return &PlaybackGrant{Value: *data.Token.Value, Signature: *data.Token.Signature}, nil
}

// UsherURL builds the live master playlist URL for login.
func (s *Service) UsherURL(login string, grant *PlaybackGrant) string {
	return fmt.Sprintf(
		"%s%s.m3u8?allow_source=true&allow_audio_only=true&fast_bread=true&playlist_include_framerate=true&player_backend=mediaplayer&player=twitchweb&p=%d&sig=%s&token=%s",
		s.usherURL,
		proxy.Encode(login),
		s.ids.Intn(1000000),
		proxy.Encode(grant.Signature),
		proxy.Encode(grant.Value),
	)
}

// LiveMaster returns the channel's live master playlist with every media
// reference routed through the relay. login must already be normalized.
func (s *Service) LiveMaster(ctx context.Context, login string) (string, error) {
	playlist, err := s.liveMaster(ctx, login)
	metrics.RecordManifest("live_master", err)
	return playlist, err
}

func (s *Service) liveMaster(ctx context.Context, login string) (string, error) {
	if login == "" {
		return "", apperr.Validation("Missing channel login")
	}
	grant, err := s.FetchPlaybackGrant(ctx, login)
	if err != nil {
		return "", err
	}

	sourceURL := s.UsherURL(login, grant)
	resp, err := s.timedGet(ctx, sourceURL, s.fetchTimeout)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", apperr.Upstream("Twitch returned HTTP %d", resp.Status)
	}

	logging.CtxDebug(ctx).Str("login", login).Msg("Live master playlist fetched")
	return s.RewriteMaster(string(resp.Body), sourceURL), nil
}

// RewriteMaster replaces every media reference in a master playlist, bare
// line or URI attribute, with a relay path. References that cannot be
// registered are written as their absolute URL.
func (s *Service) RewriteMaster(master, sourceURL string) string {
	p := parsePlaylist(master)
	p.mapURIs(func(ref string) string {
		abs := MakeAbsolute(ref, sourceURL)
		path, err := s.registry.RegisterPath(abs)
		if err != nil {
			return abs
		}
		return path
	})
	return p.String()
}
