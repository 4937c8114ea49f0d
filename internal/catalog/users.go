// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package catalog

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/models"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

const userInfoTTL = 3600 * time.Second

var (
	userInfoQuery = `query UserInfo($login: String!) { user(login: $login) { id, login, displayName, profileImageURL(width: 300) } }`

	searchChannelsQuery = `query SearchChannels($query: String!) { searchFor(userQuery: $query, platform: "web") { channels { edges { item { ... on User { id, login, displayName, profileImageURL(width: 300) } } } } } }`

	searchGlobalQuery = `query SearchGlobal($query: String!) { searchFor(userQuery: $query, platform: "web") { channels { edges { item { ... on User { id, login, displayName, profileImageURL(width: 300), stream { id title viewersCount previewImageURL(width: 640, height: 360) }, __typename } } } }, games { edges { item { ... on Game { id, name, boxArtURL(width: 150, height: 200), __typename } } } } } }`
)

type userInfoSchema struct {
	User *upstream.UserNode `json:"user"`
}

type itemEdge[T any] struct {
	Item *T `json:"item"`
}

type searchSchema[T any] struct {
	SearchFor *struct {
		Channels *struct {
			Edges []itemEdge[T] `json:"edges"`
		} `json:"channels"`
		Games *struct {
			Edges []itemEdge[T] `json:"edges"`
		} `json:"games"`
	} `json:"searchFor"`
}

// UserInfo returns a channel's profile.
func (s *Service) UserInfo(ctx context.Context, login string) (models.UserInfo, error) {
	return cached(ctx, s, "user_"+login, userInfoTTL, func() (models.UserInfo, error) {
		data, err := query[userInfoSchema](ctx, s, upstream.Request{
			OperationName: "UserInfo",
			Query:         userInfoQuery,
			Variables:     map[string]any{"login": login},
		})
		if err != nil {
			return models.UserInfo{}, err
		}
		u, ok := data.User.User()
		if !ok {
			return models.UserInfo{}, apperr.NotFound("User not found")
		}
		return u, nil
	})
}

// SearchChannels returns channels matching q. Results without a login are
// dropped.
func (s *Service) SearchChannels(ctx context.Context, q string) ([]models.UserInfo, error) {
	data, err := query[searchSchema[upstream.UserNode]](ctx, s, upstream.Request{
		OperationName: "SearchChannels",
		Query:         searchChannelsQuery,
		Variables:     map[string]any{"query": q},
	})
	if err != nil {
		return nil, err
	}
	out := []models.UserInfo{}
	if data.SearchFor == nil || data.SearchFor.Channels == nil {
		return out, nil
	}
	for _, e := range data.SearchFor.Channels.Edges {
		if u, ok := e.Item.User(); ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// SearchGlobal returns matching categories followed by matching channels, as
// upstream returned them. Each item carries a __typename of Game or User.
func (s *Service) SearchGlobal(ctx context.Context, q string) ([]json.RawMessage, error) {
	data, err := query[searchSchema[json.RawMessage]](ctx, s, upstream.Request{
		OperationName: "SearchGlobal",
		Query:         searchGlobalQuery,
		Variables:     map[string]any{"query": q},
	})
	if err != nil {
		return nil, err
	}
	out := []json.RawMessage{}
	if data.SearchFor == nil {
		return out, nil
	}
	if games := data.SearchFor.Games; games != nil {
		out = appendItems(out, games.Edges)
	}
	if channels := data.SearchFor.Channels; channels != nil {
		out = appendItems(out, channels.Edges)
	}
	return out, nil
}

func appendItems(out []json.RawMessage, edges []itemEdge[json.RawMessage]) []json.RawMessage {
	for _, e := range edges {
		if e.Item == nil || isNullJSON(*e.Item) {
			continue
		}
		out = append(out, *e.Item)
	}
	return out
}
