// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package catalog

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/models"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

const (
	userVideosTTL = 600 * time.Second

	// MaxBatchIDs bounds VideosByIDs.
	MaxBatchIDs = 30

	userVideosFirst = 30
)

var (
	gameVideosQuery = `query GameVideos($name: String!, $first: Int!, $languages: [String!]) { game(name: $name) { videos(first: $first, languages: $languages) { edges { node { ` + upstream.VideoFields + ` } } } } }`

	categoryVideosQuery = `query CategoryVideos($name: String!, $first: Int!, $after: Cursor) { game(name: $name) { videos(first: $first, after: $after) { edges { cursor node { ` + upstream.VideoFields + ` } } pageInfo { hasNextPage } } } }`

	userVideosQuery = `query UserVideos($login: String!, $first: Int!) { user(login: $login) { videos(first: $first) { edges { node { ` + upstream.VideoFields + ` } } } } }`

	chatQuery = `query VideoComments($id: ID!, $offset: Int!) { video(id: $id) { comments(contentOffsetSeconds: $offset) { edges { node { id, commenter { displayName, login, profileImageURL(width: 50) }, message { fragments { text, emote { id, setID } } }, contentOffsetSeconds, createdAt } }, pageInfo { hasNextPage } } } }`

	markersQuery = `query VideoMarkers($id: ID!) { video(id: $id) { markers { id, displayTime, description, type } } }`
)

type gameVideosSchema struct {
	Game *struct {
		Videos *upstream.Connection[upstream.VideoNode] `json:"videos"`
	} `json:"game"`
}

type userVideosSchema struct {
	User *struct {
		Videos *upstream.Connection[upstream.VideoNode] `json:"videos"`
	} `json:"user"`
}

// ChatPage is a window of chat replay messages. Messages are passed through
// as the upstream returned them.
type ChatPage struct {
	Messages    []json.RawMessage `json:"messages"`
	HasNextPage bool              `json:"hasNextPage"`
}

type chatSchema struct {
	Video *struct {
		Comments *upstream.Connection[json.RawMessage] `json:"comments"`
	} `json:"video"`
}

type markersSchema struct {
	Video *struct {
		Markers json.RawMessage `json:"markers"`
	} `json:"video"`
}

// GameVideos lists a category's videos, optionally restricted to languages.
// Upstream failures yield an empty list.
func (s *Service) GameVideos(ctx context.Context, game string, languages []string, first int) []models.Video {
	vars := map[string]any{"name": game, "first": first}
	if len(languages) > 0 {
		vars["languages"] = languages
	}
	data, err := query[gameVideosSchema](ctx, s, upstream.Request{
		OperationName: "GameVideos",
		Query:         gameVideosQuery,
		Variables:     vars,
	})
	if err != nil {
		logging.CtxWarn(ctx).Err(err).Str("game", game).Msg("Game videos unavailable")
		return []models.Video{}
	}
	if data.Game == nil {
		return []models.Video{}
	}
	return upstream.Videos(data.Game.Videos)
}

// CategoryVideos returns one page of a category's videos. first is clamped
// to 4..50 and after is trimmed. Upstream failures yield an empty page.
func (s *Service) CategoryVideos(ctx context.Context, game string, first int, after string) models.VideoPage {
	empty := models.VideoPage{Items: []models.Video{}}
	if strings.TrimSpace(game) == "" {
		return empty
	}

	after = strings.TrimSpace(after)
	data, err := query[gameVideosSchema](ctx, s, upstream.Request{
		OperationName: "CategoryVideos",
		Query:         categoryVideosQuery,
		Variables:     withAfter(map[string]any{"name": game, "first": clampInt(first, 4, 50)}, after),
	})
	if err != nil {
		logging.CtxWarn(ctx).Err(err).Str("game", game).Msg("Category videos unavailable")
		return empty
	}
	if data.Game == nil || data.Game.Videos == nil {
		return empty
	}

	conn := data.Game.Videos
	page := models.VideoPage{Items: upstream.Videos(conn), HasMore: conn.HasNext()}
	if page.HasMore {
		page.NextCursor = conn.LastCursor()
	}
	return page
}

// VideosByIDs looks up to MaxBatchIDs videos in one aliased query. Ids that
// are not purely numeric are skipped, as are videos that no longer exist.
// Results follow the order of ids. Upstream failures yield an empty list.
func (s *Service) VideosByIDs(ctx context.Context, ids []string) []models.Video {
	safe := make([]string, 0, MaxBatchIDs)
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || !isDigits(id) {
			continue
		}
		safe = append(safe, id)
		if len(safe) == MaxBatchIDs {
			break
		}
	}
	if len(safe) == 0 {
		return []models.Video{}
	}

	var b strings.Builder
	b.WriteString("query VideosByID {")
	for i, id := range safe {
		fmt.Fprintf(&b, " v%d: video(id: %s) { %s }", i, upstream.Quote(id), upstream.VideoFields)
	}
	b.WriteString(" }")

	data, err := query[map[string]*upstream.VideoNode](ctx, s, upstream.Request{
		OperationName: "VideosByID",
		Query:         b.String(),
	})
	if err != nil {
		logging.CtxWarn(ctx).Err(err).Int("ids", len(safe)).Msg("Video batch lookup failed")
		return []models.Video{}
	}

	out := make([]models.Video, 0, len(safe))
	for i := range safe {
		if v, ok := (*data)[fmt.Sprintf("v%d", i)].Video(); ok {
			out = append(out, v)
		}
	}
	return out
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// UserVideos returns a channel's 30 most recent videos.
func (s *Service) UserVideos(ctx context.Context, login string) ([]models.Video, error) {
	return cached(ctx, s, "vods_"+login, userVideosTTL, func() ([]models.Video, error) {
		data, err := query[userVideosSchema](ctx, s, upstream.Request{
			OperationName: "UserVideos",
			Query:         userVideosQuery,
			Variables:     map[string]any{"login": login, "first": userVideosFirst},
		})
		if err != nil {
			return nil, err
		}
		if data.User == nil {
			return nil, apperr.NotFound("User not found")
		}
		return upstream.Videos(data.User.Videos), nil
	})
}

// VideoChat returns chat replay starting at offset seconds (floored).
func (s *Service) VideoChat(ctx context.Context, id string, offset float64) (*ChatPage, error) {
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		offset = 0
	}
	data, err := query[chatSchema](ctx, s, upstream.Request{
		OperationName: "VideoComments",
		Query:         chatQuery,
		Variables:     map[string]any{"id": id, "offset": int64(math.Floor(offset))},
	})
	if err != nil {
		return nil, err
	}

	page := &ChatPage{Messages: []json.RawMessage{}}
	if data.Video == nil || data.Video.Comments == nil {
		return page, nil
	}
	for _, e := range data.Video.Comments.Edges {
		if e.Node != nil {
			page.Messages = append(page.Messages, *e.Node)
		}
	}
	page.HasNextPage = data.Video.Comments.HasNext()
	return page, nil
}

// VideoMarkers returns a video's chapter markers as upstream returned them,
// or an empty array.
func (s *Service) VideoMarkers(ctx context.Context, id string) (json.RawMessage, error) {
	data, err := query[markersSchema](ctx, s, upstream.Request{
		OperationName: "VideoMarkers",
		Query:         markersQuery,
		Variables:     map[string]any{"id": id},
	})
	if err != nil {
		return nil, err
	}
	if data.Video == nil || isNullJSON(data.Video.Markers) {
		return json.RawMessage("[]"), nil
	}
	return data.Video.Markers, nil
}

func isNullJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
