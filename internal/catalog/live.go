// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package catalog

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/models"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

const (
	topCategoriesTTL  = 120 * time.Second
	liveStreamsTTL    = 25 * time.Second
	liveSearchTTL     = 30 * time.Second
	userLiveTTL       = 20 * time.Second
	userOfflineTTL    = 25 * time.Second
	liveStatusTTL     = 18 * time.Second
	maxStatusLogins   = 80
	statusConcurrency = 8
)

var loginPattern = regexp.MustCompile(`^[a-z0-9_]{2,25}$`)

var (
	topCategoriesQuery = `query TopCategories { topGames(first: 5) { edges { node { id name boxArtURL(width: 80, height: 107) } } } }`

	liveStreamsQuery = `query LiveStreams($first: Int!, $after: Cursor) { streams(first: $first, after: $after) { edges { cursor node { ` + upstream.StreamFields + ` type game { id name boxArtURL(width: 110, height: 147) } broadcaster { ` + upstream.BroadcasterFields + ` } } } pageInfo { hasNextPage } } }`

	categoryStreamsQuery = `query CategoryStreams($name: String!, $first: Int!, $after: Cursor) { game(name: $name) { streams(first: $first, after: $after) { edges { cursor node { ` + upstream.StreamFields + ` broadcaster { ` + upstream.BroadcasterFields + ` } } } pageInfo { hasNextPage } } } }`

	channelStreamsQuery = `query SearchLiveChannels($query: String!, $first: Int!) { searchFor(userQuery: $query, target: { index: "CHANNEL" }, first: $first) { results { item { ... on User { ` + upstream.BroadcasterFields + ` stream { ` + upstream.StreamFields + ` game { id name } } } } } } }`

	userLiveQuery = `query UserLive($login: String!) { user(login: $login) { ` + upstream.BroadcasterFields + ` stream { ` + upstream.StreamFields + ` game { id name boxArtURL(width: 110, height: 147) } } } }`
)

type topCategoriesSchema struct {
	TopGames *upstream.Connection[upstream.GameRef] `json:"topGames"`
}

type liveStreamsSchema struct {
	Streams *upstream.Connection[upstream.StreamNode] `json:"streams"`
}

type categoryStreamsSchema struct {
	Game *struct {
		Streams *upstream.Connection[upstream.StreamNode] `json:"streams"`
	} `json:"game"`
}

type channelStreamsSchema struct {
	SearchFor *struct {
		Results []struct {
			Item *upstream.UserNode `json:"item"`
		} `json:"results"`
	} `json:"searchFor"`
}

type userLiveSchema struct {
	User *upstream.UserNode `json:"user"`
}

// TopCategories returns the five most watched categories.
func (s *Service) TopCategories(ctx context.Context) ([]models.Category, error) {
	return cached(ctx, s, "top_live_categories", topCategoriesTTL, func() ([]models.Category, error) {
		data, err := query[topCategoriesSchema](ctx, s, upstream.Request{
			OperationName: "TopCategories",
			Query:         topCategoriesQuery,
		})
		if err != nil {
			return nil, err
		}
		out := []models.Category{}
		if data.TopGames == nil {
			return out, nil
		}
		for _, e := range data.TopGames.Edges {
			if e.Node == nil {
				continue
			}
			out = append(out, models.Category{
				ID:        deref(e.Node.ID),
				Name:      deref(e.Node.Name),
				BoxArtURL: deref(e.Node.BoxArtURL),
			})
		}
		return out, nil
	})
}

// LiveStreams returns one page of the platform-wide live directory.
// first is clamped to 8..48.
func (s *Service) LiveStreams(ctx context.Context, first int, after string) (models.LiveStreamsPage, error) {
	first = clampInt(first, 8, 48)
	after = strings.TrimSpace(after)
	key := fmt.Sprintf("live_streams_%d_%s", first, cursorKey(after))

	return cached(ctx, s, key, liveStreamsTTL, func() (models.LiveStreamsPage, error) {
		data, err := query[liveStreamsSchema](ctx, s, upstream.Request{
			OperationName: "LiveStreams",
			Query:         liveStreamsQuery,
			Variables:     withAfter(map[string]any{"first": first}, after),
		})
		if err != nil {
			return models.LiveStreamsPage{}, err
		}
		return streamsPage(data.Streams, nil), nil
	})
}

// LiveByCategory returns one page of a category's live streams.
// first is clamped to 4..48.
func (s *Service) LiveByCategory(ctx context.Context, name string, first int, after string) (models.LiveStreamsPage, error) {
	first = clampInt(first, 4, 48)
	after = strings.TrimSpace(after)
	key := fmt.Sprintf("live_cat_%s_%s_%d", SimpleHash(name), cursorKey(after), first)

	return cached(ctx, s, key, liveStreamsTTL, func() (models.LiveStreamsPage, error) {
		conn, err := s.categoryStreams(ctx, name, first, after)
		if err != nil {
			return models.LiveStreamsPage{}, err
		}
		return streamsPage(conn, &models.LiveGame{Name: name}), nil
	})
}

func (s *Service) categoryStreams(ctx context.Context, name string, first int, after string) (*upstream.Connection[upstream.StreamNode], error) {
	data, err := query[categoryStreamsSchema](ctx, s, upstream.Request{
		OperationName: "CategoryStreams",
		Query:         categoryStreamsQuery,
		Variables:     withAfter(map[string]any{"name": name, "first": first}, after),
	})
	if err != nil {
		return nil, err
	}
	if data.Game == nil {
		return nil, nil
	}
	return data.Game.Streams, nil
}

// streamsPage converts a stream connection, dropping streams without a
// broadcaster login. A non-nil game replaces each stream's category.
func streamsPage(conn *upstream.Connection[upstream.StreamNode], game *models.LiveGame) models.LiveStreamsPage {
	page := models.LiveStreamsPage{Items: []models.LiveStream{}}
	if conn == nil {
		return page
	}
	for _, e := range conn.Edges {
		if !e.Node.HasBroadcaster() {
			continue
		}
		ls := e.Node.Live(nil, "")
		if game != nil {
			g := *game
			ls.Game = &g
		}
		page.Items = append(page.Items, ls)
	}
	cursor := conn.LastCursor()
	if conn.HasNext() && cursor != nil {
		page.NextCursor = cursor
		page.HasMore = true
	}
	return page
}

// SearchLive finds live streams whose category is named q or whose channel
// matches q. Both searches run concurrently; either may fail without failing
// the whole search. Results are deduplicated by stream id and sorted by
// viewer count, highest first.
func (s *Service) SearchLive(ctx context.Context, q string, first int) (models.LiveStreamsPage, error) {
	first = clampInt(first, 4, 48)
	key := fmt.Sprintf("live_search_%s_%d", SimpleHash(q), first)

	return cached(ctx, s, key, liveSearchTTL, func() (models.LiveStreamsPage, error) {
		var (
			byCategory *upstream.Connection[upstream.StreamNode]
			byChannel  *channelStreamsSchema
		)

		var g errgroup.Group
		g.Go(func() error {
			conn, err := s.categoryStreams(ctx, q, first, "")
			if err != nil {
				logging.CtxWarn(ctx).Err(err).Msg("Live category search failed")
				return nil
			}
			byCategory = conn
			return nil
		})
		g.Go(func() error {
			data, err := query[channelStreamsSchema](ctx, s, upstream.Request{
				OperationName: "SearchLiveChannels",
				Query:         channelStreamsQuery,
				Variables:     map[string]any{"query": q, "first": first},
			})
			if err != nil {
				logging.CtxWarn(ctx).Err(err).Msg("Live channel search failed")
				return nil
			}
			byChannel = data
			return nil
		})
		_ = g.Wait()

		seen := make(map[string]bool)
		items := []models.LiveStream{}
		if byCategory != nil {
			for _, e := range byCategory.Edges {
				if !e.Node.HasBroadcaster() {
					continue
				}
				ls := e.Node.Live(nil, "")
				if ls.ID == "" || seen[ls.ID] {
					continue
				}
				seen[ls.ID] = true
				ls.Game = &models.LiveGame{Name: q}
				items = append(items, ls)
			}
		}
		if byChannel != nil && byChannel.SearchFor != nil {
			for _, r := range byChannel.SearchFor.Results {
				if r.Item == nil || r.Item.Stream == nil {
					continue
				}
				ls := r.Item.Stream.Live(r.Item, "")
				if ls.ID == "" || seen[ls.ID] {
					continue
				}
				seen[ls.ID] = true
				items = append(items, ls)
			}
		}

		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ViewerCount > items[j].ViewerCount
		})
		return models.LiveStreamsPage{Items: items}, nil
	})
}

// UserLive returns the channel's current stream, or nil when it is offline
// or does not exist. login is trimmed and lower-cased.
func (s *Service) UserLive(ctx context.Context, login string) (*models.LiveStream, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" {
		return nil, nil
	}

	key := "live_user_" + login
	if payload, ok := s.cache.Get(key); ok {
		if isNullJSON(payload) {
			return nil, nil
		}
		var ls models.LiveStream
		if err := json.Unmarshal(payload, &ls); err == nil {
			return &ls, nil
		}
	}

	data, err := query[userLiveSchema](ctx, s, upstream.Request{
		OperationName: "UserLive",
		Query:         userLiveQuery,
		Variables:     map[string]any{"login": login},
	})
	if err != nil {
		return nil, err
	}
	if data.User == nil || data.User.Stream == nil {
		s.cache.Set(key, []byte("null"), userOfflineTTL)
		return nil, nil
	}

	ls := data.User.Stream.Live(data.User, login)
	s.store(ctx, key, ls, userLiveTTL)
	return &ls, nil
}

// NormalizeLogins trims and lower-cases logins, drops anything that is not a
// valid channel login, removes duplicates and keeps at most the first 80.
func NormalizeLogins(logins []string) []string {
	seen := make(map[string]bool, len(logins))
	out := make([]string, 0, len(logins))
	for _, l := range logins {
		l = strings.ToLower(strings.TrimSpace(l))
		if !loginPattern.MatchString(l) || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
		if len(out) == maxStatusLogins {
			break
		}
	}
	return out
}

// LiveStatus reports which of logins are live right now. Lookups run
// concurrently; a failed lookup only drops that login from the result.
func (s *Service) LiveStatus(ctx context.Context, logins []string) models.LiveStatusMap {
	normalized := NormalizeLogins(logins)
	if len(normalized) == 0 {
		return models.LiveStatusMap{}
	}

	sorted := append([]string(nil), normalized...)
	sort.Strings(sorted)
	key := "live_status_" + SimpleHash(strings.Join(sorted, "|"))

	result, _ := cached(ctx, s, key, liveStatusTTL, func() (models.LiveStatusMap, error) {
		var (
			mu  sync.Mutex
			out = models.LiveStatusMap{}
		)
		var g errgroup.Group
		g.SetLimit(statusConcurrency)
		for _, login := range normalized {
			g.Go(func() error {
				ls, err := s.UserLive(ctx, login)
				if err != nil {
					logging.CtxDebug(ctx).Err(err).Str("login", login).Msg("Live status lookup failed")
					return nil
				}
				if ls != nil {
					mu.Lock()
					out[login] = *ls
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()
		return out, nil
	})
	return result
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
