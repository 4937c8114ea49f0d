// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/cache"
	"github.com/tomtom215/nosubvod/internal/clock"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

var testEpoch = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

// fakeGQL routes requests through handler and records them.
type fakeGQL struct {
	mu       sync.Mutex
	handler  func(req upstream.Request) (string, error)
	requests []upstream.Request
}

func (f *fakeGQL) Do(_ context.Context, req upstream.Request) (json.RawMessage, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	data, err := f.handler(req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (f *fakeGQL) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.OperationName == op {
			n++
		}
	}
	return n
}

func newTestService(handler func(req upstream.Request) (string, error)) (*Service, *fakeGQL, *clock.Manual) {
	clk := clock.NewManual(testEpoch)
	gql := &fakeGQL{handler: handler}
	return New(gql, cache.New[[]byte]("catalog", clk)), gql, clk
}

func videoJSON(id, login string) string {
	return fmt.Sprintf(`{"id":%q,"title":"Video %s","lengthSeconds":3600,"previewThumbnailURL":"https://x/%s.jpg","createdAt":"2026-03-01T00:00:00Z","viewCount":5,"language":"fr","game":{"name":"Just Chatting"},"owner":{"login":%q,"displayName":%q,"profileImageURL":"https://x/p.png"}}`, id, id, id, login, login)
}

func streamJSON(id, login string, viewers int) string {
	return fmt.Sprintf(`{"id":%q,"title":"Stream %s","viewersCount":%d,"previewImageURL":"https://x/%s.jpg","createdAt":"2026-03-20T10:00:00Z","language":"fr","game":{"id":"1","name":"Chess"},"broadcaster":{"id":"b%s","login":%q,"displayName":%q,"profileImageURL":"https://x/p.png"}}`, id, id, viewers, id, id, login, login)
}

func TestSimpleHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"a", "97"},
		{"ab", "3105"},
		{"hello", "99162322"},
		{"Just Chatting", "331889926"},
		{"zerator|kamet0", "772120713"},
		{"é😀", "135735"},
		{"polygenelubricants", "2147483648"},
		{strings.Repeat("x", 20000), "1180432384"},
	}
	for _, tt := range tests {
		if got := SimpleHash(tt.in); got != tt.want {
			t.Errorf("SimpleHash(%.20q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if SimpleHash(strings.Repeat("x", 10000)) != SimpleHash(strings.Repeat("x", 10001)) {
		t.Error("only the first 10000 runes should contribute")
	}
}

func TestNormalizeLogins(t *testing.T) {
	t.Parallel()

	got := NormalizeLogins([]string{" ZeratoR ", "zerator", "", "a", "bad-login", "kamet0", "x_y", strings.Repeat("z", 26)})
	want := []string{"zerator", "kamet0", "x_y"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("NormalizeLogins() = %v, want %v", got, want)
	}

	many := make([]string, 100)
	for i := range many {
		many[i] = fmt.Sprintf("user%03d", i)
	}
	if got := NormalizeLogins(many); len(got) != 80 || got[79] != "user079" {
		t.Errorf("expected the first 80 logins, got %d ending %q", len(got), got[len(got)-1])
	}
}

func TestUserInfo(t *testing.T) {
	t.Parallel()

	svc, gql, _ := newTestService(func(req upstream.Request) (string, error) {
		if req.Variables["login"] == "ghost" {
			return `{"user":null}`, nil
		}
		return `{"user":{"id":"1","login":"zerator","displayName":"ZeratoR","profileImageURL":"https://x/p.png"}}`, nil
	})
	ctx := context.Background()

	u, err := svc.UserInfo(ctx, "zerator")
	if err != nil || u.DisplayName != "ZeratoR" {
		t.Fatalf("UserInfo() = %+v, %v", u, err)
	}
	if _, err := svc.UserInfo(ctx, "zerator"); err != nil {
		t.Fatalf("cached UserInfo() error = %v", err)
	}
	if n := gql.count("UserInfo"); n != 1 {
		t.Errorf("expected 1 upstream call, got %d", n)
	}

	_, err = svc.UserInfo(ctx, "ghost")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, _ = svc.UserInfo(ctx, "ghost")
	if n := gql.count("UserInfo"); n != 3 {
		t.Errorf("not-found results must not be cached: %d calls", n)
	}
}

func TestUserVideos(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(func(req upstream.Request) (string, error) {
		if req.Variables["login"] == "ghost" {
			return `{"user":null}`, nil
		}
		if req.Variables["first"] != userVideosFirst {
			t.Errorf("first = %v", req.Variables["first"])
		}
		return `{"user":{"videos":{"edges":[{"node":` + videoJSON("1", "zerator") + `},{"node":null}]}}}`, nil
	})

	vods, err := svc.UserVideos(context.Background(), "zerator")
	if err != nil || len(vods) != 1 || vods[0].ID != "1" {
		t.Fatalf("UserVideos() = %+v, %v", vods, err)
	}
	if _, err := svc.UserVideos(context.Background(), "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserLive(t *testing.T) {
	t.Parallel()

	online := true
	svc, gql, clk := newTestService(func(req upstream.Request) (string, error) {
		if req.Variables["login"] == "offline" || !online {
			return `{"user":{"id":"2","login":"offline","stream":null}}`, nil
		}
		return `{"user":{"id":"1","login":"zerator","displayName":"ZeratoR","stream":{"id":"s1","title":null,"viewersCount":10,"createdAt":"2026-03-20T10:00:00Z","game":{"id":"9","name":"Chess","boxArtURL":"https://x/b.jpg"}}}}`, nil
	})
	ctx := context.Background()

	ls, err := svc.UserLive(ctx, "  ZeratoR ")
	if err != nil || ls == nil {
		t.Fatalf("UserLive() = %v, %v", ls, err)
	}
	if ls.Title != "Live stream" || ls.Broadcaster.DisplayName != "ZeratoR" || ls.Game.BoxArtURL == nil {
		t.Errorf("unexpected stream: %+v", ls)
	}

	online = false
	clk.Advance(19 * time.Second)
	if ls, _ := svc.UserLive(ctx, "zerator"); ls == nil {
		t.Error("live entry should still be cached at 19s")
	}
	clk.Advance(time.Second)
	if ls, _ := svc.UserLive(ctx, "zerator"); ls != nil {
		t.Error("live entry should expire at 20s")
	}

	if ls, err := svc.UserLive(ctx, "offline"); ls != nil || err != nil {
		t.Fatalf("offline UserLive() = %v, %v", ls, err)
	}
	calls := gql.count("UserLive")
	clk.Advance(24 * time.Second)
	_, _ = svc.UserLive(ctx, "offline")
	if gql.count("UserLive") != calls {
		t.Error("offline result should be cached for 25s")
	}
	clk.Advance(time.Second)
	_, _ = svc.UserLive(ctx, "offline")
	if gql.count("UserLive") != calls+1 {
		t.Error("offline result should expire at 25s")
	}

	if ls, err := svc.UserLive(ctx, "   "); ls != nil || err != nil {
		t.Errorf("blank login should be nil, nil; got %v, %v", ls, err)
	}
}

func TestLiveStatus(t *testing.T) {
	t.Parallel()

	svc, gql, _ := newTestService(func(req upstream.Request) (string, error) {
		switch req.Variables["login"] {
		case "zerator":
			return `{"user":{"id":"1","login":"zerator","stream":` + streamJSON("s1", "zerator", 10) + `}}`, nil
		case "broken":
			return "", apperr.Upstream("Twitch API HTTP 500")
		default:
			return `{"user":null}`, nil
		}
	})

	got := svc.LiveStatus(context.Background(), []string{"ZERATOR", "broken", "offline", "no way", "zerator"})
	if len(got) != 1 {
		t.Fatalf("expected only zerator, got %v", got)
	}
	if got["zerator"].ID != "s1" {
		t.Errorf("unexpected entry: %+v", got["zerator"])
	}
	if n := gql.count("UserLive"); n != 3 {
		t.Errorf("expected 3 lookups for 3 valid logins, got %d", n)
	}

	_ = svc.LiveStatus(context.Background(), []string{"offline", "zerator", "broken"})
	if n := gql.count("UserLive"); n != 3 {
		t.Errorf("same login set in another order should hit the cache, got %d calls", n)
	}

	if got := svc.LiveStatus(context.Background(), []string{"", "!"}); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestLiveStreams(t *testing.T) {
	t.Parallel()

	svc, gql, _ := newTestService(func(req upstream.Request) (string, error) {
		if req.Variables["first"] != 48 {
			t.Errorf("first = %v, want clamp to 48", req.Variables["first"])
		}
		if _, ok := req.Variables["after"]; ok {
			t.Error("after must be omitted without a cursor")
		}
		return `{"streams":{"edges":[
			{"cursor":"c1","node":` + streamJSON("s1", "zerator", 10) + `},
			{"cursor":"c2","node":{"id":"s2","broadcaster":null}},
			{"cursor":"c3","node":` + streamJSON("s3", "kamet0", 5) + `}
		],"pageInfo":{"hasNextPage":true}}}`, nil
	})

	page, err := svc.LiveStreams(context.Background(), 500, "  ")
	if err != nil {
		t.Fatalf("LiveStreams() error = %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected streams without broadcaster to be dropped, got %d", len(page.Items))
	}
	if !page.HasMore || page.NextCursor == nil || *page.NextCursor != "c3" {
		t.Errorf("unexpected pagination: %+v", page)
	}
	if page.Items[0].Game == nil || page.Items[0].Game.Name != "Chess" {
		t.Errorf("expected the stream's own game, got %+v", page.Items[0].Game)
	}

	_, _ = svc.LiveStreams(context.Background(), 48, "")
	if n := gql.count("LiveStreams"); n != 1 {
		t.Errorf("expected cache hit for live_streams_48_first, got %d calls", n)
	}
}

func TestLiveByCategory(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(func(req upstream.Request) (string, error) {
		if req.Variables["first"] != 4 || req.Variables["after"] != "abc" {
			t.Errorf("unexpected variables: %v", req.Variables)
		}
		return `{"game":{"streams":{"edges":[{"cursor":"c1","node":` + streamJSON("s1", "zerator", 10) + `}],"pageInfo":{"hasNextPage":false}}}}`, nil
	})

	page, err := svc.LiveByCategory(context.Background(), "Just Chatting", 1, " abc ")
	if err != nil {
		t.Fatalf("LiveByCategory() error = %v", err)
	}
	if len(page.Items) != 1 || page.HasMore || page.NextCursor != nil {
		t.Fatalf("unexpected page: %+v", page)
	}
	g := page.Items[0].Game
	if g == nil || g.Name != "Just Chatting" || g.ID != nil || g.BoxArtURL != nil {
		t.Errorf("category name should replace the game, got %+v", g)
	}
}

func TestLiveByCategory_UnknownGame(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(func(upstream.Request) (string, error) {
		return `{"game":null}`, nil
	})
	page, err := svc.LiveByCategory(context.Background(), "Nope", 24, "")
	if err != nil || page.Items == nil || len(page.Items) != 0 {
		t.Errorf("expected empty page, got %+v, %v", page, err)
	}
}

func TestSearchLive(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(func(req upstream.Request) (string, error) {
		switch req.OperationName {
		case "CategoryStreams":
			return `{"game":{"streams":{"edges":[
				{"node":` + streamJSON("s1", "zerator", 10) + `},
				{"node":` + streamJSON("s2", "kamet0", 500) + `}
			]}}}`, nil
		case "SearchLiveChannels":
			return `{"searchFor":{"results":[
				{"item":{"id":"u1","login":"zerator","displayName":"ZeratoR","stream":` + streamJSON("s1", "zerator", 10) + `}},
				{"item":{"id":"u3","login":"chess_fan","stream":` + streamJSON("s3", "ignored", 100) + `}},
				{"item":{"id":"u4","login":"idle","stream":null}},
				{"item":null}
			]}}`, nil
		}
		return "null", nil
	})

	page, err := svc.SearchLive(context.Background(), "chess", 24)
	if err != nil {
		t.Fatalf("SearchLive() error = %v", err)
	}
	var ids []string
	for _, ls := range page.Items {
		ids = append(ids, ls.ID)
	}
	if strings.Join(ids, ",") != "s2,s3,s1" {
		t.Errorf("expected deduped viewer-desc order s2,s3,s1; got %v", ids)
	}
	for _, ls := range page.Items {
		if ls.ID == "s3" && ls.Broadcaster.Login != "chess_fan" {
			t.Errorf("channel results take the searched user as broadcaster, got %+v", ls.Broadcaster)
		}
		if ls.ID == "s1" && ls.Game.Name != "chess" {
			t.Errorf("category results carry the query as game name, got %+v", ls.Game)
		}
	}
	if page.HasMore || page.NextCursor != nil {
		t.Error("search results are never paginated")
	}
}

func TestSearchLive_PartialFailure(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(func(req upstream.Request) (string, error) {
		if req.OperationName == "CategoryStreams" {
			return "", apperr.Upstream("Twitch API HTTP 500")
		}
		return `{"searchFor":{"results":[{"item":{"id":"u1","login":"zerator","stream":` + streamJSON("s1", "x", 1) + `}}]}}`, nil
	})

	page, err := svc.SearchLive(context.Background(), "zera", 24)
	if err != nil || len(page.Items) != 1 {
		t.Errorf("expected channel results despite category failure, got %+v, %v", page, err)
	}
}

func TestCategoryVideos(t *testing.T) {
	t.Parallel()

	svc, gql, _ := newTestService(func(req upstream.Request) (string, error) {
		if req.Variables["name"] == "broken" {
			return "", apperr.Upstream("Twitch API HTTP 502")
		}
		if req.Variables["first"] != 50 {
			t.Errorf("first = %v, want 50", req.Variables["first"])
		}
		return `{"game":{"videos":{"edges":[{"cursor":"a","node":` + videoJSON("1", "zerator") + `},{"cursor":"b","node":` + videoJSON("2", "kamet0") + `}],"pageInfo":{"hasNextPage":true}}}}`, nil
	})
	ctx := context.Background()

	page := svc.CategoryVideos(ctx, "Chess", 99, "")
	if len(page.Items) != 2 || !page.HasMore || page.NextCursor == nil || *page.NextCursor != "b" {
		t.Errorf("unexpected page: %+v", page)
	}

	page = svc.CategoryVideos(ctx, "broken", 36, "")
	if len(page.Items) != 0 || page.HasMore || page.NextCursor != nil {
		t.Errorf("upstream failure should yield an empty page, got %+v", page)
	}

	before := gql.count("CategoryVideos")
	page = svc.CategoryVideos(ctx, "  ", 36, "")
	if page.Items == nil || len(page.Items) != 0 || gql.count("CategoryVideos") != before {
		t.Errorf("blank name should short-circuit, got %+v", page)
	}
}

func TestGameVideos(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(func(req upstream.Request) (string, error) {
		langs, hasLangs := req.Variables["languages"]
		if req.Variables["name"] == "French" {
			if !hasLangs || fmt.Sprint(langs) != "[fr]" {
				t.Errorf("languages = %v", langs)
			}
		} else if hasLangs {
			t.Error("languages must be omitted when unrestricted")
		}
		if req.Variables["name"] == "broken" {
			return "", apperr.Upstream("x")
		}
		return `{"game":{"videos":{"edges":[{"node":` + videoJSON("1", "zerator") + `}]}}}`, nil
	})
	ctx := context.Background()

	if got := svc.GameVideos(ctx, "French", []string{"fr"}, 18); len(got) != 1 {
		t.Errorf("expected 1 video, got %d", len(got))
	}
	if got := svc.GameVideos(ctx, "Chess", nil, 18); len(got) != 1 {
		t.Errorf("expected 1 video, got %d", len(got))
	}
	if got := svc.GameVideos(ctx, "broken", nil, 18); got == nil || len(got) != 0 {
		t.Errorf("expected empty list on failure, got %v", got)
	}
}

func TestVideosByIDs(t *testing.T) {
	t.Parallel()

	var query string
	svc, gql, _ := newTestService(func(req upstream.Request) (string, error) {
		query = req.Query
		return `{"v0":` + videoJSON("30", "a") + `,"v1":null,"v2":` + videoJSON("10", "c") + `}`, nil
	})

	got := svc.VideosByIDs(context.Background(), []string{" 30 ", "abc", "", "20", "1\"}", "10"})
	if len(got) != 2 || got[0].ID != "30" || got[1].ID != "10" {
		t.Fatalf("expected [30 10] in input order, got %+v", got)
	}
	if !strings.Contains(query, `v0: video(id: "30")`) || !strings.Contains(query, `v2: video(id: "10")`) || strings.Contains(query, "abc") {
		t.Errorf("unexpected query: %s", query)
	}

	if got := svc.VideosByIDs(context.Background(), []string{"x", "y"}); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if n := len(gql.requests); n != 1 {
		t.Errorf("no query should be sent without numeric ids, got %d requests", n)
	}

	many := make([]string, 40)
	for i := range many {
		many[i] = fmt.Sprint(i + 1)
	}
	_ = svc.VideosByIDs(context.Background(), many)
	if strings.Contains(query, "v30:") || !strings.Contains(query, "v29:") {
		t.Error("expected at most 30 aliases")
	}
}

func TestVideoChat(t *testing.T) {
	t.Parallel()

	svc, gql, _ := newTestService(func(req upstream.Request) (string, error) {
		if req.Variables["id"] == "empty" {
			return `{"video":{"comments":null}}`, nil
		}
		return `{"video":{"comments":{"edges":[{"node":{"id":"m1","contentOffsetSeconds":12}},{"node":{"id":"m2"}}],"pageInfo":{"hasNextPage":true}}}}`, nil
	})

	page, err := svc.VideoChat(context.Background(), "2001", 12.9)
	if err != nil {
		t.Fatalf("VideoChat() error = %v", err)
	}
	if len(page.Messages) != 2 || !page.HasNextPage {
		t.Errorf("unexpected page: %+v", page)
	}
	if gql.requests[0].Variables["offset"] != int64(12) {
		t.Errorf("offset = %v, want floor 12", gql.requests[0].Variables["offset"])
	}

	page, err = svc.VideoChat(context.Background(), "empty", 0)
	if err != nil || len(page.Messages) != 0 || page.HasNextPage {
		t.Errorf("expected empty page, got %+v, %v", page, err)
	}
	out, _ := json.Marshal(page)
	if string(out) != `{"messages":[],"hasNextPage":false}` {
		t.Errorf("empty page JSON = %s", out)
	}
}

func TestVideoMarkers(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(func(req upstream.Request) (string, error) {
		if req.Variables["id"] == "none" {
			return `{"video":{"markers":null}}`, nil
		}
		return `{"video":{"markers":[{"id":"m","displayTime":60,"description":"Boss","type":"GAME_CHANGE"}]}}`, nil
	})

	got, err := svc.VideoMarkers(context.Background(), "none")
	if err != nil || string(got) != "[]" {
		t.Errorf("VideoMarkers(none) = %s, %v", got, err)
	}
	got, err = svc.VideoMarkers(context.Background(), "2001")
	if err != nil || !strings.Contains(string(got), "Boss") {
		t.Errorf("VideoMarkers() = %s, %v", got, err)
	}
}

func TestTopCategories(t *testing.T) {
	t.Parallel()

	svc, gql, clk := newTestService(func(upstream.Request) (string, error) {
		return `{"topGames":{"edges":[{"node":{"id":"1","name":"Just Chatting","boxArtURL":"https://x/jc.jpg"}},{"node":null},{"node":{"id":"2","name":"Chess"}}]}}`, nil
	})
	ctx := context.Background()

	got, err := svc.TopCategories(ctx)
	if err != nil || len(got) != 2 || got[1].BoxArtURL != "" {
		t.Fatalf("TopCategories() = %+v, %v", got, err)
	}
	clk.Advance(119 * time.Second)
	_, _ = svc.TopCategories(ctx)
	clk.Advance(time.Second)
	_, _ = svc.TopCategories(ctx)
	if n := gql.count("TopCategories"); n != 2 {
		t.Errorf("expected 2 upstream calls across the 120s TTL, got %d", n)
	}
}

func TestSearchChannelsAndGlobal(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(func(req upstream.Request) (string, error) {
		return `{"searchFor":{
			"channels":{"edges":[{"item":{"id":"1","login":"zerator","__typename":"User"}},{"item":null},{"item":{"id":"2","login":""}}]},
			"games":{"edges":[{"item":{"id":"g","name":"Chess","__typename":"Game"}},{"item":null}]}
		}}`, nil
	})
	ctx := context.Background()

	users, err := svc.SearchChannels(ctx, "zera")
	if err != nil || len(users) != 1 || users[0].Login != "zerator" {
		t.Errorf("SearchChannels() = %+v, %v", users, err)
	}

	items, err := svc.SearchGlobal(ctx, "zera")
	if err != nil {
		t.Fatalf("SearchGlobal() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected games then channels without nulls, got %d items", len(items))
	}
	if !strings.Contains(string(items[0]), `"Game"`) || !strings.Contains(string(items[1]), `"zerator"`) {
		t.Errorf("unexpected order: %s", items)
	}
}
