// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/catalog"
	"github.com/tomtom215/nosubvod/internal/clock"
	"github.com/tomtom215/nosubvod/internal/models"
	"github.com/tomtom215/nosubvod/internal/store"
)

var testEpoch = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

// fakeCatalog returns canned data and records the arguments it was given.
type fakeCatalog struct {
	mu sync.Mutex

	videos  map[string]models.Video
	users   map[string]models.UserInfo
	userErr error
	liveErr error

	lastFirst  int
	lastAfter  string
	lastOffset float64
	batches    [][]string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		videos: map[string]models.Video{},
		users:  map[string]models.UserInfo{},
	}
}

func (f *fakeCatalog) record(first int, after string) {
	f.mu.Lock()
	f.lastFirst, f.lastAfter = first, after
	f.mu.Unlock()
}

func (f *fakeCatalog) VideoChat(_ context.Context, id string, offset float64) (*catalog.ChatPage, error) {
	f.mu.Lock()
	f.lastOffset = offset
	f.mu.Unlock()
	if _, ok := f.videos[id]; !ok {
		return nil, apperr.NotFound("Video not found")
	}
	return &catalog.ChatPage{Messages: []json.RawMessage{json.RawMessage(`{"id":"c1"}`)}, HasNextPage: true}, nil
}

func (f *fakeCatalog) VideoMarkers(_ context.Context, _ string) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (f *fakeCatalog) VideosByIDs(_ context.Context, ids []string) []models.Video {
	f.mu.Lock()
	f.batches = append(f.batches, append([]string(nil), ids...))
	f.mu.Unlock()
	out := []models.Video{}
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (f *fakeCatalog) CategoryVideos(_ context.Context, _ string, first int, after string) models.VideoPage {
	f.record(first, after)
	return models.VideoPage{Items: []models.Video{{ID: "1"}}}
}

func (f *fakeCatalog) TopCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}

func (f *fakeCatalog) LiveStreams(_ context.Context, first int, after string) (models.LiveStreamsPage, error) {
	f.record(first, after)
	if f.liveErr != nil {
		return models.LiveStreamsPage{}, f.liveErr
	}
	return models.LiveStreamsPage{Items: []models.LiveStream{}}, nil
}

func (f *fakeCatalog) LiveByCategory(_ context.Context, _ string, first int, after string) (models.LiveStreamsPage, error) {
	f.record(first, after)
	return models.LiveStreamsPage{Items: []models.LiveStream{}}, nil
}

func (f *fakeCatalog) SearchLive(_ context.Context, _ string, first int) (models.LiveStreamsPage, error) {
	f.record(first, "")
	return models.LiveStreamsPage{Items: []models.LiveStream{}}, nil
}

func (f *fakeCatalog) LiveStatus(_ context.Context, logins []string) models.LiveStatusMap {
	out := models.LiveStatusMap{}
	for _, l := range logins {
		if l == "online" {
			out[l] = models.LiveStream{ID: "s1"}
		}
	}
	return out
}

func (f *fakeCatalog) UserInfo(_ context.Context, login string) (models.UserInfo, error) {
	if f.userErr != nil {
		return models.UserInfo{}, f.userErr
	}
	u, ok := f.users[login]
	if !ok {
		return models.UserInfo{}, apperr.NotFound("User not found")
	}
	return u, nil
}

func (f *fakeCatalog) UserVideos(context.Context, string) ([]models.Video, error) {
	return nil, nil
}

func (f *fakeCatalog) UserLive(context.Context, string) (*models.LiveStream, error) {
	return nil, nil
}

func (f *fakeCatalog) SearchChannels(context.Context, string) ([]models.UserInfo, error) {
	return []models.UserInfo{{ID: "1"}}, nil
}

func (f *fakeCatalog) SearchGlobal(context.Context, string) ([]json.RawMessage, error) {
	return []json.RawMessage{json.RawMessage(`{"type":"channel"}`)}, nil
}

// fakePlaylists serves fixed playlist bodies.
type fakePlaylists struct{}

func (fakePlaylists) VODMaster(_ context.Context, id string) (string, error) {
	if id == "missing" {
		return "", apperr.NotFound("Video not found")
	}
	return "#EXTM3U\n", nil
}

func (fakePlaylists) LiveMaster(_ context.Context, login string) (string, error) {
	if login == "down" {
		return "", apperr.Upstream("live playlist unavailable")
	}
	return "#EXTM3U\n#live " + login + "\n", nil
}

func (fakePlaylists) Variant(_ context.Context, token string) (string, error) {
	if token != "tok" {
		return "", apperr.NotFound("Variant proxy target not found or expired")
	}
	return "#EXTM3U\n#EXTINF:2.0,\nhttps://cdn.example/seg0.ts\n", nil
}

// fakeFeed echoes the size of its inputs as video ids.
type fakeFeed struct {
	historyLen int
	subsLen    int
}

func (f *fakeFeed) Trending(_ context.Context, history map[string]models.HistoryEntry, subs []models.SubEntry) []models.Video {
	f.historyLen, f.subsLen = len(history), len(subs)
	return nil
}

type testEnv struct {
	catalog *fakeCatalog
	feed    *fakeFeed
	store   *store.Store
	clock   *clock.Manual
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clk := clock.NewManual(testEpoch)
	st, err := store.OpenInMemory(clk)
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	env := &testEnv{
		catalog: newFakeCatalog(),
		feed:    &fakeFeed{},
		store:   st,
		clock:   clk,
	}
	h := NewHandler(env.catalog, fakePlaylists{}, env.feed, st)
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	env.handler = NewRouter(h, NewChiMiddleware(cfg)).Setup()
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	body := decodeBody[errorBody](t, rec)
	if body.Error != msg {
		t.Errorf("error = %q, want %q", body.Error, msg)
	}
}
