// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package manifest

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/cache"
	"github.com/tomtom215/nosubvod/internal/clock"
	"github.com/tomtom215/nosubvod/internal/config"
	"github.com/tomtom215/nosubvod/internal/ident"
	"github.com/tomtom215/nosubvod/internal/proxy"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

var testNow = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

// fakeGQL answers by operation name.
type fakeGQL struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	requests  []upstream.Request
}

func (f *fakeGQL) Do(_ context.Context, req upstream.Request) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.responses[req.OperationName]
	if !ok {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(data), nil
}

// fakeFetcher serves canned bodies by exact URL. Unknown URLs are 404s.
type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	status map[string]int
	errs   map[string]error
	hang   map[string]bool
	calls  []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		bodies: map[string]string{},
		status: map[string]int{},
		errs:   map[string]error{},
		hang:   map[string]bool{},
	}
}

func (f *fakeFetcher) Get(ctx context.Context, url string) (*upstream.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	body, hasBody := f.bodies[url]
	status, hasStatus := f.status[url]
	err := f.errs[url]
	hang := f.hang[url]
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	if !hasStatus {
		status = 200
		if !hasBody {
			status = 404
		}
	}
	return &upstream.Response{Status: status, Body: []byte(body)}, nil
}

type testEnv struct {
	svc      *Service
	gql      *fakeGQL
	fetcher  *fakeFetcher
	registry *proxy.Registry
	clock    *clock.Manual
}

func newTestEnv() *testEnv {
	clk := clock.NewManual(testNow)
	gql := &fakeGQL{responses: map[string]string{}}
	fetcher := newFakeFetcher()
	registry := proxy.New(cache.New[string]("variant_proxy", clk), &ident.Sequence{}, proxy.DefaultTTL)
	cfg := &config.UpstreamConfig{Timeout: time.Second, ProbeTimeout: 50 * time.Millisecond}
	svc := New(cfg, gql, fetcher, registry, &ident.Sequence{Int: 123456}, clk)
	return &testEnv{svc: svc, gql: gql, fetcher: fetcher, registry: registry, clock: clk}
}
