// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package upstream

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/config"
	"github.com/tomtom215/nosubvod/internal/metrics"
)

// Response is the status and body of a plain GET.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

// Fetcher performs plain GETs against playlist and segment hosts.
// Non-2xx responses are returned, not treated as errors.
type Fetcher interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// HTTPFetcher is the net/http Fetcher. Per-call deadlines come from ctx;
// the client timeout is only an upper bound.
type HTTPFetcher struct {
	httpClient *http.Client
	userAgent  string
	target     string
}

// NewHTTPFetcher creates a Fetcher whose requests are recorded under the
// given metrics target label ("cdn", "usher").
func NewHTTPFetcher(cfg *config.UpstreamConfig, target string) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		target:     target,
	}
}

// Get implements Fetcher.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (*Response, error) {
	start := time.Now()
	resp, err := f.get(ctx, url)
	metrics.RecordUpstream(f.target, time.Since(start), err)
	return resp, err
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, apperr.WrapUpstream(err, "request failed")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, apperr.WrapUpstream(err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, apperr.WrapUpstream(err, "read response")
	}
	return &Response{Status: resp.StatusCode, Body: body}, nil
}
