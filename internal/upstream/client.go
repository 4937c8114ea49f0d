// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/config"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/metrics"
)

// maxResponseSize caps how much of an upstream body is read into memory.
const maxResponseSize = 16 << 20

// Request is a GraphQL request body.
type Request struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Querier executes a GraphQL request and returns the raw data object.
//
// Implemented by Client and BreakerClient; tests substitute a fake.
type Querier interface {
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}

type gqlError struct {
	Message string `json:"message"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// Client posts GraphQL requests over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
	clientID   string
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient creates a GraphQL client from the upstream configuration.
// A zero RequestsPerSecond disables pacing.
func NewClient(cfg *config.UpstreamConfig) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.GQLURL,
		clientID:   cfg.ClientID,
		userAgent:  cfg.UserAgent,
		limiter:    limiter,
	}
}

// Do implements Querier.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	start := time.Now()
	data, err := c.do(ctx, req)
	metrics.RecordUpstream("gql", time.Since(start), err)
	if err != nil {
		logging.CtxDebug(ctx).Err(err).Str("operation", req.OperationName).Msg("GraphQL request failed")
	}
	return data, err
}

func (c *Client) do(ctx context.Context, req Request) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.WrapUpstream(err, "request failed")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperr.WrapUpstream(err, "encode request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.WrapUpstream(err, "request failed")
	}
	httpReq.Header.Set("Client-Id", c.clientID)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperr.WrapUpstream(err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, apperr.Upstream("Twitch API HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, apperr.WrapUpstream(err, "read response")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperr.WrapUpstream(err, "JSON parse error")
	}
	if len(env.Errors) > 0 && isNull(env.Data) {
		return nil, apperr.Upstream("GraphQL error: %s", env.Errors[0].Message)
	}
	if env.Data == nil {
		return json.RawMessage("null"), nil
	}
	return env.Data, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Query runs req and decodes its data object into T.
func Query[T any](ctx context.Context, q Querier, req Request) (*T, error) {
	data, err := q.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var out T
	if isNull(data) {
		return &out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperr.WrapUpstream(err, fmt.Sprintf("decode %T", out))
	}
	return &out, nil
}

// Quote renders s as a GraphQL string literal. It is used where a value has
// to be spliced into query text, such as aliased batch lookups.
func Quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
