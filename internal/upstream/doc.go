// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package upstream is the gateway's single point of contact with the video
platform.

# Components

  - Client: posts GraphQL requests to the configured endpoint with the web
    player's Client-Id, paced by a golang.org/x/time/rate limiter
  - BreakerClient: wraps any Querier with a sony/gobreaker circuit breaker
    named "gql-api" and exports its state to Prometheus
  - Query: decodes a response's data object into a typed schema
  - HTTPFetcher: plain GETs for playlists, rendition probes and init segments

# Errors

Every failure is an apperr ErrUpstream: transport errors ("request failed"),
non-2xx statuses ("Twitch API HTTP 503"), malformed JSON and GraphQL errors
returned without data. A null data object is not an error; callers decide
whether an absent entity means not found.

# Schemas

Response types use pointers for every nullable field so that a missing video,
user or stream decodes to nil instead of a zero value. Node conversion to
models types lives next to the schemas in schema.go.
*/
package upstream
