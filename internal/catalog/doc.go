// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package catalog answers browse and search questions about the platform:
channels, their videos, live streams, categories, chat replay and markers.

Each operation issues one GraphQL query (or a small fixed number of them in
parallel) through an upstream.Querier and maps the result onto internal/models
types. Hot lookups are cached as JSON payloads in a cache.Cache[[]byte]:

	user_{login}                           3600s
	vods_{login}                            600s
	live_user_{login}                  20s (25s when offline)
	live_status_{hash}                       18s
	live_streams_{n}_{cursor|first}          25s
	live_cat_{hash}_{cursor|first}_{n}       25s
	live_search_{hash}_{n}                   30s
	top_live_categories                     120s

Listing operations used to build feeds (GameVideos, CategoryVideos,
VideosByIDs) degrade to empty results on upstream failure; lookups of a single
entity return the error.

Upstream calls run on a context detached from the caller's cancellation so a
client disconnect does not waste a call that is already in flight; the HTTP
client timeout still bounds them.
*/
package catalog
