// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package models defines the data structures shared by the gateway's packages.

JSON field names are part of the HTTP contract consumed by the web portal, so
they follow the upstream platform's camelCase naming rather than Go naming.

Key Components:

  - Video, VideoGame, VideoOwner: immutable snapshots of upstream VOD metadata
  - LiveStream, LiveBroadcaster, LiveGame: transient live stream snapshots
  - LiveStreamsPage, VideoPage: cursor-paginated result pages
  - UserInfo, Category: channel and category summaries
  - HistoryEntry, WatchlistEntry, SubEntry, Settings: persisted local state
  - HistoryListItem: a history entry enriched with its Video, if still available

Optional upstream fields are pointers. Language, owner, game id and box art are
omitted from JSON when absent; Video.Game and LiveStream.Game encode as null.
*/
package models
