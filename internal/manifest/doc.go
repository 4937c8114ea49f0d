// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package manifest builds and rewrites HLS playlists.

# VOD master playlists

The platform does not hand out master playlists for restricted videos, but the
rendition playlists live at predictable CDN paths derived from the video's
seek-preview URL. VODMaster reconstructs the path for each of six candidate
renditions, probes them one after another and emits a master playlist that
references only the renditions that answered, each through the proxy registry.

# Live master playlists

LiveMaster obtains a playback grant, fetches the master playlist from the usher
service and rewrites every media reference so that players come back through
the relay endpoint instead of talking to the CDN directly.

# Variant relay

Variant fetches a registered rendition playlist, swaps muted segment names in
and makes every segment reference absolute so the player can fetch segments
straight from the CDN.

All playlists are joined with "\n" and carry no trailing newline.
*/
package manifest
