// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package models

// DefaultLiveTitle is used when a stream has no title.
const DefaultLiveTitle = "Live stream"

// LiveStream is a channel that is broadcasting right now.
type LiveStream struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	PreviewImageURL string          `json:"previewImageURL"`
	ViewerCount     uint64          `json:"viewerCount"`
	Language        *string         `json:"language,omitempty"`
	StartedAt       string          `json:"startedAt"`
	Broadcaster     LiveBroadcaster `json:"broadcaster"`
	Game            *LiveGame       `json:"game"`
}

// LiveBroadcaster identifies the channel behind a LiveStream.
type LiveBroadcaster struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"displayName"`
	ProfileImageURL string `json:"profileImageURL"`
}

// LiveGame is the category a stream is running under.
type LiveGame struct {
	ID        *string `json:"id,omitempty"`
	Name      string  `json:"name"`
	BoxArtURL *string `json:"boxArtURL,omitempty"`
}

// LiveStreamsPage is one page of live streams.
type LiveStreamsPage struct {
	Items      []LiveStream `json:"items"`
	NextCursor *string      `json:"nextCursor"`
	HasMore    bool         `json:"hasMore"`
}

// LiveStatusMap maps a lowercased login to its current stream.
type LiveStatusMap map[string]LiveStream
