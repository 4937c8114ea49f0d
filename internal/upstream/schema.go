// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package upstream

import "github.com/tomtom215/nosubvod/internal/models"

// Field selections shared by several queries.
const (
	VideoFields = `id, title, lengthSeconds, previewThumbnailURL(width: 320, height: 180), createdAt, viewCount, language, game { name }, owner { login, displayName, profileImageURL(width: 50) }`

	StreamFields = `id title viewersCount previewImageURL(width: 640, height: 360) createdAt language`

	BroadcasterFields = `id login displayName profileImageURL(width: 70)`
)

// PageInfo is the pagination block of a connection.
type PageInfo struct {
	HasNextPage bool `json:"hasNextPage"`
}

// Edge is one element of a connection.
type Edge[T any] struct {
	Cursor *string `json:"cursor"`
	Node   *T      `json:"node"`
}

// Connection is a Relay-style list.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo *PageInfo `json:"pageInfo"`
}

// HasNext reports pageInfo.hasNextPage, false when absent.
func (c *Connection[T]) HasNext() bool {
	return c != nil && c.PageInfo != nil && c.PageInfo.HasNextPage
}

// LastCursor returns the cursor of the final edge.
func (c *Connection[T]) LastCursor() *string {
	if c == nil || len(c.Edges) == 0 {
		return nil
	}
	return c.Edges[len(c.Edges)-1].Cursor
}

// GameRef is a category as embedded in videos and streams.
type GameRef struct {
	ID        *string `json:"id"`
	Name      *string `json:"name"`
	BoxArtURL *string `json:"boxArtURL"`
}

// UserNode is a channel. Stream is set only when the query selects it.
type UserNode struct {
	ID              *string     `json:"id"`
	Login           *string     `json:"login"`
	DisplayName     *string     `json:"displayName"`
	ProfileImageURL *string     `json:"profileImageURL"`
	Stream          *StreamNode `json:"stream"`
	Typename        string      `json:"__typename,omitempty"`
}

// VideoNode is a video as returned by the API.
type VideoNode struct {
	ID                  *string   `json:"id"`
	Title               *string   `json:"title"`
	LengthSeconds       *uint64   `json:"lengthSeconds"`
	PreviewThumbnailURL *string   `json:"previewThumbnailURL"`
	CreatedAt           *string   `json:"createdAt"`
	ViewCount           *uint64   `json:"viewCount"`
	Language            *string   `json:"language"`
	Game                *GameRef  `json:"game"`
	Owner               *UserNode `json:"owner"`

	// Manifest lookups only.
	BroadcastType   *string `json:"broadcastType"`
	SeekPreviewsURL *string `json:"seekPreviewsURL"`
}

// StreamNode is a live broadcast.
type StreamNode struct {
	ID              *string   `json:"id"`
	Title           *string   `json:"title"`
	ViewersCount    *uint64   `json:"viewersCount"`
	PreviewImageURL *string   `json:"previewImageURL"`
	CreatedAt       *string   `json:"createdAt"`
	Language        *string   `json:"language"`
	Game            *GameRef  `json:"game"`
	Broadcaster     *UserNode `json:"broadcaster"`
}

// Video converts n to a models.Video. Nodes missing any of the required
// scalar fields are rejected.
func (n *VideoNode) Video() (models.Video, bool) {
	if n == nil || n.ID == nil || n.Title == nil || n.LengthSeconds == nil ||
		n.PreviewThumbnailURL == nil || n.CreatedAt == nil || n.ViewCount == nil {
		return models.Video{}, false
	}
	v := models.Video{
		ID:                  *n.ID,
		Title:               *n.Title,
		LengthSeconds:       *n.LengthSeconds,
		PreviewThumbnailURL: *n.PreviewThumbnailURL,
		CreatedAt:           *n.CreatedAt,
		ViewCount:           *n.ViewCount,
		Language:            n.Language,
	}
	if n.Game != nil && n.Game.Name != nil {
		v.Game = &models.VideoGame{Name: *n.Game.Name}
	}
	if o := n.Owner; o != nil && o.Login != nil {
		v.Owner = &models.VideoOwner{
			Login:           *o.Login,
			DisplayName:     deref(o.DisplayName, *o.Login),
			ProfileImageURL: deref(o.ProfileImageURL, ""),
		}
	}
	return v, true
}

// Videos converts the nodes of a video connection, dropping invalid ones.
func Videos(c *Connection[VideoNode]) []models.Video {
	out := make([]models.Video, 0)
	if c == nil {
		return out
	}
	for _, e := range c.Edges {
		if v, ok := e.Node.Video(); ok {
			out = append(out, v)
		}
	}
	return out
}

// User converts n to a models.UserInfo. A user without a login is rejected.
func (n *UserNode) User() (models.UserInfo, bool) {
	if n == nil || n.Login == nil || *n.Login == "" {
		return models.UserInfo{}, false
	}
	return models.UserInfo{
		ID:              deref(n.ID, ""),
		Login:           *n.Login,
		DisplayName:     deref(n.DisplayName, *n.Login),
		ProfileImageURL: deref(n.ProfileImageURL, ""),
	}, true
}

// Live converts a stream to a models.LiveStream. The broadcaster is taken
// from owner when non-nil, otherwise from the stream's own broadcaster
// field. fallbackLogin fills a missing login and display name.
func (n *StreamNode) Live(owner *UserNode, fallbackLogin string) models.LiveStream {
	b := owner
	if b == nil {
		b = n.Broadcaster
	}
	if b == nil {
		b = &UserNode{}
	}
	login := deref(b.Login, fallbackLogin)
	ls := models.LiveStream{
		ID:              deref(n.ID, ""),
		Title:           deref(n.Title, models.DefaultLiveTitle),
		PreviewImageURL: deref(n.PreviewImageURL, ""),
		Language:        n.Language,
		StartedAt:       deref(n.CreatedAt, ""),
		Broadcaster: models.LiveBroadcaster{
			ID:              deref(b.ID, ""),
			Login:           login,
			DisplayName:     deref(b.DisplayName, login),
			ProfileImageURL: deref(b.ProfileImageURL, ""),
		},
	}
	if n.ViewersCount != nil {
		ls.ViewerCount = *n.ViewersCount
	}
	if n.Game != nil {
		ls.Game = &models.LiveGame{
			ID:        n.Game.ID,
			Name:      deref(n.Game.Name, ""),
			BoxArtURL: n.Game.BoxArtURL,
		}
	}
	return ls
}

// HasBroadcaster reports whether the stream carries a broadcaster login.
func (n *StreamNode) HasBroadcaster() bool {
	return n != nil && n.Broadcaster != nil && n.Broadcaster.Login != nil
}

func deref(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
