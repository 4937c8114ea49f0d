// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package upstream

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/models"
)

func TestVideos(t *testing.T) {
	t.Parallel()

	payload := `{
		"edges": [
			{"node": {"id": "1", "title": "Speedrun", "lengthSeconds": 3600, "previewThumbnailURL": "https://x/1.jpg",
				"createdAt": "2026-01-01T00:00:00Z", "viewCount": 10, "language": "fr",
				"game": {"name": "Celeste"}, "owner": {"login": "zerator", "displayName": "ZeratoR", "profileImageURL": "https://x/p.png"}}},
			{"node": {"id": "2", "title": null, "lengthSeconds": 1, "previewThumbnailURL": "", "createdAt": "", "viewCount": 0}},
			{"node": null},
			{"node": {"id": "3", "title": "No game", "lengthSeconds": 5, "previewThumbnailURL": "", "createdAt": "", "viewCount": 1, "game": null}}
		],
		"pageInfo": {"hasNextPage": true}
	}`

	var conn Connection[VideoNode]
	if err := json.Unmarshal([]byte(payload), &conn); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	videos := Videos(&conn)
	if len(videos) != 2 {
		t.Fatalf("expected 2 valid videos, got %d", len(videos))
	}
	if videos[0].GameName() != "Celeste" || videos[0].OwnerLogin() != "zerator" || videos[0].LanguageCode() != "fr" {
		t.Errorf("unexpected first video: %+v", videos[0])
	}
	if videos[1].Game != nil || videos[1].Owner != nil {
		t.Errorf("expected nil game and owner, got %+v", videos[1])
	}
	if !conn.HasNext() {
		t.Error("expected HasNext")
	}
}

func TestVideos_Nil(t *testing.T) {
	t.Parallel()

	if got := Videos(nil); got == nil || len(got) != 0 {
		t.Errorf("Videos(nil) = %v, want empty non-nil slice", got)
	}
}

func TestConnectionLastCursor(t *testing.T) {
	t.Parallel()

	var empty *Connection[StreamNode]
	if empty.LastCursor() != nil || empty.HasNext() {
		t.Error("nil connection should have no cursor and no next page")
	}

	a, b := "a", "b"
	conn := &Connection[StreamNode]{Edges: []Edge[StreamNode]{{Cursor: &a}, {Cursor: &b}}}
	if got := conn.LastCursor(); got == nil || *got != "b" {
		t.Errorf("LastCursor() = %v, want b", got)
	}
}

func TestStreamNodeLive(t *testing.T) {
	t.Parallel()

	payload := `{"id": "s1", "title": null, "viewersCount": 1200, "previewImageURL": "https://x/p.jpg",
		"createdAt": "2026-01-01T10:00:00Z", "language": "en",
		"game": {"id": "509658", "name": "Just Chatting", "boxArtURL": "https://x/b.jpg"},
		"broadcaster": {"id": "42", "login": "kamet0", "displayName": "Kamet0", "profileImageURL": "https://x/k.png"}}`

	var node StreamNode
	if err := json.Unmarshal([]byte(payload), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !node.HasBroadcaster() {
		t.Fatal("expected broadcaster")
	}

	live := node.Live(nil, "")
	if live.Title != models.DefaultLiveTitle {
		t.Errorf("Title = %q, want default", live.Title)
	}
	if live.ViewerCount != 1200 || live.Broadcaster.Login != "kamet0" || live.StartedAt != "2026-01-01T10:00:00Z" {
		t.Errorf("unexpected live stream: %+v", live)
	}
	if live.Game == nil || live.Game.Name != "Just Chatting" || live.Game.ID == nil || *live.Game.ID != "509658" {
		t.Errorf("unexpected game: %+v", live.Game)
	}
}

func TestStreamNodeLive_OwnerAndFallback(t *testing.T) {
	t.Parallel()

	id := "s2"
	node := &StreamNode{ID: &id}
	owner := &UserNode{}

	live := node.Live(owner, "squeezie")
	if live.Broadcaster.Login != "squeezie" || live.Broadcaster.DisplayName != "squeezie" {
		t.Errorf("expected fallback login, got %+v", live.Broadcaster)
	}
	if live.Game != nil {
		t.Errorf("expected nil game, got %+v", live.Game)
	}
}

func TestUserNodeUser(t *testing.T) {
	t.Parallel()

	login, empty := "zerator", ""
	if _, ok := (&UserNode{Login: &empty}).User(); ok {
		t.Error("empty login should be rejected")
	}
	if _, ok := (*UserNode)(nil).User(); ok {
		t.Error("nil user should be rejected")
	}
	u, ok := (&UserNode{Login: &login}).User()
	if !ok || u.DisplayName != "zerator" {
		t.Errorf("User() = %+v, %v", u, ok)
	}
}
