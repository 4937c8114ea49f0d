// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package models

// Video is a recorded broadcast, highlight or upload.
type Video struct {
	ID                  string      `json:"id"`
	Title               string      `json:"title"`
	LengthSeconds       uint64      `json:"lengthSeconds"`
	PreviewThumbnailURL string      `json:"previewThumbnailURL"`
	CreatedAt           string      `json:"createdAt"` // ISO-8601, UTC
	ViewCount           uint64      `json:"viewCount"`
	Language            *string     `json:"language,omitempty"`
	Game                *VideoGame  `json:"game"`
	Owner               *VideoOwner `json:"owner,omitempty"`
}

// VideoGame is the category a video was recorded under.
type VideoGame struct {
	Name string `json:"name"`
}

// VideoOwner is the channel that published a video.
type VideoOwner struct {
	Login           string `json:"login"`
	DisplayName     string `json:"displayName"`
	ProfileImageURL string `json:"profileImageURL"`
}

// GameName returns the category name, or "" when the video has none.
func (v *Video) GameName() string {
	if v.Game == nil {
		return ""
	}
	return v.Game.Name
}

// OwnerLogin returns the owning channel's login, or "" when unknown.
func (v *Video) OwnerLogin() string {
	if v.Owner == nil {
		return ""
	}
	return v.Owner.Login
}

// LanguageCode returns the broadcast language, or "" when unknown.
func (v *Video) LanguageCode() string {
	if v.Language == nil {
		return ""
	}
	return *v.Language
}

// VideoPage is one page of a category's videos.
type VideoPage struct {
	Items      []Video `json:"items"`
	NextCursor *string `json:"nextCursor"`
	HasMore    bool    `json:"hasMore"`
}

// UserInfo is a channel summary.
type UserInfo struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"displayName"`
	ProfileImageURL string `json:"profileImageURL"`
}

// Category is a game or category with its box art.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BoxArtURL string `json:"boxArtURL"`
}
