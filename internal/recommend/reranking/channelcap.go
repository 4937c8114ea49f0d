// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package reranking

import (
	"context"

	"github.com/tomtom215/nosubvod/internal/recommend"
)

// Default per-channel limits.
const (
	DefaultFamiliarCap = 3
	DefaultOtherCap    = 2
)

// ChannelCap limits how many videos a single channel contributes.
// Channels the user is subscribed to or has watched get FamiliarCap slots;
// every other channel gets OtherCap.
type ChannelCap struct {
	familiarCap int
	otherCap    int
}

// NewChannelCap creates a ChannelCap with the default limits.
func NewChannelCap() *ChannelCap {
	return &ChannelCap{familiarCap: DefaultFamiliarCap, otherCap: DefaultOtherCap}
}

// Name returns the reranker identifier.
func (c *ChannelCap) Name() string {
	return "channel_cap"
}

// Rerank keeps items in order until their channel's cap is reached.
func (c *ChannelCap) Rerank(_ context.Context, items []recommend.ScoredVideo, profile *recommend.Profile, k int) []recommend.ScoredVideo {
	if len(items) == 0 || k <= 0 {
		return items
	}

	counts := make(map[string]int)
	out := make([]recommend.ScoredVideo, 0, min(k, len(items)))
	for _, it := range items {
		if len(out) == k {
			break
		}
		channel := it.Channel()
		if counts[channel] >= c.limit(channel, profile) {
			continue
		}
		counts[channel]++
		out = append(out, it)
	}
	return out
}

func (c *ChannelCap) limit(channel string, profile *recommend.Profile) int {
	if profile != nil && (profile.IsSubscribed(channel) || profile.HasChannelAffinity(channel)) {
		return c.familiarCap
	}
	return c.otherCap
}
