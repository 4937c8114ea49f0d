// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package recommend

import (
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/nosubvod/internal/models"
)

// PreferredLanguage is the language the feed is biased towards.
const PreferredLanguage = "fr"

const (
	subscriptionAffinity = 1.75
	preferredFloor       = 1.2
	unknownDuration      = 1800.0
	recencyHorizon       = 45 * 24 * time.Hour
)

// Profile holds the affinities learned from a user's viewing state.
type Profile struct {
	Games     map[string]float64
	Channels  map[string]float64 // keyed by lowercased login
	Languages map[string]float64 // keyed by normalized language code
	Subs      map[string]struct{}
}

// NormalizeLanguage trims and lower-cases a language code.
func NormalizeLanguage(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// NormalizeChannel lower-cases a channel login.
func NormalizeChannel(login string) string {
	return strings.ToLower(login)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// WatchWeight is the fraction of the video watched, in [0.05, 1]. Entries
// without a duration are measured against half an hour.
func WatchWeight(e models.HistoryEntry) float64 {
	if e.Duration <= 0 {
		return clamp(e.Timecode/unknownDuration, 0.05, 1)
	}
	return clamp(e.Timecode/e.Duration, 0.05, 1)
}

// RecencyFactor decays linearly from 1 to 0.35 over 45 days since the
// entry was last updated.
func RecencyFactor(updatedAtMs uint64, now time.Time) float64 {
	ageMs := float64(now.UnixMilli()) - float64(updatedAtMs)
	return clamp(1-ageMs/float64(recencyHorizon.Milliseconds()), 0.35, 1)
}

// BuildProfile learns affinities from the watched videos that have a
// history entry, then adds a flat bonus for each subscription. The
// preferred language always carries at least preferredFloor.
func BuildProfile(history map[string]models.HistoryEntry, watched []models.Video, subs []models.SubEntry, now time.Time) *Profile {
	p := &Profile{
		Games:     make(map[string]float64),
		Channels:  make(map[string]float64),
		Languages: make(map[string]float64),
		Subs:      make(map[string]struct{}, len(subs)),
	}

	for _, v := range watched {
		entry, ok := history[v.ID]
		if !ok {
			continue
		}
		weight := WatchWeight(entry) * RecencyFactor(entry.UpdatedAt, now)

		if game := v.GameName(); game != "" {
			p.Games[game] += weight
		}
		if login := NormalizeChannel(v.OwnerLogin()); login != "" {
			p.Channels[login] += weight
		}
		if lang := NormalizeLanguage(v.LanguageCode()); lang != "" {
			p.Languages[lang] += weight
		}
	}

	for _, s := range subs {
		login := NormalizeChannel(s.Login)
		p.Channels[login] += subscriptionAffinity
		p.Subs[login] = struct{}{}
	}

	if fr := p.Languages[PreferredLanguage]; fr < preferredFloor {
		p.Languages[PreferredLanguage] = fr + preferredFloor
	}
	return p
}

// IsSubscribed reports whether login is a current subscription.
func (p *Profile) IsSubscribed(login string) bool {
	_, ok := p.Subs[NormalizeChannel(login)]
	return ok
}

// HasChannelAffinity reports whether login has any recorded affinity.
func (p *Profile) HasChannelAffinity(login string) bool {
	_, ok := p.Channels[NormalizeChannel(login)]
	return ok
}

// TopGames returns up to n game names by descending affinity. Ties are
// broken alphabetically.
func (p *Profile) TopGames(n int) []string {
	games := make([]string, 0, len(p.Games))
	for g := range p.Games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		a, b := p.Games[games[i]], p.Games[games[j]]
		if a != b {
			return a > b
		}
		return games[i] < games[j]
	})
	if len(games) > n {
		games = games[:n]
	}
	return games
}

// ForeignRatio is the target share of non-preferred-language videos in the
// feed: 0.16 plus 0.35 times the foreign share of language affinity,
// clamped to [0.16, 0.40].
func (p *Profile) ForeignRatio() float64 {
	var total, foreign float64
	for lang, w := range p.Languages {
		total += w
		if lang != PreferredLanguage {
			foreign += w
		}
	}
	share := 0.0
	if total > 0 {
		share = foreign / total
	}
	return clamp(0.16+share*0.35, 0.16, 0.40)
}
