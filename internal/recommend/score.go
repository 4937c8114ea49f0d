// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package recommend

import (
	"math"
	"time"

	"github.com/tomtom215/nosubvod/internal/isodate"
	"github.com/tomtom215/nosubvod/internal/models"
)

// QualityThreshold is the quality below which a candidate skips the
// remaining signals and scores its quality alone.
const QualityThreshold = 0.05

const (
	popularityWeight = 1.15
	gameWeight       = 2.1
	channelWeight    = 2.4
	languageWeight   = 1.15
	preferredBoost   = 2.3
	subscriberBoost  = 3.2
	freshnessMax     = 2.1
	freshnessDays    = 9.0
)

// LengthFactor ramps from 0.01 under a minute, quadratically to 0.18 at ten
// minutes, then linearly to 1 at thirty minutes.
func LengthFactor(seconds uint64) float64 {
	s := float64(seconds)
	switch {
	case s < 60:
		return 0.01
	case s < 600:
		r := (s - 60) / 540
		return 0.01 + 0.17*r*r
	case s < 1800:
		return 0.18 + 0.82*(s-600)/1200
	default:
		return 1
	}
}

// ViewFactor ramps from 0.04 with no views to 0.5 at five views and 1 at
// fifty.
func ViewFactor(views uint64) float64 {
	v := float64(views)
	switch {
	case views == 0:
		return 0.04
	case views < 5:
		return 0.04 + 0.46*(v/5)
	case views < 50:
		return 0.5 + 0.5*(v/50)
	default:
		return 1
	}
}

// Quality is LengthFactor times ViewFactor.
func Quality(v *models.Video) float64 {
	return LengthFactor(v.LengthSeconds) * ViewFactor(v.ViewCount)
}

// Score rates a candidate for the profile. Candidates below
// QualityThreshold return their quality unchanged.
func Score(v *models.Video, p *Profile, now time.Time) float64 {
	quality := Quality(v)
	if quality < QualityThreshold {
		return quality
	}

	channel := NormalizeChannel(v.OwnerLogin())
	lang := NormalizeLanguage(v.LanguageCode())

	score := math.Log10(float64(v.ViewCount)+10) * popularityWeight
	score += p.Games[v.GameName()] * gameWeight
	score += p.Channels[channel] * channelWeight
	score += p.Languages[lang] * languageWeight
	if lang == PreferredLanguage {
		score += preferredBoost
	}
	if p.IsSubscribed(channel) {
		score += subscriberBoost
	}
	score += clamp(freshnessMax-isodate.DaysSince(v.CreatedAt, now)/freshnessDays, 0, freshnessMax)

	return score * quality
}
