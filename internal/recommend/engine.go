// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/nosubvod/internal/cache"
	"github.com/tomtom215/nosubvod/internal/catalog"
	"github.com/tomtom215/nosubvod/internal/clock"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/metrics"
	"github.com/tomtom215/nosubvod/internal/models"
)

const (
	cacheKeyPrefix = "trending_vods_"

	// fingerprintBucket groups history updates into ten-minute windows.
	fingerprintBucket = 10 * 60 * 1000
)

// Engine computes trending feeds. It is safe for concurrent use.
type Engine struct {
	config *Config
	source Source
	cache  cache.Cacher[[]byte]
	clock  clock.Clock

	rerankers []Reranker
	algMu     sync.RWMutex

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// Stats is a snapshot of engine activity.
type Stats struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

// NewEngine creates an engine. A nil cfg means DefaultConfig and a nil clock
// means the system clock.
func NewEngine(cfg *Config, source Source, feeds cache.Cacher[[]byte], clk clock.Clock) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Engine{
		config: cfg,
		source: source,
		cache:  feeds,
		clock:  clk,
	}, nil
}

// RegisterReranker appends rr to the post-processing pipeline.
func (e *Engine) RegisterReranker(rr Reranker) {
	e.algMu.Lock()
	defer e.algMu.Unlock()

	e.rerankers = append(e.rerankers, rr)
	logging.Info().Str("reranker", rr.Name()).Msg("Registered reranker")
}

// Stats returns request and cache counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
	}
}

// Trending returns the personalised feed for the viewing state. Source
// failures shrink the candidate pool but never fail the feed.
func (e *Engine) Trending(ctx context.Context, history map[string]models.HistoryEntry, subs []models.SubEntry) []models.Video {
	start := time.Now()
	e.requestCount.Add(1)

	recent := RecentHistory(history, e.config.Sourcing.HistoryWindow)
	key := cacheKeyPrefix + Fingerprint(recent, subs)

	if payload, ok := e.cache.Get(key); ok {
		var feed []models.Video
		if err := json.Unmarshal(payload, &feed); err == nil {
			e.cacheHits.Add(1)
			logging.CtxDebug(ctx).Str("key", key).Msg("Trending feed cache hit")
			return feed
		}
	}
	e.cacheMisses.Add(1)

	ids := make([]string, len(recent))
	for i, h := range recent {
		ids[i] = h.VODID
	}
	watched := e.source.VideosByIDs(ctx, ids)
	profile := BuildProfile(history, watched, subs, e.clock.Now())

	candidates := e.gatherCandidates(ctx, profile, subs)
	metrics.RecommendCandidates.Observe(float64(len(candidates)))

	feed := Videos(e.rank(ctx, candidates, profile))

	if payload, err := json.Marshal(feed); err == nil {
		e.cache.Set(key, payload, e.config.Cache.TTL)
	}

	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	logging.CtxDebug(ctx).
		Int("watched", len(watched)).
		Int("candidates", len(candidates)).
		Int("returned", len(feed)).
		Dur("duration", time.Since(start)).
		Msg("Trending feed computed")
	return feed
}

// RecentHistory returns up to n entries, most recently updated first.
// Entries updated at the same instant are ordered by video id.
func RecentHistory(history map[string]models.HistoryEntry, n int) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(history))
	for _, h := range history {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].VODID < out[j].VODID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Fingerprint hashes the viewing state that determines a feed: each recent
// entry's id, whole-second progress and ten-minute update bucket, plus the
// sorted lowercased subscription logins.
func Fingerprint(recent []models.HistoryEntry, subs []models.SubEntry) string {
	entries := make([]string, len(recent))
	for i, h := range recent {
		entries[i] = fmt.Sprintf("%s,%d,%d,%d", h.VODID, int64(h.Timecode), int64(h.Duration), h.UpdatedAt/fingerprintBucket)
	}
	logins := make([]string, len(subs))
	for i, s := range subs {
		logins[i] = strings.ToLower(s.Login)
	}
	sort.Strings(logins)
	return catalog.SimpleHash(strings.Join(entries, ";") + "|" + strings.Join(logins, ","))
}

// feedGames returns the categories to source from: the top affinities plus
// the anchor game, capped at MaxGames.
func (e *Engine) feedGames(p *Profile) []string {
	src := e.config.Sourcing
	games := p.TopGames(src.TopGames)
	anchored := false
	for _, g := range games {
		if g == src.AnchorGame {
			anchored = true
			break
		}
	}
	if !anchored && src.AnchorGame != "" {
		games = append(games, src.AnchorGame)
	}
	if len(games) > src.MaxGames {
		games = games[:src.MaxGames]
	}
	return games
}

// gatherCandidates queries every source concurrently and deduplicates the
// results by id. Earlier sources win: categories in affinity order, French
// before unfiltered, then subscriptions in list order.
func (e *Engine) gatherCandidates(ctx context.Context, p *Profile, subs []models.SubEntry) []models.Video {
	src := e.config.Sourcing
	games := e.feedGames(p)
	if len(subs) > src.MaxSubscriptions {
		subs = subs[:src.MaxSubscriptions]
	}

	gameResults := make([][]models.Video, 2*len(games))
	subResults := make([][]models.Video, len(subs))

	var g errgroup.Group
	for i, game := range games {
		g.Go(func() error {
			gameResults[2*i] = e.source.GameVideos(ctx, game, []string{PreferredLanguage}, src.VideosPerGame)
			return nil
		})
		g.Go(func() error {
			gameResults[2*i+1] = e.source.GameVideos(ctx, game, nil, src.VideosPerGame)
			return nil
		})
	}
	for i, sub := range subs {
		g.Go(func() error {
			vods, err := e.source.UserVideos(ctx, sub.Login)
			if err != nil {
				metrics.RecommendSourceErrors.WithLabelValues("subscription").Inc()
				logging.CtxDebug(ctx).Err(err).Str("login", sub.Login).Msg("Subscription videos unavailable")
				return nil
			}
			subResults[i] = vods
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	var out []models.Video
	for _, batch := range append(gameResults, subResults...) {
		for _, v := range batch {
			if v.ID == "" || seen[v.ID] {
				continue
			}
			seen[v.ID] = true
			out = append(out, v)
		}
	}
	return out
}

// rank scores candidates, keeps the best MaxCandidates and runs the
// rerankers. Every reranker but the last sees the full pool.
func (e *Engine) rank(ctx context.Context, candidates []models.Video, p *Profile) []ScoredVideo {
	now := e.clock.Now()
	scored := make([]ScoredVideo, len(candidates))
	for i := range candidates {
		scored[i] = ScoredVideo{Video: candidates[i], Score: Score(&candidates[i], p, now)}
	}
	SortByScore(scored)

	limits := e.config.Limits
	if len(scored) > limits.MaxCandidates {
		scored = scored[:limits.MaxCandidates]
	}

	e.algMu.RLock()
	rerankers := e.rerankers
	e.algMu.RUnlock()

	for i, rr := range rerankers {
		k := limits.MaxCandidates
		if i == len(rerankers)-1 {
			k = limits.FeedSize
		}
		scored = rr.Rerank(ctx, scored, p, k)
	}

	if len(scored) > limits.FeedSize {
		scored = scored[:limits.FeedSize]
	}
	return scored
}
