// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package manifest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/isodate"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/metrics"
	"github.com/tomtom215/nosubvod/internal/upstream"
)

// Codec strings advertised in EXT-X-STREAM-INF.
const (
	CodecAVC  = "avc1.4D001E"
	CodecHEVC = "hev1.1.6.L93.B0"
	codecAAC  = "mp4a.40.2"
)

const (
	startBandwidth = 8534030
	bandwidthStep  = 100

	// Uploads older than this moved to a path that includes the channel login.
	uploadPathCutoffDays = 7.0
)

var vodIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Rendition is one candidate quality of a VOD.
type Rendition struct {
	Key        string // path segment on the CDN
	Resolution string // WxH
	FPS        int
}

// Renditions are probed in this order.
var Renditions = []Rendition{
	{"chunked", "1920x1080", 60},
	{"1080p60", "1920x1080", 60},
	{"720p60", "1280x720", 60},
	{"480p30", "854x480", 30},
	{"360p30", "640x360", 30},
	{"160p30", "284x160", 30},
}

// Name returns the display name used for GROUP-ID, NAME and VIDEO. The source
// rendition is named after its height.
func (r Rendition) Name() string {
	if r.Key != "chunked" {
		return r.Key
	}
	_, height, _ := strings.Cut(r.Resolution, "x")
	if height == "" {
		height = "1080"
	}
	return height + "p"
}

const videoQuery = `query VideoPlayback($id: ID!) { video(id: $id) { broadcastType createdAt seekPreviewsURL owner { login } } }`

type videoSchema struct {
	Video *upstream.VideoNode `json:"video"`
}

// VideoInfo is what VOD master generation needs to know about a video.
type VideoInfo struct {
	ID            string
	BroadcastType string
	CreatedAt     string
	Domain        string
	SpecialID     string
	OwnerLogin    string
}

// ValidateVODID trims id and checks it against [A-Za-z0-9_-]+.
func ValidateVODID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !vodIDPattern.MatchString(id) {
		return "", apperr.Validation("Invalid VOD identifier")
	}
	return id, nil
}

// ParseVODURLInfo extracts the CDN domain and the special id from a seek
// preview URL. The special id is the path segment right before the first
// segment containing "storyboards".
func ParseVODURLInfo(seekPreviewsURL string) (domain, specialID string, err error) {
	i := strings.Index(seekPreviewsURL, "//")
	if i < 0 {
		return "", "", apperr.Upstream("No '//' found in URL")
	}
	afterScheme := seekPreviewsURL[i+2:]

	slash := strings.IndexByte(afterScheme, '/')
	if slash < 0 {
		return "", "", apperr.Upstream("No path separator found")
	}
	domain = afterScheme[:slash]
	parts := strings.Split(afterScheme[slash:], "/")

	idx := -1
	for j, p := range parts {
		if strings.Contains(p, "storyboards") {
			idx = j
			break
		}
	}
	switch {
	case idx < 0:
		return "", "", apperr.Upstream("Cannot find storyboards in URL")
	case idx == 0:
		return "", "", apperr.Upstream("storyboards at root")
	}

	specialID = parts[idx-1]
	if specialID == "" {
		return "", "", apperr.Upstream("Empty vodSpecialID")
	}
	return domain, specialID, nil
}

// BuildStreamURL returns the rendition playlist URL for one quality.
func BuildStreamURL(info VideoInfo, renditionKey string, ageDays float64) string {
	switch {
	case info.BroadcastType == "highlight":
		return fmt.Sprintf("https://%s/%s/%s/highlight-%s.m3u8", info.Domain, info.SpecialID, renditionKey, info.ID)
	case info.BroadcastType == "upload" && ageDays > uploadPathCutoffDays:
		return fmt.Sprintf("https://%s/%s/%s/%s/%s/index-dvr.m3u8", info.Domain, info.OwnerLogin, info.ID, info.SpecialID, renditionKey)
	default:
		return fmt.Sprintf("https://%s/%s/%s/index-dvr.m3u8", info.Domain, info.SpecialID, renditionKey)
	}
}

// LookupVideo fetches and validates the playback metadata of a video.
func (s *Service) LookupVideo(ctx context.Context, id string) (*VideoInfo, error) {
	id, err := ValidateVODID(id)
	if err != nil {
		return nil, err
	}

	data, err := upstream.Query[videoSchema](ctx, s.gql, upstream.Request{
		OperationName: "VideoPlayback",
		Query:         videoQuery,
		Variables:     map[string]any{"id": id},
	})
	if err != nil {
		return nil, err
	}
	v := data.Video
	if v == nil {
		return nil, apperr.NotFound("Video not found")
	}
	if v.SeekPreviewsURL == nil {
		return nil, apperr.Upstream("Missing seekPreviewsURL")
	}
	if v.Owner == nil || v.Owner.Login == nil {
		return nil, apperr.Upstream("Missing owner.login")
	}

	domain, specialID, err := ParseVODURLInfo(*v.SeekPreviewsURL)
	if err != nil {
		return nil, err
	}

	info := &VideoInfo{
		ID:            id,
		BroadcastType: "archive",
		Domain:        domain,
		SpecialID:     specialID,
		OwnerLogin:    *v.Owner.Login,
	}
	if v.BroadcastType != nil {
		info.BroadcastType = strings.ToLower(*v.BroadcastType)
	}
	if v.CreatedAt != nil {
		info.CreatedAt = *v.CreatedAt
	}
	return info, nil
}

// VODMaster generates the master playlist for a VOD. A video with no
// reachable rendition still yields a valid, header-only playlist.
func (s *Service) VODMaster(ctx context.Context, id string) (string, error) {
	playlist, err := s.vodMaster(ctx, id)
	metrics.RecordManifest("vod_master", err)
	return playlist, err
}

func (s *Service) vodMaster(ctx context.Context, id string) (string, error) {
	info, err := s.LookupVideo(ctx, id)
	if err != nil {
		return "", err
	}
	age := isodate.DaysSince(info.CreatedAt, s.clock.Now())

	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	fmt.Fprintf(&b, `#EXT-X-TWITCH-INFO:ORIGIN="s3",B="false",REGION="EU",USER-IP="127.0.0.1",SERVING-ID="%s",CLUSTER="cloudfront_vod",USER-COUNTRY="BE",MANIFEST-CLUSTER="cloudfront_vod"`, s.ids.ServingID())

	bandwidth := startBandwidth
	available := 0
	for _, r := range Renditions {
		if ctx.Err() != nil {
			return "", apperr.WrapUpstream(ctx.Err(), "request cancelled")
		}
		streamURL := BuildStreamURL(*info, r.Key, age)
		codec, ok := s.probe(ctx, streamURL)
		if !ok {
			continue
		}
		available++

		path, err := s.registry.RegisterPath(streamURL)
		if err != nil {
			logging.CtxDebug(ctx).Err(err).Str("url", streamURL).Msg("Rendition rejected by proxy registry")
			continue
		}

		enabled := "NO"
		if r.Key == "chunked" {
			enabled = "YES"
		}
		name := r.Name()
		fmt.Fprintf(&b, "\n#EXT-X-MEDIA:TYPE=VIDEO,GROUP-ID=\"%s\",NAME=\"%s\",AUTOSELECT=%s,DEFAULT=%s", name, name, enabled, enabled)
		fmt.Fprintf(&b, "\n#EXT-X-STREAM-INF:BANDWIDTH=%d,CODECS=\"%s,%s\",RESOLUTION=%s,VIDEO=\"%s\",FRAME-RATE=%d", bandwidth, codec, codecAAC, r.Resolution, name, r.FPS)
		b.WriteString("\n" + path)
		bandwidth -= bandwidthStep
	}

	metrics.VODQualitiesProbed.Observe(float64(available))
	logging.CtxDebug(ctx).Str("vod_id", info.ID).Str("broadcast_type", info.BroadcastType).Int("renditions", available).Msg("VOD master playlist generated")
	return b.String(), nil
}

// probe reports whether a rendition playlist exists and which codec it uses.
// Each fetch gets its own timeout and is not cut short by the caller going away.
func (s *Service) probe(ctx context.Context, streamURL string) (string, bool) {
	resp, err := s.timedGet(ctx, streamURL, s.probeTimeout)
	if err != nil || !resp.OK() {
		return "", false
	}
	body := string(resp.Body)

	switch {
	case strings.Contains(body, ".ts"):
		return CodecAVC, true
	case strings.Contains(body, ".mp4"):
		initURL := strings.ReplaceAll(streamURL, "index-dvr.m3u8", "init-0.mp4")
		initResp, err := s.timedGet(ctx, initURL, s.probeTimeout)
		if err != nil {
			return CodecHEVC, true
		}
		if strings.Contains(string(initResp.Body), "hev1") {
			return CodecHEVC, true
		}
		return CodecAVC, true
	default:
		return "", false
	}
}

func (s *Service) timedGet(ctx context.Context, target string, timeout time.Duration) (*upstream.Response, error) {
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	return s.fetcher.Get(fetchCtx, target)
}
