// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package proxy

import (
	"net/url"
	"strings"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/metrics"
)

// allowedHosts are matched exactly or as a dot suffix.
var allowedHosts = []string{"ttvnw.net", "twitch.tv", "jtvnw.net", "cloudfront.net"}

// allowedParams are the only query keys that survive sanitization.
var allowedParams = map[string]bool{
	"allow_source":               true,
	"allow_audio_only":           true,
	"fast_bread":                 true,
	"playlist_include_framerate": true,
	"player_backend":             true,
	"player":                     true,
	"p":                          true,
	"sig":                        true,
	"token":                      true,
}

// Sanitize checks target against the allowlist and returns it with the host
// lower-cased and the query reduced to allowed parameters in their original
// order. The fragment is kept.
func Sanitize(target string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return "", reject("invalid_url", "Invalid URL")
	}
	if u.Scheme != "https" {
		return "", reject("scheme", "Only HTTPS URLs are allowed")
	}

	host := strings.ToLower(u.Hostname())
	if !hostAllowed(host) {
		return "", reject("host", "Disallowed host: %s", host)
	}

	path := strings.ToLower(u.EscapedPath())
	if !pathAllowed(path) {
		return "", reject("path", "Disallowed target path")
	}

	u.Host = strings.ToLower(u.Host)
	u.RawQuery = filterQuery(u.RawQuery)
	u.ForceQuery = false
	return u.String(), nil
}

func reject(reason, format string, args ...any) error {
	metrics.ProxyRejections.WithLabelValues("register", reason).Inc()
	return apperr.Validation(format, args...)
}

func hostAllowed(host string) bool {
	for _, allowed := range allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func pathAllowed(path string) bool {
	switch {
	case strings.Contains(path, "/api/channel/hls/") && strings.HasSuffix(path, ".m3u8"):
		return true
	case strings.HasPrefix(path, "/vod/"), strings.HasPrefix(path, "/chunked/"):
		return true
	default:
		return strings.HasSuffix(path, ".m3u8")
	}
}

// filterQuery form-decodes raw, keeps allowed pairs in order and re-encodes
// them with Encode. Pairs that do not decode are dropped.
func filterQuery(raw string) string {
	if raw == "" {
		return ""
	}
	var kept []string
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || !allowedParams[key] {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		kept = append(kept, Encode(key)+"="+Encode(value))
	}
	return strings.Join(kept, "&")
}

// Encode percent-encodes every byte outside A-Z a-z 0-9 - _ . ~ as %XX with
// upper-case hex.
func Encode(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}
