// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package manifest

import "strings"

const uriAttr = `URI="`

type lineKind int

const (
	lineBlank lineKind = iota
	lineTag
	lineMedia
)

// line is one parsed playlist line.
//
// For tags, uris holds the value of every complete URI="..." attribute and
// parts the text around them, so len(parts) == len(uris)+1. A media line
// keeps its reference in text.
type line struct {
	kind  lineKind
	text  string
	parts []string
	uris  []string
}

// playlist is the parsed form of an HLS playlist, one entry per input line.
type playlist []line

// parsePlaylist splits body on "\n" and classifies each line. Surrounding
// whitespace (including a trailing "\r") is dropped.
func parsePlaylist(body string) playlist {
	raw := strings.Split(body, "\n")
	p := make(playlist, len(raw))
	for i, r := range raw {
		text := strings.TrimSpace(r)
		switch {
		case text == "":
			p[i] = line{kind: lineBlank}
		case strings.HasPrefix(text, "#"):
			p[i] = parseTag(text)
		default:
			p[i] = line{kind: lineMedia, text: text}
		}
	}
	return p
}

// parseTag extracts URI attributes. An unterminated attribute stays in the
// trailing part.
func parseTag(text string) line {
	l := line{kind: lineTag, text: text}
	rest := text
	for {
		i := strings.Index(rest, uriAttr)
		if i < 0 {
			break
		}
		start := i + len(uriAttr)
		end := strings.IndexByte(rest[start:], '"')
		if end < 0 {
			break
		}
		l.parts = append(l.parts, rest[:start])
		l.uris = append(l.uris, rest[start:start+end])
		rest = rest[start+end:]
	}
	l.parts = append(l.parts, rest)
	return l
}

// mapURIs replaces every media reference, bare or attribute, with fn(ref),
// in document order.
func (p playlist) mapURIs(fn func(ref string) string) {
	for i := range p {
		l := &p[i]
		switch l.kind {
		case lineMedia:
			l.text = fn(l.text)
		case lineTag:
			for j := range l.uris {
				l.uris[j] = fn(l.uris[j])
			}
		}
	}
}

// String serializes the playlist with "\n" line endings.
func (p playlist) String() string {
	var b strings.Builder
	for i, l := range p {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch l.kind {
		case lineTag:
			for j, part := range l.parts {
				b.WriteString(part)
				if j < len(l.uris) {
					b.WriteString(l.uris[j])
				}
			}
		default:
			b.WriteString(l.text)
		}
	}
	return b.String()
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// MakeAbsolute resolves ref against the playlist URL base. Absolute http(s)
// references are returned unchanged; anything else replaces the last path
// segment of base, with leading slashes on ref dropped.
func MakeAbsolute(ref, base string) string {
	if isAbsolute(ref) {
		return ref
	}
	dir := base
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		dir = base[:i]
	}
	return dir + "/" + strings.TrimLeft(ref, "/")
}

// baseDir returns target up to and including its last "/".
func baseDir(target string) string {
	if i := strings.LastIndexByte(target, '/'); i >= 0 {
		return target[:i+1]
	}
	return target
}
