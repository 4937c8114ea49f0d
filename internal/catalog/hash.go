// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package catalog

import "strconv"

const maxHashRunes = 10000

// SimpleHash is the 32-bit string hash used in cache keys: h = h*31 + rune,
// wrapping, over at most the first 10000 runes, rendered as the unsigned
// absolute value in decimal.
func SimpleHash(s string) string {
	var h int32
	n := 0
	for _, r := range s {
		if n >= maxHashRunes {
			break
		}
		h = h<<5 - h + int32(r)
		n++
	}
	abs := uint32(h)
	if h < 0 {
		abs = uint32(-int64(h))
	}
	return strconv.FormatUint(uint64(abs), 10)
}
