// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package cache

import "time"

// Cacher is the subset of Cache that consumers depend on.
type Cacher[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
}

var _ Cacher[string] = (*Cache[string])(nil)
