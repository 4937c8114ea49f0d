// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/nosubvod/internal/metrics"
)

// RunGC rewrites value log files until Badger reports nothing left to
// reclaim and returns the number of files rewritten. In-memory stores have
// no value log and return zero.
func (s *Store) RunGC() (int, error) {
	rewrites := 0
	for {
		err := s.db.RunValueLogGC(defaultGCRatio)
		switch {
		case err == nil:
			rewrites++
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			result := "noop"
			if rewrites > 0 {
				result = "rewritten"
			}
			metrics.StoreGCRuns.WithLabelValues(result).Inc()
			return rewrites, nil
		default:
			metrics.StoreGCRuns.WithLabelValues("error").Inc()
			return rewrites, fmt.Errorf("run GC: %w", err)
		}
	}
}
