// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package store

import (
	"context"
	"strings"

	"github.com/tomtom215/nosubvod/internal/models"
)

func normalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

// Subs returns followed channels in the order they were added.
func (s *Store) Subs(ctx context.Context) []models.SubEntry {
	return nonNil(read[[]models.SubEntry](ctx, s, "read", CollectionSubs))
}

// AddSub follows a channel. The login is trimmed and lower-cased; empty
// logins and channels already followed leave the list unchanged.
func (s *Store) AddSub(ctx context.Context, entry models.SubEntry) ([]models.SubEntry, error) {
	entry.Login = normalizeLogin(entry.Login)
	if entry.Login == "" {
		return s.Subs(ctx), nil
	}
	subs, err := mutate(ctx, s, "add", CollectionSubs, func(subs *[]models.SubEntry) bool {
		for _, existing := range *subs {
			if existing.Login == entry.Login {
				return false
			}
		}
		*subs = append(*subs, entry)
		return true
	})
	return nonNil(subs), err
}

// RemoveSub unfollows a channel. The login is trimmed and lower-cased.
func (s *Store) RemoveSub(ctx context.Context, login string) ([]models.SubEntry, error) {
	login = normalizeLogin(login)
	subs, err := mutate(ctx, s, "remove", CollectionSubs, func(subs *[]models.SubEntry) bool {
		kept := (*subs)[:0]
		for _, e := range *subs {
			if e.Login != login {
				kept = append(kept, e)
			}
		}
		*subs = nonNil(kept)
		return true
	})
	return nonNil(subs), err
}
