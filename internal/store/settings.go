// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package store

import (
	"context"

	"github.com/tomtom215/nosubvod/internal/models"
)

// Settings returns the experience settings.
func (s *Store) Settings(ctx context.Context) models.Settings {
	return read[models.Settings](ctx, s, "read", CollectionSettings)
}

// UpdateSettings applies the fields that are set.
func (s *Store) UpdateSettings(ctx context.Context, oneSync *bool) (models.Settings, error) {
	return mutate(ctx, s, "update", CollectionSettings, func(st *models.Settings) bool {
		if oneSync != nil {
			st.OneSync = *oneSync
		}
		return true
	})
}
