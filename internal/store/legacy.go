// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/models"
)

const (
	legacyFileName = "history.json"
	badgerDirName  = "badger"
)

func legacyPath(dataDir string) string {
	return filepath.Join(dataDir, legacyFileName)
}

func badgerDir(dataDir string) string {
	return filepath.Join(dataDir, badgerDirName)
}

// importLegacy copies a history.json document into the collections. It runs
// at most once per database: the import is recorded under a marker key in
// the same transaction. A missing file is not an error.
func (s *Store) importLegacy(path string) error {
	raw, err := os.ReadFile(path) //nolint:gosec // path is built from configuration
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var doc models.PersistedData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	imported := false
	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(legacyImportedKey)); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		history := doc.History
		if history == nil {
			history = map[string]models.HistoryEntry{}
		}
		for id, e := range history {
			if e.VODID == "" {
				e.VODID = id
				history[id] = e
			}
		}
		if err := put(txn, CollectionHistory, history); err != nil {
			return err
		}
		if err := put(txn, CollectionWatchlist, nonNil(doc.Watchlist)); err != nil {
			return err
		}
		if err := put(txn, CollectionSubs, normalizeSubs(doc.Subs)); err != nil {
			return err
		}
		if err := put(txn, CollectionSettings, doc.Settings); err != nil {
			return err
		}
		imported = true
		return txn.Set([]byte(legacyImportedKey), []byte(s.clock.Now().UTC().Format("2006-01-02T15:04:05Z")))
	})
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	if imported {
		logging.Info().
			Str("path", path).
			Int("history", len(doc.History)).
			Int("watchlist", len(doc.Watchlist)).
			Int("subs", len(doc.Subs)).
			Msg("Imported legacy history document")
	}
	return nil
}

// normalizeSubs lower-cases logins and drops empty and duplicate entries.
func normalizeSubs(subs []models.SubEntry) []models.SubEntry {
	out := make([]models.SubEntry, 0, len(subs))
	seen := make(map[string]bool, len(subs))
	for _, sub := range subs {
		sub.Login = normalizeLogin(sub.Login)
		if sub.Login == "" || seen[sub.Login] {
			continue
		}
		seen[sub.Login] = true
		out = append(out, sub)
	}
	return out
}
