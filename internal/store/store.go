// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/clock"
	"github.com/tomtom215/nosubvod/internal/config"
	"github.com/tomtom215/nosubvod/internal/logging"
	"github.com/tomtom215/nosubvod/internal/metrics"
)

// Collection names, also used as metric labels.
const (
	CollectionHistory   = "history"
	CollectionWatchlist = "watchlist"
	CollectionSubs      = "subs"
	CollectionSettings  = "settings"
)

const (
	keyPrefix         = "collection:"
	legacyImportedKey = "meta:legacy_imported"
	defaultGCRatio    = 0.5
)

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("store is closed")

// Store is the Badger-backed persisted state. It is safe for concurrent use.
type Store struct {
	db    *badger.DB
	clock clock.Clock

	// mu serializes read-modify-write cycles.
	mu     sync.Mutex
	closed bool
}

// Open opens (or creates) the database described by cfg and imports a
// legacy history.json from cfg.DataDir when one is present. A nil clock
// means the system clock.
func Open(cfg *config.StoreConfig, clk clock.Clock) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		opts = badger.DefaultOptions(badgerDir(cfg.DataDir))
	}
	opts.SyncWrites = true
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	if clk == nil {
		clk = clock.System{}
	}
	s := &Store{db: db, clock: clk}

	if !cfg.InMemory {
		if err := s.importLegacy(legacyPath(cfg.DataDir)); err != nil {
			logging.Warn().Err(err).Str("data_dir", cfg.DataDir).Msg("Legacy history import failed")
		}
	}
	return s, nil
}

// OpenInMemory opens a store that lives only in memory.
func OpenInMemory(clk clock.Clock) (*Store, error) {
	return Open(&config.StoreConfig{InMemory: true}, clk)
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) nowMillis() uint64 {
	return uint64(s.clock.Now().UnixMilli())
}

func collectionKey(name string) []byte {
	return []byte(keyPrefix + name)
}

// get decodes a collection into out. A missing key leaves out untouched.
func get(txn *badger.Txn, collection string, out any) error {
	item, err := txn.Get(collectionKey(collection))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", collection, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func put(txn *badger.Txn, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", collection, err)
	}
	if err := txn.Set(collectionKey(collection), data); err != nil {
		return fmt.Errorf("set %s: %w", collection, err)
	}
	return nil
}

// read loads a collection. Errors are logged and yield the zero value.
func read[T any](ctx context.Context, s *Store, op, collection string) T {
	start := time.Now()
	var v T
	err := s.db.View(func(txn *badger.Txn) error {
		return get(txn, collection, &v)
	})
	metrics.RecordStoreOperation(op, collection, time.Since(start), err)
	if err != nil {
		logging.CtxErr(ctx, err).Str("collection", collection).Str("op", op).Msg("Store read failed")
		var zero T
		return zero
	}
	return v
}

// mutate applies fn to the current value of a collection and writes the
// result back in the same transaction. fn returns false to skip the write.
func mutate[T any](ctx context.Context, s *Store, op, collection string, fn func(*T) bool) (T, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	var v T
	if s.closed {
		return v, ErrClosed
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := get(txn, collection, &v); err != nil {
			return err
		}
		if !fn(&v) {
			return nil
		}
		return put(txn, collection, v)
	})
	metrics.RecordStoreOperation(op, collection, time.Since(start), err)
	if err != nil {
		logging.CtxErr(ctx, err).Str("collection", collection).Str("op", op).Msg("Store write failed")
		var zero T
		return zero, err
	}
	return v, nil
}
