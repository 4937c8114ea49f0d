// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package store persists the viewer's local state in BadgerDB.

# Collections

Each collection is one JSON value under its own key:

	collection:history    map[vodId]HistoryEntry
	collection:watchlist  []WatchlistEntry (insertion order)
	collection:subs       []SubEntry (insertion order, lowercased logins)
	collection:settings   Settings

Every mutation is a read-modify-write inside a single Badger transaction,
serialized by a mutex and committed with SyncWrites before it returns.

# Failure Policy

Reads never fail for the caller: a store error is logged and counted and the
empty collection is returned. Mutations return the error.

# Legacy Import

Earlier releases kept everything in {data_dir}/history.json. On open, if that
file exists and has not been imported yet, its document is copied into the
collections once.
*/
package store
