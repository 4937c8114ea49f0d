// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package services provides suture.Service wrappers for NoSubVOD components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern and implements fmt.Stringer so suture can name it in logs.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Serves on a listener bound by main (see Listen)
  - A serve failure returns suture.ErrTerminateSupervisorTree

Feed Warmer (FeedWarmService):
  - Periodically recomputes the trending feed for the stored history
  - Failures are logged and retried on the next tick

Store GC (StoreGCService):
  - Periodically runs Badger value log garbage collection

# Error Handling

	error                       -> crashed, restarted by the supervisor
	ErrTerminateSupervisorTree  -> the whole tree stops and main exits
	ctx.Err()                   -> shutdown requested

Components are accepted through small interfaces (HTTPServer, FeedWarmer,
GarbageCollector) so this package imports neither the store nor the
recommendation engine, and tests can substitute fakes.
*/
package services
