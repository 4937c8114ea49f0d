// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package supervisor provides process supervision for NoSubVOD using suture v4.

Every long-running piece of the gateway runs as a suture.Service under a
three-layer tree, so a crash restarts only the failing service.

# Overview

	RootSupervisor ("nosubvod")
	├── DataSupervisor ("data-layer")
	│   └── StoreGCService (disk-backed store only)
	├── WorkerSupervisor ("worker-layer")
	│   └── FeedWarmService (if RECOMMEND_WARM_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The feed warmer talks to the upstream GraphQL API and is the most likely
service to fail; keeping it in its own layer means its restarts are counted
separately from the HTTP server's.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddDataService(services.NewStoreGCService(st, cfg.Store.GCInterval, gcLogger))
	tree.AddWorkerService(services.NewFeedWarmService(warmer, warmCfg, warmLogger))
	tree.AddAPIService(services.NewHTTPServerService(server, ln, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# Configuration

TreeConfig controls restart behavior. Zero fields fall back to suture's
defaults: 5 failures, 30s decay, 15s backoff, 10s shutdown timeout.

# Failure Handling

Each failure increments a counter that decays exponentially over
FailureDecay seconds. Once the counter passes FailureThreshold the
supervisor waits FailureBackoff before the next restart.

Return behavior of a service:
  - any return while the tree runs, nil included: restarted
  - suture.ErrDoNotRestart: removed from its layer
  - suture.ErrTerminateSupervisorTree: the layer and the root stop, and
    ServeBackground delivers the error (the HTTP server uses this when its
    listener dies)

# What Is NOT Supervised

The Badger store and the in-memory caches are libraries, not services. They
are opened in main and closed after the tree returns.

# Debugging Shutdown Issues

UnstoppedServiceReport lists services that ignored cancellation past
ShutdownTimeout.
*/
package supervisor
