// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

// countingService records how often it was started. A non-nil failWith is
// returned immediately from every Serve call.
type countingService struct {
	name     string
	starts   atomic.Int32
	running  atomic.Bool
	failWith error
}

func (s *countingService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	if s.failWith != nil {
		return s.failWith
	}
	s.running.Store(true)
	defer s.running.Store(false)
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) String() string { return s.name }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 100,
		FailureDecay:     1,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  200 * time.Millisecond,
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewSupervisorTree_FillsZeroConfig(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want %+v", tree.config, DefaultTreeConfig())
	}
	if tree.Root() == nil {
		t.Error("Root() returned nil")
	}
}

func TestNewSupervisorTree_NilLogger(t *testing.T) {
	if _, err := NewSupervisorTree(nil, DefaultTreeConfig()); err == nil {
		t.Error("NewSupervisorTree(nil, ...) should fail without a logger")
	}
}

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5 || cfg.FailureDecay != 30 {
		t.Errorf("failure settings = %v/%v, want 5/30", cfg.FailureThreshold, cfg.FailureDecay)
	}
	if cfg.FailureBackoff != 15*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("durations = %v/%v, want 15s/10s", cfg.FailureBackoff, cfg.ShutdownTimeout)
	}
}

func TestSupervisorTree_RunsEveryLayer(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), fastConfig())
	if err != nil {
		t.Fatal(err)
	}

	gc := &countingService{name: "store-gc"}
	warmer := &countingService{name: "feed-warmer"}
	httpSvc := &countingService{name: "http-server"}
	tree.AddDataService(gc)
	tree.AddWorkerService(warmer)
	tree.AddAPIService(httpSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitFor(t, "all layers running", func() bool {
		return gc.running.Load() && warmer.running.Load() && httpSvc.running.Load()
	})

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop after cancel")
	}

	if httpSvc.running.Load() {
		t.Error("http-server still running after shutdown")
	}
	unstopped, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport: %v", err)
	}
	if len(unstopped) != 0 {
		t.Errorf("unstopped = %v, want none", unstopped)
	}
}

func TestSupervisorTree_WorkerCrashDoesNotRestartAPI(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), fastConfig())
	if err != nil {
		t.Fatal(err)
	}

	crashing := &countingService{name: "feed-warmer", failWith: errors.New("upstream exploded")}
	httpSvc := &countingService{name: "http-server"}
	tree.AddWorkerService(crashing)
	tree.AddAPIService(httpSvc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	waitFor(t, "worker restarts", func() bool { return crashing.starts.Load() >= 3 })

	if got := httpSvc.starts.Load(); got != 1 {
		t.Errorf("http-server started %d times, want 1", got)
	}
	if !httpSvc.running.Load() {
		t.Error("http-server stopped while the worker layer was crashing")
	}

	cancel()
	<-errCh
}
