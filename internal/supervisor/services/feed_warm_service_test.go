// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockWarmer struct {
	mu    sync.Mutex
	calls int
	err   error
	delay time.Duration
}

func (m *mockWarmer) Warm(ctx context.Context) (int, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if m.err != nil {
		return 0, m.err
	}
	return 40, nil
}

func (m *mockWarmer) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestFeedWarmService_Defaults(t *testing.T) {
	svc := NewFeedWarmService(&mockWarmer{}, FeedWarmServiceConfig{}, zerolog.Nop())

	if svc.config.Interval != 10*time.Minute {
		t.Errorf("Interval = %v, want 10m", svc.config.Interval)
	}
	if svc.config.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", svc.config.Timeout)
	}
	if got := svc.String(); got != "feed-warm-service" {
		t.Errorf("String() = %q, want %q", got, "feed-warm-service")
	}
}

func TestFeedWarmService_Startup(t *testing.T) {
	tests := []struct {
		name          string
		warmOnStartup bool
		want          int
	}{
		{"warms on startup", true, 1},
		{"waits for first tick", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warmer := &mockWarmer{}
			svc := NewFeedWarmService(warmer, FeedWarmServiceConfig{
				WarmOnStartup: tt.warmOnStartup,
				Interval:      time.Hour,
			}, zerolog.Nop())

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_ = svc.Serve(ctx)

			if got := warmer.getCalls(); got != tt.want {
				t.Errorf("Warm() called %d times, want %d", got, tt.want)
			}
		})
	}
}

func TestFeedWarmService_Scheduled(t *testing.T) {
	warmer := &mockWarmer{}
	svc := NewFeedWarmService(warmer, FeedWarmServiceConfig{Interval: 50 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 130*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if got := warmer.getCalls(); got < 2 {
		t.Errorf("Warm() called %d times, want >= 2", got)
	}
}

func TestFeedWarmService_ErrorDoesNotStopService(t *testing.T) {
	warmer := &mockWarmer{err: errors.New("upstream unavailable")}
	svc := NewFeedWarmService(warmer, FeedWarmServiceConfig{
		WarmOnStartup: true,
		Interval:      30 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if got := warmer.getCalls(); got < 2 {
		t.Errorf("Warm() called %d times, want retries after failure", got)
	}
}

func TestFeedWarmService_GracefulShutdown(t *testing.T) {
	warmer := &mockWarmer{delay: 50 * time.Millisecond}
	svc := NewFeedWarmService(warmer, FeedWarmServiceConfig{
		WarmOnStartup: true,
		Interval:      time.Hour,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not complete in time")
	}
}
