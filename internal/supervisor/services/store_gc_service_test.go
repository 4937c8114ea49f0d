// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockGC struct {
	runs atomic.Int32
	err  error
}

func (m *mockGC) RunGC() (int, error) {
	m.runs.Add(1)
	return 1, m.err
}

func TestStoreGCService(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"successful runs", nil},
		{"failing runs keep the service alive", errors.New("value log locked")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc := &mockGC{err: tt.err}
			svc := NewStoreGCService(gc, 20*time.Millisecond, zerolog.Nop())

			ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
			defer cancel()

			err := svc.Serve(ctx)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
			}
			if got := gc.runs.Load(); got < 2 {
				t.Errorf("RunGC() called %d times, want >= 2", got)
			}
		})
	}
}

func TestStoreGCService_Defaults(t *testing.T) {
	svc := NewStoreGCService(&mockGC{}, 0, zerolog.Nop())
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m", svc.interval)
	}
	if svc.String() != "store-gc-service" {
		t.Errorf("String() = %q", svc.String())
	}
}
