// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"validation", Validation("Invalid VOD identifier"), ErrValidation, "Invalid VOD identifier"},
		{"not found", NotFound("Video not found"), ErrNotFound, "Video not found"},
		{"upstream", Upstream("Twitch API HTTP %d", 503), ErrUpstream, "Twitch API HTTP 503"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("expected %v to be %v", tt.err, tt.kind)
			}
			if tt.err.Error() != tt.msg {
				t.Errorf("expected message %q, got %q", tt.msg, tt.err.Error())
			}
		})
	}
}

func TestWrapUpstream(t *testing.T) {
	err := WrapUpstream(context.DeadlineExceeded, "request failed")
	if !errors.Is(err, ErrUpstream) {
		t.Error("expected wrapped error to be ErrUpstream")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected wrapped error to keep its cause")
	}
	if err.Error() != "request failed: context deadline exceeded" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	nf := NotFound("User not found")
	if got := WrapUpstream(fmt.Errorf("lookup: %w", nf), "x"); !errors.Is(got, ErrNotFound) {
		t.Error("expected classified errors to pass through unchanged")
	}
	if WrapUpstream(nil, "x") != nil {
		t.Error("expected nil for nil cause")
	}
}
