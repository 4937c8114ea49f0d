// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

// Package apperr defines the error taxonomy shared by every layer of the
// gateway. Handlers map the three kinds to HTTP status codes with errors.Is:
//
//   - ErrValidation: bad identifier syntax or a disallowed proxy target (400)
//   - ErrNotFound: the entity does not exist upstream or has expired (404)
//   - ErrUpstream: network failure, timeout, non-2xx or malformed upstream data (500)
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel kinds.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")
)

// Error carries a kind, a client-facing message and an optional cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

// Error returns the message, followed by the cause when one is attached.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap exposes the cause so callers can test for context.DeadlineExceeded and friends.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds an ErrValidation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Upstream builds an ErrUpstream error with no cause.
func Upstream(format string, args ...any) error {
	return &Error{Kind: ErrUpstream, Msg: fmt.Sprintf(format, args...)}
}

// WrapUpstream builds an ErrUpstream error around cause. Errors that already
// carry a kind are returned unchanged.
func WrapUpstream(cause error, msg string) error {
	if cause == nil {
		return nil
	}
	var e *Error
	if errors.As(cause, &e) {
		return cause
	}
	return &Error{Kind: ErrUpstream, Msg: msg, Err: cause}
}
