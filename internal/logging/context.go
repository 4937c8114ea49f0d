// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fieldsKey struct{}

// field is one key/value pair carried in a context for request-scoped logs.
type field struct {
	key, value string
}

// scope is the immutable set of log fields attached to a context. Each
// ContextWith* call copies it, so sibling contexts never share state.
type scope struct {
	logger        *zerolog.Logger
	requestID     string
	correlationID string
	fields        []field
}

func scopeFrom(ctx context.Context) scope {
	if s, ok := ctx.Value(fieldsKey{}).(scope); ok {
		return s
	}
	return scope{}
}

func (s scope) with(fn func(*scope)) scope {
	s.fields = append([]field(nil), s.fields...)
	fn(&s)
	return s
}

func withScope(ctx context.Context, fn func(*scope)) context.Context {
	return context.WithValue(ctx, fieldsKey{}, scopeFrom(ctx).with(fn))
}

// ContextWithRequestID attaches the HTTP request ID to ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return withScope(ctx, func(s *scope) { s.requestID = id })
}

// RequestIDFromContext returns "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

// ContextWithNewCorrelationID attaches a short random ID that follows one
// request through every upstream call it fans out to.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	id := uuid.New().String()[:8]
	return withScope(ctx, func(s *scope) { s.correlationID = id })
}

// CorrelationIDFromContext returns "" when absent.
func CorrelationIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).correlationID
}

// ContextWithField adds key=value to every log written through Ctx(ctx).
// Handlers use it to tag logs with the video id or channel login being served.
func ContextWithField(ctx context.Context, key, value string) context.Context {
	return withScope(ctx, func(s *scope) {
		s.fields = append(s.fields, field{key: key, value: value})
	})
}

// ContextWithLogger makes Ctx(ctx) write through logger instead of the
// global one.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return withScope(ctx, func(s *scope) { s.logger = &logger })
}

// Ctx returns a logger carrying every field attached to ctx.
//
//	logging.Ctx(ctx).Info().Msg("master playlist generated")
func Ctx(ctx context.Context) *zerolog.Logger {
	s := scopeFrom(ctx)

	base := Logger()
	if s.logger != nil {
		base = *s.logger
	}
	logCtx := base.With()
	if s.correlationID != "" {
		logCtx = logCtx.Str("correlation_id", s.correlationID)
	}
	if s.requestID != "" {
		logCtx = logCtx.Str("request_id", s.requestID)
	}
	for _, f := range s.fields {
		logCtx = logCtx.Str(f.key, f.value)
	}

	l := logCtx.Logger()
	return &l
}

// CtxDebug is shorthand for Ctx(ctx).Debug().
func CtxDebug(ctx context.Context) *zerolog.Event {
	return Ctx(ctx).Debug()
}

// CtxWarn is shorthand for Ctx(ctx).Warn().
func CtxWarn(ctx context.Context) *zerolog.Event {
	return Ctx(ctx).Warn()
}

// CtxErr is shorthand for Ctx(ctx).Error().Err(err).
func CtxErr(ctx context.Context, err error) *zerolog.Event {
	return Ctx(ctx).Error().Err(err)
}

// WithComponent returns a child of the global logger tagged with component,
// for long-lived background services.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
