// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler lets slog callers write into the zerolog stream. sutureslog
// only accepts a *slog.Logger, so supervisor restarts and backoffs arrive
// here.
//
// Groups become dotted key prefixes ("svc.name"). Attributes added with
// WithAttrs are rendered once into the child zerolog logger.
type SlogHandler struct {
	logger zerolog.Logger
	prefix string
}

// NewSlogHandler writes through the current process logger.
func NewSlogHandler() *SlogHandler {
	return &SlogHandler{logger: Logger()}
}

// NewSlogHandlerWithLogger writes through logger.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout zerolog
func NewSlogHandlerWithLogger(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// NewSlogLogger is the logger handed to the supervisor tree.
func NewSlogLogger() *slog.Logger {
	return slog.New(NewSlogHandler())
}

// Enabled implements slog.Handler.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	zl := zerologLevel(level)
	return zl >= h.logger.GetLevel() && zl >= zerolog.GlobalLevel()
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Handler takes the record by value
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	var kv []any
	record.Attrs(func(a slog.Attr) bool {
		kv = flatten(kv, h.prefix, a)
		return true
	})
	h.logger.WithLevel(zerologLevel(record.Level)).Fields(kv).Msg(record.Message)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var kv []any
	for _, a := range attrs {
		kv = flatten(kv, h.prefix, a)
	}
	return &SlogHandler{logger: h.logger.With().Fields(kv).Logger(), prefix: h.prefix}
}

// WithGroup implements slog.Handler.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{logger: h.logger, prefix: h.prefix + name + "."}
}

// flatten appends a as key/value pairs for zerolog's Fields, expanding
// groups into dotted keys. Empty attributes are dropped.
func flatten(kv []any, prefix string, a slog.Attr) []any {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return kv
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			kv = flatten(kv, inner, ga)
		}
		return kv
	}
	return append(kv, prefix+a.Key, a.Value.Any())
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level >= slog.LevelError:
		return zerolog.ErrorLevel
	case level >= slog.LevelWarn:
		return zerolog.WarnLevel
	case level >= slog.LevelInfo:
		return zerolog.InfoLevel
	case level >= slog.LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
