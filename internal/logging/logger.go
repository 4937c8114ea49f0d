// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

// Package logging owns the gateway's zerolog logger.
//
// Handlers, the upstream client and the supervisor all write one structured
// stream: JSON by default, or a human-readable console format for local runs.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("login", login).Msg("Live master playlist fetched")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Rendition probe failed")
//
// LOG_LEVEL, LOG_FORMAT and LOG_CALLER reach Init through the config package.
// Before Init the logger writes info-level JSON to stderr, so package init
// code and config loading can log too.
//
// An event is only written once Msg or Send is called.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the level, format and sinks of the process logger.
type Config struct {
	Level     string    // trace, debug, info, warn, error, fatal, panic or disabled
	Format    string    // json or console
	Caller    bool      // add file:line
	Timestamp bool      // add the "time" field
	Output    io.Writer // nil means os.Stderr
}

// DefaultConfig is what the logger uses until Init runs.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Timestamp: true, Output: os.Stderr}
}

// current is swapped whole by Init and SetLogger; readers never lock.
var current atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // config loading logs before main reaches Init
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"
	Init(DefaultConfig())
}

// Init builds a logger from cfg and installs it. Calling it again replaces
// the previous logger.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	SetLogger(ctx.Logger())
}

// parseLevel accepts zerolog's level names plus "warning". Blank or unknown
// input means info.
func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return zerolog.WarnLevel
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// Logger returns a copy of the process logger.
func Logger() zerolog.Logger {
	return *current.Load()
}

// SetLogger installs l as the process logger. Tests use it with
// NewTestLogger to capture output.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout zerolog
func SetLogger(l zerolog.Logger) {
	current.Store(&l)
}

// With starts a child logger context.
func With() zerolog.Context { return current.Load().With() }

// Debug starts a debug event.
func Debug() *zerolog.Event { return current.Load().Debug() }

// Info starts an info event.
func Info() *zerolog.Event { return current.Load().Info() }

// Warn starts a warn event.
func Warn() *zerolog.Event { return current.Load().Warn() }

// Error starts an error event.
func Error() *zerolog.Event { return current.Load().Error() }

// Fatal starts an event that exits the process with status 1 after Msg.
// Deferred functions do not run.
func Fatal() *zerolog.Event { return current.Load().Fatal() }

// NewTestLogger returns a JSON logger with timestamps writing to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
