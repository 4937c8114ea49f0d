// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nosubvod/internal/apperr"
	"github.com/tomtom215/nosubvod/internal/logging"
)

// ContentTypeM3U8 is the media type of every playlist response.
const ContentTypeM3U8 = "application/vnd.apple.mpegurl"

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// sanitizeLogValue removes control characters from strings to prevent log
// injection through path parameters.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends v as JSON. Responses are never cached by intermediaries:
// history and live state change between requests.
func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondM3U8 sends a playlist body.
func respondM3U8(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", ContentTypeM3U8)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		logging.Error().Err(err).Msg("Failed to write playlist response")
	}
}

// statusFor maps an error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage is the part of err that is safe to show: the apperr message
// without its cause.
func clientMessage(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Msg != "" {
		return ae.Msg
	}
	return err.Error()
}

// respondError writes {"error": msg} with the status for err's kind and logs
// server-side failures with the full cause chain.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.CtxErr(r.Context(), err).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("API Error")
	} else {
		logging.CtxDebug(r.Context()).Err(err).
			Int("status", status).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("API request rejected")
	}
	respondJSON(w, status, errorBody{Error: clientMessage(err)})
}

// decodeJSON reads a bounded JSON body into v. Any decode failure is
// reported as a validation error carrying msg.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, msg string) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &apperr.Error{Kind: apperr.ErrValidation, Msg: msg, Err: err}
	}
	return nil
}

// queryString returns the trimmed query parameter key.
func queryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// getIntParam extracts a non-negative integer query parameter. Missing or
// unparsable values yield defaultValue.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := queryString(r, key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseUint(value, 10, 31)
	if err != nil {
		return defaultValue
	}
	return int(n)
}

// getClampedIntParam is getIntParam bounded to [lo, hi].
func getClampedIntParam(r *http.Request, key string, defaultValue, lo, hi int) int {
	return min(max(getIntParam(r, key, defaultValue), lo), hi)
}

// getFloatParam extracts a finite float query parameter.
func getFloatParam(r *http.Request, key string, defaultValue float64) float64 {
	value := queryString(r, key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// parseCommaSeparated splits a comma-separated value, dropping blanks.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
