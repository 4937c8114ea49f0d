// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

// Package validation validates decoded request bodies with
// go-playground/validator v10.
//
// A single validator instance is built lazily and shared; it caches struct
// metadata, so reuse is required for performance. Field names in messages
// come from json tags ("vodId is required"), and one non-standard rule is
// registered:
//
//	notblank  string is non-empty after trimming whitespace
//
// Handlers convert a failure into an apperr.ErrValidation error with a fixed
// client message:
//
//	type SubRequest struct {
//	    Login string `json:"login" validate:"notblank,max=64"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return verr.AsAppError("Invalid sub payload")
//	}
package validation
