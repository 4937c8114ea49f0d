// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/tomtom215/nosubvod/internal/apperr"
)

// GetValidator returns the shared validator. Error field names follow the
// json tags, so "vodId is required" reads like the request body.
var GetValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank: %v", err))
	}
	return v
})

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// ValidationError is one failed rule on one field.
type ValidationError struct {
	field, tag, param, message string
}

// Field is the json name of the field.
func (e *ValidationError) Field() string { return e.field }

// Tag is the rule that failed, e.g. "max".
func (e *ValidationError) Tag() string { return e.tag }

// Param is the rule argument, e.g. "64" for max=64.
func (e *ValidationError) Param() string { return e.param }

func (e *ValidationError) Error() string { return e.message }

// RequestValidationError holds every failed rule of one request body.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the failures in struct field order.
func (ve *RequestValidationError) Errors() []ValidationError { return ve.errors }

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errors))
	for i := range ve.errors {
		msgs[i] = ve.errors[i].message
	}
	return strings.Join(msgs, "; ")
}

// AsAppError turns the failures into an apperr.ErrValidation error that
// answers the client with msg and keeps ve as its cause.
func (ve *RequestValidationError) AsAppError(msg string) error {
	return &apperr.Error{Kind: apperr.ErrValidation, Msg: msg, Err: ve}
}

// ValidateStruct checks s against its validate tags and returns nil when
// every rule passes.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []ValidationError{
			{field: "unknown", tag: "unknown", message: err.Error()},
		}}
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			message: describe(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

// describe renders a field error as an English sentence.
func describe(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "numeric":
		return field + " must be numeric"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return field + " must be one of: " + param
	case "gte":
		return field + " must be greater than or equal to " + param
	case "lte":
		return field + " must be less than or equal to " + param
	case "min":
		return field + " must be at least " + param + unit
	case "max":
		return field + " must be at most " + param + unit
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
