// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Handlers use it to reject malformed payloads before they reach a mapper. It never
// rewrites values: names are accepted verbatim, including empty strings.
package validate

import (
	"strings"

	"github.com/taibuivan/myapi/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.Unprocessable("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Present fails if the field was absent (or null) in the decoded payload.
func (v *Validator) Present(field string, value *string) *Validator {
	if value == nil {
		v.add(field, "This field is required")
	}
	return v
}

// NoNUL fails if the value contains a NUL byte, which PostgreSQL text columns reject.
func (v *Validator) NoNUL(field string, value *string) *Validator {
	if value != nil && strings.ContainsRune(*value, '\x00') {
		v.add(field, "Must not contain NUL characters")
	}
	return v
}

// Err returns a [apperr.AppError] (UNPROCESSABLE) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.Unprocessable("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// FieldErr is a shortcut to create a single-field validation error.
func FieldErr(field, message string) *apperr.AppError {
	return apperr.Unprocessable("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
