// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Both drivers in use are understood: pgx ([pgconn.PgError]) and lib/pq ([pq.Error]).
package dberr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/taibuivan/myapi/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action names the failed operation and ends up in the logged cause.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Already classified further down the stack
	if apperr.IsAppError(err) {
		return err
	}

	// 3. Unreachable database
	var connectError *pgconn.ConnectError
	if errors.As(err, &connectError) {
		return apperr.ServiceUnavailable("Database unavailable", fmt.Errorf("%s: %w", action, err))
	}

	code := SQLState(err)
	if code != "" && pgerrcode.IsConnectionException(code) {
		return apperr.ServiceUnavailable("Database unavailable", fmt.Errorf("%s: sqlstate %s: %w", action, code, err))
	}

	// 4. Everything else is an uncategorized storage failure
	if code != "" {
		return apperr.Internal(fmt.Errorf("%s: sqlstate %s: %w", action, code, err))
	}
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// SQLState returns the five-character SQLSTATE carried by err, or "" if err did not
// originate from the PostgreSQL server.
func SQLState(err error) string {
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		return pgError.Code
	}

	var pqError *pq.Error
	if errors.As(err, &pqError) {
		return string(pqError.Code)
	}

	return ""
}
