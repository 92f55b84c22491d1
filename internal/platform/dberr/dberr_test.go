// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/myapi/internal/platform/apperr"
	"github.com/taibuivan/myapi/internal/platform/dberr"
)

/*
TestWrap_Classification covers every branch of the error mapping.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"pgx_no_rows", pgx.ErrNoRows, http.StatusNotFound, apperr.CodeNotFound},
		{"sql_no_rows", sql.ErrNoRows, http.StatusNotFound, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound, apperr.CodeNotFound},
		{"pg_not_null", &pgconn.PgError{Code: pgerrcode.NotNullViolation}, http.StatusInternalServerError, apperr.CodeInternal},
		{"pq_unique", &pq.Error{Code: pgerrcode.UniqueViolation}, http.StatusInternalServerError, apperr.CodeInternal},
		{"pg_connection_failure", &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, http.StatusServiceUnavailable, apperr.CodeServiceUnavailable},
		{"pq_connection_exception", &pq.Error{Code: pgerrcode.ConnectionException}, http.StatusServiceUnavailable, apperr.CodeServiceUnavailable},
		{"plain", errors.New("socket closed"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")

			appError := apperr.As(wrapped)
			require.NotNil(t, appError)
			assert.Equal(t, tt.status, appError.HTTPStatus)
			assert.Equal(t, tt.code, appError.Code)
		})
	}
}

/*
TestWrap_Nil passes nil through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestWrap_NotFoundSentinel returns the shared sentinel so callers can use errors.Is.
*/
func TestWrap_NotFoundSentinel(t *testing.T) {
	assert.ErrorIs(t, dberr.Wrap(pgx.ErrNoRows, "get"), dberr.ErrNotFound)
}

/*
TestWrap_PreservesCause keeps the driver error and action for server-side logs.
*/
func TestWrap_PreservesCause(t *testing.T) {
	pgError := &pgconn.PgError{Code: pgerrcode.NotNullViolation, Message: "null value"}
	wrapped := dberr.Wrap(pgError, "create_actor")

	var target *pgconn.PgError
	require.ErrorAs(t, wrapped, &target)

	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.Contains(t, appError.Cause.Error(), "create_actor")
	assert.Contains(t, appError.Cause.Error(), pgerrcode.NotNullViolation)
}

/*
TestWrap_AlreadyClassified returns application errors unchanged.
*/
func TestWrap_AlreadyClassified(t *testing.T) {
	original := apperr.Unprocessable("bad")
	assert.Same(t, original, dberr.Wrap(original, "noop"))
}

/*
TestSQLState reads codes from both drivers.
*/
func TestSQLState(t *testing.T) {
	assert.Equal(t, "23502", dberr.SQLState(&pgconn.PgError{Code: "23502"}))
	assert.Equal(t, "23505", dberr.SQLState(fmt.Errorf("x: %w", &pq.Error{Code: "23505"})))
	assert.Empty(t, dberr.SQLState(errors.New("plain")))
}
