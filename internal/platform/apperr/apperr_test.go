// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/myapi/internal/platform/apperr"
)

/*
TestConstructors verifies status codes and machine codes of every constructor.
*/
func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Actor"), http.StatusNotFound, apperr.CodeNotFound},
		{"not_found_message", apperr.NotFoundMessage("gone"), http.StatusNotFound, apperr.CodeNotFound},
		{"unprocessable", apperr.Unprocessable("bad"), http.StatusUnprocessableEntity, apperr.CodeUnprocessable},
		{"rate_limited", apperr.RateLimited(2), http.StatusTooManyRequests, apperr.CodeRateLimited},
		{"internal", apperr.Internal(cause), http.StatusInternalServerError, apperr.CodeInternal},
		{"unavailable", apperr.ServiceUnavailable("down", cause), http.StatusServiceUnavailable, apperr.CodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Error())
		})
	}

	assert.Equal(t, "Actor not found", apperr.NotFound("Actor").Message)
}

/*
TestAs_TraversesWrappedChain checks extraction through fmt.Errorf wrapping.
*/
func TestAs_TraversesWrappedChain(t *testing.T) {
	base := apperr.NotFoundMessage("Actor with ID '7' does not exist")
	wrapped := fmt.Errorf("read: %w", base)

	assert.True(t, apperr.IsAppError(wrapped))
	extracted := apperr.As(wrapped)
	require.NotNil(t, extracted)
	assert.Same(t, base, extracted)

	assert.False(t, apperr.IsAppError(errors.New("plain")))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestInternal_KeepsCause ensures the cause is reachable for logging but hidden from the message.
*/
func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := apperr.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "connection reset")
}
