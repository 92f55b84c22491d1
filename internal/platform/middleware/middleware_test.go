// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/myapi/internal/platform/apperr"
	"github.com/taibuivan/myapi/internal/platform/constants"
	"github.com/taibuivan/myapi/internal/platform/ctxutil"
	"github.com/taibuivan/myapi/internal/platform/middleware"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

type stubConfig struct {
	development bool
	suffix      string
}

func (c stubConfig) IsDevelopment() bool         { return c.development }
func (c stubConfig) AllowedOriginSuffix() string { return c.suffix }

/*
TestRequestID_GeneratesAndPropagates verifies header echo and context injection.
*/
func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	// 1. Generated when absent
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	// 2. Reused when provided
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-id")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", seen)
}

/*
TestStructuredLogger_InjectsLogger checks the per-request logger is available downstream.
*/
func TestStructuredLogger_InjectsLogger(t *testing.T) {
	base := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var injected *slog.Logger
	handler := middleware.StructuredLogger(base)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		injected = ctxutil.GetLogger(request.Context())
		writer.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/actors/1", nil))

	assert.NotNil(t, injected)
	assert.NotSame(t, slog.Default(), injected)
	assert.Equal(t, http.StatusTeapot, recorder.Code)
}

/*
TestRateLimiter_BlocksAfterBurst allows exactly the burst then answers 429.
*/
func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter(ctx, 0.001, 2)
	handler := limiter.Handler(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, "10.0.0.1")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket.
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRealIP, "10.0.0.2")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestPanicRecovery turns a panic into a 500 JSON error.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("mapper exploded")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "mapper exploded")
}

/*
TestCORS covers development, allowed-suffix and rejected origins.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		config  stubConfig
		origin  string
		allowed bool
	}{
		{"development_any_origin", stubConfig{development: true}, "http://localhost:3000", true},
		{"production_matching_suffix", stubConfig{suffix: "example.com"}, "https://app.example.com", true},
		{"production_foreign_origin", stubConfig{suffix: "example.com"}, "https://evil.test", false},
		{"production_no_suffix", stubConfig{}, "https://app.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(tt.config)(okHandler)

			request := httptest.NewRequest(http.MethodGet, "/actors", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestCORS_Preflight short-circuits OPTIONS requests.
*/
func TestCORS_Preflight(t *testing.T) {
	handler := middleware.CORS(stubConfig{development: true})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("preflight reached the handler")
	}))

	request := httptest.NewRequest(http.MethodOptions, "/actors", nil)
	request.Header.Set(constants.HeaderOrigin, "http://localhost:3000")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestCORS_PreflightForeignOrigin rejects a preflight the policy does not allow.
*/
func TestCORS_PreflightForeignOrigin(t *testing.T) {
	handler := middleware.CORS(stubConfig{suffix: "example.com"})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("preflight reached the handler")
	}))

	request := httptest.NewRequest(http.MethodOptions, "/actors", nil)
	request.Header.Set(constants.HeaderOrigin, "https://evil.test")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Body.String(), apperr.CodeForbidden)
}

/*
TestRealIP resolves proxy headers before the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:4321"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))
}
