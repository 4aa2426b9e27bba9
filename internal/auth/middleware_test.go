// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cicerone/internal/config"
)

func newTestMiddleware(t *testing.T) (*Middleware, *Manager) {
	t.Helper()

	manager := NewManager(config.SecurityConfig{
		AdminSecret: testSecret,
		TokenTTL:    time.Minute,
	})
	return NewMiddleware(manager), manager
}

func protectedHandler(called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	mw, manager := newTestMiddleware(t)

	token, _, err := manager.Mint(testSecret)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	var called bool
	handler := mw.RequireAdmin(protectedHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/places", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if !called {
		t.Error("expected the protected handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAdmin_MissingToken(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	var called bool
	handler := mw.RequireAdmin(protectedHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/places", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if called {
		t.Error("protected handler ran without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := rec.Header().Get("WWW-Authenticate"); !strings.Contains(got, "Bearer") {
		t.Errorf("WWW-Authenticate = %q, want a Bearer challenge", got)
	}
	if !strings.Contains(rec.Body.String(), "AUTHENTICATION_ERROR") {
		t.Errorf("body = %q, want AUTHENTICATION_ERROR code", rec.Body.String())
	}
}

func TestRequireAdmin_GarbageToken(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	var called bool
	handler := mw.RequireAdmin(protectedHandler(&called))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/places/abc", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if called {
		t.Error("protected handler ran with a garbage token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdmin_DisabledManager(t *testing.T) {
	manager := NewManager(config.SecurityConfig{})
	mw := NewMiddleware(manager)

	var called bool
	handler := mw.RequireAdmin(protectedHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/places", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if called {
		t.Error("protected handler ran with auth disabled")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"plain token", "Bearer abc123", "abc123"},
		{"padded", "Bearer   abc123  ", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"no scheme", "abc123", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if got := bearerToken(req); got != tc.want {
				t.Errorf("bearerToken = %q, want %q", got, tc.want)
			}
		})
	}
}
