// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cicerone/internal/config"
	"github.com/tomtom215/cicerone/internal/models"
)

func TestToken_Success(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/token", map[string]string{
		"secret": testAdminSecret,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	var resp models.TokenResponse
	decodeData(t, decodeEnvelope(t, rec), &resp)
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	if !resp.ExpiresAt.After(time.Now()) {
		t.Errorf("expires_at = %v, want future", resp.ExpiresAt)
	}

	// The minted token must open the admin surface.
	rec = rig.do(t, http.MethodGet, "/api/v1/stats", nil, map[string]string{
		"Authorization": "Bearer " + resp.Token,
	})
	if rec.Code != http.StatusOK {
		t.Errorf("stats with minted token = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
}

func TestToken_WrongSecret(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/token", map[string]string{
		"secret": "wrong-secret",
	}, nil)
	wantError(t, rec, http.StatusUnauthorized, "AUTHENTICATION_ERROR")
}

func TestToken_Disabled(t *testing.T) {
	rig := newTestRigSecurity(t, config.SecurityConfig{
		TokenTTL:          time.Minute,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"*"},
	})

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/token", map[string]string{
		"secret": "anything",
	}, nil)
	wantError(t, rec, http.StatusServiceUnavailable, "AUTHENTICATION_ERROR")
}

func TestToken_MalformedBody(t *testing.T) {
	rig := newTestRig(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader("{oops"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	rig.mux.ServeHTTP(rec, req)

	wantError(t, rec, http.StatusBadRequest, "INVALID_REQUEST")
}
