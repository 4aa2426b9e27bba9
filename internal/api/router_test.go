// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"
	"strings"
	"testing"
)

// TestRouter_KnownRoutes walks the public surface and checks every route
// is mounted. Handler behavior has its own tests; this catches routing
// regressions like a lost method or a typoed pattern.
func TestRouter_KnownRoutes(t *testing.T) {
	rig := newTestRig(t)

	routes := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/guide/voices", http.StatusOK},
		{http.MethodGet, "/api/v1/itineraries", http.StatusOK},
		{http.MethodGet, "/api/v1/places/top", http.StatusOK},
		{http.MethodGet, "/api/v1/favorites?client_id=" + testClientID, http.StatusOK},
		{http.MethodGet, "/api/v1/places/nearby?lat=41.9&lon=12.5", http.StatusOK},
		// Admin without a token still proves the route exists.
		{http.MethodGet, "/api/v1/stats", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/places", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/audit", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/snapshots", http.StatusUnauthorized},
	}

	for _, rt := range routes {
		rec := rig.do(t, rt.method, rt.path, nil, nil)
		if rec.Code != rt.want {
			t.Errorf("%s %s = %d, want %d (body %q)", rt.method, rt.path, rec.Code, rt.want, rec.Body.String())
		}
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodGet, "/api/v1/nope", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route = %d, want 404", rec.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodDelete, "/api/v1/guide/voices", nil, nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("wrong method = %d, want 405", rec.Code)
	}
}

func TestRouter_MetricsExposition(t *testing.T) {
	rig := newTestRig(t)

	// Generate some traffic so counters exist.
	rig.do(t, http.MethodGet, "/api/v1/guide/voices", nil, nil)

	rec := rig.do(t, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("exposition missing api_requests_total")
	}
}

// TestRouter_PlainGetOnWS hits the socket path without upgrade headers.
// The route must exist and the upgrader must refuse it cleanly.
func TestRouter_PlainGetOnWS(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodGet, "/api/v1/ws", nil, nil)
	if rec.Code == http.StatusNotFound {
		t.Fatal("socket route not mounted")
	}
	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusForbidden {
		t.Errorf("plain GET on socket = %d, want 400 or 403", rec.Code)
	}
}
