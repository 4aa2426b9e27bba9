// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPrometheusMetrics_PassesResponseThrough(t *testing.T) {
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		if _, err := w.Write([]byte(`{"status":"success"}`)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/guide/narrate", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := rec.Body.String(); got != `{"status":"success"}` {
		t.Errorf("body = %q, want the handler payload", got)
	}
}

func TestPrometheusMetrics_DefaultStatusIs200(t *testing.T) {
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			t.Errorf("write failed: %v", err)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMetricsResponseWriter_CapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	mw := &metricsResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	mw.WriteHeader(http.StatusUnprocessableEntity)

	if mw.statusCode != http.StatusUnprocessableEntity {
		t.Errorf("captured status = %d, want %d", mw.statusCode, http.StatusUnprocessableEntity)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("underlying status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}
