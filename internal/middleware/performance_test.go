// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func sampleAt(method, path string, status int, durMS float64) RequestSample {
	return RequestSample{
		Method:     method,
		Path:       path,
		StatusCode: status,
		DurationMS: durMS,
		Timestamp:  time.Now().UTC(),
	}
}

func TestNewPerformanceMonitor_DefaultWindow(t *testing.T) {
	m := NewPerformanceMonitor(0)
	if m.limit != defaultWindowSize {
		t.Errorf("limit = %d, want %d", m.limit, defaultWindowSize)
	}

	m = NewPerformanceMonitor(50)
	if m.limit != 50 {
		t.Errorf("limit = %d, want 50", m.limit)
	}
}

func TestPerformanceMonitor_WindowEviction(t *testing.T) {
	m := NewPerformanceMonitor(5)

	for i := 1; i <= 8; i++ {
		m.RecordRequest(sampleAt(http.MethodGet, "/api/v1/voices", http.StatusOK, float64(i)))
	}

	stats := m.Stats()
	got, ok := stats["GET /api/v1/voices"]
	if !ok {
		t.Fatal("expected stats for GET /api/v1/voices")
	}
	if got.Requests != 5 {
		t.Errorf("requests = %d, want window size 5", got.Requests)
	}
	// Samples 1-3 were evicted, leaving 4..8.
	if got.MaxMS != 8 {
		t.Errorf("max = %v, want 8", got.MaxMS)
	}
	if got.P50MS != 6 {
		t.Errorf("p50 = %v, want 6", got.P50MS)
	}
}

func TestPerformanceMonitor_Stats(t *testing.T) {
	m := NewPerformanceMonitor(200)

	for i := 1; i <= 100; i++ {
		m.RecordRequest(sampleAt(http.MethodPost, "/api/v1/guide/narrate", http.StatusOK, float64(i)))
	}
	m.RecordRequest(sampleAt(http.MethodGet, "/api/v1/places/top", http.StatusInternalServerError, 3))
	m.RecordRequest(sampleAt(http.MethodGet, "/api/v1/places/top", http.StatusOK, 5))

	stats := m.Stats()

	narrate := stats["POST /api/v1/guide/narrate"]
	if narrate.Requests != 100 {
		t.Fatalf("narrate requests = %d, want 100", narrate.Requests)
	}
	if narrate.P50MS != 50 {
		t.Errorf("p50 = %v, want 50", narrate.P50MS)
	}
	if narrate.P95MS != 95 {
		t.Errorf("p95 = %v, want 95", narrate.P95MS)
	}
	if narrate.P99MS != 99 {
		t.Errorf("p99 = %v, want 99", narrate.P99MS)
	}
	if narrate.MaxMS != 100 {
		t.Errorf("max = %v, want 100", narrate.MaxMS)
	}
	if narrate.AvgMS != 50.5 {
		t.Errorf("avg = %v, want 50.5", narrate.AvgMS)
	}
	if narrate.Errors != 0 {
		t.Errorf("narrate errors = %d, want 0", narrate.Errors)
	}

	top := stats["GET /api/v1/places/top"]
	if top.Requests != 2 {
		t.Errorf("top requests = %d, want 2", top.Requests)
	}
	if top.Errors != 1 {
		t.Errorf("top errors = %d, want 1", top.Errors)
	}
}

func TestPerformanceMonitor_Recent(t *testing.T) {
	m := NewPerformanceMonitor(20)

	for i := 1; i <= 10; i++ {
		m.RecordRequest(sampleAt(http.MethodGet, "/health", http.StatusOK, float64(i)))
	}

	recent := m.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("len(recent) = %d, want 3", len(recent))
	}
	if recent[0].DurationMS != 10 {
		t.Errorf("newest sample duration = %v, want 10", recent[0].DurationMS)
	}
	if recent[2].DurationMS != 8 {
		t.Errorf("oldest returned duration = %v, want 8", recent[2].DurationMS)
	}

	all := m.Recent(0)
	if len(all) != 10 {
		t.Errorf("Recent(0) returned %d samples, want the whole window", len(all))
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	m := NewPerformanceMonitor(10)

	handler := m.Middleware(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}

	recent := m.Recent(1)
	if len(recent) != 1 {
		t.Fatal("expected one recorded sample")
	}
	if recent[0].StatusCode != http.StatusTeapot {
		t.Errorf("recorded status = %d, want %d", recent[0].StatusCode, http.StatusTeapot)
	}
	if recent[0].DurationMS < 5 {
		t.Errorf("recorded duration = %v ms, want at least 5", recent[0].DurationMS)
	}
	if recent[0].Method != http.MethodGet {
		t.Errorf("recorded method = %q, want GET", recent[0].Method)
	}
}

func TestPerformanceMonitor_ConcurrentRecording(t *testing.T) {
	m := NewPerformanceMonitor(1000)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				m.RecordRequest(sampleAt(http.MethodGet, "/health", http.StatusOK, 1))
			}
		}()
	}
	wg.Wait()

	stats := m.Stats()
	if got := stats["GET /health"].Requests; got != 1000 {
		t.Errorf("requests = %d, want 1000", got)
	}
}

func TestPercentile(t *testing.T) {
	cases := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 50, 0},
		{"single", []float64{7}, 99, 7},
		{"p50 of four", []float64{1, 2, 3, 4}, 50, 2},
		{"p100", []float64{1, 2, 3, 4}, 100, 4},
		{"p1 clamps to first", []float64{10, 20}, 1, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := percentile(tc.sorted, tc.p); got != tc.want {
				t.Errorf("percentile(%v, %v) = %v, want %v", tc.sorted, tc.p, got, tc.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := round2(50.504999); got != 50.5 {
		t.Errorf("round2 = %v, want 50.5", got)
	}
	if got := round2(0.005); got != 0.01 {
		t.Errorf("round2 = %v, want 0.01", got)
	}
}
