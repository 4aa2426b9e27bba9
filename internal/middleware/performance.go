// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package middleware

import (
	"math"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cicerone/internal/logging"
)

const (
	// defaultWindowSize is the number of samples kept when no explicit
	// window is configured.
	defaultWindowSize = 1000

	// slowRequestMS flags requests slower than this threshold.
	// Generation endpoints wait on model inference and routinely take a
	// few seconds, so the bar sits well above normal latency.
	slowRequestMS = 5000.0
)

// RequestSample is one observed request in the sliding window.
type RequestSample struct {
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	DurationMS float64   `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// EndpointStats summarizes the window for one method+path pair.
type EndpointStats struct {
	Requests int64   `json:"requests"`
	Errors   int64   `json:"errors"`
	AvgMS    float64 `json:"avg_ms"`
	P50MS    float64 `json:"p50_ms"`
	P95MS    float64 `json:"p95_ms"`
	P99MS    float64 `json:"p99_ms"`
	MaxMS    float64 `json:"max_ms"`
}

// PerformanceMonitor keeps a sliding window of recent request timings and
// derives per-endpoint percentiles from it. It backs the stats endpoint
// and complements Prometheus with numbers that need no external scraper.
type PerformanceMonitor struct {
	mu      sync.RWMutex
	samples []RequestSample
	limit   int
}

// NewPerformanceMonitor creates a monitor keeping at most windowSize
// samples. Non-positive sizes fall back to the default window.
func NewPerformanceMonitor(windowSize int) *PerformanceMonitor {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &PerformanceMonitor{
		samples: make([]RequestSample, 0, windowSize),
		limit:   windowSize,
	}
}

// RecordRequest adds a sample, evicting the oldest once the window is full.
func (m *PerformanceMonitor) RecordRequest(s RequestSample) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.samples) >= m.limit {
		copy(m.samples, m.samples[1:])
		m.samples = m.samples[:m.limit-1]
	}
	m.samples = append(m.samples, s)
}

// Stats aggregates the current window per "METHOD path" key.
func (m *PerformanceMonitor) Stats() map[string]EndpointStats {
	m.mu.RLock()
	durations := make(map[string][]float64)
	errors := make(map[string]int64)
	for _, s := range m.samples {
		key := s.Method + " " + s.Path
		durations[key] = append(durations[key], s.DurationMS)
		if s.StatusCode >= http.StatusInternalServerError {
			errors[key]++
		}
	}
	m.mu.RUnlock()

	out := make(map[string]EndpointStats, len(durations))
	for key, durs := range durations {
		sort.Float64s(durs)
		var sum float64
		for _, d := range durs {
			sum += d
		}
		out[key] = EndpointStats{
			Requests: int64(len(durs)),
			Errors:   errors[key],
			AvgMS:    round2(sum / float64(len(durs))),
			P50MS:    percentile(durs, 50),
			P95MS:    percentile(durs, 95),
			P99MS:    percentile(durs, 99),
			MaxMS:    durs[len(durs)-1],
		}
	}
	return out
}

// Recent returns up to n samples, newest first. n <= 0 returns the whole
// window.
func (m *PerformanceMonitor) Recent(n int) []RequestSample {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 || n > len(m.samples) {
		n = len(m.samples)
	}
	out := make([]RequestSample, n)
	copy(out, m.samples[len(m.samples)-n:])
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Middleware records a sample for every request passing through it and
// logs a warning for requests beyond the slow threshold.
func (m *PerformanceMonitor) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		mw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(mw, r)

		durMS := float64(time.Since(start).Microseconds()) / 1000.0

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}

		m.RecordRequest(RequestSample{
			Method:     r.Method,
			Path:       path,
			StatusCode: mw.statusCode,
			DurationMS: durMS,
			Timestamp:  start.UTC(),
		})

		if durMS >= slowRequestMS {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("path", path).
				Int("status", mw.statusCode).
				Float64("duration_ms", durMS).
				Msg("Slow request")
		}
	}
}

// percentile returns the nearest-rank percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
