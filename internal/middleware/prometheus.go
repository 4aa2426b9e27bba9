// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cicerone/internal/metrics"
)

// PrometheusMetrics records request counts, durations, and the in-flight
// gauge for every request. The endpoint label uses the chi route pattern
// (for example /api/v1/places/{id}) rather than the raw path, since raw
// paths contain UUIDs and would blow up label cardinality.
func PrometheusMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		mw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(mw, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			// The pattern is only populated once routing has resolved,
			// which is after next returns.
			if p := rctx.RoutePattern(); p != "" {
				endpoint = p
			}
		}

		metrics.RecordAPIRequest(r.Method, endpoint, strconv.Itoa(mw.statusCode), time.Since(start))
	}
}

// metricsResponseWriter captures the status code for metric labels.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *metricsResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
