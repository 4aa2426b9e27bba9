// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package middleware provides HTTP middleware for the Cicerone API.
//
// All middleware uses the http.HandlerFunc wrapper style:
//
//	func Example(next http.HandlerFunc) http.HandlerFunc {
//		return func(w http.ResponseWriter, r *http.Request) {
//			// pre-processing
//			next(w, r)
//			// post-processing
//		}
//	}
//
// The api package bridges these into chi's func(http.Handler) http.Handler
// shape with a small adapter, so the same middleware works on both plain
// handlers and chi route groups.
//
// Provided middleware:
//
//   - RequestID: attaches a request ID to the context and response headers
//     so log lines, WebSocket progress events, and client reports can be
//     correlated.
//   - PrometheusMetrics: records request counts, latencies, and in-flight
//     gauges using the chi route pattern to keep label cardinality bounded.
//   - PerformanceMonitor: an in-memory sliding window of request timings
//     with per-endpoint percentiles, surfaced via the stats endpoint.
//   - Compression: gzip response compression for clients that accept it,
//     skipping WebSocket upgrades and already-compressed payloads.
//
// Generation endpoints routinely take several seconds because they wait on
// model inference, so latency thresholds here are calibrated for that and
// not for a conventional CRUD service.
package middleware
