// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - Gemini generation call latency, retries, and token consumption
  - HTTP request latency and throughput
  - Catalog store (Badger) operation performance
  - Cache hit/miss rates
  - Circuit breaker state transitions
  - WebSocket connection counts
  - Internal event bus throughput

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8420/metrics

# Available Metrics

Generation Metrics:
  - generation_duration_seconds: Model call latency (histogram)
    Labels: operation (identify, narrate, itinerary, nearby, tts, postcard), model
  - generation_requests_total: Calls by outcome (counter)
    Labels: operation, model, outcome (success, failure, rejected)
  - generation_retries_total: Retries after transient failures (counter)
    Labels: operation
  - generation_tokens_total: Token consumption (counter)
    Labels: operation, model, kind (prompt, completion)
  - tts_audio_bytes_total / tts_audio_seconds_total: Synthesized speech volume

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Store Metrics:
  - store_operation_duration_seconds: Badger operation latency (histogram)
    Labels: operation (get, set, delete, list), prefix (place, narration, ...)
  - store_operation_errors_total: Failed operations (counter)
  - store_gc_runs_total: Value log GC runs (counter)
    Labels: outcome (reclaimed, nothing_to_do, error)

Cache Metrics:
  - cache_hits_total / cache_misses_total: Per cache type (counter)
    Labels: cache_type (results, audio)
  - cache_entries: Current entry count (gauge)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge, 0=closed 1=half-open 2=open)
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_state_transitions_total: Transitions (counter)

# Usage

Record metrics through the helper functions rather than touching collectors
directly:

	start := time.Now()
	resp, err := client.Narrate(ctx, req)
	metrics.RecordGeneration("narrate", model, time.Since(start), err)

# Cardinality

Label values must be drawn from small fixed sets. Never use request IDs,
place names, or raw error strings as label values.
*/
package metrics
