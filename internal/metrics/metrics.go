// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Gemini generation latency, retries and token usage
// - API endpoint latency and throughput
// - Catalog (Badger) operation performance
// - Cache efficiency
// - WebSocket connections

var (
	// Generation Metrics (Gemini)
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Duration of Gemini generation calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60}, // Model calls routinely take seconds
		},
		[]string{"operation", "model"},
	)

	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total number of Gemini generation calls",
		},
		[]string{"operation", "model", "outcome"}, // outcome: "success", "failure", "rejected"
	)

	GenerationRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_retries_total",
			Help: "Total number of Gemini call retries after transient failures",
		},
		[]string{"operation"},
	)

	GenerationTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_tokens_total",
			Help: "Total number of tokens consumed by Gemini calls",
		},
		[]string{"operation", "model", "kind"}, // kind: "prompt", "completion"
	)

	TTSAudioBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tts_audio_bytes_total",
			Help: "Total size of synthesized speech in bytes (PCM, before WAV framing)",
		},
	)

	TTSAudioSeconds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tts_audio_seconds_total",
			Help: "Total duration of synthesized speech in seconds",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Catalog Store Metrics (Badger)
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of catalog store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "prefix"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of catalog store operation errors",
		},
		[]string{"operation", "prefix"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_gc_runs_total",
			Help: "Total number of value log garbage collection runs",
		},
		[]string{"outcome"}, // "reclaimed", "nothing_to_do", "error"
	)

	StoreSnapshots = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_snapshots_total",
			Help: "Total number of catalog snapshot attempts",
		},
		[]string{"trigger", "outcome"},
	)

	// Audit Metrics
	AuditEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_total",
			Help: "Total number of recorded audit events",
		},
		[]string{"type"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "results", "audio"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to the internal bus",
		},
		[]string{"topic"},
	)

	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_dropped_total",
			Help: "Total number of events dropped due to slow consumers",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordGeneration records the outcome of a Gemini generation call.
// Rejected calls (circuit breaker open, rate limiter saturated) should be
// recorded with RecordGenerationRejected instead so failure rates stay
// meaningful.
func RecordGeneration(operation, model string, duration time.Duration, err error) {
	GenerationDuration.WithLabelValues(operation, model).Observe(duration.Seconds())
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	GenerationRequests.WithLabelValues(operation, model, outcome).Inc()
}

// RecordGenerationRejected records a call refused before reaching the model
func RecordGenerationRejected(operation, model string) {
	GenerationRequests.WithLabelValues(operation, model, "rejected").Inc()
}

// RecordGenerationRetry records a retry attempt for an operation
func RecordGenerationRetry(operation string) {
	GenerationRetries.WithLabelValues(operation).Inc()
}

// RecordTokenUsage records prompt and completion token counts for a call
func RecordTokenUsage(operation, model string, promptTokens, completionTokens int32) {
	if promptTokens > 0 {
		GenerationTokens.WithLabelValues(operation, model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		GenerationTokens.WithLabelValues(operation, model, "completion").Add(float64(completionTokens))
	}
}

// RecordTTSAudio records the size and duration of a synthesized clip
func RecordTTSAudio(pcmBytes int, seconds float64) {
	TTSAudioBytes.Add(float64(pcmBytes))
	TTSAudioSeconds.Add(seconds)
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records a catalog store operation metric
func RecordStoreOperation(operation, prefix string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation, prefix).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation, prefix).Inc()
	}
}

// RecordStoreGC records the outcome of a value log GC run
func RecordStoreGC(outcome string) {
	StoreGCRuns.WithLabelValues(outcome).Inc()
}

// RecordSnapshot records a catalog snapshot attempt
func RecordSnapshot(trigger string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	StoreSnapshots.WithLabelValues(trigger, outcome).Inc()
}

// RecordAuditEvent counts one recorded audit event by type
func RecordAuditEvent(eventType string) {
	AuditEvents.WithLabelValues(eventType).Inc()
}

// RecordCacheHit records a cache hit for the given cache type
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// UpdateCacheSize updates the entry count gauge for the given cache type
func UpdateCacheSize(cacheType string, entries int64) {
	CacheSize.WithLabelValues(cacheType).Set(float64(entries))
}

// RecordEventPublished records an event published to the internal bus
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventDropped records an event dropped due to a slow consumer
func RecordEventDropped() {
	EventsDropped.Inc()
}

// RecordBreakerTransition records a circuit breaker state change
func RecordBreakerTransition(name, fromState, toState string) {
	CircuitBreakerTransitions.WithLabelValues(name, fromState, toState).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(toState))
}

// RecordBreakerRequest records a request outcome through a circuit breaker
func RecordBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// breakerStateValue maps gobreaker state names to gauge values
func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default: // closed
		return 0
	}
}
