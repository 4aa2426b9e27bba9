// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package gemini wraps the Google Gemini API for every generative operation
// the service performs: landmark identification from photos, narration text,
// structured itinerary and nearby-place generation, speech synthesis and
// postcard images.
//
// All calls funnel through a single resilience pipeline: a client-side rate
// limiter paces requests to respect free-tier quotas, a circuit breaker fails
// fast when the API is down, and a retry executor with exponential backoff
// and jitter absorbs transient failures. Callers never reach the API without
// passing through that pipeline.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/tomtom215/cicerone/internal/config"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/metrics"
)

// Operation names used as metric labels and in log lines.
const (
	opIdentify  = "identify"
	opNarrate   = "narrate"
	opItinerary = "itinerary"
	opNearby    = "nearby"
	opSpeech    = "tts"
	opPostcard  = "postcard"
)

// BreakerCooldown is how long the circuit stays open before probing again.
// Surfaced to API clients as a Retry-After hint on 503 responses.
const BreakerCooldown = 30 * time.Second

// Client is the Gemini API client. All generative operations share one
// breaker, one limiter and one retry policy so a failing upstream is
// detected across operation types, not per endpoint.
type Client struct {
	api  *genai.Client
	cfg  config.GeminiConfig
	exec *executor
}

// New creates a Gemini client from configuration. The context is used only
// for client construction; individual calls carry their own contexts.
func New(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}

	cc := &genai.ClientConfig{APIKey: cfg.APIKey}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	api, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{
		api:  api,
		cfg:  cfg,
		exec: newExecutor(cfg, 0),
	}, nil
}

// BreakerState reports the circuit breaker state as a string
// (closed, half-open, open) for readiness and stats endpoints.
func (c *Client) BreakerState() string {
	return stateToString(c.exec.breaker.State())
}

// Healthy reports whether the breaker currently admits requests.
func (c *Client) Healthy() bool {
	return c.exec.breaker.State() != gobreaker.StateOpen
}

// DefaultVoice returns the configured fallback TTS voice name.
func (c *Client) DefaultVoice() string {
	return c.cfg.Voice
}

// TextModel returns the model name used for text and structured-JSON
// generation, stamped into persisted documents for provenance.
func (c *Client) TextModel() string {
	return c.cfg.TextModel
}

// newBreaker builds the shared circuit breaker. The circuit opens after a
// 60% failure rate across at least 5 requests in the measurement window,
// then probes with up to 3 requests after the cooldown.
func newBreaker(name string) *gobreaker.CircuitBreaker[interface{}] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     BreakerCooldown,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("Circuit breaker state change")
			metrics.RecordBreakerTransition(name, fromStr, toStr)
		},
	})
}

// castResult converts the breaker's untyped result with error checking.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("gemini: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToString converts a breaker state to its metric/log label.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// newLimiter paces outbound requests evenly across the minute. A zero or
// negative RPM disables pacing.
func newLimiter(requestsPerMin int) *rate.Limiter {
	if requestsPerMin <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMin)), 1)
}
