// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"
	"google.golang.org/genai"
)

// Sentinel errors surfaced to the API layer, which maps them to HTTP
// status codes and stable error codes.
var (
	// ErrEmptyResponse means the model returned no usable candidates.
	// Treated as transient: the executor retries it once.
	ErrEmptyResponse = errors.New("gemini: model returned no usable output")

	// ErrUnknownLandmark means photo identification found no identifiable
	// landmark, or confidence was below the floor. Not retryable.
	ErrUnknownLandmark = errors.New("gemini: no identifiable landmark in photo")

	// ErrUnavailable means the circuit breaker rejected the call without
	// reaching the API. Clients should back off for BreakerCooldown.
	ErrUnavailable = errors.New("gemini: service unavailable")

	// ErrInvalidOutput means the model produced output that failed to parse
	// against the expected structure after cleanup. Not retryable.
	ErrInvalidOutput = errors.New("gemini: model output did not match expected structure")
)

// retryable classifies an error as transient. Retryable: rate limiting
// (429), server-side failures (5xx), transport errors and empty responses.
// Everything else, including context cancellation and breaker rejections,
// fails immediately.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	if errors.Is(err, ErrEmptyResponse) {
		return true
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	// Per-attempt deadline expiry is retryable; the surrounding request
	// context is checked separately between attempts.
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
