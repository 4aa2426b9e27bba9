// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cicerone/internal/config"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/metrics"
)

// retryPolicy defines exponential backoff with symmetric jitter for
// transient API failures.
type retryPolicy struct {
	// MaxRetries is the maximum number of retry attempts after the first call.
	MaxRetries int

	// InitialBackoff is the backoff before the first retry.
	InitialBackoff time.Duration

	// MaxBackoff caps the backoff duration, jitter included.
	MaxBackoff time.Duration

	// BackoffMultiplier is the exponential growth factor.
	BackoffMultiplier float64

	// JitterFraction is the random jitter fraction (0.0-1.0).
	JitterFraction float64

	rng   *rand.Rand
	rngMu sync.Mutex
}

// newRetryPolicy builds a policy from configuration, applying defaults for
// unset values. A zero seed uses a time-based seed; a non-zero seed makes
// jitter deterministic for tests.
func newRetryPolicy(cfg config.GeminiConfig, seed int64) *retryPolicy {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := &retryPolicy{
		MaxRetries:        cfg.MaxRetries,
		InitialBackoff:    cfg.InitialBackoff,
		MaxBackoff:        cfg.MaxBackoff,
		BackoffMultiplier: cfg.BackoffMultiplier,
		JitterFraction:    cfg.JitterFraction,
		//nolint:gosec // G404: Using weak random for non-cryptographic jitter in backoff timing
		rng: rand.New(rand.NewSource(seed)),
	}

	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = time.Second
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = p.InitialBackoff * 64
	}
	if p.BackoffMultiplier <= 0 {
		p.BackoffMultiplier = 2.0
	}
	if p.JitterFraction <= 0 || p.JitterFraction > 1.0 {
		p.JitterFraction = 0.1
	}

	return p
}

// backoff calculates the wait before the given retry attempt (0-based).
// The result is always non-negative and never exceeds MaxBackoff.
func (p *retryPolicy) backoff(attempt int) time.Duration {
	base := float64(p.InitialBackoff) * math.Pow(p.BackoffMultiplier, float64(attempt))
	if base > float64(p.MaxBackoff) {
		base = float64(p.MaxBackoff)
	}

	p.rngMu.Lock()
	jitter := base * p.JitterFraction * (p.rng.Float64()*2 - 1) // -jitter to +jitter
	p.rngMu.Unlock()

	d := time.Duration(base + jitter)
	if d < 0 {
		d = 0
	}
	if d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	return d
}

// executor runs API calls through the full resilience pipeline:
// limiter -> circuit breaker -> retry with backoff.
type executor struct {
	policy  *retryPolicy
	breaker *gobreaker.CircuitBreaker[interface{}]
	limiter *rate.Limiter
	timeout time.Duration
	name    string
}

// newExecutor builds the shared executor. Seed 0 uses time-based jitter;
// tests pass a fixed seed for deterministic backoff.
func newExecutor(cfg config.GeminiConfig, seed int64) *executor {
	name := "gemini-api"
	return &executor{
		policy:  newRetryPolicy(cfg, seed),
		breaker: newBreaker(name),
		limiter: newLimiter(cfg.RequestsPerMin),
		timeout: cfg.RequestTimeout,
		name:    name,
	}
}

// do runs fn with pacing, breaker protection and retries. The callback
// receives a context bounded by the per-attempt timeout. Empty-response
// errors are retried at most once; other transient errors retry up to
// MaxRetries. Breaker rejections and permanent errors return immediately.
func (e *executor) do(ctx context.Context, op string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	emptyRetried := false

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		result, err := e.breaker.Execute(func() (interface{}, error) {
			callCtx := ctx
			if e.timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, e.timeout)
				defer cancel()
			}
			return fn(callCtx)
		})
		if err == nil {
			metrics.RecordBreakerRequest(e.name, "success")
			return result, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordBreakerRequest(e.name, "rejected")
			logging.Ctx(ctx).Warn().Str("operation", op).Err(err).Msg("Circuit breaker rejected call")
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
		}
		metrics.RecordBreakerRequest(e.name, "failure")

		if !retryable(err) {
			return nil, err
		}
		if errors.Is(err, ErrEmptyResponse) {
			if emptyRetried {
				return nil, err
			}
			emptyRetried = true
		}
		if attempt >= e.policy.MaxRetries {
			return nil, fmt.Errorf("gemini: %s failed after %d attempts: %w", op, attempt+1, err)
		}

		backoff := e.policy.backoff(attempt)
		metrics.RecordGenerationRetry(op)
		logging.Ctx(ctx).Warn().
			Str("operation", op).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(err).
			Msg("Retrying generation call")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
