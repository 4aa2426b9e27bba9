// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/cicerone/internal/config"
	"github.com/tomtom215/cicerone/internal/metrics"
)

// Fixed per-endpoint limits. The standard and generation limits come from
// configuration; these two are not worth a knob.
const (
	authLimitRequests   = 5
	authLimitWindow     = time.Minute
	healthLimitRequests = 1000
	healthLimitWindow   = time.Minute
)

// chiMiddleware adapts http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler so the middleware package plugs into
// r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// ChiMiddleware builds the chi-shaped middleware that depends on security
// configuration: CORS and the per-IP rate limiters.
type ChiMiddleware struct {
	cfg config.SecurityConfig
}

// NewChiMiddleware creates middleware from security settings.
func NewChiMiddleware(cfg config.SecurityConfig) *ChiMiddleware {
	return &ChiMiddleware{cfg: cfg}
}

// CORS returns the CORS middleware for browser clients. Applied globally
// so OPTIONS preflights are answered before routing.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	origins := m.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "If-None-Match"},
		ExposedHeaders: []string{"X-Request-ID", "ETag", "Retry-After"},
		// No cookies or accounts; credentials stay off.
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit is the standard per-IP limit for API endpoints.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit(m.cfg.RateLimitReqs, m.cfg.RateLimitWindow)
}

// RateLimitGenerate is the stricter limit for endpoints that call the
// model. Generation burns quota and seconds, so the ceiling is low.
func (m *ChiMiddleware) RateLimitGenerate() func(http.Handler) http.Handler {
	return m.limit(m.cfg.GenerateLimitReqs, m.cfg.RateLimitWindow)
}

// RateLimitAuth is the strict limit for token minting, slowing down
// secret guessing.
func (m *ChiMiddleware) RateLimitAuth() func(http.Handler) http.Handler {
	return m.limit(authLimitRequests, authLimitWindow)
}

// RateLimitHealth is permissive so monitoring can poll frequently.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.limit(healthLimitRequests, healthLimitWindow)
}

func (m *ChiMiddleware) limit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled || requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if window <= 0 {
		window = time.Minute
	}

	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

// rateLimitExceeded writes the 429 in the standard envelope instead of
// httprate's plain-text default. The metric label uses the route pattern
// so ID-bearing paths do not fan out into new series.
func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			endpoint = p
		}
	}
	metrics.APIRateLimitHits.WithLabelValues(endpoint).Inc()

	respondError(w, r, http.StatusTooManyRequests, codeRateLimited,
		"Too many requests, slow down", nil)
}

// APISecurityHeaders sets security headers on API responses.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
