// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/models"
)

// Middleware guards admin endpoints with bearer token verification.
type Middleware struct {
	manager *Manager
}

// NewMiddleware creates auth middleware backed by the given manager.
func NewMiddleware(manager *Manager) *Middleware {
	return &Middleware{manager: manager}
}

// RequireAdmin rejects requests without a valid admin bearer token.
// When no admin secret is configured the whole admin surface answers 401,
// since no token can ever be minted.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeAuthError(w, "Missing bearer token")
			return
		}

		if _, err := m.manager.Verify(token); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Admin token rejected")
			writeAuthError(w, "Invalid or expired token")
			return
		}

		next(w, r)
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// writeAuthError writes a 401 in the API envelope. Defined here rather
// than reusing the api package helpers to keep auth free of an api
// dependency.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	w.WriteHeader(http.StatusUnauthorized)

	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    "AUTHENTICATION_ERROR",
			Message: message,
		},
	}
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}
