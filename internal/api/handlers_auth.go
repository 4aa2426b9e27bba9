// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cicerone/internal/auth"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/models"
)

// Token exchanges the configured admin secret for a short-lived bearer
// token. The endpoint sits behind the strictest rate limit since it is
// the obvious brute-force target.
//
// Method: POST
// Path: /api/v1/auth/token
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TokenRequest
	if err := decodeBody(w, r, maxBodyBytes, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidRequest, "Invalid request body", nil)
		return
	}

	token, expiresAt, err := h.tokens.Mint(req.Secret)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDisabled):
			respondError(w, r, http.StatusServiceUnavailable, codeAuthentication,
				"Admin access is not configured", nil)
		case errors.Is(err, auth.ErrBadSecret):
			logging.Warn().Str("remote", r.RemoteAddr).Msg("admin token request with wrong secret")
			if h.audit != nil {
				h.audit.TokenRejected(r, "invalid admin secret")
			}
			respondError(w, r, http.StatusUnauthorized, codeAuthentication,
				"Invalid admin secret", nil)
		default:
			writeServiceError(w, r, err)
		}
		return
	}

	if h.audit != nil {
		h.audit.TokenMinted(r)
	}
	respondSuccess(w, r, http.StatusOK, models.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, start, false)
}
