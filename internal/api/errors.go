// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/cicerone/internal/catalog"
	"github.com/tomtom215/cicerone/internal/gemini"
	"github.com/tomtom215/cicerone/internal/guide"
	"github.com/tomtom215/cicerone/internal/logging"
)

// Stable error codes returned in the envelope's error.code field.
const (
	codeInvalidRequest   = "INVALID_REQUEST"
	codeValidationError  = "VALIDATION_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeLandmarkUnknown  = "LANDMARK_UNKNOWN"
	codeGenerationFailed = "GENERATION_FAILED"
	codeGenerationEmpty  = "GENERATION_EMPTY"
	codeAIUnavailable    = "AI_UNAVAILABLE"
	codeAuthentication   = "AUTHENTICATION_ERROR"
	codeRateLimited      = "RATE_LIMIT_EXCEEDED"
	codeInvalidCursor    = "INVALID_CURSOR"
	codeAuditDisabled    = "AUDIT_DISABLED"
	codeSnapshotsOff     = "SNAPSHOTS_DISABLED"
	codeSnapshotCorrupt  = "SNAPSHOT_CORRUPT"
	codeInternalError    = "INTERNAL_ERROR"
)

// writeServiceError maps guide/gemini/catalog errors onto HTTP statuses
// and stable codes. Unrecognized errors become a generic 500 so internal
// detail never leaks to clients.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, guide.ErrNoSubject):
		respondError(w, r, http.StatusBadRequest, codeInvalidRequest,
			"Provide a landmark name or a photo", nil)

	case errors.Is(err, gemini.ErrUnknownLandmark):
		respondError(w, r, http.StatusUnprocessableEntity, codeLandmarkUnknown,
			"No identifiable landmark in the photo", nil)

	case errors.Is(err, gemini.ErrUnavailable):
		// Breaker is open; tell clients when to come back.
		w.Header().Set("Retry-After", strconv.Itoa(int(gemini.BreakerCooldown.Seconds())))
		respondError(w, r, http.StatusServiceUnavailable, codeAIUnavailable,
			"The AI service is temporarily unavailable, try again shortly", nil)

	case errors.Is(err, gemini.ErrEmptyResponse):
		respondError(w, r, http.StatusBadGateway, codeGenerationEmpty,
			"The model returned no usable output", nil)

	case errors.Is(err, gemini.ErrInvalidOutput):
		respondError(w, r, http.StatusBadGateway, codeGenerationFailed,
			"The model produced an unreadable result", nil)

	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, r, http.StatusNotFound, codeNotFound,
			"Resource not found", nil)

	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, codeGenerationFailed,
			"Generation timed out", nil)

	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Unhandled service error")
		respondError(w, r, http.StatusInternalServerError, codeInternalError,
			"An unexpected error occurred", nil)
	}
}
