// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cicerone/internal/middleware"
	"github.com/tomtom215/cicerone/internal/models"
)

// ItineraryCreate generates a day-trip plan for a city.
//
// Method: POST
// Path: /api/v1/itineraries
//
// Stops come from structured-JSON generation; inter-stop distances and the
// total are computed server-side. A cache hit returns 200 with
// metadata.cached set, a fresh plan returns 201.
func (h *Handler) ItineraryCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ItineraryRequest
	if err := decodeBody(w, r, maxBodyBytes, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidRequest, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}
	if req.RequestID == "" {
		req.RequestID = middleware.GetRequestID(r.Context())
	}

	itinerary, cached, err := h.svc.PlanItinerary(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := http.StatusCreated
	if cached {
		status = http.StatusOK
	}
	respondSuccess(w, r, status, itinerary, start, cached)
}

// ItineraryGet retrieves a saved day-trip plan by ID.
//
// Method: GET
// Path: /api/v1/itineraries/{id}
func (h *Handler) ItineraryGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	itinerary, err := h.store.GetItinerary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, itinerary, start, false)
}

// ItineraryList lists saved day trips newest first with cursor pagination.
//
// Method: GET
// Path: /api/v1/itineraries?limit=&cursor=
func (h *Handler) ItineraryList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cursor, err := decodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidCursor, "Malformed pagination cursor", nil)
		return
	}
	limit := getIntParam(r, "limit", 20)

	items, next, hasMore, err := h.store.ListItineraries(r.Context(), limit, cursor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pagination := models.PaginationInfo{Limit: limit, HasMore: hasMore}
	if next != nil {
		encoded := encodeCursor(next)
		pagination.NextCursor = &encoded
	}

	respondSuccess(w, r, http.StatusOK, models.ItinerariesResponse{
		Itineraries: items,
		Pagination:  pagination,
	}, start, false)
}
