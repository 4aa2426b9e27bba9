// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cicerone/internal/catalog"
	"github.com/tomtom215/cicerone/internal/guide"
	"github.com/tomtom215/cicerone/internal/middleware"
	"github.com/tomtom215/cicerone/internal/models"
)

// nearbyRequest carries the parsed nearby query parameters through
// validation. Radius is bounded to keep the spatial scan and the
// discovery prompt sane.
type nearbyRequest struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
	RadiusKM  float64 `validate:"omitempty,gt=0,lte=50"`
	Category  string  `validate:"omitempty,max=60"`
	Limit     int     `validate:"omitempty,min=1,max=50"`
}

// Nearby returns points of interest around a coordinate, merging curated
// catalog entries with generative discovery.
//
// Method: GET
// Path: /api/v1/places/nearby?lat=&lon=&radius_km=&category=&limit=
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	lat, err := requireFloatParam(r, "lat")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		return
	}
	lon, err := requireFloatParam(r, "lon")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		return
	}

	req := nearbyRequest{
		Latitude:  lat,
		Longitude: lon,
		RadiusKM:  getFloatParam(r, "radius_km", 0),
		Category:  r.URL.Query().Get("category"),
		Limit:     getIntParam(r, "limit", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	places, cached, err := h.svc.Nearby(r.Context(), guide.NearbyQuery{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		RadiusKM:  req.RadiusKM,
		Category:  req.Category,
		Limit:     req.Limit,
		RequestID: middleware.GetRequestID(r.Context()),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	radius := req.RadiusKM
	if radius <= 0 {
		radius = guide.DefaultRadiusKM
	}
	respondSuccess(w, r, http.StatusOK, models.NearbyResponse{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		RadiusKM:  radius,
		Category:  req.Category,
		Places:    places,
	}, start, cached)
}

// TopPlaces browses the curated catalog ordered by rating.
//
// Method: GET
// Path: /api/v1/places/top?city=&category=&limit=&cursor=
func (h *Handler) TopPlaces(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cursor, err := decodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidCursor, "Malformed pagination cursor", nil)
		return
	}
	limit := getIntParam(r, "limit", 20)

	places, next, hasMore, err := h.store.ListPlaces(r.Context(), catalog.PlaceQuery{
		City:     r.URL.Query().Get("city"),
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
		Cursor:   cursor,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pagination := models.PaginationInfo{Limit: limit, HasMore: hasMore}
	if next != nil {
		encoded := encodeCursor(next)
		pagination.NextCursor = &encoded
	}

	respondSuccess(w, r, http.StatusOK, models.PlacesResponse{
		Places:     places,
		Pagination: pagination,
	}, start, false)
}

// PlaceGet fetches one curated place by ID.
//
// Method: GET
// Path: /api/v1/places/{id}
func (h *Handler) PlaceGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	place, err := h.store.GetPlace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, place, start, false)
}

// PlaceCreate adds a curated place to the catalog. Admin only.
//
// Method: POST
// Path: /api/v1/places
func (h *Handler) PlaceCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PlaceUpsert
	if err := decodeBody(w, r, maxBodyBytes, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidRequest, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	place, err := h.store.CreatePlace(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if h.audit != nil {
		h.audit.PlaceCreated(r, place.ID, place.Name)
	}
	respondSuccess(w, r, http.StatusCreated, place, start, false)
}

// PlaceUpdate replaces a curated place document. Admin only.
//
// Method: PUT
// Path: /api/v1/places/{id}
func (h *Handler) PlaceUpdate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PlaceUpsert
	if err := decodeBody(w, r, maxBodyBytes, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidRequest, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	place, err := h.store.UpdatePlace(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if h.audit != nil {
		h.audit.PlaceUpdated(r, place.ID, place.Name)
	}
	respondSuccess(w, r, http.StatusOK, place, start, false)
}

// PlaceDelete removes a curated place from the catalog and its spatial
// index. Admin only.
//
// Method: DELETE
// Path: /api/v1/places/{id}
func (h *Handler) PlaceDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeletePlace(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if h.audit != nil {
		h.audit.PlaceDeleted(r, id)
	}
	w.WriteHeader(http.StatusNoContent)
}
