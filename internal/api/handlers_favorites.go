// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cicerone/internal/models"
)

// favoritesQuery validates the client_id query parameter shared by the
// list and delete endpoints. Client IDs are browser-minted UUIDs, so a
// malformed one is a client bug rather than a lookup miss.
type favoritesQuery struct {
	ClientID string `validate:"required,uuid4"`
}

// FavoriteCreate saves a curated place as a favorite for an anonymous
// client. Saving the same place twice is idempotent.
//
// Method: POST
// Path: /api/v1/favorites
func (h *Handler) FavoriteCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.FavoriteRequest
	if err := decodeBody(w, r, maxBodyBytes, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidRequest, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	fav, err := h.svc.SaveFavorite(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, fav, start, false)
}

// FavoriteList returns a client's saved places, newest first.
//
// Method: GET
// Path: /api/v1/favorites?client_id=
func (h *Handler) FavoriteList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q := favoritesQuery{ClientID: r.URL.Query().Get("client_id")}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	favs, err := h.store.ListFavorites(r.Context(), q.ClientID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"favorites": favs,
	}, start, false)
}

// FavoriteDelete removes one saved favorite. The client ID must match the
// favorite's owner or the delete reads as not found.
//
// Method: DELETE
// Path: /api/v1/favorites/{id}?client_id=
func (h *Handler) FavoriteDelete(w http.ResponseWriter, r *http.Request) {
	q := favoritesQuery{ClientID: r.URL.Query().Get("client_id")}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.store.DeleteFavorite(r.Context(), q.ClientID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
