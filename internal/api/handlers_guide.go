// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/middleware"
	"github.com/tomtom215/cicerone/internal/models"
)

// Narrate generates a landmark history narration, optionally with TTS audio.
//
// Method: POST
// Path: /api/v1/guide/narrate
//
// The body must carry a landmark name or a base64 photo; with a photo the
// landmark is identified first and the identification rides along in the
// response. A cache hit returns 200 with metadata.cached set, a fresh
// generation returns 201.
func (h *Handler) Narrate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.NarrationRequest
	if err := decodeBody(w, r, maxImageBodyBytes, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidRequest, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}
	if req.RequestID == "" {
		// Fall back to the request ID so WS progress still correlates.
		req.RequestID = middleware.GetRequestID(r.Context())
	}

	narration, cached, err := h.svc.Narrate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := http.StatusCreated
	if cached {
		status = http.StatusOK
	}
	respondSuccess(w, r, status, narration, start, cached)
}

// Audio serves a synthesized narration clip.
//
// Method: GET
// Path: /api/v1/guide/audio/{id}
//
// The body is the raw WAV container, not a JSON envelope. Clips are
// immutable once written so the cache policy is aggressive.
func (h *Handler) Audio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	wav, err := h.store.GetAudio(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(wav)))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(wav); err != nil {
		logging.Debug().Err(err).Str("audio_id", sanitizeLogValue(id)).Msg("audio write aborted")
	}
}

// Voices lists the selectable TTS voices and the server default.
//
// Method: GET
// Path: /api/v1/guide/voices
func (h *Handler) Voices(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"voices":  h.svc.Voices(),
		"default": h.svc.DefaultVoice(),
	}, start, false)
}

// PostcardCreate generates a souvenir postcard image for a place.
//
// Method: POST
// Path: /api/v1/guide/postcard
//
// The response carries the postcard document; the image bytes are fetched
// separately via PostcardGet. Postcards expire with the store TTL and are
// never cached as generation results.
func (h *Handler) PostcardCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PostcardRequest
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

	pc, err := h.svc.Postcard(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, pc, start, false)
}

// PostcardGet serves a generated postcard image.
//
// Method: GET
// Path: /api/v1/guide/postcard/{id}
//
// Expired postcards read as not found; the max-age tracks the remaining
// TTL so browsers do not cache past expiry.
func (h *Handler) PostcardGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pc, image, err := h.store.GetPostcard(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pc.MIME)
	w.Header().Set("Content-Length", strconv.Itoa(len(image)))
	if ttl := time.Until(pc.ExpiresAt); ttl > time.Second {
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(ttl.Seconds())))
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image); err != nil {
		logging.Debug().Err(err).Str("postcard_id", sanitizeLogValue(id)).Msg("postcard write aborted")
	}
}
