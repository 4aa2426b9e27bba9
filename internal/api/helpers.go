// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/models"
	"github.com/tomtom215/cicerone/internal/validation"
)

// Request body limits. Narration requests may carry a base64 photo, so
// they get a larger ceiling than plain JSON bodies.
const (
	maxBodyBytes      = 1 << 20  // 1 MiB
	maxImageBodyBytes = 16 << 20 // 16 MiB
)

// sanitizeLogValue replaces control characters so attacker-supplied
// strings cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes an envelope response. GET responses get an FNV-1a
// ETag and honor If-None-Match with 304 Not Modified; other methods are
// marked no-store.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodGet && status == http.StatusOK {
		w.Header().Set("Cache-Control", "public, max-age=60")
		// The tag hashes the data payload alone. Metadata carries a
		// per-response timestamp, so hashing the whole envelope would
		// make every revalidation miss.
		if payload, perr := json.Marshal(response.Data); perr == nil {
			etag := `"` + generateETag(payload) + `"`
			w.Header().Set("ETag", etag)
			if r.Header.Get("If-None-Match") == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag hashes the payload with FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondSuccess writes a success envelope with timing metadata.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time, cached bool) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: newMetadata(start, cached),
	})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondAPIError writes a pre-built API error, preserving its details.
// Used for validation failures where the field breakdown matters.
func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	})
}

func newMetadata(start time.Time, cached bool) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(start).Milliseconds(),
		Cached:      cached,
	}
}

// decodeBody reads a JSON request body into dst, capped at limit bytes.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// validateRequest runs struct validation and converts failures to the
// envelope's error shape.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// requireFloatParam extracts a mandatory float query parameter.
func requireFloatParam(r *http.Request, key string) (float64, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, fmt.Errorf("%s is required", key)
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}

	return f, nil
}

// getFloatParam extracts an optional float query parameter.
func getFloatParam(r *http.Request, key string, defaultValue float64) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return f
}

// errBadCursor marks an unparseable pagination cursor.
var errBadCursor = errors.New("api: malformed cursor")

// encodeCursor encodes a list cursor as URL-safe base64 JSON.
func encodeCursor(c *models.ListCursor) string {
	if c == nil {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// decodeCursor parses a client-supplied cursor. Empty input means first
// page; anything unparseable returns errBadCursor.
func decodeCursor(encoded string) (*models.ListCursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errBadCursor
	}

	var c models.ListCursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errBadCursor
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		return nil, errBadCursor
	}

	return &c, nil
}
