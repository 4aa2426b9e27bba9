// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability and caching information.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"id": "abc", "title": "The Old Bridge", ...},
//	  "metadata": {
//	    "timestamp": "2026-08-25T12:00:00Z",
//	    "query_time_ms": 1450,
//	    "cached": false
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "latitude must be between -90 and 90",
//	    "details": {"field": "lat"}
//	  },
//	  "metadata": {"timestamp": "2026-08-25T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - QueryTimeMS: Total handling time in milliseconds (0 if cached)
//   - Cached: Whether response was served from the result cache (omitted if false)
//
// Generation endpoints report seconds-scale QueryTimeMS on cache misses; cache
// hits answer in single-digit milliseconds with Cached set.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - NOT_FOUND: Resource doesn't exist
//   - LANDMARK_UNKNOWN: Photo could not be identified as a landmark
//   - GENERATION_FAILED: Gemini call failed after retries
//   - AI_UNAVAILABLE: Circuit breaker open, try later
//   - AUTHENTICATION_ERROR: Invalid/missing admin token
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INVALID_CURSOR: Malformed pagination cursor
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationInfo contains cursor-based pagination metadata for efficient traversal.
//
// Cursor format: Base64-encoded JSON with timestamp + ID for stable sorting.
// Results don't shift when new documents are inserted, and clients can't
// manipulate the cursor to skip data.
type PaginationInfo struct {
	Limit      int     `json:"limit"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor,omitempty"`
	TotalCount *int    `json:"total_count,omitempty"` // Optional, expensive for large datasets
}

// ListCursor encodes the position in a document listing using creation
// timestamp + ID for stable ordering. Encoded as base64 JSON for opaque
// client usage.
type ListCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// TokenRequest requests an admin bearer token from the configured secret.
type TokenRequest struct {
	Secret string `json:"secret"`
}

// TokenResponse carries a minted admin token.
//
// Token usage:
//   - Sent as Authorization: Bearer <token> header
//   - Validated on every admin endpoint
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
