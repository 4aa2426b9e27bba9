// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package api provides HTTP routing and handlers for the Cicerone REST API.
//
// Handler methods are split across files by resource:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade
//   - handlers_guide.go: narration, audio download, voices, postcards
//   - handlers_itineraries.go: day-trip planning and retrieval
//   - handlers_places.go: nearby discovery and the curated catalog
//   - handlers_favorites.go: saved places keyed to anonymous client IDs
//   - handlers_auth.go: admin token minting
//   - handlers_admin.go: audit trail and catalog snapshots
//   - handlers_health.go: health, readiness, and the ops stats snapshot
//   - helpers.go: envelope writing, ETag, cursors, body decoding
//   - errors.go: service error to HTTP status mapping
//   - middleware.go: CORS, rate limits, security headers (chi-shaped)
//   - router.go: route table
//
// Every response uses the models.APIResponse envelope. GET responses carry
// an FNV-1a ETag and honor If-None-Match with 304.
package api
