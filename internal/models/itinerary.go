// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package models

import (
	"time"
)

// Itinerary pace presets.
const (
	PaceRelaxed  = "relaxed"
	PaceModerate = "moderate"
	PacePacked   = "packed"
)

// ItineraryRequest asks for a generated day-trip plan.
type ItineraryRequest struct {
	City           string   `json:"city" validate:"required,max=120"`
	DurationHours  int      `json:"duration_hours,omitempty" validate:"omitempty,min=1,max=16"`
	Interests      []string `json:"interests,omitempty" validate:"max=10,dive,max=60"`
	Pace           string   `json:"pace,omitempty" validate:"omitempty,oneof=relaxed moderate packed"`
	StartLatitude  *float64 `json:"start_latitude,omitempty" validate:"omitempty,latitude"`
	StartLongitude *float64 `json:"start_longitude,omitempty" validate:"omitempty,longitude"`
	Language       string   `json:"language,omitempty" validate:"omitempty,langtag"`
	RequestID      string   `json:"request_id,omitempty"`
}

// ItineraryStop is one stop on a day trip. DistanceFromPrevKM is computed
// server-side from the coordinates, not taken from the model.
type ItineraryStop struct {
	Order              int     `json:"order"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Description        string  `json:"description"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	VisitMinutes       int     `json:"visit_minutes"`
	TravelHint         string  `json:"travel_hint,omitempty"`
	DistanceFromPrevKM float64 `json:"distance_from_prev_km"`
}

// Itinerary is a generated day-trip document.
type Itinerary struct {
	ID              string          `json:"id"`
	City            string          `json:"city"`
	Title           string          `json:"title"`
	Summary         string          `json:"summary"`
	Stops           []ItineraryStop `json:"stops"`
	TotalDistanceKM float64         `json:"total_distance_km"`
	DurationHours   int             `json:"duration_hours"`
	Interests       []string        `json:"interests,omitempty"`
	Pace            string          `json:"pace"`
	Language        string          `json:"language"`
	Model           string          `json:"model"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ItinerariesResponse wraps itineraries with cursor-based pagination info.
type ItinerariesResponse struct {
	Itineraries []Itinerary    `json:"itineraries"`
	Pagination  PaginationInfo `json:"pagination"`
}
