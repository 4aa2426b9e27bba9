// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package models

import (
	"time"
)

// Place is a curated catalog document: one notable place worth visiting.
// Stored in BadgerDB and served by the top-places endpoints. Curated entries
// also feed the nearby discovery merge, where they outrank generative results.
type Place struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Category  string   `json:"category"`
	Summary   string   `json:"summary"`
	Address   string   `json:"address,omitempty"`
	Website   string   `json:"website,omitempty"`
	Rating    float64  `json:"rating,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlaceUpsert is the admin request body for creating or updating a catalog place.
type PlaceUpsert struct {
	Name      string   `json:"name" validate:"required,max=200"`
	City      string   `json:"city" validate:"required,max=100"`
	Country   string   `json:"country" validate:"required,max=100"`
	Latitude  float64  `json:"latitude" validate:"latitude"`
	Longitude float64  `json:"longitude" validate:"longitude"`
	Category  string   `json:"category" validate:"required,max=60"`
	Summary   string   `json:"summary" validate:"required,max=2000"`
	Address   string   `json:"address" validate:"max=300"`
	Website   string   `json:"website" validate:"omitempty,url"`
	Rating    float64  `json:"rating" validate:"min=0,max=5"`
	Tags      []string `json:"tags" validate:"max=20,dive,max=40"`
	ImageURL  string   `json:"image_url" validate:"omitempty,url"`
}

// Provenance values for NearbyPlace.Source.
const (
	SourceCatalog = "catalog"
	SourceGemini  = "gemini"
)

// NearbyPlace is one point of interest near the requested coordinates.
// Source is "catalog" for curated entries and "gemini" for generative
// discovery; merged results are sorted by distance ascending.
type NearbyPlace struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	DistanceKM  float64  `json:"distance_km"`
	Address     string   `json:"address,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source"`
}

// NearbyResponse wraps nearby discovery results.
type NearbyResponse struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	RadiusKM  float64       `json:"radius_km"`
	Category  string        `json:"category,omitempty"`
	Places    []NearbyPlace `json:"places"`
}

// PlacesResponse wraps catalog places with cursor-based pagination info.
type PlacesResponse struct {
	Places     []Place        `json:"places"`
	Pagination PaginationInfo `json:"pagination"`
}

// Favorite is a saved place keyed to an anonymous browser-minted client ID.
// No accounts: the client ID is an opaque UUID the browser keeps locally.
type Favorite struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	PlaceID   string    `json:"place_id"`
	PlaceName string    `json:"place_name"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteRequest is the body for saving a favorite.
type FavoriteRequest struct {
	ClientID string `json:"client_id" validate:"required,uuid4"`
	PlaceID  string `json:"place_id" validate:"required"`
}
