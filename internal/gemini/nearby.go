// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"context"

	"google.golang.org/genai"
)

// NearbyQuery are the inputs for generative nearby-place discovery.
type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKM  float64
	Category  string
	Limit     int
}

// PlaceDraft is one model-proposed point of interest. Distance from the
// query point is computed by the service from the coordinates.
type PlaceDraft struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Address     string   `json:"address"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags"`
}

// DiscoverNearby asks the model for real points of interest around a
// coordinate. The model is instructed to never invent places; results are
// still merged with and outranked by the curated catalog upstream.
func (c *Client) DiscoverNearby(ctx context.Context, q NearbyQuery) ([]PlaceDraft, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}

	gc := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2), // factual recall, low creativity
		ResponseMIMEType: "application/json",
		ResponseSchema:   nearbySchema(),
	}

	var drafts []PlaceDraft
	if err := c.generateJSON(ctx, opNearby, c.cfg.TextModel, genai.Text(nearbyPrompt(q)), gc, &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}
