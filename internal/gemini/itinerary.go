// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"context"

	"google.golang.org/genai"
)

// ItineraryParams are the inputs for day-trip generation.
type ItineraryParams struct {
	City           string
	DurationHours  int
	Interests      []string
	Pace           string
	StartLatitude  *float64
	StartLongitude *float64
	Language       string
}

// StopDraft is one model-proposed stop. Ordering and inter-stop distances
// are computed by the service, not taken from the model.
type StopDraft struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	VisitMinutes int     `json:"visit_minutes"`
	TravelHint   string  `json:"travel_hint"`
}

// ItineraryDraft is the model's raw day-trip plan.
type ItineraryDraft struct {
	Title   string      `json:"title"`
	Summary string      `json:"summary"`
	Stops   []StopDraft `json:"stops"`
}

// PlanItinerary generates a day-trip plan with geographically ordered stops.
func (c *Client) PlanItinerary(ctx context.Context, p ItineraryParams) (*ItineraryDraft, error) {
	gc := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   itinerarySchema(),
	}
	if c.cfg.Temperature > 0 {
		gc.Temperature = genai.Ptr(c.cfg.Temperature)
	}
	if c.cfg.MaxOutputTokens > 0 {
		gc.MaxOutputTokens = c.cfg.MaxOutputTokens
	}

	var draft ItineraryDraft
	if err := c.generateJSON(ctx, opItinerary, c.cfg.TextModel, genai.Text(itineraryPrompt(p)), gc, &draft); err != nil {
		return nil, err
	}
	if len(draft.Stops) == 0 {
		return nil, ErrEmptyResponse
	}
	return &draft, nil
}
