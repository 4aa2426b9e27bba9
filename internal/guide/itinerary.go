// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package guide

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cicerone/internal/cache"
	"github.com/tomtom215/cicerone/internal/events"
	"github.com/tomtom215/cicerone/internal/gemini"
	"github.com/tomtom215/cicerone/internal/geo"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/models"
)

const defaultDurationHours = 8

// itineraryKey is the canonical cache-key input for a day-trip request.
type itineraryKey struct {
	City      string   `json:"city"`
	Duration  int      `json:"duration"`
	Interests []string `json:"interests"`
	Pace      string   `json:"pace"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Language  string   `json:"language"`
}

// PlanItinerary generates a day-trip plan for a city. The model proposes
// geographically ordered stops; leg distances and the total come from the
// haversine formula, never from the model. The boolean reports a cache hit.
func (s *Service) PlanItinerary(ctx context.Context, req *models.ItineraryRequest) (*models.Itinerary, bool, error) {
	op := events.OperationItinerary
	s.publish(ctx, req.RequestID, op, events.StageReceived, "", 10)

	duration := req.DurationHours
	if duration <= 0 {
		duration = defaultDurationHours
	}
	pace := req.Pace
	if pace == "" {
		pace = models.PaceModerate
	}

	key := cache.GenerateKey("itinerary", itineraryKey{
		City:      normalizeName(req.City),
		Duration:  duration,
		Interests: req.Interests,
		Pace:      pace,
		Latitude:  req.StartLatitude,
		Longitude: req.StartLongitude,
		Language:  req.Language,
	})
	if cached, ok := fromCache[*models.Itinerary](s, key); ok {
		s.publish(ctx, req.RequestID, op, events.StageDone, cached.Title, 100)
		return cached, true, nil
	}

	s.publish(ctx, req.RequestID, op, events.StagePlanning, req.City, 30)
	draft, err := s.gen.PlanItinerary(ctx, gemini.ItineraryParams{
		City:           req.City,
		DurationHours:  duration,
		Interests:      req.Interests,
		Pace:           pace,
		StartLatitude:  req.StartLatitude,
		StartLongitude: req.StartLongitude,
		Language:       req.Language,
	})
	if err != nil {
		s.fail(ctx, req.RequestID, op)
		return nil, false, err
	}

	s.publish(ctx, req.RequestID, op, events.StageRendering, draft.Title, 70)
	stops, total := buildStops(draft.Stops, req.StartLatitude, req.StartLongitude)

	it := &models.Itinerary{
		ID:              uuid.NewString(),
		City:            req.City,
		Title:           draft.Title,
		Summary:         draft.Summary,
		Stops:           stops,
		TotalDistanceKM: total,
		DurationHours:   duration,
		Interests:       req.Interests,
		Pace:            pace,
		Language:        req.Language,
		Model:           s.gen.TextModel(),
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.SaveItinerary(ctx, it); err != nil {
		s.fail(ctx, req.RequestID, op)
		return nil, false, err
	}
	s.toCache(key, it)

	s.publish(ctx, req.RequestID, op, events.StageDone, it.Title, 100)
	logging.Info().
		Str("itinerary_id", it.ID).
		Str("city", req.City).
		Int("stops", len(stops)).
		Float64("total_km", total).
		Msg("itinerary generated")
	return it, false, nil
}

// buildStops numbers the model's stops and computes leg distances. The
// first leg measures from the start coordinates when the request carries
// them, otherwise it is zero.
func buildStops(drafts []gemini.StopDraft, startLat, startLon *float64) ([]models.ItineraryStop, float64) {
	stops := make([]models.ItineraryStop, 0, len(drafts))
	var total float64

	prevLat, prevLon := 0.0, 0.0
	havePrev := false
	if startLat != nil && startLon != nil {
		prevLat, prevLon = *startLat, *startLon
		havePrev = true
	}

	for i, d := range drafts {
		leg := 0.0
		if havePrev {
			leg = roundKM(geo.Distance(prevLat, prevLon, d.Latitude, d.Longitude))
		}
		total += leg
		stops = append(stops, models.ItineraryStop{
			Order:              i + 1,
			Name:               d.Name,
			Category:           d.Category,
			Description:        d.Description,
			Latitude:           d.Latitude,
			Longitude:          d.Longitude,
			VisitMinutes:       d.VisitMinutes,
			TravelHint:         d.TravelHint,
			DistanceFromPrevKM: leg,
		})
		prevLat, prevLon = d.Latitude, d.Longitude
		havePrev = true
	}
	return stops, roundKM(total)
}

// roundKM rounds a distance to two decimals (10 m resolution).
func roundKM(km float64) float64 {
	return math.Round(km*100) / 100
}
