// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package guide

import (
	"context"
	"sort"

	"github.com/tomtom215/cicerone/internal/cache"
	"github.com/tomtom215/cicerone/internal/events"
	"github.com/tomtom215/cicerone/internal/gemini"
	"github.com/tomtom215/cicerone/internal/geo"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/models"
)

// DefaultRadiusKM is the search radius used when a query does not set one.
const DefaultRadiusKM = 5.0

const (
	defaultNearbyMax  = 20
	coordKeyPrecision = 1000 // cache-key rounding: ~110 m buckets
)

// NearbyQuery asks for points of interest around a coordinate. RequestID
// is optional and only feeds progress events.
type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKM  float64
	Category  string
	Limit     int
	RequestID string
}

// nearbyKey is the canonical cache-key input for nearby discovery.
// Coordinates are bucketed so GPS jitter between requests still hits.
type nearbyKey struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKM  float64 `json:"radius_km"`
	Category  string  `json:"category"`
	Limit     int     `json:"limit"`
}

// Nearby merges curated catalog places with generative discovery for the
// given coordinates, deduplicated by normalized name with the catalog
// winning, sorted by distance ascending. The boolean reports a cache hit.
//
// When the model call fails but the catalog has results, the curated
// subset is served instead of an error.
func (s *Service) Nearby(ctx context.Context, q NearbyQuery) ([]models.NearbyPlace, bool, error) {
	op := events.OperationNearby
	if q.RadiusKM <= 0 {
		q.RadiusKM = DefaultRadiusKM
	}
	if q.Limit <= 0 || q.Limit > defaultNearbyMax {
		q.Limit = defaultNearbyMax
	}

	key := cache.GenerateKey("nearby", nearbyKey{
		Latitude:  bucketCoord(q.Latitude),
		Longitude: bucketCoord(q.Longitude),
		RadiusKM:  q.RadiusKM,
		Category:  normalizeName(q.Category),
		Limit:     q.Limit,
	})
	if cached, ok := fromCache[[]models.NearbyPlace](s, key); ok {
		s.publish(ctx, q.RequestID, op, events.StageDone, "", 100)
		return cached, true, nil
	}

	s.publish(ctx, q.RequestID, op, events.StageSearching, "", 30)
	curated := s.store.Nearby(ctx, q.Latitude, q.Longitude, q.RadiusKM, q.Category)

	drafts, err := s.gen.DiscoverNearby(ctx, gemini.NearbyQuery{
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
		RadiusKM:  q.RadiusKM,
		Category:  q.Category,
		Limit:     q.Limit,
	})
	if err != nil {
		if len(curated) == 0 {
			s.fail(ctx, q.RequestID, op)
			return nil, false, err
		}
		logging.Warn().Err(err).Msg("nearby discovery degraded to catalog results")
		drafts = nil
	}

	merged := mergeNearby(curated, drafts, q)
	s.toCache(key, merged)

	s.publish(ctx, q.RequestID, op, events.StageDone, "", 100)
	return merged, false, nil
}

// mergeNearby combines both sources into one distance-sorted list. Curated
// entries are inserted first so a generative duplicate of a curated place
// is dropped, not the other way around.
func mergeNearby(curated []models.NearbyPlace, drafts []gemini.PlaceDraft, q NearbyQuery) []models.NearbyPlace {
	merged := make([]models.NearbyPlace, 0, len(curated)+len(drafts))
	seen := make(map[string]struct{}, len(curated)+len(drafts))

	for _, p := range curated {
		name := normalizeName(p.Name)
		if _, dup := seen[name]; dup || name == "" {
			continue
		}
		seen[name] = struct{}{}
		p.DistanceKM = roundKM(p.DistanceKM)
		merged = append(merged, p)
	}

	for _, d := range drafts {
		name := normalizeName(d.Name)
		if _, dup := seen[name]; dup || name == "" {
			continue
		}
		dist := geo.Distance(q.Latitude, q.Longitude, d.Latitude, d.Longitude)
		if dist > q.RadiusKM {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, models.NearbyPlace{
			Name:        d.Name,
			Category:    d.Category,
			Description: d.Description,
			Latitude:    d.Latitude,
			Longitude:   d.Longitude,
			DistanceKM:  roundKM(dist),
			Address:     d.Address,
			Rating:      d.Rating,
			Tags:        d.Tags,
			Source:      models.SourceGemini,
		})
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].DistanceKM != merged[j].DistanceKM {
			return merged[i].DistanceKM < merged[j].DistanceKM
		}
		return merged[i].Name < merged[j].Name
	})
	if len(merged) > q.Limit {
		merged = merged[:q.Limit]
	}
	return merged
}

// bucketCoord rounds a coordinate to three decimals for cache keying.
func bucketCoord(v float64) float64 {
	return float64(int(v*coordKeyPrecision)) / coordKeyPrecision
}
