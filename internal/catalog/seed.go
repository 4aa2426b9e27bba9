// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/models"
)

// SeedFromFile loads curated places from a JSON file on first boot.
// The file holds a JSON array of place documents; missing IDs and
// timestamps are filled in. Seeding is skipped when the catalog
// already has places or when the file does not exist, so a missing
// seed file never blocks startup.
func (s *Store) SeedFromFile(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	count, err := s.CountPlaces(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logging.Info().
			Str("path", path).
			Int("existing_places", count).
			Msg("Catalog already populated, skipping seed")
		return 0, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Seed path comes from server configuration
	if err != nil {
		if os.IsNotExist(err) {
			logging.Warn().Str("path", path).Msg("Seed file not found, starting with empty catalog")
			return 0, nil
		}
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var places []models.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	now := time.Now().UTC()
	seeded := 0
	for i := range places {
		p := places[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = now
		}
		if err := s.setJSON(prefixPlace+p.ID, &p); err != nil {
			return seeded, fmt.Errorf("seed place %q: %w", p.Name, err)
		}
		s.grid.Insert(p.ID, p.Latitude, p.Longitude, &p)
		seeded++
	}

	logging.Info().
		Str("path", path).
		Int("places", seeded).
		Msg("Seeded catalog from file")
	return seeded, nil
}
