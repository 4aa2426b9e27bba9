// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cicerone/internal/models"
)

// PlaceQuery filters and paginates the curated place listing.
type PlaceQuery struct {
	City     string
	Category string
	Limit    int
	Cursor   *models.ListCursor
}

// CreatePlace stores a new curated place and indexes it for radius
// queries. A fresh ID is minted.
func (s *Store) CreatePlace(ctx context.Context, up *models.PlaceUpsert) (place *models.Place, err error) {
	defer s.observe("create", prefixPlace, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	place = placeFromUpsert(uuid.NewString(), up, now, now)

	if err = s.setJSON(prefixPlace+place.ID, place); err != nil {
		return nil, err
	}
	s.grid.Insert(place.ID, place.Latitude, place.Longitude, place)
	return place, nil
}

// UpdatePlace replaces an existing place document, keeping its creation
// time. Returns ErrNotFound for unknown IDs.
func (s *Store) UpdatePlace(ctx context.Context, id string, up *models.PlaceUpsert) (place *models.Place, err error) {
	defer s.observe("update", prefixPlace, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	var existing models.Place
	if err = s.getJSON(prefixPlace+id, &existing); err != nil {
		return nil, err
	}

	place = placeFromUpsert(id, up, existing.CreatedAt, time.Now().UTC())

	if err = s.setJSON(prefixPlace+id, place); err != nil {
		return nil, err
	}
	s.grid.Insert(place.ID, place.Latitude, place.Longitude, place)
	return place, nil
}

// GetPlace loads one place by ID.
func (s *Store) GetPlace(ctx context.Context, id string) (place *models.Place, err error) {
	defer s.observe("get", prefixPlace, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	var p models.Place
	if err = s.getJSON(prefixPlace+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePlace removes a place document and its spatial index entry.
func (s *Store) DeletePlace(ctx context.Context, id string) (err error) {
	defer s.observe("delete", prefixPlace, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return err
	}

	key := []byte(prefixPlace + id)
	err = s.db.Update(func(txn *badger.Txn) error {
		if _, getErr := txn.Get(key); getErr != nil {
			if errors.Is(getErr, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return getErr
		}
		return txn.Delete(key)
	})
	if err != nil {
		return err
	}

	s.grid.Remove(id)
	return nil
}

// ListPlaces returns curated places ordered by rating (highest first),
// optionally filtered by city and category, with cursor pagination.
// A cursor pointing at a document that has since been deleted ends the
// listing.
func (s *Store) ListPlaces(ctx context.Context, q PlaceQuery) (places []models.Place, next *models.ListCursor, hasMore bool, err error) {
	defer s.observe("list", prefixPlace, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, nil, false, err
	}

	all, err := s.loadPlaces()
	if err != nil {
		return nil, nil, false, err
	}

	filtered := all[:0]
	for _, p := range all {
		if q.City != "" && !strings.EqualFold(p.City, q.City) {
			continue
		}
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Rating != filtered[j].Rating {
			return filtered[i].Rating > filtered[j].Rating
		}
		if filtered[i].Name != filtered[j].Name {
			return filtered[i].Name < filtered[j].Name
		}
		return filtered[i].ID < filtered[j].ID
	})

	window := resumeAfter(filtered, q.Cursor)
	limit := normalizeLimit(q.Limit)

	if len(window) > limit {
		places = window[:limit]
		hasMore = true
		last := places[len(places)-1]
		next = &models.ListCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	} else {
		places = window
	}
	if places == nil {
		places = []models.Place{}
	}
	return places, next, hasMore, nil
}

// CountPlaces returns the number of curated places.
func (s *Store) CountPlaces(ctx context.Context) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	return s.countPrefix(prefixPlace)
}

// Nearby returns curated places within radiusKm of the point, nearest
// first, optionally filtered by category.
func (s *Store) Nearby(ctx context.Context, lat, lon, radiusKm float64, category string) []models.NearbyPlace {
	neighbors := s.grid.QueryNearby(lat, lon, radiusKm)

	results := make([]models.NearbyPlace, 0, len(neighbors))
	for _, n := range neighbors {
		place, ok := n.Entry.Data.(*models.Place)
		if !ok {
			continue
		}
		if category != "" && !strings.EqualFold(place.Category, category) {
			continue
		}
		results = append(results, models.NearbyPlace{
			Name:        place.Name,
			Category:    place.Category,
			Description: place.Summary,
			Latitude:    place.Latitude,
			Longitude:   place.Longitude,
			DistanceKM:  n.DistanceKM,
			Address:     place.Address,
			Rating:      place.Rating,
			Tags:        place.Tags,
			Source:      models.SourceCatalog,
		})
	}
	return results
}

// loadPlaces scans every place document.
func (s *Store) loadPlaces() ([]models.Place, error) {
	var places []models.Place

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixPlace)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var p models.Place
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			})
			if err != nil {
				continue // skip undecodable documents rather than fail the listing
			}
			places = append(places, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan places: %w", err)
	}
	return places, nil
}

// rebuildGrid loads every place into the spatial index. Called once at
// open; afterwards the index is maintained incrementally.
func (s *Store) rebuildGrid() error {
	places, err := s.loadPlaces()
	if err != nil {
		return err
	}
	for i := range places {
		p := places[i]
		s.grid.Insert(p.ID, p.Latitude, p.Longitude, &p)
	}
	return nil
}

// placeFromUpsert builds the stored document from an admin request.
func placeFromUpsert(id string, up *models.PlaceUpsert, createdAt, updatedAt time.Time) *models.Place {
	return &models.Place{
		ID:        id,
		Name:      up.Name,
		City:      up.City,
		Country:   up.Country,
		Latitude:  up.Latitude,
		Longitude: up.Longitude,
		Category:  up.Category,
		Summary:   up.Summary,
		Address:   up.Address,
		Website:   up.Website,
		Rating:    up.Rating,
		Tags:      up.Tags,
		ImageURL:  up.ImageURL,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// resumeAfter returns the tail of items strictly after the cursor's
// document. A nil cursor keeps the full slice; an unmatched cursor
// returns nothing, ending the listing.
func resumeAfter(items []models.Place, cursor *models.ListCursor) []models.Place {
	if cursor == nil || cursor.ID == "" {
		return items
	}
	for i := range items {
		if items[i].ID == cursor.ID {
			return items[i+1:]
		}
	}
	return nil
}

// normalizeLimit clamps a requested page size to sane bounds.
func normalizeLimit(limit int) int {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
