// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cicerone/internal/models"
)

// SaveItinerary persists a generated day-trip document.
func (s *Store) SaveItinerary(ctx context.Context, it *models.Itinerary) (err error) {
	defer s.observe("save", prefixItinerary, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return err
	}
	return s.setJSON(prefixItinerary+it.ID, it)
}

// GetItinerary loads a day-trip document by ID.
func (s *Store) GetItinerary(ctx context.Context, id string) (it *models.Itinerary, err error) {
	defer s.observe("get", prefixItinerary, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	var doc models.Itinerary
	if err = s.getJSON(prefixItinerary+id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListItineraries returns saved day trips newest first with cursor
// pagination. A cursor pointing at a deleted document ends the listing.
func (s *Store) ListItineraries(ctx context.Context, limit int, cursor *models.ListCursor) (items []models.Itinerary, next *models.ListCursor, hasMore bool, err error) {
	defer s.observe("list", prefixItinerary, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, nil, false, err
	}

	var all []models.Itinerary
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixItinerary)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var doc models.Itinerary
			scanErr := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			})
			if scanErr != nil {
				continue
			}
			all = append(all, doc)
		}
		return nil
	})
	if err != nil {
		return nil, nil, false, fmt.Errorf("scan itineraries: %w", err)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	window := all
	if cursor != nil && cursor.ID != "" {
		window = nil
		for i := range all {
			if all[i].ID == cursor.ID {
				window = all[i+1:]
				break
			}
		}
	}

	n := normalizeLimit(limit)
	if len(window) > n {
		items = window[:n]
		hasMore = true
		last := items[len(items)-1]
		next = &models.ListCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	} else {
		items = window
	}
	if items == nil {
		items = []models.Itinerary{}
	}
	return items, next, hasMore, nil
}
