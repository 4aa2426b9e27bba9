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
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cicerone/internal/models"
)

// Favorites are stored under two keys: the document at favorite:<id>
// and a per-client index entry at favidx:<clientID>:<id> whose value is
// the favorite ID. Listing scans the index, then fetches documents.

// SaveFavorite records a place as a favorite for an anonymous client.
// Saving the same place twice returns the existing favorite unchanged.
func (s *Store) SaveFavorite(ctx context.Context, clientID, placeID, placeName string) (fav *models.Favorite, err error) {
	defer s.observe("save", prefixFavorite, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		existing, scanErr := findFavorite(txn, clientID, placeID)
		if scanErr != nil {
			return scanErr
		}
		if existing != nil {
			fav = existing
			return nil
		}

		fav = &models.Favorite{
			ID:        uuid.NewString(),
			ClientID:  clientID,
			PlaceID:   placeID,
			PlaceName: placeName,
			CreatedAt: time.Now().UTC(),
		}
		data, marshalErr := json.Marshal(fav)
		if marshalErr != nil {
			return fmt.Errorf("marshal favorite: %w", marshalErr)
		}
		if setErr := txn.Set([]byte(prefixFavorite+fav.ID), data); setErr != nil {
			return setErr
		}
		return txn.Set(favoriteIndexKey(clientID, fav.ID), []byte(fav.ID))
	})
	if err != nil {
		return nil, err
	}
	return fav, nil
}

// ListFavorites returns a client's saved places, newest first.
func (s *Store) ListFavorites(ctx context.Context, clientID string) (favs []models.Favorite, err error) {
	defer s.observe("list", prefixFavorite, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		ids, scanErr := favoriteIDs(txn, clientID)
		if scanErr != nil {
			return scanErr
		}
		for _, id := range ids {
			item, getErr := txn.Get([]byte(prefixFavorite + id))
			if getErr != nil {
				if errors.Is(getErr, badger.ErrKeyNotFound) {
					continue // index entry outlived its document
				}
				return getErr
			}
			var doc models.Favorite
			getErr = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			})
			if getErr != nil {
				continue
			}
			favs = append(favs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(favs, func(i, j int) bool {
		if !favs[i].CreatedAt.Equal(favs[j].CreatedAt) {
			return favs[i].CreatedAt.After(favs[j].CreatedAt)
		}
		return favs[i].ID < favs[j].ID
	})
	if favs == nil {
		favs = []models.Favorite{}
	}
	return favs, nil
}

// DeleteFavorite removes one favorite. The client ID must match the
// document's owner; otherwise the favorite is reported as not found.
func (s *Store) DeleteFavorite(ctx context.Context, clientID, favoriteID string) (err error) {
	defer s.observe("delete", prefixFavorite, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(prefixFavorite + favoriteID))
		if getErr != nil {
			if errors.Is(getErr, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return getErr
		}

		var doc models.Favorite
		getErr = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
		if getErr != nil {
			return getErr
		}
		if doc.ClientID != clientID {
			return ErrNotFound
		}

		if delErr := txn.Delete([]byte(prefixFavorite + favoriteID)); delErr != nil {
			return delErr
		}
		return txn.Delete(favoriteIndexKey(clientID, favoriteID))
	})
}

// findFavorite scans a client's index for an existing favorite of the
// given place.
func findFavorite(txn *badger.Txn, clientID, placeID string) (*models.Favorite, error) {
	ids, err := favoriteIDs(txn, clientID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		item, getErr := txn.Get([]byte(prefixFavorite + id))
		if getErr != nil {
			if errors.Is(getErr, badger.ErrKeyNotFound) {
				continue
			}
			return nil, getErr
		}
		var doc models.Favorite
		getErr = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
		if getErr != nil {
			continue
		}
		if doc.PlaceID == placeID {
			return &doc, nil
		}
	}
	return nil, nil
}

// favoriteIDs collects the favorite IDs in a client's index.
func favoriteIDs(txn *badger.Txn, clientID string) ([]string, error) {
	var ids []string

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(prefixFavoriteIdx + clientID + ":")
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		err := it.Item().Value(func(val []byte) error {
			ids = append(ids, string(val))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// favoriteIndexKey builds the per-client index key for a favorite.
func favoriteIndexKey(clientID, favoriteID string) []byte {
	return []byte(prefixFavoriteIdx + clientID + ":" + favoriteID)
}
