// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cicerone/internal/models"
)

const defaultPostcardTTL = 24 * time.Hour

// SavePostcard persists a generated postcard and its image bytes, both
// with the configured expiry. ExpiresAt is filled in on the document so
// clients know how long the image URL stays valid.
func (s *Store) SavePostcard(ctx context.Context, pc *models.Postcard, image []byte) (err error) {
	defer s.observe("save", prefixPostcard, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return err
	}

	ttl := s.cfg.PostcardTTL
	if ttl <= 0 {
		ttl = defaultPostcardTTL
	}
	pc.ExpiresAt = pc.CreatedAt.Add(ttl)

	data, err := json.Marshal(pc)
	if err != nil {
		return fmt.Errorf("marshal postcard: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		meta := badger.NewEntry([]byte(prefixPostcard+pc.ID), data).WithTTL(ttl)
		if setErr := txn.SetEntry(meta); setErr != nil {
			return setErr
		}
		img := badger.NewEntry([]byte(prefixPostcardData+pc.ID), image).WithTTL(ttl)
		return txn.SetEntry(img)
	})
}

// GetPostcard loads a postcard document and its image bytes. Expired
// entries surface as ErrNotFound once BadgerDB drops them.
func (s *Store) GetPostcard(ctx context.Context, id string) (pc *models.Postcard, image []byte, err error) {
	defer s.observe("get", prefixPostcard, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(prefixPostcard + id))
		if getErr != nil {
			if errors.Is(getErr, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return getErr
		}
		var doc models.Postcard
		getErr = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
		if getErr != nil {
			return getErr
		}

		imgItem, getErr := txn.Get([]byte(prefixPostcardData + id))
		if getErr != nil {
			if errors.Is(getErr, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return getErr
		}
		image, getErr = imgItem.ValueCopy(nil)
		if getErr != nil {
			return getErr
		}

		pc = &doc
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return pc, image, nil
}
