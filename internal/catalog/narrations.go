// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cicerone/internal/metrics"
	"github.com/tomtom215/cicerone/internal/models"
)

// SaveNarration persists a generated narration document.
func (s *Store) SaveNarration(ctx context.Context, n *models.Narration) (err error) {
	defer s.observe("save", prefixNarration, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return err
	}
	return s.setJSON(prefixNarration+n.ID, n)
}

// GetNarration loads a narration document by ID.
func (s *Store) GetNarration(ctx context.Context, id string) (n *models.Narration, err error) {
	defer s.observe("get", prefixNarration, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	var doc models.Narration
	if err = s.getJSON(prefixNarration+id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveAudio persists a synthesized WAV clip and primes the in-memory
// cache so the first playback avoids a disk read.
func (s *Store) SaveAudio(ctx context.Context, id string, wav []byte) (err error) {
	defer s.observe("save", prefixAudio, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixAudio+id), wav)
	})
	if err != nil {
		return err
	}

	s.audioLRU.Add(id, wav)
	metrics.UpdateCacheSize("audio", int64(s.audioLRU.Len()))
	return nil
}

// GetAudio returns the WAV bytes for a narration clip, serving from the
// in-memory cache when possible.
func (s *Store) GetAudio(ctx context.Context, id string) (wav []byte, err error) {
	defer s.observe("get", prefixAudio, time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	if data, ok := s.audioLRU.Get(id); ok {
		metrics.RecordCacheHit("audio")
		return data, nil
	}
	metrics.RecordCacheMiss("audio")

	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(prefixAudio + id))
		if getErr != nil {
			if errors.Is(getErr, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return getErr
		}
		wav, getErr = item.ValueCopy(nil)
		return getErr
	})
	if err != nil {
		return nil, err
	}

	s.audioLRU.Add(id, wav)
	metrics.UpdateCacheSize("audio", int64(s.audioLRU.Len()))
	return wav, nil
}
