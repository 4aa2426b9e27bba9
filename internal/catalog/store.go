// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package catalog is the document store for everything the service
// persists: curated places, generated narrations and their audio clips,
// itineraries, favorites and postcards. Documents live in BadgerDB as
// JSON under type prefixes; curated places are additionally indexed in an
// in-memory spatial grid for radius queries.
package catalog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cicerone/internal/cache"
	"github.com/tomtom215/cicerone/internal/config"
	"github.com/tomtom215/cicerone/internal/geo"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/metrics"
)

// Key prefixes for the document types sharing one BadgerDB.
const (
	prefixPlace        = "place:"
	prefixNarration    = "narration:"
	prefixAudio        = "audio:"
	prefixItinerary    = "itinerary:"
	prefixFavorite     = "favorite:"
	prefixFavoriteIdx  = "favidx:"
	prefixPostcard     = "postcard:"
	prefixPostcardData = "postcardimg:"
	prefixAudit        = "audit:"
)

// Grid cell size for the place index. City-scale queries touch a handful
// of cells at this size.
const gridCellSizeKm = 5

// audioCacheEntries bounds the in-memory WAV clip cache. Clips run
// 0.5-3 MB, so the cache tops out around the low hundreds of MB.
const audioCacheEntries = 64

// Errors returned by the store.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("catalog: document not found")

	// ErrClosed is returned when the store has been closed.
	ErrClosed = errors.New("catalog: store is closed")
)

// Store is the BadgerDB-backed document store.
type Store struct {
	db       *badger.DB
	grid     *geo.Grid
	audioLRU *cache.LRUCache
	cfg      config.CatalogConfig

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store at the configured path and rebuilds
// the spatial index from persisted places.
func Open(cfg config.CatalogConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("catalog: path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{
		db:       db,
		grid:     geo.NewGrid(gridCellSizeKm),
		audioLRU: cache.NewLRUCache(audioCacheEntries, 0),
		cfg:      cfg,
	}

	if err := s.rebuildGrid(); err != nil {
		db.Close()
		return nil, fmt.Errorf("rebuild place index: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Int("indexed_places", s.grid.Size()).
		Msg("Catalog store opened")

	return s, nil
}

// Close flushes and closes the underlying database. Further calls on the
// store return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.audioLRU.Clear()
	return s.db.Close()
}

// checkOpen returns ErrClosed once Close has been called.
func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// observe records one store operation in metrics. Used via defer with a
// named error return.
func (s *Store) observe(op, prefix string, start time.Time, errp *error) {
	metrics.RecordStoreOperation(op, prefix, time.Since(start), *errp)
}

// RunGC reclaims value-log space. Safe to call periodically; returns nil
// when there was nothing to rewrite.
func (s *Store) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	ratio := s.cfg.GCDiscardRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}

	rewritten := false
	for {
		err := s.db.RunValueLogGC(ratio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			metrics.RecordStoreGC("error")
			return fmt.Errorf("run GC: %w", err)
		}
		rewritten = true
	}

	if rewritten {
		metrics.RecordStoreGC("reclaimed")
	} else {
		metrics.RecordStoreGC("nothing_to_do")
	}
	return nil
}

// Stats reports per-type document counts and the spatial index size.
type Stats struct {
	Places      int `json:"places"`
	Narrations  int `json:"narrations"`
	AudioClips  int `json:"audio_clips"`
	Itineraries int `json:"itineraries"`
	Favorites   int `json:"favorites"`
	Postcards   int `json:"postcards"`
	AuditEvents int `json:"audit_events"`
	GridEntries int `json:"grid_entries"`
	GridCells   int `json:"grid_cells"`
}

// Stats counts documents by prefix. Key-only iteration keeps this cheap
// enough for an ops endpoint.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	if err := s.checkOpen(); err != nil {
		return st, err
	}

	counts := map[string]*int{
		prefixPlace:     &st.Places,
		prefixNarration: &st.Narrations,
		prefixAudio:     &st.AudioClips,
		prefixItinerary: &st.Itineraries,
		prefixFavorite:  &st.Favorites,
		prefixPostcard:  &st.Postcards,
		prefixAudit:     &st.AuditEvents,
	}

	err := s.db.View(func(txn *badger.Txn) error {
		for prefix, counter := range counts {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			it := txn.NewIterator(opts)

			p := []byte(prefix)
			for it.Seek(p); it.ValidForPrefix(p); it.Next() {
				*counter++
			}
			it.Close()
		}
		return nil
	})
	if err != nil {
		return st, fmt.Errorf("count documents: %w", err)
	}

	st.GridEntries = s.grid.Size()
	st.GridCells = s.grid.NumCells()
	return st, nil
}

// countPrefix counts keys under a prefix without loading values.
func (s *Store) countPrefix(prefix string) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// getJSON loads and unmarshals one document. Missing keys map to
// ErrNotFound.
func (s *Store) getJSON(key string, out interface{}) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

// setJSON marshals and stores one document.
func (s *Store) setJSON(key string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}
