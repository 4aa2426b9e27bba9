// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cicerone/internal/logging"
)

// GCRunner matches the document store's value-log GC entry point.
// Satisfied by *catalog.Store.
type GCRunner interface {
	RunGC() error
}

// StoreGCService runs Badger value-log garbage collection on a fixed
// interval. Audio clips and postcards churn through the value log, so
// without periodic GC the on-disk size only grows.
//
// A failed pass is logged and retried on the next tick rather than
// returned, since returning would make the supervisor restart a loop
// that has no state to reset.
type StoreGCService struct {
	store    GCRunner
	interval time.Duration
	name     string
}

// NewStoreGCService creates the wrapper. Zero interval means 10 minutes.
func NewStoreGCService(store GCRunner, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve ticks until the context is canceled.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("store GC pass failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *StoreGCService) String() string {
	return s.name
}
