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

// SnapshotRunner matches the backup manager's scheduled entry point.
// Satisfied by *backup.Manager.
type SnapshotRunner interface {
	ScheduledSnapshot(ctx context.Context) error
}

// SnapshotService takes periodic catalog snapshots. Like the GC
// service, a failed snapshot is logged and retried on the next tick;
// the manager itself carries no state worth a supervisor restart.
type SnapshotService struct {
	manager  SnapshotRunner
	interval time.Duration
	name     string
}

// NewSnapshotService creates the wrapper. Zero interval means daily.
func NewSnapshotService(manager SnapshotRunner, interval time.Duration) *SnapshotService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &SnapshotService{
		manager:  manager,
		interval: interval,
		name:     "store-snapshot",
	}
}

// Serve ticks until the context is canceled.
func (s *SnapshotService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.manager.ScheduledSnapshot(ctx); err != nil {
				logging.Warn().Err(err).Msg("scheduled snapshot failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *SnapshotService) String() string {
	return s.name
}
