// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package catalog

import (
	"fmt"
	"io"
	"time"
)

// loadMaxPendingWrites bounds the write batches Badger queues while
// replaying a backup stream.
const loadMaxPendingWrites = 16

// BackupTo streams a full backup of the database to w using Badger's
// native backup format. The returned version marks the stream's upper
// bound and could seed an incremental follow-up.
func (s *Store) BackupTo(w io.Writer) (version uint64, err error) {
	defer s.observe("backup", "db", time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return 0, err
	}

	version, err = s.db.Backup(w, 0)
	if err != nil {
		return 0, fmt.Errorf("backup database: %w", err)
	}
	return version, nil
}

// LoadFrom merges a backup stream into the live database. Entries from
// the stream overwrite older versions of the same keys; documents
// written after the snapshot was taken survive. The spatial index is
// rebuilt afterwards since the stream may carry places.
func (s *Store) LoadFrom(r io.Reader) (err error) {
	defer s.observe("restore", "db", time.Now(), &err)
	if err = s.checkOpen(); err != nil {
		return err
	}

	if err = s.db.Load(r, loadMaxPendingWrites); err != nil {
		return fmt.Errorf("load backup: %w", err)
	}

	s.grid.Clear()
	return s.rebuildGrid()
}
