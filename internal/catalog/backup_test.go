// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package catalog

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestBackupRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	src := newTestStore(t)
	ctx := context.Background()

	pantheon, err := src.CreatePlace(ctx, testPlace("Pantheon", "Rome", "Temple", 41.8986, 12.4769, 4.9))
	if err != nil {
		t.Fatalf("CreatePlace() error = %v", err)
	}
	if _, err := src.CreatePlace(ctx, testPlace("Piazza Navona", "Rome", "Square", 41.8992, 12.4731, 4.8)); err != nil {
		t.Fatalf("CreatePlace() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := src.BackupTo(&buf); err != nil {
		t.Fatalf("BackupTo() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("backup stream is empty")
	}

	dst := newTestStore(t)
	if err := dst.LoadFrom(&buf); err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	restored, err := dst.GetPlace(ctx, pantheon.ID)
	if err != nil {
		t.Fatalf("GetPlace() after restore error = %v", err)
	}
	if restored.Name != "Pantheon" {
		t.Errorf("restored place name = %q, want Pantheon", restored.Name)
	}

	// The spatial index must cover restored places.
	nearby := dst.Nearby(ctx, 41.8986, 12.4769, 5, "")
	if len(nearby) != 2 {
		t.Errorf("Nearby() after restore returned %d places, want 2", len(nearby))
	}
}

func TestLoadFrom_KeepsNewerDocuments(t *testing.T) {
	t.Parallel()

	src := newTestStore(t)
	ctx := context.Background()

	if _, err := src.CreatePlace(ctx, testPlace("Pantheon", "Rome", "Temple", 41.8986, 12.4769, 4.9)); err != nil {
		t.Fatalf("CreatePlace() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := src.BackupTo(&buf); err != nil {
		t.Fatalf("BackupTo() error = %v", err)
	}

	dst := newTestStore(t)
	later, err := dst.CreatePlace(ctx, testPlace("Trevi Fountain", "Rome", "Fountain", 41.9009, 12.4833, 4.8))
	if err != nil {
		t.Fatalf("CreatePlace() error = %v", err)
	}

	if err := dst.LoadFrom(&buf); err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	// A restore is a merge, not a wipe.
	if _, err := dst.GetPlace(ctx, later.ID); err != nil {
		t.Errorf("place created before restore is gone: %v", err)
	}
	stats, err := dst.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Places != 2 {
		t.Errorf("Places after merge = %d, want 2", stats.Places)
	}
}

func TestBackupTo_ClosedStore(t *testing.T) {
	store := newTestStore(t)
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := store.BackupTo(&buf); !errors.Is(err, ErrClosed) {
		t.Errorf("BackupTo() after close error = %v, want ErrClosed", err)
	}
	if err := store.LoadFrom(&buf); !errors.Is(err, ErrClosed) {
		t.Errorf("LoadFrom() after close error = %v, want ErrClosed", err)
	}
}
