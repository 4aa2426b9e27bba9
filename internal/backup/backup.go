// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package backup manages catalog snapshots. A snapshot is the catalog's
// Badger backup stream, gzip-compressed and checksummed, written to a
// configured directory. The Manager keeps a manifest.json beside the
// snapshot files, enforces a keep-newest retention policy and can merge
// a snapshot back into the live store.
//
// Snapshots are full backups. Restoring is a merge: documents written
// after the snapshot was taken survive, older versions of snapshotted
// keys are superseded.
package backup

import (
	"errors"
	"time"
)

// Trigger indicates what initiated a snapshot.
type Trigger string

const (
	// TriggerManual marks snapshots requested over the admin API.
	TriggerManual Trigger = "manual"

	// TriggerScheduled marks snapshots taken by the periodic service.
	TriggerScheduled Trigger = "scheduled"
)

// Errors returned by the Manager.
var (
	// ErrNotFound is returned when a snapshot ID is unknown.
	ErrNotFound = errors.New("backup: snapshot not found")

	// ErrChecksum is returned when a snapshot file fails verification
	// before a restore.
	ErrChecksum = errors.New("backup: snapshot checksum mismatch")
)

// Snapshot is the manifest record for one snapshot file.
type Snapshot struct {
	// ID is a unique identifier for the snapshot.
	ID string `json:"id"`

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time `json:"created_at"`

	// Trigger records what initiated it.
	Trigger Trigger `json:"trigger"`

	// File is the file name inside the snapshot directory.
	File string `json:"file"`

	// SizeBytes is the compressed file size.
	SizeBytes int64 `json:"size_bytes"`

	// Checksum is the SHA-256 of the compressed file, hex encoded.
	Checksum string `json:"checksum"`

	// Version is the Badger stream version the backup covers up to.
	Version uint64 `json:"version"`
}
