// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package backup

import (
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/metrics"
)

// defaultKeep is the retention when the configured keep count is not
// positive.
const defaultKeep = 7

// manifestName is the metadata file kept beside the snapshot files.
const manifestName = "manifest.json"

// StoreBackend is the slice of the catalog store the manager needs.
type StoreBackend interface {
	BackupTo(w io.Writer) (uint64, error)
	LoadFrom(r io.Reader) error
}

// Manager creates, lists and restores catalog snapshots. One snapshot
// or restore runs at a time; the mutex also guards the manifest.
type Manager struct {
	store StoreBackend
	dir   string
	keep  int

	mu       sync.Mutex
	manifest []*Snapshot

	onComplete func(*Snapshot)
}

// NewManager creates a snapshot manager writing to dir. The directory
// is created if missing and an existing manifest is loaded, so
// snapshots survive restarts.
func NewManager(store StoreBackend, dir string, keep int) (*Manager, error) {
	if dir == "" {
		return nil, fmt.Errorf("backup: directory is required")
	}
	if keep <= 0 {
		keep = defaultKeep
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}

	m := &Manager{
		store: store,
		dir:   dir,
		keep:  keep,
	}

	if err := m.loadManifest(); err != nil {
		return nil, err
	}

	return m, nil
}

// SetOnComplete registers a callback invoked after every successful
// snapshot, manual or scheduled.
func (m *Manager) SetOnComplete(fn func(*Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onComplete = fn
}

// Snapshot takes a snapshot of the catalog and applies retention.
func (m *Manager) Snapshot(ctx context.Context, trigger Trigger) (snap *Snapshot, err error) {
	defer func() { metrics.RecordSnapshot(string(trigger), err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	snap = &Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: start.UTC(),
		Trigger:   trigger,
	}
	snap.File = fmt.Sprintf("catalog_%s_%s.badger.gz",
		snap.CreatedAt.Format("20060102T150405Z"), snap.ID)

	if err = m.writeSnapshotFile(snap); err != nil {
		return nil, err
	}

	m.manifest = append(m.manifest, snap)
	if saveErr := m.saveManifestLocked(); saveErr != nil {
		logging.Error().Err(saveErr).Msg("Failed to save snapshot manifest")
	}

	m.pruneLocked()

	logging.Info().
		Str("snapshot_id", snap.ID).
		Str("trigger", string(trigger)).
		Int64("size_bytes", snap.SizeBytes).
		Dur("took", time.Since(start)).
		Msg("Catalog snapshot created")

	if m.onComplete != nil {
		m.onComplete(snap)
	}
	return snap, nil
}

// writeSnapshotFile streams the backup into a temp file, then renames
// it into place so a crashed snapshot never leaves a partial file under
// its final name.
func (m *Manager) writeSnapshotFile(snap *Snapshot) error {
	final := filepath.Join(m.dir, snap.File)
	tmp := final + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}

	hash := sha256.New()
	gz := gzip.NewWriter(io.MultiWriter(f, hash))

	version, err := m.store.BackupTo(gz)
	if err == nil {
		err = gz.Close()
	} else {
		gz.Close()
	}
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize snapshot: %w", err)
	}

	info, err := os.Stat(final)
	if err != nil {
		return fmt.Errorf("stat snapshot: %w", err)
	}

	snap.SizeBytes = info.Size()
	snap.Checksum = hex.EncodeToString(hash.Sum(nil))
	snap.Version = version
	return nil
}

// ScheduledSnapshot takes a snapshot with the scheduled trigger. The
// supervisor's snapshot service calls this on its tick.
func (m *Manager) ScheduledSnapshot(ctx context.Context) error {
	_, err := m.Snapshot(ctx, TriggerScheduled)
	return err
}

// List returns known snapshots, newest first.
func (m *Manager) List() []*Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Snapshot, len(m.manifest))
	for i, snap := range m.manifest {
		copied := *snap
		out[len(m.manifest)-1-i] = &copied
	}
	return out
}

// Restore verifies a snapshot file against its checksum and merges it
// into the live catalog.
func (m *Manager) Restore(ctx context.Context, id string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap *Snapshot
	for _, s := range m.manifest {
		if s.ID == id {
			snap = s
			break
		}
	}
	if snap == nil {
		return nil, ErrNotFound
	}

	path := filepath.Join(m.dir, snap.File)
	if err := verifyChecksum(path, snap.Checksum); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	defer gz.Close()

	if err := m.store.LoadFrom(gz); err != nil {
		return nil, err
	}

	logging.Info().Str("snapshot_id", snap.ID).Msg("Catalog restored from snapshot")
	copied := *snap
	return &copied, nil
}

// verifyChecksum compares a file's SHA-256 against the manifest value.
func verifyChecksum(path, want string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return fmt.Errorf("checksum snapshot: %w", err)
	}
	if hex.EncodeToString(hash.Sum(nil)) != want {
		return ErrChecksum
	}
	return nil
}

// pruneLocked removes the oldest snapshots beyond the keep count.
// Must be called with the mutex held.
func (m *Manager) pruneLocked() {
	if len(m.manifest) <= m.keep {
		return
	}

	drop := m.manifest[:len(m.manifest)-m.keep]
	m.manifest = m.manifest[len(m.manifest)-m.keep:]

	for _, snap := range drop {
		path := filepath.Join(m.dir, snap.File)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logging.Warn().Err(err).Str("snapshot_id", snap.ID).Msg("Failed to remove expired snapshot")
		} else {
			logging.Info().Str("snapshot_id", snap.ID).Msg("Expired snapshot removed")
		}
	}

	if err := m.saveManifestLocked(); err != nil {
		logging.Error().Err(err).Msg("Failed to save snapshot manifest after prune")
	}
}

// loadManifest reads manifest.json. A missing file means no snapshots
// yet; anything else is a real error.
func (m *Manager) loadManifest() error {
	data, err := os.ReadFile(filepath.Join(m.dir, manifestName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot manifest: %w", err)
	}

	if err := json.Unmarshal(data, &m.manifest); err != nil {
		return fmt.Errorf("parse snapshot manifest: %w", err)
	}
	return nil
}

// saveManifestLocked writes manifest.json. Must be called with the
// mutex held.
func (m *Manager) saveManifestLocked() error {
	data, err := json.MarshalIndent(m.manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.dir, manifestName), data, 0o600)
}
