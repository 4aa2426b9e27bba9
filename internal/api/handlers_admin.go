// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cicerone/internal/backup"
	"github.com/tomtom215/cicerone/internal/logging"
)

// SnapshotManager is the slice of the snapshot manager the admin
// handlers call. Satisfied by *backup.Manager.
type SnapshotManager interface {
	Snapshot(ctx context.Context, trigger backup.Trigger) (*backup.Snapshot, error)
	List() []*backup.Snapshot
	Restore(ctx context.Context, id string) (*backup.Snapshot, error)
}

// maxAuditLimit caps how many audit events one request may fetch.
const maxAuditLimit = 500

// checkSnapshotsEnabled rejects snapshot requests when no manager is
// wired, which happens when CATALOG_BACKUP_DIR is unset.
func (h *Handler) checkSnapshotsEnabled(w http.ResponseWriter, r *http.Request) bool {
	if h.snapshots == nil {
		respondError(w, r, http.StatusServiceUnavailable, codeSnapshotsOff,
			"Catalog snapshots are not enabled", nil)
		return false
	}
	return true
}

// AuditList returns the most recent audit events, newest first. Admin
// only.
//
// Method: GET
// Path: /api/v1/audit?limit=
func (h *Handler) AuditList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.audit == nil {
		respondError(w, r, http.StatusServiceUnavailable, codeAuditDisabled,
			"The audit trail is not enabled", nil)
		return
	}

	limit := getIntParam(r, "limit", 50)
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	events, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to read audit trail")
		respondError(w, r, http.StatusInternalServerError, codeInternalError,
			"Failed to read audit trail", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
		"limit":  limit,
	}, start, false)
}

// SnapshotCreate takes a snapshot of the catalog right now. The write
// runs synchronously; the response carries the completed snapshot
// record. Admin only.
//
// Method: POST
// Path: /api/v1/snapshots
func (h *Handler) SnapshotCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !h.checkSnapshotsEnabled(w, r) {
		return
	}

	snap, err := h.snapshots.Snapshot(r.Context(), backup.TriggerManual)
	if err != nil {
		logging.Error().Err(err).Msg("Manual snapshot failed")
		respondError(w, r, http.StatusInternalServerError, codeInternalError,
			"Snapshot failed", nil)
		return
	}

	if h.audit != nil {
		h.audit.SnapshotCreated(r, snap.ID)
	}
	respondSuccess(w, r, http.StatusCreated, snap, start, false)
}

// SnapshotList returns all retained snapshots, newest first. Admin
// only.
//
// Method: GET
// Path: /api/v1/snapshots
func (h *Handler) SnapshotList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !h.checkSnapshotsEnabled(w, r) {
		return
	}

	snaps := h.snapshots.List()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"snapshots": snaps,
		"count":     len(snaps),
	}, start, false)
}

// SnapshotRestore loads a snapshot back into the live catalog. The
// restore merges: documents written after the snapshot survive it.
// Admin only.
//
// Method: POST
// Path: /api/v1/snapshots/{id}/restore
func (h *Handler) SnapshotRestore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !h.checkSnapshotsEnabled(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	snap, err := h.snapshots.Restore(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, backup.ErrNotFound):
			respondError(w, r, http.StatusNotFound, codeNotFound,
				"No such snapshot", nil)
		case errors.Is(err, backup.ErrChecksum):
			logging.Error().Str("snapshot_id", sanitizeLogValue(id)).Msg("Snapshot failed checksum verification")
			respondError(w, r, http.StatusConflict, codeSnapshotCorrupt,
				"Snapshot file is corrupt, restore aborted", nil)
		default:
			logging.Error().Err(err).Str("snapshot_id", sanitizeLogValue(id)).Msg("Snapshot restore failed")
			respondError(w, r, http.StatusInternalServerError, codeInternalError,
				"Restore failed", nil)
		}
		return
	}

	if h.audit != nil {
		h.audit.SnapshotRestored(r, snap.ID)
	}
	respondSuccess(w, r, http.StatusOK, snap, start, false)
}
