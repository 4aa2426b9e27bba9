// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package audit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/metrics"
	"github.com/tomtom215/cicerone/internal/middleware"
)

// defaultBufferSize is the event buffer used when NewLogger gets a
// non-positive size.
const defaultBufferSize = 256

// saveTimeout bounds one store write from the async writer.
const saveTimeout = 5 * time.Second

// Logger records audit events through a buffered channel so callers
// never block on persistence. Events are dropped with a warning when the
// buffer is full; an overloaded audit trail must not back-pressure the
// request path.
type Logger struct {
	store    Store
	events   chan *Event
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewLogger creates an audit logger writing to store. It starts the
// async writer; call Close to flush and stop it.
func NewLogger(store Store, bufferSize int) *Logger {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	l := &Logger{
		store:    store,
		events:   make(chan *Event, bufferSize),
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.asyncWriter()

	return l
}

// asyncWriter drains the event buffer into the store.
func (l *Logger) asyncWriter() {
	defer l.wg.Done()

	for {
		select {
		case <-l.stopChan:
			// Drain whatever is still buffered before exiting.
			for {
				select {
				case event := <-l.events:
					l.writeEvent(event)
				default:
					return
				}
			}
		case event := <-l.events:
			l.writeEvent(event)
		}
	}
}

// writeEvent persists one event.
func (l *Logger) writeEvent(event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := l.store.Save(ctx, event); err != nil {
		logging.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to save audit event")
	}
}

// Record queues an event for persistence. Missing ID and timestamp are
// filled in. Non-blocking; drops with a warning when the buffer is full.
func (l *Logger) Record(event *Event) {
	if event.ID == "" {
		event.ID = generateEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	metrics.RecordAuditEvent(string(event.Type))

	select {
	case l.events <- event:
	case <-l.stopChan:
	default:
		logging.Warn().Str("type", string(event.Type)).Msg("Audit event buffer full, dropping event")
	}
}

// Recent returns up to limit events, newest first. Events still sitting
// in the buffer are not included.
func (l *Logger) Recent(ctx context.Context, limit int) ([]Event, error) {
	return l.store.Recent(ctx, limit)
}

// Close stops the writer after draining buffered events.
func (l *Logger) Close() error {
	close(l.stopChan)
	l.wg.Wait()
	return nil
}

// generateEventID returns a random 128-bit hex ID.
func generateEventID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return time.Now().UTC().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(b)
}

// requestID pulls the request ID out of the context when the middleware
// has set one.
func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	return middleware.GetRequestID(r.Context())
}

// TokenMinted records a successful admin token mint.
func (l *Logger) TokenMinted(r *http.Request) {
	l.Record(&Event{
		Type:      EventTypeTokenMinted,
		Outcome:   OutcomeSuccess,
		Actor:     "admin",
		Source:    SourceFromRequest(r),
		Detail:    "Admin token issued",
		RequestID: requestID(r),
	})
}

// TokenRejected records a failed admin token mint.
func (l *Logger) TokenRejected(r *http.Request, reason string) {
	l.Record(&Event{
		Type:      EventTypeTokenRejected,
		Outcome:   OutcomeFailure,
		Actor:     "anonymous",
		Source:    SourceFromRequest(r),
		Detail:    "Token request rejected: " + reason,
		RequestID: requestID(r),
	})
}

// PlaceCreated records a curated place creation.
func (l *Logger) PlaceCreated(r *http.Request, placeID, name string) {
	l.Record(&Event{
		Type:    EventTypePlaceCreated,
		Outcome: OutcomeSuccess,
		Actor:   "admin",
		Source:  SourceFromRequest(r),
		Target: &Target{
			ID:   placeID,
			Type: "place",
			Name: name,
		},
		Detail:    "Curated place created",
		RequestID: requestID(r),
	})
}

// PlaceUpdated records a curated place update.
func (l *Logger) PlaceUpdated(r *http.Request, placeID, name string) {
	l.Record(&Event{
		Type:    EventTypePlaceUpdated,
		Outcome: OutcomeSuccess,
		Actor:   "admin",
		Source:  SourceFromRequest(r),
		Target: &Target{
			ID:   placeID,
			Type: "place",
			Name: name,
		},
		Detail:    "Curated place updated",
		RequestID: requestID(r),
	})
}

// PlaceDeleted records a curated place deletion.
func (l *Logger) PlaceDeleted(r *http.Request, placeID string) {
	l.Record(&Event{
		Type:    EventTypePlaceDeleted,
		Outcome: OutcomeSuccess,
		Actor:   "admin",
		Source:  SourceFromRequest(r),
		Target: &Target{
			ID:   placeID,
			Type: "place",
		},
		Detail:    "Curated place deleted",
		RequestID: requestID(r),
	})
}

// SnapshotCreated records a catalog snapshot. r is nil for scheduled
// snapshots; those are attributed to "system".
func (l *Logger) SnapshotCreated(r *http.Request, snapshotID string) {
	actor := "system"
	if r != nil {
		actor = "admin"
	}
	l.Record(&Event{
		Type:    EventTypeSnapshotCreated,
		Outcome: OutcomeSuccess,
		Actor:   actor,
		Source:  SourceFromRequest(r),
		Target: &Target{
			ID:   snapshotID,
			Type: "snapshot",
		},
		Detail:    "Catalog snapshot created",
		RequestID: requestID(r),
	})
}

// SnapshotRestored records a snapshot restore into the live catalog.
func (l *Logger) SnapshotRestored(r *http.Request, snapshotID string) {
	l.Record(&Event{
		Type:    EventTypeSnapshotRestored,
		Outcome: OutcomeSuccess,
		Actor:   "admin",
		Source:  SourceFromRequest(r),
		Target: &Target{
			ID:   snapshotID,
			Type: "snapshot",
		},
		Detail:    "Catalog restored from snapshot",
		RequestID: requestID(r),
	})
}
