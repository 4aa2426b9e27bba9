// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package audit records security-relevant events: admin token mints and
// rejections, catalog mutations, snapshot and restore operations. Events
// are buffered and written asynchronously so recording never blocks a
// request handler, and persisted through a Store so they survive
// restarts and can be reviewed over the admin API.
package audit

import (
	"context"
	"net"
	"net/http"
	"time"
)

// EventType categorizes audit events.
type EventType string

const (
	// Token lifecycle
	EventTypeTokenMinted   EventType = "token.minted"
	EventTypeTokenRejected EventType = "token.rejected"

	// Catalog mutations
	EventTypePlaceCreated EventType = "place.created"
	EventTypePlaceUpdated EventType = "place.updated"
	EventTypePlaceDeleted EventType = "place.deleted"

	// Snapshot operations
	EventTypeSnapshotCreated  EventType = "snapshot.created"
	EventTypeSnapshotRestored EventType = "snapshot.restored"
)

// Outcome indicates whether the audited action succeeded.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is one audit trail entry.
type Event struct {
	// ID is a unique identifier for this event.
	ID string `json:"id"`

	// Timestamp when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// Outcome indicates success or failure.
	Outcome Outcome `json:"outcome"`

	// Actor who performed the action: "admin" for authenticated
	// requests, "anonymous" for rejected token mints, "system" for
	// scheduled operations.
	Actor string `json:"actor"`

	// Source of the request. Empty for system-triggered events.
	Source Source `json:"source"`

	// Target of the action, when there is one.
	Target *Target `json:"target,omitempty"`

	// Detail is a short human-readable description.
	Detail string `json:"detail,omitempty"`

	// RequestID from the originating HTTP request.
	RequestID string `json:"request_id,omitempty"`
}

// Target identifies the object of an audited action.
type Target struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// Source is where a request originated.
type Source struct {
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// SourceFromRequest extracts the client address and user agent.
func SourceFromRequest(r *http.Request) Source {
	if r == nil {
		return Source{}
	}
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Source{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}

// Store persists audit events. The catalog package provides the
// BadgerDB-backed implementation.
type Store interface {
	// Save persists one event.
	Save(ctx context.Context, event *Event) error

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]Event, error)
}
