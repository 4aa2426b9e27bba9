// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

/*
Package services provides suture.Service wrappers for Cicerone components.

Each wrapper translates a component's native lifecycle to suture's
context-aware Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Available wrappers:

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the blocking ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

WebSocket Hub (HubService):
  - Wraps the progress hub, whose RunWithContext already matches Serve
  - Closes all client connections on shutdown

Event Bridge (EventBridgeService):
  - Wraps the bus-to-WebSocket subscriber
  - Restarting it re-subscribes to the progress topic

Store GC (StoreGCService):
  - Runs Badger value-log garbage collection on a fixed interval
  - A failed pass is logged and retried next tick, not escalated

Catalog Snapshots (SnapshotService):
  - Takes a scheduled catalog snapshot on a fixed interval
  - A failed snapshot is logged and retried next tick, not escalated

The wrappers depend on small local interfaces rather than the concrete
component types, so each can be tested with a fake and no import cycles
form between the supervised packages and this one.
*/
package services
