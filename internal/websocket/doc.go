// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

/*
Package websocket streams generation progress to connected browsers.

Narration, itinerary and postcard generation run as multi-stage
pipelines; each stage publishes a progress event on the internal bus.
This package bridges that bus to WebSocket clients using the
gorilla/websocket library with a hub-client architecture.

Key Components:

  - Hub: central broker that manages client connections and broadcasts
  - Client: one WebSocket connection with read/write goroutines
  - BusSubscriber: forwards bus progress events into the hub

Each client has two goroutines:
  - readPump: reads subscribe/unsubscribe/ping frames, handles pongs
  - writePump: writes broadcasts and pings under a write deadline

Message Types:

  - progress: one pipeline stage event (operation, stage, percent)
  - ping / pong: application-level keepalive
  - subscribed / unsubscribed: acknowledgements for filter changes

Request Filtering:

Clients receive every progress event by default. A client that sends

	{"type": "subscribe", "data": {"request_id": "<id>"}}

narrows its stream to the given request IDs; unsubscribe removes one ID
and an empty filter restores the full stream. Filters are per-client
and never affect other connections.

Connection Lifecycle:

 1. Browser connects via HTTP upgrade (origin checked)
 2. Hub registers the client
 3. Client starts read/write goroutines
 4. Bus events are broadcast through the hub, honoring filters
 5. Disconnect (network error, slow consumer, or close) unregisters

Slow clients are disconnected rather than allowed to stall broadcasts:
each client has a bounded send buffer, and a full buffer drops the
connection.
*/
package websocket
