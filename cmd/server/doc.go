// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

/*
Package main is the entry point for the Cicerone server.

Cicerone is a backend for browser tourist-guide apps: point a phone at a
landmark and get a narrated history with TTS audio, plan a day trip,
discover nearby places, browse a curated catalog and render postcards.
All generation runs through the Gemini API behind a circuit breaker.

# Application Architecture

The server runs under Suture v4 process supervision:

	root ("cicerone")
	├── data-layer
	│   ├── Store GC (Badger value-log garbage collection)
	│   └── Store Snapshot (periodic catalog snapshots, when enabled)
	├── messaging-layer
	│   ├── WebSocket Hub (progress event fanout)
	│   └── Event Bridge (progress bus → hub)
	└── api-layer
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 layering defaults, YAML file, environment
 2. Logging: zerolog with JSON/console output modes
 3. Catalog: Badger document store, optional curated-place seeding
 4. Gemini client: genai SDK with retry, pacing and circuit breaker
 5. Result cache, progress bus, WebSocket hub
 6. Guide service: orchestration over generator + store + cache + bus
 7. Admin tokens, audit trail, snapshot manager
 8. HTTP handler, chi router
 9. Supervisor tree: services added per layer, then served

# Configuration

Settings load via Koanf v2 with precedence ENV > config.yaml > defaults.
The only required setting is the Gemini credential:

	export GEMINI_API_KEY=your-api-key
	./cicerone

Common options:

	HTTP_PORT=8420                 # listen port
	CATALOG_PATH=/data/cicerone    # Badger data directory
	CATALOG_SEED_PATH=seed.json    # curated places loaded on first boot
	CATALOG_BACKUP_DIR=/data/snaps # enables periodic catalog snapshots
	ADMIN_SECRET=...               # enables the admin catalog endpoints
	LOG_FORMAT=console             # human-readable logs for development

# Signal Handling

SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
in-flight requests (10s timeout), the hub closes client connections,
and the store flushes and closes. Services that fail to stop within the
supervisor timeout are reported before exit.
*/
package main
