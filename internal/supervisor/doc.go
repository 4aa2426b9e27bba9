// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package supervisor builds the suture supervision tree that owns every
// long-running component of the service.
//
// The tree has three child supervisors under one root:
//
//	cicerone
//	├── data-layer       document store GC
//	├── messaging-layer  WebSocket hub, progress-event bridge
//	└── api-layer        HTTP server
//
// Each layer restarts its own services with exponential backoff; a
// repeatedly crashing hub never takes the HTTP server down with it.
// Supervisor events are logged through sutureslog, which feeds the
// process-wide zerolog logger via logging.NewSlogLogger.
//
// Services live in the services subpackage as thin wrappers translating
// each component's lifecycle to suture's Serve(ctx) contract.
package supervisor
