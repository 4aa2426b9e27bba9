// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cicerone/internal/audit"
	"github.com/tomtom215/cicerone/internal/auth"
	"github.com/tomtom215/cicerone/internal/cache"
	"github.com/tomtom215/cicerone/internal/catalog"
	"github.com/tomtom215/cicerone/internal/config"
	"github.com/tomtom215/cicerone/internal/gemini"
	"github.com/tomtom215/cicerone/internal/guide"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/middleware"
	ws "github.com/tomtom215/cicerone/internal/websocket"
)

// Handler holds the dependencies for API handlers.
type Handler struct {
	svc         *guide.Service
	store       *catalog.Store
	ai          *gemini.Client
	tokens      *auth.Manager
	hub         *ws.Hub
	resultCache *cache.Cache
	perfMon     *middleware.PerformanceMonitor
	config      *config.Config
	startTime   time.Time

	// Optional, wired via setters after construction.
	audit     *audit.Logger
	snapshots SnapshotManager
}

// NewHandler creates the API handler. ai and resultCache may be nil; the
// health and stats endpoints degrade gracefully without them.
func NewHandler(svc *guide.Service, store *catalog.Store, ai *gemini.Client, tokens *auth.Manager, hub *ws.Hub, resultCache *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		svc:         svc,
		store:       store,
		ai:          ai,
		tokens:      tokens,
		hub:         hub,
		resultCache: resultCache,
		perfMon:     middleware.NewPerformanceMonitor(1000),
		config:      cfg,
		startTime:   time.Now(),
	}
}

// SetAuditLogger wires the audit trail. Without it the admin endpoints
// work but leave no trail and GET /audit reports the trail as disabled.
func (h *Handler) SetAuditLogger(l *audit.Logger) {
	h.audit = l
}

// SetSnapshotManager wires catalog snapshots. Without it the snapshot
// endpoints respond 503.
func (h *Handler) SetSnapshotManager(sm SnapshotManager) {
	h.snapshots = sm
}

// PerfMonitor exposes the performance monitor so the router can mount
// its middleware.
func (h *Handler) PerfMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// WebSocket upgrades the connection and attaches the client to the
// progress hub. Clients subscribe to request IDs over the socket to
// filter which progress events they receive.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		logging.Warn().Msg("websocket connection rejected: hub not initialized")
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logging.Error().Err(err).Msg("websocket upgrade error")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates connection origins. Browser WebSockets
// always send Origin; requests without one are rejected since allowing
// them would bypass origin checks entirely.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("websocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	// Events can carry their own origin list; otherwise the CORS origins
	// apply.
	allowed := h.config.Events.AllowedOrigins
	if len(allowed) == 0 {
		allowed = h.config.Security.CORSOrigins
	}

	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("websocket connection rejected from unauthorized origin")
	return false
}
