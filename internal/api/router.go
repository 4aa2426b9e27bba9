// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cicerone/internal/auth"
	"github.com/tomtom215/cicerone/internal/middleware"
)

// Router wires handlers and middleware into the chi route tree.
type Router struct {
	handler       *Handler
	authMW        *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates the router for the given handler set.
func NewRouter(handler *Handler, authMW *auth.Middleware, chiMW *ChiMiddleware) *Router {
	return &Router{
		handler:       handler,
		authMW:        authMW,
		chiMiddleware: chiMW,
	}
}

// Setup builds the full route tree.
//
// Rate limit tiers: health endpoints are near-unthrottled for monitors,
// auth is strict against brute force, generation endpoints (anything
// that can reach the model) are tighter than plain reads.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight works

	// Probes live at the root, outside /api/v1, for load balancers.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/health", router.handler.Health)
		r.Get("/ready", router.handler.Ready)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Use(APISecurityHeaders())
		r.Post("/token", router.handler.Token)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Instrumented JSON surface.
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(APISecurityHeaders())
			r.Use(chiMiddleware(middleware.PrometheusMetrics))
			r.Use(chiMiddleware(router.handler.PerfMonitor().Middleware))
			r.Use(chiMiddleware(middleware.Compression))

			// Generation endpoints reach the model and carry the stricter
			// per-IP limit. Nearby counts: a cache miss is a model call.
			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitGenerate())
				r.Post("/guide/narrate", router.handler.Narrate)
				r.Post("/guide/postcard", router.handler.PostcardCreate)
				r.Post("/itineraries", router.handler.ItineraryCreate)
				r.Get("/places/nearby", router.handler.Nearby)
			})

			r.Get("/guide/audio/{id}", router.handler.Audio)
			r.Get("/guide/voices", router.handler.Voices)
			r.Get("/guide/postcard/{id}", router.handler.PostcardGet)

			r.Get("/itineraries", router.handler.ItineraryList)
			r.Get("/itineraries/{id}", router.handler.ItineraryGet)

			r.Get("/places/top", router.handler.TopPlaces)
			r.Get("/places/{id}", router.handler.PlaceGet)

			r.Post("/favorites", router.handler.FavoriteCreate)
			r.Get("/favorites", router.handler.FavoriteList)
			r.Delete("/favorites/{id}", router.handler.FavoriteDelete)

			// Admin surface: catalog mutations, ops stats, the audit
			// trail and catalog snapshots.
			r.Group(func(r chi.Router) {
				r.Use(chiMiddleware(router.authMW.RequireAdmin))
				r.Post("/places", router.handler.PlaceCreate)
				r.Put("/places/{id}", router.handler.PlaceUpdate)
				r.Delete("/places/{id}", router.handler.PlaceDelete)
				r.Get("/stats", router.handler.Stats)
				r.Get("/audit", router.handler.AuditList)
				r.Post("/snapshots", router.handler.SnapshotCreate)
				r.Get("/snapshots", router.handler.SnapshotList)
				r.Post("/snapshots/{id}/restore", router.handler.SnapshotRestore)
			})
		})

		// The upgrade needs the raw response writer, so the socket sits
		// outside the instrumented group. Connection counts come from
		// the hub's own gauge, and a connection held open for hours
		// would skew the latency percentiles.
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Get("/ws", router.handler.WebSocket)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
