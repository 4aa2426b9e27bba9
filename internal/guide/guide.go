// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package guide orchestrates the generative tour-guide operations: landmark
// narration with optional photo identification and speech synthesis,
// day-trip planning, nearby-place discovery and postcard rendering.
//
// The package owns the flow, not the pieces. Model calls go through the
// Generator interface (implemented by internal/gemini), documents and audio
// land in the catalog store, results are memoized in the TTL cache, and
// pipeline stages are published on the progress bus for WebSocket fanout.
package guide

import (
	"context"
	"errors"

	"github.com/tomtom215/cicerone/internal/audio"
	"github.com/tomtom215/cicerone/internal/cache"
	"github.com/tomtom215/cicerone/internal/catalog"
	"github.com/tomtom215/cicerone/internal/events"
	"github.com/tomtom215/cicerone/internal/gemini"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/models"
)

// ErrNoSubject is returned when a narration request carries neither a
// landmark name nor a photo to identify one from.
var ErrNoSubject = errors.New("guide: request needs a landmark name or a photo")

// Generator is the slice of the Gemini client the orchestrator depends on.
// Implemented by *gemini.Client; tests substitute an in-process fake.
type Generator interface {
	IdentifyLandmark(ctx context.Context, image []byte, mimeType string, lat, lon *float64) (*models.LandmarkIdentification, error)
	Narrate(ctx context.Context, p gemini.NarrationParams) (*gemini.NarrationDraft, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	PlanItinerary(ctx context.Context, p gemini.ItineraryParams) (*gemini.ItineraryDraft, error)
	DiscoverNearby(ctx context.Context, q gemini.NearbyQuery) ([]gemini.PlaceDraft, error)
	GeneratePostcard(ctx context.Context, place, style string) ([]byte, string, error)
	DefaultVoice() string
	TextModel() string
}

// Service wires the generator, the document store, the result cache and the
// progress bus into the guide operations.
type Service struct {
	gen    Generator
	store  *catalog.Store
	cache  *cache.Cache // nil when result caching is disabled
	bus    *events.Bus  // nil when progress events are disabled
	format audio.Format
}

// New creates the orchestration service. cache and bus may be nil; format
// falls back to the default Gemini TTS output format when zero.
func New(gen Generator, store *catalog.Store, resultCache *cache.Cache, bus *events.Bus, format audio.Format) *Service {
	if format == (audio.Format{}) {
		format = audio.DefaultFormat
	}
	return &Service{
		gen:    gen,
		store:  store,
		cache:  resultCache,
		bus:    bus,
		format: format,
	}
}

// Voices lists the prebuilt TTS voices clients can pick from.
func (s *Service) Voices() []models.Voice {
	return models.KnownVoices
}

// DefaultVoice is the voice used when a request does not pick one.
func (s *Service) DefaultVoice() string {
	return s.gen.DefaultVoice()
}

// publish emits one pipeline stage event. Progress is best-effort: a full
// or closed bus drops the event and the operation continues.
func (s *Service) publish(ctx context.Context, requestID, operation, stage, message string, percent int) {
	if s.bus == nil {
		return
	}
	ev := events.NewProgressEvent(requestID, operation, stage)
	ev.Message = message
	ev.Percent = percent
	if err := s.bus.PublishProgress(ctx, ev); err != nil {
		logging.Debug().Err(err).
			Str("operation", operation).
			Str("stage", stage).
			Msg("progress event dropped")
	}
}

// fail publishes the terminal failed stage with a generic message. Error
// detail stays in logs and the HTTP response, not the event stream.
func (s *Service) fail(ctx context.Context, requestID, operation string) {
	s.publish(ctx, requestID, operation, events.StageFailed, "generation failed", 100)
}

// fromCache returns the cached value for key when caching is enabled and
// the entry is of type T.
func fromCache[T any](s *Service, key string) (T, bool) {
	var zero T
	if s.cache == nil {
		return zero, false
	}
	v, ok := s.cache.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// toCache stores a value when caching is enabled.
func (s *Service) toCache(key string, v interface{}) {
	if s.cache != nil {
		s.cache.Set(key, v)
	}
}
