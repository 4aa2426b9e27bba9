// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package guide

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cicerone/internal/events"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/models"
)

const defaultPostcardStyle = "vintage"

// Postcard generates a souvenir image of a place and stores it with a TTL.
// Postcards are not cached: each render is meant to be unique art.
func (s *Service) Postcard(ctx context.Context, req *models.PostcardRequest) (*models.Postcard, error) {
	op := events.OperationPostcard
	s.publish(ctx, req.RequestID, op, events.StageReceived, "", 10)

	style := req.Style
	if style == "" {
		style = defaultPostcardStyle
	}

	s.publish(ctx, req.RequestID, op, events.StageRendering, req.Place, 40)
	img, mime, err := s.gen.GeneratePostcard(ctx, req.Place, style)
	if err != nil {
		s.fail(ctx, req.RequestID, op)
		return nil, err
	}

	pc := &models.Postcard{
		ID:        uuid.NewString(),
		Place:     req.Place,
		Style:     style,
		MIME:      mime,
		SizeBytes: len(img),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SavePostcard(ctx, pc, img); err != nil {
		s.fail(ctx, req.RequestID, op)
		return nil, err
	}

	s.publish(ctx, req.RequestID, op, events.StageDone, pc.ID, 100)
	logging.Info().
		Str("postcard_id", pc.ID).
		Str("place", req.Place).
		Str("style", style).
		Int("bytes", pc.SizeBytes).
		Msg("postcard generated")
	return pc, nil
}
