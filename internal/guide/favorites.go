// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package guide

import (
	"context"

	"github.com/tomtom215/cicerone/internal/models"
)

// SaveFavorite resolves the place and records it as a favorite for the
// client. An unknown place ID surfaces as catalog.ErrNotFound. Listing and
// deletion have no orchestration and go straight to the store.
func (s *Service) SaveFavorite(ctx context.Context, req *models.FavoriteRequest) (*models.Favorite, error) {
	place, err := s.store.GetPlace(ctx, req.PlaceID)
	if err != nil {
		return nil, err
	}
	return s.store.SaveFavorite(ctx, req.ClientID, req.PlaceID, place.Name)
}
