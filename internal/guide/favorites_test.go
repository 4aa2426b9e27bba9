// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package guide

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/cicerone/internal/catalog"
	"github.com/tomtom215/cicerone/internal/models"
)

const testClientID = "7b9d2c1e-4f3a-4b8c-9d6e-5a1f2e3d4c5b"

func TestSaveFavorite_ResolvesPlaceName(t *testing.T) {
	gen := &fakeGenerator{}
	svc, store := newTestService(t, gen)

	place, err := store.CreatePlace(context.Background(), &models.PlaceUpsert{
		Name:      "Pantheon",
		City:      "Rome",
		Country:   "Italy",
		Latitude:  41.8986,
		Longitude: 12.4769,
		Category:  "Landmark",
		Summary:   "The temple of all gods.",
	})
	if err != nil {
		t.Fatalf("CreatePlace() error = %v", err)
	}

	fav, err := svc.SaveFavorite(context.Background(), &models.FavoriteRequest{
		ClientID: testClientID,
		PlaceID:  place.ID,
	})
	if err != nil {
		t.Fatalf("SaveFavorite() error = %v", err)
	}
	if fav.PlaceName != "Pantheon" {
		t.Errorf("PlaceName = %s, want Pantheon", fav.PlaceName)
	}
	if fav.ClientID != testClientID {
		t.Errorf("ClientID = %s, want %s", fav.ClientID, testClientID)
	}
}

func TestSaveFavorite_UnknownPlace(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen)

	_, err := svc.SaveFavorite(context.Background(), &models.FavoriteRequest{
		ClientID: testClientID,
		PlaceID:  "nonexistent",
	})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("error = %v, want catalog.ErrNotFound", err)
	}
}
