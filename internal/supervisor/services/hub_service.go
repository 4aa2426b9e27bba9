// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package services

import (
	"context"
)

// ContextHub matches the progress hub's RunWithContext method.
// Satisfied by *websocket.Hub.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// HubService wraps the WebSocket progress hub as a supervised service.
// RunWithContext already follows the suture Serve contract, so the
// wrapper only adds the service name.
type HubService struct {
	hub  ContextHub
	name string
}

// NewHubService creates the wrapper.
func NewHubService(hub ContextHub) *HubService {
	return &HubService{hub: hub, name: "websocket-hub"}
}

// Serve runs the hub loop until the context is canceled. On shutdown the
// hub closes every connected client before returning.
func (s *HubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String implements fmt.Stringer for supervisor logs.
func (s *HubService) String() string {
	return s.name
}
