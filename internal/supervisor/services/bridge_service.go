// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package services

import (
	"context"
)

// ContextServer matches components whose Serve already follows the
// suture contract. Satisfied by *websocket.BusSubscriber.
type ContextServer interface {
	Serve(ctx context.Context) error
}

// EventBridgeService wraps the progress-bus-to-WebSocket subscriber as a
// supervised service. If the bridge dies, a restart re-subscribes to the
// progress topic; events published in the gap are lost, which is fine
// for ephemeral progress updates.
type EventBridgeService struct {
	bridge ContextServer
	name   string
}

// NewEventBridgeService creates the wrapper.
func NewEventBridgeService(bridge ContextServer) *EventBridgeService {
	return &EventBridgeService{bridge: bridge, name: "event-bridge"}
}

// Serve consumes bus messages until the context is canceled.
func (s *EventBridgeService) Serve(ctx context.Context) error {
	return s.bridge.Serve(ctx)
}

// String implements fmt.Stringer for supervisor logs.
func (s *EventBridgeService) String() string {
	return s.name
}
