// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package websocket

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/cicerone/internal/events"
	"github.com/tomtom215/cicerone/internal/logging"
)

// BusSubscriber bridges the internal progress bus to WebSocket
// broadcasts. It subscribes to the guide topic and forwards every event
// to the hub, which applies per-client filtering.
type BusSubscriber struct {
	hub *Hub
	bus *events.Bus
}

// NewBusSubscriber creates a new bus to WebSocket bridge.
func NewBusSubscriber(hub *Hub, bus *events.Bus) *BusSubscriber {
	return &BusSubscriber{hub: hub, bus: bus}
}

// Serve consumes progress events until ctx is canceled. Designed for
// suture supervision; returns ctx.Err() on shutdown.
func (s *BusSubscriber) Serve(ctx context.Context) error {
	msgs, err := s.bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to progress events: %w", err)
	}

	logging.Info().Msg("event bus to WebSocket bridge started")

	for {
		select {
		case <-ctx.Done():
			logging.Info().
				Str("component", "websocket-bridge").
				Msg("event bus to WebSocket bridge stopped")
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			s.handleMessage(msg)
		}
	}
}

// handleMessage decodes and broadcasts one bus message. Always acks;
// progress events are fire-and-forget and never redelivered.
func (s *BusSubscriber) handleMessage(msg *message.Message) {
	defer msg.Ack()

	ev, err := events.DeserializeProgress(msg.Payload)
	if err != nil {
		logging.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("failed to unmarshal progress event")
		return
	}

	s.hub.BroadcastProgress(ev)
}
