// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/cicerone/internal/events"
)

func TestBusSubscriber_DeliversEventsToClients(t *testing.T) {
	hub := setupHub(t)

	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })

	sub := NewBusSubscriber(hub, bus)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sub.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	time.Sleep(20 * time.Millisecond)

	client := createTestClient(hub)
	registerClient(hub, client)

	ev := events.NewProgressEvent("req-77", events.OperationItinerary, events.StagePlanning)
	ev.Percent = 25
	if err := bus.PublishProgress(context.Background(), ev); err != nil {
		t.Fatalf("PublishProgress() error = %v", err)
	}

	select {
	case msg := <-client.send:
		if msg.Type != MessageTypeProgress {
			t.Errorf("message type = %s, want %s", msg.Type, MessageTypeProgress)
		}
		got, ok := msg.Data.(*events.ProgressEvent)
		if !ok {
			t.Fatalf("message data type = %T, want *events.ProgressEvent", msg.Data)
		}
		if got.RequestID != "req-77" {
			t.Errorf("RequestID = %s, want req-77", got.RequestID)
		}
		if got.Stage != events.StagePlanning {
			t.Errorf("Stage = %s, want %s", got.Stage, events.StagePlanning)
		}
		if got.Percent != 25 {
			t.Errorf("Percent = %d, want 25", got.Percent)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client did not receive event published to the bus")
	}
}

func TestBusSubscriber_StopsOnContextCancel(t *testing.T) {
	hub := setupHub(t)

	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })

	sub := NewBusSubscriber(hub, bus)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- sub.Serve(ctx)
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop after context cancel")
	}
}
