// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

func TestNewProgressEvent(t *testing.T) {
	t.Parallel()

	ev := NewProgressEvent("req-1", OperationNarration, StageIdentifying)
	if ev.EventID == "" {
		t.Error("EventID not minted")
	}
	if ev.RequestID != "req-1" {
		t.Errorf("RequestID = %s, want req-1", ev.RequestID)
	}
	if ev.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestProgressEvent_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		event   *ProgressEvent
		wantErr bool
	}{
		{
			name:  "valid",
			event: NewProgressEvent("req-1", OperationItinerary, StagePlanning),
		},
		{
			name:    "missing event ID",
			event:   &ProgressEvent{Operation: OperationNearby, Stage: StageSearching},
			wantErr: true,
		},
		{
			name:    "missing operation",
			event:   &ProgressEvent{EventID: "e1", Stage: StageSearching},
			wantErr: true,
		},
		{
			name:    "missing stage",
			event:   &ProgressEvent{EventID: "e1", Operation: OperationNearby},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProgressEvent_SerializeRoundTrip(t *testing.T) {
	t.Parallel()

	ev := NewProgressEvent("req-42", OperationNarration, StageNarrated)
	ev.Message = "Narration drafted"
	ev.Percent = 60

	data, err := ev.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	got, err := DeserializeProgress(data)
	if err != nil {
		t.Fatalf("DeserializeProgress() error = %v", err)
	}
	if got.EventID != ev.EventID {
		t.Errorf("EventID = %s, want %s", got.EventID, ev.EventID)
	}
	if got.Stage != StageNarrated {
		t.Errorf("Stage = %s, want %s", got.Stage, StageNarrated)
	}
	if got.Percent != 60 {
		t.Errorf("Percent = %d, want 60", got.Percent)
	}
}

func TestProgressEvent_SerializeInvalid(t *testing.T) {
	t.Parallel()

	ev := &ProgressEvent{Stage: StageDone}
	if _, err := ev.Serialize(); err == nil {
		t.Error("Serialize() of invalid event should fail")
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	ev := NewProgressEvent("req-7", OperationItinerary, StagePlanning)
	ev.Percent = 30
	if err := bus.PublishProgress(ctx, ev); err != nil {
		t.Fatalf("PublishProgress() error = %v", err)
	}

	select {
	case msg := <-msgs:
		got, err := DeserializeProgress(msg.Payload)
		if err != nil {
			t.Fatalf("DeserializeProgress() error = %v", err)
		}
		if got.RequestID != "req-7" {
			t.Errorf("RequestID = %s, want req-7", got.RequestID)
		}
		if msg.Metadata.Get("stage") != StagePlanning {
			t.Errorf("stage metadata = %s, want %s", msg.Metadata.Get("stage"), StagePlanning)
		}
		if msg.Metadata.Get("request_id") != "req-7" {
			t.Errorf("request_id metadata = %s, want req-7", msg.Metadata.Get("request_id"))
		}
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for progress event")
	}
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	second, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := bus.PublishProgress(ctx, NewProgressEvent("req-1", OperationNearby, StageSearching)); err != nil {
		t.Fatalf("PublishProgress() error = %v", err)
	}

	for _, sub := range []struct {
		name string
		ch   <-chan *message.Message
	}{
		{"first", first},
		{"second", second},
	} {
		select {
		case msg := <-sub.ch:
			got, err := DeserializeProgress(msg.Payload)
			if err != nil {
				t.Fatalf("%s: DeserializeProgress() error = %v", sub.name, err)
			}
			if got.RequestID != "req-1" {
				t.Errorf("%s: RequestID = %s, want req-1", sub.name, got.RequestID)
			}
			msg.Ack()
		case <-time.After(2 * time.Second):
			t.Fatalf("%s: timed out waiting for progress event", sub.name)
		}
	}
}

func TestBus_CloseIsIdempotent(t *testing.T) {
	bus := NewBus()

	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestBus_ClosedRejectsPublish(t *testing.T) {
	bus := NewBus()
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	ctx := context.Background()
	if err := bus.PublishProgress(ctx, NewProgressEvent("req-1", OperationNarration, StageDone)); err == nil {
		t.Error("PublishProgress() on closed bus should fail")
	}
	if _, err := bus.Subscribe(ctx); err == nil {
		t.Error("Subscribe() on closed bus should fail")
	}
}
