// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package events carries generation progress over an in-process
// watermill bus. Guide operations publish stage events as they work
// through a pipeline; the WebSocket hub subscribes and fans them out to
// browsers, filtered by request ID.
package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// TopicGuide is the bus topic for all guide progress events.
const TopicGuide = "guide.events"

// Operation names progress events by the request that produced them.
const (
	OperationNarration = "narration"
	OperationItinerary = "itinerary"
	OperationNearby    = "nearby"
	OperationPostcard  = "postcard"
)

// Pipeline stages, in the order the browser shows them. Not every
// operation passes through every stage.
const (
	StageReceived     = "received"
	StageIdentifying  = "identifying"
	StageIdentified   = "identified"
	StageNarrating    = "narrating"
	StageNarrated     = "narrated"
	StageSynthesizing = "synthesizing"
	StageAudioReady   = "audio_ready"
	StagePlanning     = "planning"
	StageSearching    = "searching"
	StageRendering    = "rendering"
	StageDone         = "done"
	StageFailed       = "failed"
)

// ProgressEvent is one step of a generation pipeline. RequestID ties the
// event to the originating API request so clients can filter; Percent is
// a rough completion estimate for progress bars.
type ProgressEvent struct {
	EventID   string    `json:"event_id"`
	RequestID string    `json:"request_id"`
	Operation string    `json:"operation"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message,omitempty"`
	Percent   int       `json:"percent"`
	Timestamp time.Time `json:"timestamp"`
}

// NewProgressEvent creates an event with a unique ID and UTC timestamp.
// Message and Percent are left for the caller to fill in.
func NewProgressEvent(requestID, operation, stage string) *ProgressEvent {
	return &ProgressEvent{
		EventID:   uuid.New().String(),
		RequestID: requestID,
		Operation: operation,
		Stage:     stage,
		Timestamp: time.Now().UTC(),
	}
}

// Validate checks required fields.
func (e *ProgressEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("event_id: required")
	}
	if e.Operation == "" {
		return fmt.Errorf("operation: required")
	}
	if e.Stage == "" {
		return fmt.Errorf("stage: required")
	}
	return nil
}

// Serialize converts the event to JSON for the bus.
func (e *ProgressEvent) Serialize() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// DeserializeProgress converts bus payload bytes back to an event.
func DeserializeProgress(data []byte) (*ProgressEvent, error) {
	var e ProgressEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return &e, nil
}
