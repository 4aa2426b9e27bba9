// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package models

import (
	"time"
)

// Narration length presets. The preset picks the target word count in the
// generation prompt; Medium fits a 60-90 second listen.
const (
	NarrationShort  = "short"
	NarrationMedium = "medium"
	NarrationLong   = "long"
)

// NarrationRequest asks for a spoken history narration of a landmark.
// Either Landmark or ImageData must be set: with ImageData the landmark is
// identified from the photo first, then narrated.
type NarrationRequest struct {
	Landmark  string   `json:"landmark" validate:"omitempty,max=200"`
	ImageData string   `json:"image_data,omitempty" validate:"omitempty,base64"`
	ImageMIME string   `json:"image_mime,omitempty" validate:"omitempty,oneof=image/jpeg image/png image/webp"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Language  string   `json:"language,omitempty" validate:"omitempty,langtag"`
	Length    string   `json:"length,omitempty" validate:"omitempty,oneof=short medium long"`
	Voice     string   `json:"voice,omitempty" validate:"omitempty,voicename"`
	WithAudio bool     `json:"with_audio"`
	RequestID string   `json:"request_id,omitempty"` // echoed in progress events
}

// LandmarkIdentification is the structured result of photo identification.
type LandmarkIdentification struct {
	Name       string  `json:"name"`
	City       string  `json:"city,omitempty"`
	Country    string  `json:"country,omitempty"`
	Confidence float64 `json:"confidence"`
}

// AudioInfo describes a synthesized narration clip. Peak and RMS come from
// the normalized float samples and drive the browser's level meter.
type AudioInfo struct {
	ID              string  `json:"id"`
	DurationSeconds float64 `json:"duration_seconds"`
	SampleRate      int     `json:"sample_rate"`
	Channels        int     `json:"channels"`
	SizeBytes       int     `json:"size_bytes"`
	Peak            float64 `json:"peak"`
	RMS             float64 `json:"rms"`
	Voice           string  `json:"voice"`
}

// Narration is a generated landmark history narration document.
type Narration struct {
	ID         string                  `json:"id"`
	Landmark   string                  `json:"landmark"`
	Title      string                  `json:"title"`
	Text       string                  `json:"text"`
	FunFact    string                  `json:"fun_fact,omitempty"`
	Era        string                  `json:"era,omitempty"`
	Tags       []string                `json:"tags,omitempty"`
	Language   string                  `json:"language"`
	Length     string                  `json:"length"`
	Model      string                  `json:"model"`
	Identified *LandmarkIdentification `json:"identified,omitempty"`
	Audio      *AudioInfo              `json:"audio,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

// Voice is one prebuilt TTS voice selectable by clients.
type Voice struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PostcardRequest asks for a generated souvenir image of a place.
type PostcardRequest struct {
	Place     string `json:"place" validate:"required,max=200"`
	Style     string `json:"style,omitempty" validate:"omitempty,oneof=vintage watercolor photo sketch"`
	RequestID string `json:"request_id,omitempty"` // echoed in progress events
}

// Postcard is a generated souvenir image document. Image bytes are stored
// alongside with a TTL; ExpiresAt mirrors the store-level expiry so clients
// know how long the URL stays valid.
type Postcard struct {
	ID        string    `json:"id"`
	Place     string    `json:"place"`
	Style     string    `json:"style"`
	MIME      string    `json:"mime"`
	SizeBytes int       `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
