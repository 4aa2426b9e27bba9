// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package guide

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/cicerone/internal/events"
	"github.com/tomtom215/cicerone/internal/gemini"
	"github.com/tomtom215/cicerone/internal/models"
)

func TestNarrate_ByLandmarkName(t *testing.T) {
	gen := &fakeGenerator{}
	svc, store := newTestService(t, gen)

	n, cached, err := svc.Narrate(context.Background(), &models.NarrationRequest{
		Landmark: "Pantheon",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if cached {
		t.Error("first call reported cached")
	}
	if n.ID == "" {
		t.Error("narration ID not set")
	}
	if n.Landmark != "Pantheon" {
		t.Errorf("Landmark = %s, want Pantheon", n.Landmark)
	}
	if n.Title != "The Temple of All Gods" {
		t.Errorf("Title = %s", n.Title)
	}
	if n.Length != models.NarrationMedium {
		t.Errorf("Length = %s, want default %s", n.Length, models.NarrationMedium)
	}
	if n.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %s", n.Model)
	}
	if n.Audio != nil {
		t.Error("audio present without with_audio")
	}
	if n.Identified != nil {
		t.Error("identification present for a named landmark")
	}

	stored, err := store.GetNarration(context.Background(), n.ID)
	if err != nil {
		t.Fatalf("GetNarration() error = %v", err)
	}
	if stored.Text != n.Text {
		t.Error("persisted narration text differs")
	}
}

func TestNarrate_CacheHit(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen)

	req := &models.NarrationRequest{Landmark: "Pantheon"}
	first, cached, err := svc.Narrate(context.Background(), req)
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if cached {
		t.Error("first call reported cached")
	}

	second, cached, err := svc.Narrate(context.Background(), req)
	if err != nil {
		t.Fatalf("Narrate() second call error = %v", err)
	}
	if !cached {
		t.Error("second call not served from cache")
	}
	if second.ID != first.ID {
		t.Errorf("cached narration ID = %s, want %s", second.ID, first.ID)
	}
	if gen.narrateCalls != 1 {
		t.Errorf("narrate calls = %d, want 1", gen.narrateCalls)
	}
}

func TestNarrate_CacheKeyedOnParams(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen)

	ctx := context.Background()
	if _, _, err := svc.Narrate(ctx, &models.NarrationRequest{Landmark: "Pantheon", Length: models.NarrationShort}); err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if _, _, err := svc.Narrate(ctx, &models.NarrationRequest{Landmark: "Pantheon", Length: models.NarrationLong}); err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if gen.narrateCalls != 2 {
		t.Errorf("narrate calls = %d, want 2 for distinct lengths", gen.narrateCalls)
	}

	// Same landmark with different spacing and case shares one key.
	if _, _, err := svc.Narrate(ctx, &models.NarrationRequest{Landmark: "  PANTHEON ", Length: models.NarrationShort}); err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if gen.narrateCalls != 2 {
		t.Errorf("narrate calls = %d, want 2 after renamed duplicate", gen.narrateCalls)
	}
}

func TestNarrate_WithAudio(t *testing.T) {
	gen := &fakeGenerator{}
	svc, store := newTestService(t, gen)

	n, _, err := svc.Narrate(context.Background(), &models.NarrationRequest{
		Landmark:  "Pantheon",
		WithAudio: true,
	})
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if n.Audio == nil {
		t.Fatal("audio info missing")
	}
	if n.Audio.Voice != "Kore" {
		t.Errorf("Voice = %s, want default Kore", n.Audio.Voice)
	}
	if n.Audio.SampleRate != 24000 || n.Audio.Channels != 1 {
		t.Errorf("format = %d Hz %d ch, want 24000 Hz mono", n.Audio.SampleRate, n.Audio.Channels)
	}
	if n.Audio.DurationSeconds <= 0 {
		t.Errorf("DurationSeconds = %f, want > 0", n.Audio.DurationSeconds)
	}
	if n.Audio.Peak <= 0 || n.Audio.RMS <= 0 {
		t.Errorf("levels peak=%f rms=%f, want > 0", n.Audio.Peak, n.Audio.RMS)
	}

	wav, err := store.GetAudio(context.Background(), n.Audio.ID)
	if err != nil {
		t.Fatalf("GetAudio() error = %v", err)
	}
	if len(wav) != n.Audio.SizeBytes {
		t.Errorf("stored wav size = %d, want %d", len(wav), n.Audio.SizeBytes)
	}
	if !bytes.HasPrefix(wav, []byte("RIFF")) {
		t.Error("stored clip is not a RIFF container")
	}
}

func TestNarrate_VoiceSelection(t *testing.T) {
	gen := &fakeGenerator{}
	var gotVoice string
	gen.synthesizeFn = func(_ context.Context, _, voice string) ([]byte, error) {
		gotVoice = voice
		return makePCM(1200), nil
	}
	svc, _ := newTestService(t, gen)

	n, _, err := svc.Narrate(context.Background(), &models.NarrationRequest{
		Landmark:  "Pantheon",
		WithAudio: true,
		Voice:     "Puck",
	})
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if gotVoice != "Puck" {
		t.Errorf("synthesized with voice %s, want Puck", gotVoice)
	}
	if n.Audio.Voice != "Puck" {
		t.Errorf("Audio.Voice = %s, want Puck", n.Audio.Voice)
	}
}

func TestNarrate_FromPhoto(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen)

	n, _, err := svc.Narrate(context.Background(), &models.NarrationRequest{
		ImageData: base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")),
		ImageMIME: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if gen.identifyCalls != 1 {
		t.Errorf("identify calls = %d, want 1", gen.identifyCalls)
	}
	if n.Landmark != "Pantheon" {
		t.Errorf("Landmark = %s, want identified Pantheon", n.Landmark)
	}
	if n.Identified == nil || n.Identified.Confidence != 0.93 {
		t.Errorf("Identified = %+v, want confidence 0.93", n.Identified)
	}
}

func TestNarrate_IdentificationCachedByImageDigest(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen)

	img := base64.StdEncoding.EncodeToString([]byte("same-photo"))
	ctx := context.Background()

	// Different lengths force two narration generations from one photo.
	if _, _, err := svc.Narrate(ctx, &models.NarrationRequest{ImageData: img, ImageMIME: "image/png", Length: models.NarrationShort}); err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if _, _, err := svc.Narrate(ctx, &models.NarrationRequest{ImageData: img, ImageMIME: "image/png", Length: models.NarrationLong}); err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}

	if gen.identifyCalls != 1 {
		t.Errorf("identify calls = %d, want 1 for identical photo", gen.identifyCalls)
	}
	if gen.narrateCalls != 2 {
		t.Errorf("narrate calls = %d, want 2", gen.narrateCalls)
	}
}

func TestNarrate_NoSubject(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen)

	_, _, err := svc.Narrate(context.Background(), &models.NarrationRequest{})
	if !errors.Is(err, ErrNoSubject) {
		t.Errorf("error = %v, want ErrNoSubject", err)
	}
}

func TestNarrate_InvalidImageData(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen)

	_, _, err := svc.Narrate(context.Background(), &models.NarrationRequest{
		ImageData: "not base64 !!!",
	})
	if err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if gen.identifyCalls != 0 {
		t.Error("identify called with undecodable image")
	}
}

func TestNarrate_UnknownLandmarkPhoto(t *testing.T) {
	gen := &fakeGenerator{}
	gen.identifyFn = func(context.Context, []byte, string, *float64, *float64) (*models.LandmarkIdentification, error) {
		return nil, gemini.ErrUnknownLandmark
	}
	svc, _ := newTestService(t, gen)

	_, _, err := svc.Narrate(context.Background(), &models.NarrationRequest{
		ImageData: base64.StdEncoding.EncodeToString([]byte("a-lamppost")),
		ImageMIME: "image/jpeg",
	})
	if !errors.Is(err, gemini.ErrUnknownLandmark) {
		t.Errorf("error = %v, want ErrUnknownLandmark", err)
	}
}

func TestNarrate_GenerationError(t *testing.T) {
	gen := &fakeGenerator{}
	gen.narrateFn = func(context.Context, gemini.NarrationParams) (*gemini.NarrationDraft, error) {
		return nil, gemini.ErrEmptyResponse
	}
	svc, store := newTestService(t, gen)

	n, _, err := svc.Narrate(context.Background(), &models.NarrationRequest{Landmark: "Pantheon"})
	if !errors.Is(err, gemini.ErrEmptyResponse) {
		t.Errorf("error = %v, want ErrEmptyResponse", err)
	}
	if n != nil {
		t.Error("narration returned alongside error")
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st.Narrations != 0 {
		t.Errorf("persisted narrations = %d, want 0 after failure", st.Narrations)
	}
}

func TestNarrate_SynthesisErrorFailsRequest(t *testing.T) {
	gen := &fakeGenerator{}
	gen.synthesizeFn = func(context.Context, string, string) ([]byte, error) {
		return nil, gemini.ErrUnavailable
	}
	svc, store := newTestService(t, gen)

	_, _, err := svc.Narrate(context.Background(), &models.NarrationRequest{
		Landmark:  "Pantheon",
		WithAudio: true,
	})
	if !errors.Is(err, gemini.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st.Narrations != 0 || st.AudioClips != 0 {
		t.Errorf("persisted narrations=%d audio=%d, want none after TTS failure", st.Narrations, st.AudioClips)
	}
}

func TestNarrate_PublishesProgress(t *testing.T) {
	gen := &fakeGenerator{}
	svc, progress := newEventedService(t, gen)

	req := &models.NarrationRequest{Landmark: "Pantheon", RequestID: "req-42"}
	if _, _, err := svc.Narrate(context.Background(), req); err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}

	want := []string{
		events.StageReceived,
		events.StageNarrating,
		events.StageNarrated,
		events.StageDone,
	}
	for _, stage := range want {
		select {
		case ev := <-progress:
			if ev.Stage != stage {
				t.Errorf("stage = %s, want %s", ev.Stage, stage)
			}
			if ev.RequestID != "req-42" {
				t.Errorf("RequestID = %s, want req-42", ev.RequestID)
			}
			if ev.Operation != events.OperationNarration {
				t.Errorf("Operation = %s, want %s", ev.Operation, events.OperationNarration)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("no progress event for stage %s", stage)
		}
	}
}

func TestNarrate_PublishesFailedStage(t *testing.T) {
	gen := &fakeGenerator{}
	gen.narrateFn = func(context.Context, gemini.NarrationParams) (*gemini.NarrationDraft, error) {
		return nil, gemini.ErrEmptyResponse
	}
	svc, progress := newEventedService(t, gen)

	req := &models.NarrationRequest{Landmark: "Pantheon", RequestID: "req-43"}
	if _, _, err := svc.Narrate(context.Background(), req); err == nil {
		t.Fatal("expected generation error")
	}

	var last *events.ProgressEvent
	for i := 0; i < 3; i++ {
		select {
		case ev := <-progress:
			last = ev
		case <-time.After(2 * time.Second):
			t.Fatal("missing progress events")
		}
	}
	if last.Stage != events.StageFailed {
		t.Errorf("terminal stage = %s, want %s", last.Stage, events.StageFailed)
	}
	if last.Percent != 100 {
		t.Errorf("terminal percent = %d, want 100", last.Percent)
	}
}
