// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package guide

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cicerone/internal/audio"
	"github.com/tomtom215/cicerone/internal/cache"
	"github.com/tomtom215/cicerone/internal/events"
	"github.com/tomtom215/cicerone/internal/gemini"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/metrics"
	"github.com/tomtom215/cicerone/internal/models"
)

// narrationKey is the canonical cache-key input for a narration request.
// Voice and audio choice are part of the key because a cached text-only
// narration cannot satisfy a with-audio request.
type narrationKey struct {
	Landmark  string `json:"landmark"`
	Language  string `json:"language"`
	Length    string `json:"length"`
	WithAudio bool   `json:"with_audio"`
	Voice     string `json:"voice"`
}

// Narrate runs the full narration pipeline: resolve the landmark (from the
// request or by identifying a photo), generate the narration text, optionally
// synthesize speech, persist the document and publish progress along the way.
// The boolean reports whether the result came from the cache.
func (s *Service) Narrate(ctx context.Context, req *models.NarrationRequest) (*models.Narration, bool, error) {
	op := events.OperationNarration
	s.publish(ctx, req.RequestID, op, events.StageReceived, "", 5)

	landmark := strings.TrimSpace(req.Landmark)
	var identified *models.LandmarkIdentification
	if landmark == "" {
		if req.ImageData == "" {
			return nil, false, ErrNoSubject
		}
		var err error
		identified, err = s.identify(ctx, req)
		if err != nil {
			s.fail(ctx, req.RequestID, op)
			return nil, false, err
		}
		landmark = identified.Name
	}

	length := req.Length
	if length == "" {
		length = models.NarrationMedium
	}
	voice := req.Voice
	if voice == "" {
		voice = s.gen.DefaultVoice()
	}

	key := cache.GenerateKey("narrate", narrationKey{
		Landmark:  normalizeName(landmark),
		Language:  req.Language,
		Length:    length,
		WithAudio: req.WithAudio,
		Voice:     voice,
	})
	if cached, ok := fromCache[*models.Narration](s, key); ok {
		s.publish(ctx, req.RequestID, op, events.StageDone, cached.Title, 100)
		return cached, true, nil
	}

	s.publish(ctx, req.RequestID, op, events.StageNarrating, landmark, 40)
	draft, err := s.gen.Narrate(ctx, gemini.NarrationParams{
		Landmark:  landmark,
		Language:  req.Language,
		Length:    length,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		s.fail(ctx, req.RequestID, op)
		return nil, false, err
	}
	s.publish(ctx, req.RequestID, op, events.StageNarrated, draft.Title, 60)

	n := &models.Narration{
		ID:         uuid.NewString(),
		Landmark:   landmark,
		Title:      draft.Title,
		Text:       draft.Text,
		FunFact:    draft.FunFact,
		Era:        draft.Era,
		Tags:       draft.Tags,
		Language:   req.Language,
		Length:     length,
		Model:      s.gen.TextModel(),
		Identified: identified,
		CreatedAt:  time.Now().UTC(),
	}

	if req.WithAudio {
		s.publish(ctx, req.RequestID, op, events.StageSynthesizing, "", 75)
		info, synthErr := s.synthesize(ctx, n.Text, voice)
		if synthErr != nil {
			s.fail(ctx, req.RequestID, op)
			return nil, false, synthErr
		}
		n.Audio = info
		s.publish(ctx, req.RequestID, op, events.StageAudioReady, info.ID, 90)
	}

	if err := s.store.SaveNarration(ctx, n); err != nil {
		s.fail(ctx, req.RequestID, op)
		return nil, false, err
	}
	s.toCache(key, n)

	s.publish(ctx, req.RequestID, op, events.StageDone, n.Title, 100)
	logging.Info().
		Str("narration_id", n.ID).
		Str("landmark", landmark).
		Bool("with_audio", req.WithAudio).
		Msg("narration generated")
	return n, false, nil
}

// identify resolves the landmark from the request photo. Identifications
// are cached by image digest so a retried upload skips the model call.
func (s *Service) identify(ctx context.Context, req *models.NarrationRequest) (*models.LandmarkIdentification, error) {
	img, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		return nil, fmt.Errorf("guide: decode image: %w", err)
	}

	s.publish(ctx, req.RequestID, events.OperationNarration, events.StageIdentifying, "", 15)

	digest := sha256.Sum256(img)
	key := cache.GenerateKey("identify", struct {
		SHA256 string `json:"sha256"`
	}{hex.EncodeToString(digest[:])})
	if cached, ok := fromCache[*models.LandmarkIdentification](s, key); ok {
		s.publish(ctx, req.RequestID, events.OperationNarration, events.StageIdentified, cached.Name, 25)
		return cached, nil
	}

	ident, err := s.gen.IdentifyLandmark(ctx, img, req.ImageMIME, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	s.toCache(key, ident)

	s.publish(ctx, req.RequestID, events.OperationNarration, events.StageIdentified, ident.Name, 25)
	return ident, nil
}

// synthesize turns narration text into a stored WAV clip and returns its
// metadata. The audio document gets its own ID so clips stay addressable
// independently of the narration.
func (s *Service) synthesize(ctx context.Context, text, voice string) (*models.AudioInfo, error) {
	pcm, err := s.gen.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, err
	}

	wav, err := audio.EncodeWAV(pcm, s.format)
	if err != nil {
		return nil, fmt.Errorf("guide: encode wav: %w", err)
	}
	peak, rms := audio.Analyze(audio.ToFloat32(pcm))
	seconds := audio.Duration(len(pcm), s.format)

	info := &models.AudioInfo{
		ID:              uuid.NewString(),
		DurationSeconds: seconds,
		SampleRate:      s.format.SampleRate,
		Channels:        s.format.Channels,
		SizeBytes:       len(wav),
		Peak:            peak,
		RMS:             rms,
		Voice:           voice,
	}
	if err := s.store.SaveAudio(ctx, info.ID, wav); err != nil {
		return nil, err
	}
	metrics.RecordTTSAudio(len(pcm), seconds)
	return info, nil
}

// normalizeName canonicalizes a place name for cache keys and nearby
// deduplication: lowercased with whitespace runs collapsed.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
