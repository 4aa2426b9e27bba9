// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/tomtom215/cicerone/internal/models"
)

// Synthesize converts narration text to speech with the given prebuilt
// voice, falling back to the configured default when voice is empty. The
// API returns raw 16-bit little-endian PCM at 24 kHz mono; WAV framing is
// the audio package's job.
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("gemini: synthesize: empty text")
	}
	if voice == "" {
		voice = c.cfg.Voice
	}
	if !models.IsKnownVoice(voice) {
		return nil, fmt.Errorf("gemini: synthesize: unknown voice %q", voice)
	}

	gc := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	pcm, _, err := c.generateData(ctx, opSpeech, c.cfg.TTSModel, genai.Text(text), gc, "audio/")
	if err != nil {
		return nil, err
	}
	return pcm, nil
}
