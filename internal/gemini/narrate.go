// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"context"

	"google.golang.org/genai"
)

// NarrationParams are the inputs for narration text generation.
type NarrationParams struct {
	Landmark  string
	Language  string
	Length    string
	Latitude  *float64
	Longitude *float64
}

// NarrationDraft is the model's raw narration output before the service
// attaches identity, audio and persistence metadata.
type NarrationDraft struct {
	Title   string   `json:"title"`
	Text    string   `json:"narration"`
	FunFact string   `json:"fun_fact"`
	Era     string   `json:"era"`
	Tags    []string `json:"tags"`
}

// Narrate generates a tour-guide history narration for a landmark.
func (c *Client) Narrate(ctx context.Context, p NarrationParams) (*NarrationDraft, error) {
	gc := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   narrationSchema(),
	}
	if c.cfg.Temperature > 0 {
		gc.Temperature = genai.Ptr(c.cfg.Temperature)
	}
	if c.cfg.MaxOutputTokens > 0 {
		gc.MaxOutputTokens = c.cfg.MaxOutputTokens
	}

	var draft NarrationDraft
	if err := c.generateJSON(ctx, opNarrate, c.cfg.TextModel, genai.Text(narrationPrompt(p)), gc, &draft); err != nil {
		return nil, err
	}
	if draft.Text == "" {
		return nil, ErrEmptyResponse
	}
	return &draft, nil
}
