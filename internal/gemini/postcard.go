// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeneratePostcard generates a souvenir image of a place in the requested
// style and returns the image bytes with their MIME type (typically
// image/png). The image model requires both TEXT and IMAGE response
// modalities; any interleaved text parts are discarded.
func (c *Client) GeneratePostcard(ctx context.Context, place, style string) ([]byte, string, error) {
	if place == "" {
		return nil, "", fmt.Errorf("gemini: postcard: empty place")
	}

	gc := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	return c.generateData(ctx, opPostcard, c.cfg.ImageModel, genai.Text(postcardPrompt(place, style)), gc, "image/")
}
