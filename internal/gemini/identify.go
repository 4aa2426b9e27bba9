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

// identifyConfidenceFloor is the minimum model confidence to accept a
// photo identification. Below it the photo is treated as not showing a
// recognizable landmark.
const identifyConfidenceFloor = 0.4

// IdentifyLandmark identifies the landmark shown in a photo using a
// multimodal text+image call with a structured response. Optional
// coordinates of where the photo was taken help disambiguate lookalikes.
// Returns ErrUnknownLandmark when the model finds nothing identifiable.
func (c *Client) IdentifyLandmark(ctx context.Context, image []byte, mimeType string, lat, lon *float64) (*models.LandmarkIdentification, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("gemini: identify: empty image")
	}

	parts := []*genai.Part{
		genai.NewPartFromText(identifyPrompt(lat, lon)),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	gc := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1), // identification wants precision, not creativity
		ResponseMIMEType: "application/json",
		ResponseSchema:   identificationSchema(),
	}

	var ident models.LandmarkIdentification
	if err := c.generateJSON(ctx, opIdentify, c.cfg.TextModel, contents, gc, &ident); err != nil {
		return nil, err
	}

	if ident.Name == "" || ident.Confidence < identifyConfidenceFloor {
		return nil, fmt.Errorf("%w (confidence %.2f)", ErrUnknownLandmark, ident.Confidence)
	}
	return &ident, nil
}
