// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"google.golang.org/genai"
)

// Response schemas for structured-output calls. Constraining the model with
// a schema is far more reliable than prompt-only JSON instructions, but the
// parser still tolerates fenced or prose-wrapped output.

func identificationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":       {Type: genai.TypeString},
			"city":       {Type: genai.TypeString},
			"country":    {Type: genai.TypeString},
			"confidence": {Type: genai.TypeNumber},
		},
		Required: []string{"name", "confidence"},
	}
}

func narrationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":     {Type: genai.TypeString},
			"narration": {Type: genai.TypeString},
			"fun_fact":  {Type: genai.TypeString},
			"era":       {Type: genai.TypeString},
			"tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"title", "narration"},
	}
}

func itinerarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":   {Type: genai.TypeString},
			"summary": {Type: genai.TypeString},
			"stops": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":          {Type: genai.TypeString},
						"category":      {Type: genai.TypeString},
						"description":   {Type: genai.TypeString},
						"latitude":      {Type: genai.TypeNumber},
						"longitude":     {Type: genai.TypeNumber},
						"visit_minutes": {Type: genai.TypeInteger},
						"travel_hint":   {Type: genai.TypeString},
					},
					Required: []string{"name", "category", "description", "latitude", "longitude", "visit_minutes"},
				},
			},
		},
		Required: []string{"title", "summary", "stops"},
	}
}

func nearbySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":        {Type: genai.TypeString},
				"category":    {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
				"latitude":    {Type: genai.TypeNumber},
				"longitude":   {Type: genai.TypeNumber},
				"address":     {Type: genai.TypeString},
				"rating":      {Type: genai.TypeNumber},
				"tags": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"name", "category", "description", "latitude", "longitude"},
		},
	}
}
