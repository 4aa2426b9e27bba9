// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"fmt"
	"strings"

	"github.com/tomtom215/cicerone/internal/models"
)

// Word targets per narration length preset. Medium reads aloud in roughly
// 60-90 seconds at a guide's pace.
const (
	wordsShort  = 120
	wordsMedium = 220
	wordsLong   = 380
)

func narrationWordTarget(length string) int {
	switch length {
	case models.NarrationShort:
		return wordsShort
	case models.NarrationLong:
		return wordsLong
	default:
		return wordsMedium
	}
}

// languageOrDefault normalizes an optional BCP-47 tag for prompt use.
func languageOrDefault(language string) string {
	if language == "" {
		return "en"
	}
	return language
}

func identifyPrompt(lat, lon *float64) string {
	var sb strings.Builder
	sb.WriteString("You are an expert on world landmarks, monuments and notable buildings. ")
	sb.WriteString("Identify the landmark shown in this photo. ")
	if lat != nil && lon != nil {
		fmt.Fprintf(&sb, "The photo was taken near latitude %.5f, longitude %.5f; use that to disambiguate. ", *lat, *lon)
	}
	sb.WriteString("Respond with the landmark's common name, its city and country, and your confidence from 0 to 1. ")
	sb.WriteString("If the photo shows no identifiable landmark, return an empty name and confidence 0.")
	return sb.String()
}

func narrationPrompt(p NarrationParams) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a knowledgeable, engaging tour guide. Write a spoken-style history narration about %q", p.Landmark)
	if p.Latitude != nil && p.Longitude != nil {
		fmt.Fprintf(&sb, " (near latitude %.5f, longitude %.5f)", *p.Latitude, *p.Longitude)
	}
	fmt.Fprintf(&sb, " of about %d words, in the language with BCP-47 tag %q.\n\n", narrationWordTarget(p.Length), languageOrDefault(p.Language))
	sb.WriteString("Cover its origin, one or two pivotal historical moments, and what a visitor standing there today should notice. ")
	sb.WriteString("Write flowing prose for the ear, no headings or bullet lists. ")
	sb.WriteString("Also provide a short evocative title, a single surprising fun fact, the historical era it is most associated with, and 3-5 topical tags.")
	return sb.String()
}

func itineraryPrompt(p ItineraryParams) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a local travel planner. Plan a %d-hour day trip in %s", p.DurationHours, p.City)
	if p.StartLatitude != nil && p.StartLongitude != nil {
		fmt.Fprintf(&sb, ", starting near latitude %.5f, longitude %.5f", *p.StartLatitude, *p.StartLongitude)
	}
	sb.WriteString(".\n\n")
	if len(p.Interests) > 0 {
		fmt.Fprintf(&sb, "The visitor is interested in: %s. ", strings.Join(p.Interests, ", "))
	}
	fmt.Fprintf(&sb, "Pace preference: %s. ", paceDescription(p.Pace))
	fmt.Fprintf(&sb, "Respond in the language with BCP-47 tag %q.\n\n", languageOrDefault(p.Language))
	sb.WriteString("Order the stops geographically so the route does not backtrack. ")
	sb.WriteString("For each stop give its exact name, category, a two-sentence description, precise latitude and longitude, ")
	sb.WriteString("realistic visit duration in minutes, and a short hint on how to reach it from the previous stop. ")
	sb.WriteString("Visit durations must fit the total trip length with time to move between stops. ")
	sb.WriteString("Also give the trip a title and a two-sentence summary.")
	return sb.String()
}

func paceDescription(pace string) string {
	switch pace {
	case models.PaceRelaxed:
		return "relaxed, few stops with generous time at each"
	case models.PacePacked:
		return "packed, as many highlights as realistically fit"
	default:
		return "moderate, a balanced mix of major sights and breaks"
	}
}

func nearbyPrompt(q NearbyQuery) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a local guide. List up to %d real, currently existing points of interest within %.1f km of latitude %.5f, longitude %.5f.\n\n",
		q.Limit, q.RadiusKM, q.Latitude, q.Longitude)
	if q.Category != "" {
		fmt.Fprintf(&sb, "Only include places in the category %q. ", q.Category)
	}
	sb.WriteString("For each place give its exact name, category, a one-sentence description, precise latitude and longitude, ")
	sb.WriteString("street address if known, a typical visitor rating from 0 to 5, and up to 3 tags. ")
	sb.WriteString("Only include places you are confident actually exist at those coordinates. Never invent places.")
	return sb.String()
}

// Style descriptors for postcard image generation, keyed by the request's
// style field. Keys mirror the validated oneof values.
var postcardStyles = map[string]string{
	"vintage":    "a vintage 1950s travel postcard lithograph with muted warm colors and bold serif lettering of the place name",
	"watercolor": "a loose watercolor painting with soft washes and white paper showing through",
	"photo":      "a golden-hour photograph with rich saturated colors, shot on film",
	"sketch":     "a detailed ink and pencil travel-journal sketch with light sepia shading",
}

func postcardPrompt(place, style string) string {
	descriptor, ok := postcardStyles[style]
	if !ok {
		descriptor = postcardStyles["vintage"]
	}
	return fmt.Sprintf("Generate a souvenir postcard image of %s rendered as %s. Landscape orientation, no watermark.", place, descriptor)
}
