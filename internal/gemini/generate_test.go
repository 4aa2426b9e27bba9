// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/tomtom215/cicerone/internal/models"
)

// TestStripCodeFences tests markdown fence removal from model output.
func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with whitespace", "  ```json\n  {\"a\":1}\n```  ", `{"a":1}`},
		{"unfenced prose", "no fences here", "no fences here"},
		{"empty", "", ""},
		{"array fence", "```json\n[1,2]\n```", "[1,2]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := stripCodeFences(tt.input); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestTrimToJSON tests prose trimming around a JSON body.
func TestTrimToJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"leading prose", `Here is the result: {"a":1}`, `{"a":1}`},
		{"trailing prose", `{"a":1} Hope that helps!`, `{"a":1}`},
		{"both sides", `Sure! [1,2,3] Let me know.`, `[1,2,3]`},
		{"nested braces", `note {"a":{"b":2}} end`, `{"a":{"b":2}}`},
		{"no json", "just words", "just words"},
		{"unclosed bracket", "start { no close", "start { no close"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := trimToJSON(tt.input); got != tt.want {
				t.Errorf("trimToJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestCollectText tests text extraction from generation responses.
func TestCollectText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{
			"nil content",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			"",
		},
		{
			"single part",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "  hello  "}}},
			}}},
			"hello",
		},
		{
			"multiple parts concatenated",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "hello "}, {Text: "world"}}},
			}}},
			"hello world",
		},
		{
			"nil part skipped",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{nil, {Text: "ok"}}},
			}}},
			"ok",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := collectText(tt.resp); got != tt.want {
				t.Errorf("collectText() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestCollectInlineData tests blob extraction with MIME prefix filtering.
func TestCollectInlineData(t *testing.T) {
	t.Parallel()

	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{
			{Text: "Here is your audio."},
			{InlineData: &genai.Blob{MIMEType: "audio/L16;codec=pcm;rate=24000", Data: pcm}},
		}},
	}}}

	data, mime := collectInlineData(resp, "audio/")
	if string(data) != string(pcm) {
		t.Errorf("collectInlineData() data = %v, want %v", data, pcm)
	}
	if !strings.HasPrefix(mime, "audio/") {
		t.Errorf("collectInlineData() mime = %q, want audio/* prefix", mime)
	}

	if data, _ := collectInlineData(resp, "image/"); data != nil {
		t.Errorf("collectInlineData() with image prefix = %v, want nil", data)
	}
	if data, _ := collectInlineData(nil, "audio/"); data != nil {
		t.Errorf("collectInlineData(nil) = %v, want nil", data)
	}
}

// TestNarrationWordTarget tests length preset mapping.
func TestNarrationWordTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		length string
		want   int
	}{
		{models.NarrationShort, wordsShort},
		{models.NarrationMedium, wordsMedium},
		{models.NarrationLong, wordsLong},
		{"", wordsMedium},
		{"bogus", wordsMedium},
	}

	for _, tt := range tests {
		if got := narrationWordTarget(tt.length); got != tt.want {
			t.Errorf("narrationWordTarget(%q) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

// TestPrompts exercises the prompt builders for parameter inclusion.
func TestPrompts(t *testing.T) {
	t.Parallel()

	lat, lon := 41.89021, 12.49223

	t.Run("identify includes coordinates", func(t *testing.T) {
		t.Parallel()
		p := identifyPrompt(&lat, &lon)
		if !strings.Contains(p, "41.89021") || !strings.Contains(p, "12.49223") {
			t.Errorf("identifyPrompt() missing coordinates: %q", p)
		}
		if identifyPrompt(nil, nil) == p {
			t.Error("identifyPrompt() without coordinates should differ")
		}
	})

	t.Run("narration includes landmark and language", func(t *testing.T) {
		t.Parallel()
		p := narrationPrompt(NarrationParams{Landmark: "Colosseum", Language: "it", Length: models.NarrationShort})
		if !strings.Contains(p, "Colosseum") {
			t.Errorf("narrationPrompt() missing landmark: %q", p)
		}
		if !strings.Contains(p, `"it"`) {
			t.Errorf("narrationPrompt() missing language tag: %q", p)
		}
		if !strings.Contains(p, "120 words") {
			t.Errorf("narrationPrompt() missing word target: %q", p)
		}
	})

	t.Run("itinerary includes city, pace and interests", func(t *testing.T) {
		t.Parallel()
		p := itineraryPrompt(ItineraryParams{
			City:          "Rome",
			DurationHours: 8,
			Interests:     []string{"history", "food"},
			Pace:          models.PaceRelaxed,
		})
		if !strings.Contains(p, "8-hour day trip in Rome") {
			t.Errorf("itineraryPrompt() missing city/duration: %q", p)
		}
		if !strings.Contains(p, "history, food") {
			t.Errorf("itineraryPrompt() missing interests: %q", p)
		}
		if !strings.Contains(p, "relaxed") {
			t.Errorf("itineraryPrompt() missing pace: %q", p)
		}
	})

	t.Run("nearby includes radius and category", func(t *testing.T) {
		t.Parallel()
		p := nearbyPrompt(NearbyQuery{Latitude: lat, Longitude: lon, RadiusKM: 2.5, Category: "museum", Limit: 10})
		if !strings.Contains(p, "2.5 km") {
			t.Errorf("nearbyPrompt() missing radius: %q", p)
		}
		if !strings.Contains(p, `"museum"`) {
			t.Errorf("nearbyPrompt() missing category: %q", p)
		}
	})

	t.Run("postcard falls back to vintage", func(t *testing.T) {
		t.Parallel()
		known := postcardPrompt("Eiffel Tower", "watercolor")
		if !strings.Contains(known, "watercolor") {
			t.Errorf("postcardPrompt() missing style: %q", known)
		}
		fallback := postcardPrompt("Eiffel Tower", "cubist")
		if !strings.Contains(fallback, "1950s") {
			t.Errorf("postcardPrompt() fallback = %q, want vintage descriptor", fallback)
		}
	})
}

// TestLanguageOrDefault tests BCP-47 tag defaulting.
func TestLanguageOrDefault(t *testing.T) {
	t.Parallel()

	if got := languageOrDefault(""); got != "en" {
		t.Errorf("languageOrDefault(\"\") = %q, want en", got)
	}
	if got := languageOrDefault("pt-BR"); got != "pt-BR" {
		t.Errorf("languageOrDefault(pt-BR) = %q, want pt-BR", got)
	}
}
