// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"google.golang.org/genai"

	"github.com/tomtom215/cicerone/internal/metrics"
)

// generateText runs a text generation call through the executor and returns
// the concatenated text parts of the first candidate.
func (c *Client) generateText(ctx context.Context, op, model string, contents []*genai.Content, gc *genai.GenerateContentConfig) (string, error) {
	start := time.Now()
	result, err := c.exec.do(ctx, op, func(ctx context.Context) (interface{}, error) {
		resp, err := c.api.Models.GenerateContent(ctx, model, contents, gc)
		if err != nil {
			return nil, err
		}
		recordUsage(op, model, resp)
		text := collectText(resp)
		if text == "" {
			return nil, ErrEmptyResponse
		}
		return text, nil
	})
	metrics.RecordGeneration(op, model, time.Since(start), err)
	return castResult[string](result, err)
}

// generateJSON runs a structured-output call and unmarshals the response
// into out. Markdown fences and trailing prose around the JSON body are
// tolerated and stripped before unmarshaling.
func (c *Client) generateJSON(ctx context.Context, op, model string, contents []*genai.Content, gc *genai.GenerateContentConfig, out interface{}) error {
	raw, err := c.generateText(ctx, op, model, contents, gc)
	if err != nil {
		return err
	}
	cleaned := trimToJSON(stripCodeFences(raw))
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidOutput, op, err)
	}
	return nil
}

// generateData runs a generation call that produces binary output (audio or
// image) and returns the first inline blob whose MIME type matches the
// prefix, along with its full MIME type.
func (c *Client) generateData(ctx context.Context, op, model string, contents []*genai.Content, gc *genai.GenerateContentConfig, mimePrefix string) ([]byte, string, error) {
	type blob struct {
		data []byte
		mime string
	}

	start := time.Now()
	result, err := c.exec.do(ctx, op, func(ctx context.Context) (interface{}, error) {
		resp, err := c.api.Models.GenerateContent(ctx, model, contents, gc)
		if err != nil {
			return nil, err
		}
		recordUsage(op, model, resp)
		data, mime := collectInlineData(resp, mimePrefix)
		if len(data) == 0 {
			return nil, ErrEmptyResponse
		}
		return blob{data: data, mime: mime}, nil
	})
	metrics.RecordGeneration(op, model, time.Since(start), err)

	b, err := castResult[blob](result, err)
	if err != nil {
		return nil, "", err
	}
	return b.data, b.mime, nil
}

// recordUsage feeds token counts from the response into metrics. Usage is
// recorded per attempt since every attempt that returns metadata was billed.
func recordUsage(op, model string, resp *genai.GenerateContentResponse) {
	if resp == nil || resp.UsageMetadata == nil {
		return
	}
	metrics.RecordTokenUsage(op, model, resp.UsageMetadata.PromptTokenCount, resp.UsageMetadata.CandidatesTokenCount)
}

// collectText concatenates the text parts of the first candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}

// collectInlineData returns the first inline blob of the first candidate
// whose MIME type starts with the given prefix.
func collectInlineData(resp *genai.GenerateContentResponse, mimePrefix string) ([]byte, string) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil {
			continue
		}
		if mimePrefix == "" || strings.HasPrefix(part.InlineData.MIMEType, mimePrefix) {
			return part.InlineData.Data, part.InlineData.MIMEType
		}
	}
	return nil, ""
}

// stripCodeFences removes a surrounding markdown code fence from model
// output. Models occasionally fence JSON even when a JSON response MIME
// type was requested.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		return strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		return strings.TrimSpace(s)
	}
	return s
}

// trimToJSON cuts the string down to its outermost JSON value, dropping any
// prose the model wrapped around it. Returns the input unchanged when no
// bracket pair is found.
func trimToJSON(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return s
	}
	return s[start : end+1]
}
