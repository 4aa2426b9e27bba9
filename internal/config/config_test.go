// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a config that passes validation, for mutation in tests.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Gemini.APIKey = "test-key"
	return cfg
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() on defaults with API key: %v", err)
	}
}

func TestValidateServer(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: "HTTP_TIMEOUT",
		},
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantErr: "ENVIRONMENT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGemini(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing API key",
			mutate:  func(c *Config) { c.Gemini.APIKey = "" },
			wantErr: "GEMINI_API_KEY",
		},
		{
			name:    "bad base URL scheme",
			mutate:  func(c *Config) { c.Gemini.BaseURL = "ftp://example.com" },
			wantErr: "GEMINI_BASE_URL",
		},
		{
			name:    "empty model",
			mutate:  func(c *Config) { c.Gemini.TextModel = "" },
			wantErr: "model names",
		},
		{
			name:    "temperature out of range",
			mutate:  func(c *Config) { c.Gemini.Temperature = 3.5 },
			wantErr: "GEMINI_TEMPERATURE",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.Gemini.MaxRetries = -1 },
			wantErr: "GEMINI_MAX_RETRIES",
		},
		{
			name:    "max backoff below initial",
			mutate:  func(c *Config) { c.Gemini.MaxBackoff = 100 * time.Millisecond },
			wantErr: "GEMINI_MAX_BACKOFF",
		},
		{
			name:    "multiplier below one",
			mutate:  func(c *Config) { c.Gemini.BackoffMultiplier = 0.5 },
			wantErr: "GEMINI_BACKOFF_MULTIPLIER",
		},
		{
			name:    "jitter above one",
			mutate:  func(c *Config) { c.Gemini.JitterFraction = 1.5 },
			wantErr: "GEMINI_JITTER_FRACTION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAudio(t *testing.T) {
	cfg := validConfig()
	cfg.Audio.BitsPerSample = 8
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for 8-bit samples")
	}

	cfg = validConfig()
	cfg.Audio.Channels = 5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for 5 channels")
	}
}

func TestValidateCatalog(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty catalog path")
	}

	// In-memory mode does not need a path
	cfg = validConfig()
	cfg.Catalog.Path = ""
	cfg.Catalog.InMemory = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("in-memory catalog should not require a path: %v", err)
	}

	cfg = validConfig()
	cfg.Catalog.GCDiscardRatio = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for GC discard ratio > 1")
	}
}

func TestValidateSecurity(t *testing.T) {
	// Short admin secret rejected only in production
	cfg := validConfig()
	cfg.Security.AdminSecret = "short"
	if err := cfg.Validate(); err != nil {
		t.Errorf("short admin secret should pass in development: %v", err)
	}

	cfg.Server.Environment = "production"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for short admin secret in production")
	}

	cfg = validConfig()
	cfg.Security.RateLimitReqs = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero rate limit")
	}

	// Disabled rate limiting skips limit validation
	cfg = validConfig()
	cfg.Security.RateLimitReqs = 0
	cfg.Security.RateLimitDisabled = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled rate limiting should skip limit checks: %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:8080", false},
		{"https://generativelanguage.googleapis.com", false},
		{"ftp://example.com", true},
		{"://bad", true},
		{"https://example.com?key=1", true},
		{"https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := validateHTTPURL(tt.url, "TEST_URL")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
