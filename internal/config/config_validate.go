// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package config

import (
	"fmt"
	"net/url"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateGemini(); err != nil {
		return err
	}

	if err := c.validateAudio(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates the HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

// validateGemini validates the Gemini client configuration.
// The API key is required: every core operation is an outbound Gemini call.
func (c *Config) validateGemini() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Gemini.BaseURL != "" {
		if err := validateHTTPURL(c.Gemini.BaseURL, "GEMINI_BASE_URL"); err != nil {
			return err
		}
	}
	if c.Gemini.TextModel == "" || c.Gemini.TTSModel == "" || c.Gemini.ImageModel == "" {
		return fmt.Errorf("gemini model names must not be empty")
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE must be in [0, 2], got %v", c.Gemini.Temperature)
	}
	if c.Gemini.MaxRetries < 0 {
		return fmt.Errorf("GEMINI_MAX_RETRIES must not be negative, got %d", c.Gemini.MaxRetries)
	}
	if c.Gemini.InitialBackoff <= 0 {
		return fmt.Errorf("GEMINI_INITIAL_BACKOFF must be positive, got %v", c.Gemini.InitialBackoff)
	}
	if c.Gemini.MaxBackoff < c.Gemini.InitialBackoff {
		return fmt.Errorf("GEMINI_MAX_BACKOFF must be >= initial backoff")
	}
	if c.Gemini.BackoffMultiplier < 1 {
		return fmt.Errorf("GEMINI_BACKOFF_MULTIPLIER must be >= 1, got %v", c.Gemini.BackoffMultiplier)
	}
	if c.Gemini.JitterFraction < 0 || c.Gemini.JitterFraction > 1 {
		return fmt.Errorf("GEMINI_JITTER_FRACTION must be in [0, 1], got %v", c.Gemini.JitterFraction)
	}
	if c.Gemini.RequestsPerMin < 1 {
		return fmt.Errorf("GEMINI_RPM must be >= 1, got %d", c.Gemini.RequestsPerMin)
	}
	return nil
}

// validateAudio validates the TTS PCM format configuration
func (c *Config) validateAudio() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("AUDIO_SAMPLE_RATE must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		return fmt.Errorf("AUDIO_CHANNELS must be 1 or 2, got %d", c.Audio.Channels)
	}
	if c.Audio.BitsPerSample != 16 {
		return fmt.Errorf("AUDIO_BITS_PER_SAMPLE must be 16 (Gemini TTS format), got %d", c.Audio.BitsPerSample)
	}
	return nil
}

// validateCatalog validates the document store configuration
func (c *Config) validateCatalog() error {
	if !c.Catalog.InMemory && c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH is required unless CATALOG_IN_MEMORY=true")
	}
	if c.Catalog.GCInterval <= 0 {
		return fmt.Errorf("CATALOG_GC_INTERVAL must be positive, got %v", c.Catalog.GCInterval)
	}
	if c.Catalog.GCDiscardRatio <= 0 || c.Catalog.GCDiscardRatio >= 1 {
		return fmt.Errorf("CATALOG_GC_DISCARD_RATIO must be in (0, 1), got %v", c.Catalog.GCDiscardRatio)
	}
	return nil
}

// validateSecurity validates API protection configuration
func (c *Config) validateSecurity() error {
	if c.Security.AdminSecret != "" && len(c.Security.AdminSecret) < 32 && c.IsProduction() {
		return fmt.Errorf("ADMIN_SECRET must be at least 32 characters in production")
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %v", c.Security.TokenTTL)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be >= 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.GenerateLimitReqs < 1 {
			return fmt.Errorf("GENERATE_RATE_LIMIT_REQUESTS must be >= 1, got %d", c.Security.GenerateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
		}
	}
	return nil
}

// validateLogging validates the logging configuration
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL validates that a URL is properly formatted for HTTP/HTTPS services.
// Validates: scheme (http/https), host present, no query params.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
