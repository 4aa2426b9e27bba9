// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Server defaults
	if cfg.Server.Port != 8420 {
		t.Errorf("Server.Port = %d, want 8420", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}

	// Gemini defaults (API key empty - required field)
	if cfg.Gemini.APIKey != "" {
		t.Errorf("Gemini.APIKey should be empty by default, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.TextModel != "gemini-2.5-flash" {
		t.Errorf("Gemini.TextModel = %q, want gemini-2.5-flash", cfg.Gemini.TextModel)
	}
	if cfg.Gemini.Voice != "Kore" {
		t.Errorf("Gemini.Voice = %q, want Kore", cfg.Gemini.Voice)
	}
	if cfg.Gemini.MaxRetries != 4 {
		t.Errorf("Gemini.MaxRetries = %d, want 4", cfg.Gemini.MaxRetries)
	}
	if cfg.Gemini.InitialBackoff != 1*time.Second {
		t.Errorf("Gemini.InitialBackoff = %v, want 1s", cfg.Gemini.InitialBackoff)
	}
	if cfg.Gemini.BackoffMultiplier != 2.0 {
		t.Errorf("Gemini.BackoffMultiplier = %v, want 2.0", cfg.Gemini.BackoffMultiplier)
	}

	// Audio defaults match the Gemini TTS output format
	if cfg.Audio.SampleRate != 24000 {
		t.Errorf("Audio.SampleRate = %d, want 24000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 1 {
		t.Errorf("Audio.Channels = %d, want 1", cfg.Audio.Channels)
	}
	if cfg.Audio.BitsPerSample != 16 {
		t.Errorf("Audio.BitsPerSample = %d, want 16", cfg.Audio.BitsPerSample)
	}

	// Catalog defaults
	if cfg.Catalog.Path != "/data/cicerone" {
		t.Errorf("Catalog.Path = %q, want /data/cicerone", cfg.Catalog.Path)
	}
	if cfg.Catalog.GCInterval != 10*time.Minute {
		t.Errorf("Catalog.GCInterval = %v, want 10m", cfg.Catalog.GCInterval)
	}
	if cfg.Catalog.BackupDir != "" {
		t.Errorf("Catalog.BackupDir = %q, want empty (snapshots disabled)", cfg.Catalog.BackupDir)
	}
	if cfg.Catalog.BackupKeep != 7 {
		t.Errorf("Catalog.BackupKeep = %d, want 7", cfg.Catalog.BackupKeep)
	}

	// Cache defaults
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be true by default")
	}
	if cfg.Cache.TTL != 15*time.Minute {
		t.Errorf("Cache.TTL = %v, want 15m", cfg.Cache.TTL)
	}

	// Security defaults
	if cfg.Security.RateLimitReqs != 100 {
		t.Errorf("Security.RateLimitReqs = %d, want 100", cfg.Security.RateLimitReqs)
	}
	if cfg.Security.GenerateLimitReqs != 10 {
		t.Errorf("Security.GenerateLimitReqs = %d, want 10", cfg.Security.GenerateLimitReqs)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Gemini
		{"GEMINI_API_KEY", "gemini.api_key"},
		{"GEMINI_TEXT_MODEL", "gemini.text_model"},
		{"GEMINI_TTS_MODEL", "gemini.tts_model"},
		{"GEMINI_VOICE", "gemini.voice"},
		{"GEMINI_MAX_RETRIES", "gemini.max_retries"},
		{"GEMINI_RPM", "gemini.requests_per_min"},

		// Server
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"HTTP_TIMEOUT", "server.timeout"},
		{"ENVIRONMENT", "server.environment"},

		// Catalog
		{"CATALOG_PATH", "catalog.path"},
		{"CATALOG_SEED_PATH", "catalog.seed_path"},

		// Cache
		{"CACHE_TTL", "cache.ttl"},

		// Security
		{"ADMIN_SECRET", "security.admin_secret"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"CORS_ORIGINS", "security.cors_origins"},

		// Logging
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := envTransformFunc(tt.input)
			if result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	}()

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		os.Unsetenv(ConfigPathEnvVar)
		result := findConfigFile()
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("test: true"), 0644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		os.Unsetenv(ConfigPathEnvVar)
		result := findConfigFile()
		if result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom_config.yaml")
		if err := os.WriteFile(customPath, []byte("test: true"), 0644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		os.Setenv(ConfigPathEnvVar, customPath)
		defer os.Unsetenv(ConfigPathEnvVar)

		result := findConfigFile()
		if result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		os.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		defer os.Unsetenv(ConfigPathEnvVar)

		result := findConfigFile()
		// Should fall back to default paths (which don't exist in temp dir)
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	os.Clearenv()

	// Set required variables
	os.Setenv("GEMINI_API_KEY", "test_api_key_12345")

	// Set some custom values to override defaults
	os.Setenv("HTTP_PORT", "9000")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("GEMINI_VOICE", "Puck")
	os.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Gemini.APIKey != "test_api_key_12345" {
		t.Errorf("Gemini.APIKey = %q, want test_api_key_12345", cfg.Gemini.APIKey)
	}

	// Verify custom overrides
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Gemini.Voice != "Puck" {
		t.Errorf("Gemini.Voice = %q, want Puck", cfg.Gemini.Voice)
	}

	// Comma-separated origins become a trimmed slice
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v, want 2 entries", cfg.Security.CORSOrigins)
	}
	if cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins[1] = %q, want https://b.example.com", cfg.Security.CORSOrigins[1])
	}

	// Verify defaults are still applied for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Gemini.TextModel != "gemini-2.5-flash" {
		t.Errorf("Gemini.TextModel = %q, want gemini-2.5-flash (default)", cfg.Gemini.TextModel)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configContent := `
server:
  port: 7777
  environment: production
gemini:
  api_key: file_key_67890
  temperature: 0.4
security:
  admin_secret: "0123456789abcdef0123456789abcdef"
cache:
  ttl: 30m
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Clearenv()
	os.Setenv(ConfigPathEnvVar, configPath)
	defer os.Unsetenv(ConfigPathEnvVar)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Gemini.APIKey != "file_key_67890" {
		t.Errorf("Gemini.APIKey = %q, want file_key_67890", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Temperature != 0.4 {
		t.Errorf("Gemini.Temperature = %v, want 0.4", cfg.Gemini.Temperature)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("Cache.TTL = %v, want 30m", cfg.Cache.TTL)
	}
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
}

// TestEnvOverridesFile verifies ENV > File precedence
func TestEnvOverridesFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configContent := `
server:
  port: 7777
gemini:
  api_key: file_key
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Clearenv()
	os.Setenv(ConfigPathEnvVar, configPath)
	os.Setenv("HTTP_PORT", "8888")
	defer os.Clearenv()

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8888 {
		t.Errorf("Server.Port = %d, want 8888 (env wins over file)", cfg.Server.Port)
	}
	if cfg.Gemini.APIKey != "file_key" {
		t.Errorf("Gemini.APIKey = %q, want file_key", cfg.Gemini.APIKey)
	}
}
