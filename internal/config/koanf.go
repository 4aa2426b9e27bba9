// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cicerone/config.yaml",
	"/etc/cicerone/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8420,
			Host:        "0.0.0.0",
			Timeout:     60 * time.Second, // generation calls routinely take tens of seconds
			Environment: "development",
		},
		Gemini: GeminiConfig{
			APIKey:     "",
			BaseURL:    "",
			TextModel:  "gemini-2.5-flash",
			TTSModel:   "gemini-2.5-flash-preview-tts",
			ImageModel: "gemini-2.0-flash-preview-image-generation",
			Voice:      "Kore",

			Temperature:     0.7,
			MaxOutputTokens: 2048,

			RequestTimeout:    45 * time.Second,
			MaxRetries:        4,
			InitialBackoff:    1 * time.Second,
			MaxBackoff:        30 * time.Second,
			BackoffMultiplier: 2.0,
			JitterFraction:    0.1,
			RequestsPerMin:    10,
		},
		Audio: AudioConfig{
			SampleRate:    24000,
			Channels:      1,
			BitsPerSample: 16,
		},
		Catalog: CatalogConfig{
			Path:           "/data/cicerone",
			SeedPath:       "",
			InMemory:       false,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
			PostcardTTL:    24 * time.Hour,
			BackupDir:      "",
			BackupInterval: 24 * time.Hour,
			BackupKeep:     7,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Security: SecurityConfig{
			AdminSecret:       "",
			TokenTTL:          1 * time.Hour,
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			GenerateLimitReqs: 10,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Events: EventsConfig{
			BufferSize:     256,
			ClientBuffer:   32,
			PingInterval:   30 * time.Second,
			WriteTimeout:   10 * time.Second,
			AllowedOrigins: []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// GEMINI_API_KEY -> gemini.api_key
	// HTTP_PORT -> server.port
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
	"events.allowed_origins",
}

// processSliceFields converts comma-separated string values to slices for known
// slice fields. Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - GEMINI_API_KEY -> gemini.api_key
//   - GEMINI_TEXT_MODEL -> gemini.text_model
//   - HTTP_PORT -> server.port
//   - CATALOG_PATH -> catalog.path
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Gemini mappings
		"gemini_api_key":            "gemini.api_key",
		"gemini_base_url":           "gemini.base_url",
		"gemini_text_model":         "gemini.text_model",
		"gemini_tts_model":          "gemini.tts_model",
		"gemini_image_model":        "gemini.image_model",
		"gemini_voice":              "gemini.voice",
		"gemini_temperature":        "gemini.temperature",
		"gemini_max_output_tokens":  "gemini.max_output_tokens",
		"gemini_request_timeout":    "gemini.request_timeout",
		"gemini_max_retries":        "gemini.max_retries",
		"gemini_initial_backoff":    "gemini.initial_backoff",
		"gemini_max_backoff":        "gemini.max_backoff",
		"gemini_backoff_multiplier": "gemini.backoff_multiplier",
		"gemini_jitter_fraction":    "gemini.jitter_fraction",
		"gemini_rpm":                "gemini.requests_per_min",

		// Audio mappings
		"audio_sample_rate":     "audio.sample_rate",
		"audio_channels":        "audio.channels",
		"audio_bits_per_sample": "audio.bits_per_sample",

		// Catalog mappings
		"catalog_path":             "catalog.path",
		"catalog_seed_path":        "catalog.seed_path",
		"catalog_in_memory":        "catalog.in_memory",
		"catalog_gc_interval":      "catalog.gc_interval",
		"catalog_gc_discard_ratio": "catalog.gc_discard_ratio",
		"postcard_ttl":             "catalog.postcard_ttl",
		"catalog_backup_dir":       "catalog.backup_dir",
		"catalog_backup_interval":  "catalog.backup_interval",
		"catalog_backup_keep":      "catalog.backup_keep",

		// Cache mappings
		"cache_enabled":          "cache.enabled",
		"cache_ttl":              "cache.ttl",
		"cache_cleanup_interval": "cache.cleanup_interval",

		// Security mappings
		"admin_secret":                 "security.admin_secret",
		"token_ttl":                    "security.token_ttl",
		"rate_limit_requests":          "security.rate_limit_reqs",
		"rate_limit_window":            "security.rate_limit_window",
		"generate_rate_limit_requests": "security.generate_limit_reqs",
		"disable_rate_limit":           "security.rate_limit_disabled",
		"cors_origins":                 "security.cors_origins",
		"trusted_proxies":              "security.trusted_proxies",

		// Events mappings
		"events_buffer_size":   "events.buffer_size",
		"events_client_buffer": "events.client_buffer",
		"ws_ping_interval":     "events.ping_interval",
		"ws_write_timeout":     "events.write_timeout",
		"ws_allowed_origins":   "events.allowed_origins",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them.
	// This prevents random environment variables from polluting config.
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// The caller is responsible for mutex protection when accessing configuration
// during reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
