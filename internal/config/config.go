// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package config provides centralized configuration management for Cicerone.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables
// and config files.
//
// Configuration Categories:
//
//  1. Generative AI:
//     - Gemini: API key, model selection, retry and pacing policy
//
//  2. Infrastructure:
//     - Server: HTTP server configuration (port, host, timeouts)
//     - Catalog: BadgerDB document store (path, seed file, GC)
//     - Cache: In-memory result cache (TTL, cleanup interval)
//     - Events: Progress event bus and WebSocket fanout
//
//  3. API & Security:
//     - Security: Admin token, rate limiting, CORS
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	client, err := gemini.NewClient(ctx, cfg.Gemini)
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Gemini   GeminiConfig   `koanf:"gemini"`
	Audio    AudioConfig    `koanf:"audio"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
	Events   EventsConfig   `koanf:"events"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8420)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Request timeout (default: 60s; generation calls are slow)
//   - ENVIRONMENT: development or production (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// GeminiConfig holds Gemini API client settings: credentials, model routing
// and the outbound resilience policy (retry, jitter, pacing, breaker).
//
// Environment Variables:
//   - GEMINI_API_KEY: API key (required)
//   - GEMINI_BASE_URL: Optional API base URL override (proxies, mocks)
//   - GEMINI_TEXT_MODEL: Narration/itinerary model (default: gemini-2.5-flash)
//   - GEMINI_TTS_MODEL: Speech model (default: gemini-2.5-flash-preview-tts)
//   - GEMINI_IMAGE_MODEL: Postcard model (default: gemini-2.0-flash-preview-image-generation)
//   - GEMINI_VOICE: Default prebuilt voice (default: Kore)
//   - GEMINI_RPM: Client-side request pacing per minute (default: 10)
type GeminiConfig struct {
	APIKey     string `koanf:"api_key"`
	BaseURL    string `koanf:"base_url"`
	TextModel  string `koanf:"text_model"`
	TTSModel   string `koanf:"tts_model"`
	ImageModel string `koanf:"image_model"`
	Voice      string `koanf:"voice"`

	// Generation tuning
	Temperature     float32 `koanf:"temperature"`
	MaxOutputTokens int32   `koanf:"max_output_tokens"`

	// Resilience policy for outbound calls
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	MaxRetries        int           `koanf:"max_retries"`
	InitialBackoff    time.Duration `koanf:"initial_backoff"`
	MaxBackoff        time.Duration `koanf:"max_backoff"`
	BackoffMultiplier float64       `koanf:"backoff_multiplier"`
	JitterFraction    float64       `koanf:"jitter_fraction"`
	RequestsPerMin    int           `koanf:"requests_per_min"`
}

// AudioConfig holds the PCM format the TTS endpoint returns. The Gemini
// speech API emits 16-bit little-endian PCM at 24 kHz mono; these settings
// exist so a model change does not require a rebuild.
type AudioConfig struct {
	SampleRate    int `koanf:"sample_rate"`
	Channels      int `koanf:"channels"`
	BitsPerSample int `koanf:"bits_per_sample"`
}

// CatalogConfig holds BadgerDB document store settings.
//
// Environment Variables:
//   - CATALOG_PATH: Badger data directory (default: /data/cicerone)
//   - CATALOG_SEED_PATH: JSON seed file for curated places (optional)
//   - CATALOG_BACKUP_DIR: Snapshot directory; empty disables snapshots
//   - CATALOG_BACKUP_INTERVAL: Time between scheduled snapshots (default: 24h)
//   - CATALOG_BACKUP_KEEP: Snapshots retained, oldest pruned first (default: 7)
type CatalogConfig struct {
	Path           string        `koanf:"path"`
	SeedPath       string        `koanf:"seed_path"`
	InMemory       bool          `koanf:"in_memory"`
	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`
	PostcardTTL    time.Duration `koanf:"postcard_ttl"`
	BackupDir      string        `koanf:"backup_dir"`
	BackupInterval time.Duration `koanf:"backup_interval"`
	BackupKeep     int           `koanf:"backup_keep"`
}

// CacheConfig holds in-memory result cache settings.
type CacheConfig struct {
	Enabled         bool          `koanf:"enabled"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// SecurityConfig holds API protection settings.
//
// Environment Variables:
//   - ADMIN_SECRET: Secret for minting admin tokens; empty disables admin endpoints
//   - TOKEN_TTL: Admin token lifetime (default: 1h)
//   - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP limit for read endpoints
//   - GENERATE_RATE_LIMIT_REQUESTS: Stricter per-IP limit for generation endpoints
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
type SecurityConfig struct {
	AdminSecret       string        `koanf:"admin_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	GenerateLimitReqs int           `koanf:"generate_limit_reqs"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// EventsConfig holds the progress event bus and WebSocket fanout settings.
type EventsConfig struct {
	BufferSize     int           `koanf:"buffer_size"`
	ClientBuffer   int           `koanf:"client_buffer"`
	PingInterval   time.Duration `koanf:"ping_interval"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads the configuration from defaults, an optional YAML file and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
// Production tightens validation (admin secret length, CORS wildcard warning).
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
