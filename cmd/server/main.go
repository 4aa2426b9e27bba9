// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cicerone/internal/api"
	"github.com/tomtom215/cicerone/internal/audio"
	"github.com/tomtom215/cicerone/internal/audit"
	"github.com/tomtom215/cicerone/internal/auth"
	"github.com/tomtom215/cicerone/internal/backup"
	"github.com/tomtom215/cicerone/internal/cache"
	"github.com/tomtom215/cicerone/internal/catalog"
	"github.com/tomtom215/cicerone/internal/config"
	"github.com/tomtom215/cicerone/internal/events"
	"github.com/tomtom215/cicerone/internal/gemini"
	"github.com/tomtom215/cicerone/internal/guide"
	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/supervisor"
	"github.com/tomtom215/cicerone/internal/supervisor/services"
	ws "github.com/tomtom215/cicerone/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("catalog_path", cfg.Catalog.Path).
		Bool("catalog_in_memory", cfg.Catalog.InMemory).
		Str("text_model", cfg.Gemini.TextModel).
		Msg("Starting Cicerone")

	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()

	// Seeding failures are logged, not fatal: a fresh deployment without
	// a seed file still serves generated content.
	if cfg.Catalog.SeedPath != "" {
		if n, err := store.SeedFromFile(context.Background(), cfg.Catalog.SeedPath); err != nil {
			logging.Warn().Err(err).Str("path", cfg.Catalog.SeedPath).Msg("Seeding curated places failed")
		} else if n > 0 {
			logging.Info().Int("places", n).Msg("Curated places seeded")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	aiClient, err := gemini.New(ctx, cfg.Gemini)
	if err != nil {
		// Close the store before Fatal since os.Exit skips the defers.
		if closeErr := store.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing catalog store")
		}
		logging.Fatal().Err(err).Msg("Failed to create Gemini client (is GEMINI_API_KEY set?)")
	}
	logging.Info().
		Str("text_model", cfg.Gemini.TextModel).
		Str("tts_model", cfg.Gemini.TTSModel).
		Str("image_model", cfg.Gemini.ImageModel).
		Msg("Gemini client initialized")

	var resultCache *cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		defer resultCache.Close()
		logging.Info().Dur("ttl", cfg.Cache.TTL).Msg("Result cache enabled")
	} else {
		logging.Info().Msg("Result cache disabled; every request hits the model")
	}

	bus := events.NewBus()
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing progress bus")
		}
	}()

	hub := ws.NewHub()
	bridge := ws.NewBusSubscriber(hub, bus)

	svc := guide.New(aiClient, store, resultCache, bus, audio.Format{
		SampleRate:    cfg.Audio.SampleRate,
		Channels:      cfg.Audio.Channels,
		BitsPerSample: cfg.Audio.BitsPerSample,
	})

	tokens := auth.NewManager(cfg.Security)
	if tokens.Enabled() {
		logging.Info().Dur("token_ttl", cfg.Security.TokenTTL).Msg("Admin endpoints enabled")
	} else {
		logging.Warn().Msg("ADMIN_SECRET not set; catalog admin endpoints are disabled")
	}

	// The audit trail shares the catalog's database. Close order matters:
	// this defer runs before the store's, so buffered events drain into a
	// store that is still open.
	trail := audit.NewLogger(store.AuditLog(), 0)
	defer func() {
		if err := trail.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing audit trail")
		}
	}()

	var snapshots *backup.Manager
	if cfg.Catalog.BackupDir != "" {
		snapshots, err = backup.NewManager(store, cfg.Catalog.BackupDir, cfg.Catalog.BackupKeep)
		if err != nil {
			_ = trail.Close()
			if closeErr := store.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing catalog store")
			}
			logging.Fatal().Err(err).Msg("Failed to create snapshot manager")
		}
		// Manual snapshots are audited by the handler with the originating
		// request; scheduled ones are attributed to the system here.
		snapshots.SetOnComplete(func(snap *backup.Snapshot) {
			if snap.Trigger == backup.TriggerScheduled {
				trail.SnapshotCreated(nil, snap.ID)
			}
		})
		logging.Info().
			Str("dir", cfg.Catalog.BackupDir).
			Dur("interval", cfg.Catalog.BackupInterval).
			Int("keep", cfg.Catalog.BackupKeep).
			Msg("Catalog snapshots enabled")
	} else {
		logging.Info().Msg("CATALOG_BACKUP_DIR not set; catalog snapshots are disabled")
	}

	handler := api.NewHandler(svc, store, aiClient, tokens, hub, resultCache, cfg)
	handler.SetAuditLogger(trail)
	if snapshots != nil {
		handler.SetSnapshotManager(snapshots)
	}
	router := api.NewRouter(handler, auth.NewMiddleware(tokens), api.NewChiMiddleware(cfg.Security))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// sutureslog wants slog; the adapter feeds it back into zerolog.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		if closeErr := store.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing catalog store")
		}
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Badger's value-log GC only applies to on-disk stores.
	if !cfg.Catalog.InMemory {
		tree.AddDataService(services.NewStoreGCService(store, cfg.Catalog.GCInterval))
	}
	if snapshots != nil {
		tree.AddDataService(services.NewSnapshotService(snapshots, cfg.Catalog.BackupInterval))
	}
	tree.AddMessagingService(services.NewHubService(hub))
	tree.AddMessagingService(services.NewEventBridgeService(bridge))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server added to supervisor tree")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor closes the channel.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, entry := range unstopped {
			logging.Warn().Str("service", entry.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Cicerone stopped gracefully")
}
