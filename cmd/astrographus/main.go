// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/eventbus"
	"github.com/tomtom215/astrographus/internal/ingest"
	"github.com/tomtom215/astrographus/internal/logging"
	"github.com/tomtom215/astrographus/internal/lookup"
	"github.com/tomtom215/astrographus/internal/metrics"
	"github.com/tomtom215/astrographus/internal/store"
	"github.com/tomtom215/astrographus/internal/supervisor"
	"github.com/tomtom215/astrographus/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("journal_dir", cfg.Journal.Dir).
		Str("store_path", cfg.Store.Path).
		Bool("lookup_enabled", cfg.Lookup.Enabled).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Starting Astrographus")

	st, err := store.Open(cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open event store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event store")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	var opts []ingest.Option
	if cfg.Bus.Enabled {
		bus := eventbus.New(cfg.Bus)
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		opts = append(opts, ingest.WithPublisher(bus))
		tree.AddOpsService(eventbus.NewTap(bus))
	}

	monitor := ingest.NewMonitor(cfg, st, opts...)
	tree.AddIngestService(services.NewMonitorService(monitor))

	if cfg.Lookup.Enabled {
		client := lookup.NewEDSMClient(&cfg.Lookup)
		cache := lookup.NewCache(client, lookup.CacheConfig{
			Size:           cfg.Lookup.CacheSize,
			TTL:            cfg.Lookup.CacheTTL,
			AbsentTTL:      cfg.Lookup.AbsentTTL,
			UnavailableTTL: cfg.Lookup.UnavailableTTL,
		})
		tree.AddLookupService(ingest.NewBackfiller(monitor, cache, cfg.Lookup))
		tree.AddLookupService(services.NewPeriodicService("lookup-cache-janitor", cfg.Lookup.UnavailableTTL, func(context.Context) error {
			if n := cache.CleanupExpired(); n > 0 {
				logging.Debug().Int("expired", n).Msg("Lookup cache entries expired")
			}
			return nil
		}))
		logging.Info().Str("base_url", cfg.Lookup.BaseURL).Float64("rate_limit", cfg.Lookup.RateLimit).Msg("Lookup service enabled")
	}

	if !cfg.Store.InMemory {
		tree.AddOpsService(services.NewPeriodicService("store-gc", cfg.Store.GCInterval, func(context.Context) error {
			return st.RunGC(cfg.Store.GCDiscardRatio)
		}))
	}

	if cfg.Metrics.Enabled {
		tree.AddOpsService(services.NewHTTPServerService("metrics-server", metrics.NewServer(cfg.Metrics.Addr), 5*time.Second))
		logging.Info().Str("addr", cfg.Metrics.Addr).Msg("Metrics listener added")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Astrographus stopped")
}
