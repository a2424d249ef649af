// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"astrographus.yaml",
	"astrographus.yml",
	"config.yaml",
	"/etc/astrographus/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultJournalDir is where the game writes its journal on Windows; other
// platforms are expected to set JOURNAL_DIR.
func defaultJournalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Saved Games", "Frontier Developments", "Elite Dangerous")
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Journal: JournalConfig{
			Dir:             defaultJournalDir(),
			FilePattern:     "Journal.*.log",
			PollInterval:    100 * time.Millisecond,
			WatchEnabled:    true,
			SidecarAttempts: 5,
			SidecarWait:     50 * time.Millisecond,
			SidecarMaxAge:   2 * time.Minute,
		},
		Merge: MergeConfig{
			Enabled: true,
		},
		History: HistoryConfig{
			CargoCutover: "2018-12-11",
		},
		Store: StoreConfig{
			Path:           "data/store",
			SyncWrites:     false,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		Lookup: LookupConfig{
			Enabled:            false, // opt-in: contacts a third-party service
			BaseURL:            "https://www.edsm.net",
			Timeout:            20 * time.Second,
			RateLimit:          1,
			Burst:              3,
			CacheSize:          4096,
			CacheTTL:           6 * time.Hour,
			AbsentTTL:          24 * time.Hour,
			UnavailableTTL:     2 * time.Minute,
			BreakerMaxFailures: 5,
			BreakerTimeout:     time.Minute,
			BackfillInterval:   30 * time.Second,
			BackfillBatch:      25,
		},
		Bus: BusConfig{
			Enabled:    true,
			BufferSize: 256,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9464",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// JOURNAL_POLL_INTERVAL -> journal.poll_interval
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
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
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Variables not listed are ignored so unrelated process environment never
// leaks into the configuration.
var envMappings = map[string]string{
	// Journal
	"journal_dir":             "journal.dir",
	"journal_file_pattern":    "journal.file_pattern",
	"journal_poll_interval":   "journal.poll_interval",
	"journal_watch":           "journal.watch_enabled",
	"journal_sidecar_retries": "journal.sidecar_attempts",
	"journal_sidecar_wait":    "journal.sidecar_wait",
	"journal_sidecar_max_age": "journal.sidecar_max_age",
	"commander":               "journal.commander",

	// Merge / history
	"merge_enabled": "merge.enabled",
	"cargo_cutover": "history.cargo_cutover",

	// Store
	"store_path":        "store.path",
	"store_in_memory":   "store.in_memory",
	"store_sync_writes": "store.sync_writes",
	"store_gc_interval": "store.gc_interval",
	"store_gc_ratio":    "store.gc_discard_ratio",

	// Lookup
	"lookup_enabled":              "lookup.enabled",
	"edsm_enabled":                "lookup.enabled",
	"edsm_url":                    "lookup.base_url",
	"lookup_base_url":             "lookup.base_url",
	"lookup_timeout":              "lookup.timeout",
	"lookup_rate_limit":           "lookup.rate_limit",
	"lookup_burst":                "lookup.burst",
	"lookup_cache_size":           "lookup.cache_size",
	"lookup_cache_ttl":            "lookup.cache_ttl",
	"lookup_absent_ttl":           "lookup.absent_ttl",
	"lookup_unavailable_ttl":      "lookup.unavailable_ttl",
	"lookup_breaker_max_failures": "lookup.breaker_max_failures",
	"lookup_breaker_timeout":      "lookup.breaker_timeout",
	"backfill_interval":           "lookup.backfill_interval",
	"backfill_batch":              "lookup.backfill_batch",

	// Bus
	"bus_enabled":     "bus.enabled",
	"bus_buffer_size": "bus.buffer_size",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",

	// Metrics
	"metrics_enabled": "metrics.enabled",
	"metrics_addr":    "metrics.addr",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Returning "" tells the env provider to skip the variable.
//
// Examples:
//   - JOURNAL_DIR -> journal.dir
//   - EDSM_URL -> lookup.base_url
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
