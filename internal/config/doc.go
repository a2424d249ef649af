// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package config provides centralized configuration management for Astrographus.

# Configuration Sources

Configuration is layered with koanf v2, later layers overriding earlier ones:
  - Built-in defaults (structs provider)
  - Optional YAML file (CONFIG_PATH, or the first of DefaultConfigPaths)
  - Environment variables (explicit mapping, see envMappings)

# Environment Variables

Journal (JournalConfig):
  - JOURNAL_DIR: game journal directory (default: ~/Saved Games/Frontier Developments/Elite Dangerous)
  - JOURNAL_FILE_PATTERN: journal glob (default: Journal.*.log)
  - JOURNAL_POLL_INTERVAL: tailer tick (default: 100ms)
  - JOURNAL_WATCH: fsnotify wake-up hint (default: true)
  - JOURNAL_SIDECAR_RETRIES, JOURNAL_SIDECAR_WAIT: side-car bounded wait (default: 5 x 50ms)
  - COMMANDER: commander to rebuild on startup (default: most recent)

History:
  - MERGE_ENABLED: chatter merging (default: true)
  - CARGO_CUTOVER: redundant Cargo cutover date (default: 2018-12-11)

Store:
  - STORE_PATH: BadgerDB directory (default: data/store)
  - STORE_IN_MEMORY: keep the store in memory only (default: false)
  - STORE_GC_INTERVAL, STORE_GC_RATIO: value log GC cadence (default: 10m, 0.5)

Lookup:
  - EDSM_ENABLED / LOOKUP_ENABLED: enable remote lookups (default: false)
  - EDSM_URL: service base URL (default: https://www.edsm.net)
  - LOOKUP_ABSENT_TTL, LOOKUP_UNAVAILABLE_TTL: negative cache lifetimes

Metrics and logging:
  - METRICS_ENABLED, METRICS_ADDR: Prometheus listener
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Tailing %s/%s\n", cfg.Journal.Dir, cfg.Journal.FilePattern)
*/
package config
