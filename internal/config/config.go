// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package config

import (
	"time"
)

// CargoCutoverLayout is the date layout of History.CargoCutover.
const CargoCutoverLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Journal    JournalConfig    `koanf:"journal"`
	Merge      MergeConfig      `koanf:"merge"`
	History    HistoryConfig    `koanf:"history"`
	Store      StoreConfig      `koanf:"store"`
	Lookup     LookupConfig     `koanf:"lookup"`
	Bus        BusConfig        `koanf:"bus"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// JournalConfig controls the log tailer and side-car reader.
type JournalConfig struct {
	// Dir is the game's journal directory.
	Dir string `koanf:"dir" validate:"required"`

	// FilePattern selects journal files inside Dir.
	FilePattern string `koanf:"file_pattern" validate:"required,glob"`

	// PollInterval is the tailer tick. Polling is the source of truth;
	// the fsnotify watcher only wakes the loop early.
	PollInterval time.Duration `koanf:"poll_interval" validate:"gte=10ms"`

	// WatchEnabled enables the fsnotify wake-up hint.
	WatchEnabled bool `koanf:"watch_enabled"`

	// SidecarAttempts is how many times a side-car file is re-read while
	// waiting for its timestamp to match the journal line.
	SidecarAttempts int `koanf:"sidecar_attempts" validate:"min=1,max=50"`

	// SidecarWait is the pause between side-car attempts.
	SidecarWait time.Duration `koanf:"sidecar_wait" validate:"gte=0"`

	// SidecarMaxAge bounds how old a journal line may be and still require
	// its side-car. Older lines (historic files) decode from the line alone.
	SidecarMaxAge time.Duration `koanf:"sidecar_max_age" validate:"gte=0"`

	// Commander is the commander whose history is rebuilt on startup.
	// Empty means the most recently seen commander.
	Commander string `koanf:"commander"`
}

// MergeConfig is the global chatter-merge toggle.
type MergeConfig struct {
	Enabled bool `koanf:"enabled"`
}

// HistoryConfig controls the history fold.
type HistoryConfig struct {
	// CargoCutover is the date (YYYY-MM-DD) before which redundant Cargo
	// manifests are folded into their predecessor.
	CargoCutover string `koanf:"cargo_cutover" validate:"required,datetime=2006-01-02"`
}

// StoreConfig holds BadgerDB settings for the event store.
type StoreConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`

	// GCInterval is how often value log garbage collection runs;
	// GCDiscardRatio is the badger discard ratio for each pass.
	GCInterval     time.Duration `koanf:"gc_interval" validate:"gte=0"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio" validate:"gt=0,lt=1"`
}

// LookupConfig holds the EDSM lookup client and cache settings.
type LookupConfig struct {
	Enabled bool          `koanf:"enabled"`
	BaseURL string        `koanf:"base_url" validate:"required_if=Enabled true,omitempty,url"`
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`

	// RateLimit is requests per second towards the remote service; Burst is
	// the token bucket size.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
	Burst     int     `koanf:"burst" validate:"gte=1"`

	CacheSize      int           `koanf:"cache_size" validate:"min=1"`
	CacheTTL       time.Duration `koanf:"cache_ttl" validate:"gte=0"`
	AbsentTTL      time.Duration `koanf:"absent_ttl" validate:"gte=0"`
	UnavailableTTL time.Duration `koanf:"unavailable_ttl" validate:"gte=0"`

	BreakerMaxFailures uint32        `koanf:"breaker_max_failures" validate:"min=1"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout" validate:"gte=0"`

	// BackfillInterval is how often unresolved system coordinates are
	// looked up; BackfillBatch caps systems per pass.
	BackfillInterval time.Duration `koanf:"backfill_interval" validate:"gte=0"`
	BackfillBatch    int           `koanf:"backfill_batch" validate:"min=1"`
}

// BusConfig controls the in-process notification bus.
type BusConfig struct {
	Enabled    bool  `koanf:"enabled"`
	BufferSize int64 `koanf:"buffer_size" validate:"gte=0"`
}

// SupervisorConfig maps onto supervisor.TreeConfig.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold" validate:"gte=0"`
	FailureDecay     float64       `koanf:"failure_decay" validate:"gte=0"`
	FailureBackoff   time.Duration `koanf:"failure_backoff" validate:"gte=0"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr" validate:"required_if=Enabled true"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// CargoCutoverTime returns History.CargoCutover as a UTC time.
// Validate guarantees the value parses.
func (c *Config) CargoCutoverTime() time.Time {
	t, err := time.ParseInLocation(CargoCutoverLayout, c.History.CargoCutover, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
