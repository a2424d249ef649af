// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Journal.FilePattern != "Journal.*.log" {
		t.Errorf("Journal.FilePattern = %q, want Journal.*.log", cfg.Journal.FilePattern)
	}
	if cfg.Journal.PollInterval != 100*time.Millisecond {
		t.Errorf("Journal.PollInterval = %v, want 100ms", cfg.Journal.PollInterval)
	}
	if !cfg.Merge.Enabled {
		t.Error("Merge.Enabled should be true by default")
	}
	if cfg.History.CargoCutover != "2018-12-11" {
		t.Errorf("History.CargoCutover = %q, want 2018-12-11", cfg.History.CargoCutover)
	}
	if cfg.Lookup.Enabled {
		t.Error("Lookup.Enabled should be false by default")
	}
	if cfg.Lookup.UnavailableTTL >= cfg.Lookup.AbsentTTL {
		t.Errorf("UnavailableTTL %v should be shorter than AbsentTTL %v",
			cfg.Lookup.UnavailableTTL, cfg.Lookup.AbsentTTL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"JOURNAL_DIR", "journal.dir"},
		{"JOURNAL_POLL_INTERVAL", "journal.poll_interval"},
		{"COMMANDER", "journal.commander"},
		{"MERGE_ENABLED", "merge.enabled"},
		{"CARGO_CUTOVER", "history.cargo_cutover"},
		{"STORE_PATH", "store.path"},
		{"EDSM_URL", "lookup.base_url"},
		{"EDSM_ENABLED", "lookup.enabled"},
		{"LOOKUP_ABSENT_TTL", "lookup.absent_ttl"},
		{"BUS_BUFFER_SIZE", "bus.buffer_size"},
		{"SUPERVISOR_SHUTDOWN_TIMEOUT", "supervisor.shutdown_timeout"},
		{"METRICS_ADDR", "metrics.addr"},
		{"LOG_LEVEL", "logging.level"},

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
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	t.Run("no config file exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("default path exists", func(t *testing.T) {
		if err := os.WriteFile("astrographus.yaml", []byte("merge:\n  enabled: false\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		defer os.Remove("astrographus.yaml")
		t.Setenv(ConfigPathEnvVar, "")

		if result := findConfigFile(); result != "astrographus.yaml" {
			t.Errorf("findConfigFile() = %q, want astrographus.yaml", result)
		}
	})

	t.Run("CONFIG_PATH wins", func(t *testing.T) {
		custom := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("{}\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, custom)

		if result := findConfigFile(); result != custom {
			t.Errorf("findConfigFile() = %q, want %q", result, custom)
		}
	})
}

func TestLoadEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	journalDir := filepath.Join(tmpDir, "journal")
	if err := os.Mkdir(journalDir, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	configPath := filepath.Join(tmpDir, "astrographus.yaml")
	yaml := "journal:\n  dir: " + journalDir + "\n  poll_interval: 250ms\nmerge:\n  enabled: false\nstore:\n  in_memory: true\n"
	if err := os.WriteFile(configPath, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("JOURNAL_POLL_INTERVAL", "500ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Journal.Dir != journalDir {
		t.Errorf("Journal.Dir = %q, want %q", cfg.Journal.Dir, journalDir)
	}
	if cfg.Journal.PollInterval != 500*time.Millisecond {
		t.Errorf("Journal.PollInterval = %v, want env override 500ms", cfg.Journal.PollInterval)
	}
	if cfg.Merge.Enabled {
		t.Error("Merge.Enabled should come from the file (false)")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if got := cfg.CargoCutoverTime(); !got.Equal(time.Date(2018, 12, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("CargoCutoverTime() = %v", got)
	}
}

func TestValidate(t *testing.T) {
	journalDir := t.TempDir()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults with journal dir", mutate: func(*Config) {}},
		{
			name:    "missing journal dir",
			mutate:  func(c *Config) { c.Journal.Dir = filepath.Join(journalDir, "nope") },
			wantErr: "JOURNAL_DIR",
		},
		{
			name:    "bad cutover",
			mutate:  func(c *Config) { c.History.CargoCutover = "11/12/2018" },
			wantErr: "CargoCutover",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "Format",
		},
		{
			name: "store path required",
			mutate: func(c *Config) {
				c.Store.Path = ""
				c.Store.InMemory = false
			},
			wantErr: "STORE_PATH",
		},
		{
			name: "unavailable ttl longer than absent ttl",
			mutate: func(c *Config) {
				c.Lookup.Enabled = true
				c.Lookup.UnavailableTTL = 48 * time.Hour
			},
			wantErr: "LOOKUP_UNAVAILABLE_TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Journal.Dir = journalDir
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
