// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("file", "Journal.2024-01-01T000000.01.log").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
	if !strings.Contains(output, `"file":"Journal.2024-01-01T000000.01.log"`) {
		t.Errorf("expected structured field, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCtxAddsFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRunID(ctx, "abc12345")
	ctx = ContextWithCommander(ctx, "Jameson")

	Ctx(ctx).Info().Msg("rebuilt")

	out := buf.String()
	if !strings.Contains(out, `"run_id":"abc12345"`) {
		t.Errorf("missing run_id: %s", out)
	}
	if !strings.Contains(out, `"commander":"Jameson"`) {
		t.Errorf("missing commander: %s", out)
	}
}

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	logger := NewSlogLogger("supervisor").WithGroup("svc")
	logger.Warn("service restarted", slog.String("name", "ingest"), slog.Int("attempt", 2))

	out := buf.String()
	if !strings.Contains(out, `"svc.name":"ingest"`) {
		t.Errorf("expected grouped key, got: %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("expected warn level, got: %s", out)
	}
	if !strings.Contains(out, `"component":"supervisor"`) {
		t.Errorf("expected component field, got: %s", out)
	}
}
