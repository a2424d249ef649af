// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	commanderKey contextKey = "commander"
	loggerKey    contextKey = "logger"
)

// GenerateRunID creates a short identifier for one ingest run or rebuild.
func GenerateRunID() string {
	return uuid.New().String()[:8]
}

// ContextWithRunID returns a new context carrying the given run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run ID, or "" when absent.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithCommander returns a new context carrying the commander name.
func ContextWithCommander(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commanderKey, name)
}

// CommanderFromContext returns the commander name, or "" when absent.
func CommanderFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(commanderKey).(string); ok {
		return name
	}
	return ""
}

// ContextWithLogger stores a logger in the context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the stored logger or the global one.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger with run_id and commander fields added when present.
//
//	logging.Ctx(ctx).Info().Int("entries", n).Msg("History rebuilt")
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := LoggerFromContext(ctx).With()
	if id := RunIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("run_id", id)
	}
	if name := CommanderFromContext(ctx); name != "" {
		logCtx = logCtx.Str("commander", name)
	}
	l := logCtx.Logger()
	return &l
}

// WithComponent creates a child logger with a component field.
//
//	tailLog := logging.WithComponent("tailer")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
