// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

// Package logging provides the zerolog-based structured logger shared by every
// Astrographus component.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("file", path).Msg("Journal opened")
//	logging.Err(err).Str("system", name).Msg("Scan rejected")
//	logging.Ctx(ctx).Info().Int("entries", n).Msg("History rebuilt")
//
// # Configuration
//
// Environment variables (mapped through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// Always terminate log chains with .Msg() or .Send(), and prefer structured
// fields over Msgf.
//
// # Supervisor integration
//
// NewSlogLogger adapts the global logger to log/slog so sutureslog can report
// service restarts through zerolog.
package logging
