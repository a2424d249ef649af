// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

// Package store is the BadgerDB persistence layer.
//
// It keeps three kinds of records:
//
//   - decoded journal events, keyed by commander, time, file and line so a
//     commander's events iterate in timeline order and re-appending a line
//     is a no-op;
//   - a kind/time index used to find the latest event of a kind before a
//     point in time (continuation stitching across journal parts);
//   - tailer cursors and the commander registry.
//
// Values are JSON (goccy/go-json). Events are re-decoded from their raw line
// on read, so stored data stays valid as payload types evolve.
package store
