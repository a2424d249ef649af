// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

// Package eventbus publishes history notices on an in-process Watermill
// GoChannel. The ingest worker publishes on TopicEntry for every appended
// entry and on TopicMerged when chatter folds into the previous entry.
package eventbus
