// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package ingest runs the live journal pipeline.

A Monitor owns one goroutine that, on every tick, discovers journal files,
reads the lines appended since the last checkpoint and folds each one:

	decode -> stamp commander -> store.Append -> Sequencer.Append -> publish -> checkpoint

A line whose side-car file is not ready yet is unread and retried on the
next tick together with the rest of its batch. Malformed and unknown lines
are counted and dropped.

Sequencers are not safe for concurrent use. The Monitor guards them with a
dispatch gate that is held for each batch, each history rebuild and each
read by another goroutine (View, Unresolved, CurrentSystems).

The Backfiller runs beside the Monitor under the supervisor. It asks the
lookup service for coordinates and bodies and hands results back through
Monitor.Offer, so the sequencers are only ever written by the worker.
*/
package ingest
