// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package history folds the decoded event stream into an indexed timeline of
entries, driving the accumulators and the scan trees.

Live ingestion calls Sequencer.Append once per new event; a rebuild calls
Sequencer.Load, which replays stored events through the same Append. Both
produce the same Digest for the same events.

Append drops events in three cases: chatter merged into the previous entry
(package merge), lines already folded (same file and sequence number), and
the removal rules (pre-cutover redundant Cargo, Continued, Music).
*/
package history
