// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

// Package tailer reads the game's journal files incrementally.
//
// Each file has a Cursor (byte offset, line sequence, size, and a hash of the
// first line) persisted through a CursorStore. A restart resumes at the last
// checkpoint; a file that shrank or whose first line changed is read again
// from the start.
//
//	t := tailer.New(dir, tailer.DefaultPattern, store)
//	files, _ := t.Discover()
//	h, _ := t.OpenOrResume(ctx, files[0].Path)
//	lines, _ := t.ReadNewLines(h)
//	// ... process lines, Unread the first one that must wait ...
//	_ = t.Checkpoint(ctx, h)
//
// Only complete lines are returned. The game may still be writing the last
// one, so a line without its terminating newline waits for a later read.
//
// The Watcher is an optional accelerator: fsnotify events wake the polling
// loop early but never replace it.
package tailer
