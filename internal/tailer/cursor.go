// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package tailer

import (
	"context"
	"sync"
	"time"
)

// Cursor is the resumable read position of one journal file.
type Cursor struct {
	File      string    `json:"file"`   // base name
	Offset    int64     `json:"offset"` // byte offset of the next unread line
	Seq       int64     `json:"seq"`    // index of the next unread line
	Size      int64     `json:"size"`   // file size when the cursor was saved
	Header    uint64    `json:"header"` // hash of the first line, 0 until seen
	Part      int       `json:"part"`   // Fileheader part, 0 until seen
	UpdatedAt time.Time `json:"updated_at"`
}

// CursorStore persists cursors across restarts.
type CursorStore interface {
	// LoadCursor returns the saved cursor for file, or nil when none exists.
	LoadCursor(ctx context.Context, file string) (*Cursor, error)
	SaveCursor(ctx context.Context, c *Cursor) error
}

// MemoryCursorStore is an in-memory CursorStore for tests and for runs
// without a persistent store.
type MemoryCursorStore struct {
	mu      sync.Mutex
	cursors map[string]Cursor
}

// NewMemoryCursorStore creates an empty MemoryCursorStore.
func NewMemoryCursorStore() *MemoryCursorStore {
	return &MemoryCursorStore{cursors: make(map[string]Cursor)}
}

// LoadCursor returns a copy of the saved cursor.
func (m *MemoryCursorStore) LoadCursor(_ context.Context, file string) (*Cursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cursors[file]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// SaveCursor stores a copy of c.
func (m *MemoryCursorStore) SaveCursor(_ context.Context, c *Cursor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := *c
	saved.UpdatedAt = time.Now().UTC()
	m.cursors[c.File] = saved
	return nil
}
