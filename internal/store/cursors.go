// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/astrographus/internal/metrics"
	"github.com/tomtom215/astrographus/internal/tailer"
)

var _ tailer.CursorStore = (*Store)(nil)

// SaveCursor persists a tailer cursor.
func (s *Store) SaveCursor(_ context.Context, c *tailer.Cursor) error {
	saved := *c
	saved.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("marshal cursor: %w", err)
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cursorKey(c.File), data)
	}); err != nil {
		return fmt.Errorf("save cursor %s: %w", c.File, err)
	}
	metrics.StoreWrites.WithLabelValues("cursor").Inc()
	return nil
}

// LoadCursor returns the saved cursor for file, or nil, nil when none was
// saved.
func (s *Store) LoadCursor(_ context.Context, file string) (*tailer.Cursor, error) {
	var c tailer.Cursor
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cursorKey(file))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &c)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load cursor %s: %w", file, err)
	}
	if !found {
		return nil, nil
	}
	return &c, nil
}

// ClearCursor removes the saved cursor for file so it is read from the
// start on next open.
func (s *Store) ClearCursor(_ context.Context, file string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(cursorKey(file))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}
