// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/astrographus/internal/metrics"
)

// Commander is a registered game account. Ids start at 1; 0 means the
// commander is not known yet.
type Commander struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	FID       string    `json:"fid,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EnsureCommander returns the id registered for name, creating the
// commander on first sight. Names compare case-insensitively.
func (s *Store) EnsureCommander(ctx context.Context, name, fid string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("commander name is empty")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(commanderNameKey(name))
		switch {
		case err == nil:
			return item.Value(func(val []byte) error {
				id = int64(binary.BigEndian.Uint64(val))
				return nil
			})
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		var last uint64
		if item, err := txn.Get([]byte(keyCommanderSeq)); err == nil {
			if err := item.Value(func(val []byte) error {
				last = binary.BigEndian.Uint64(val)
				return nil
			}); err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		id = int64(last + 1)
		data, err := json.Marshal(Commander{ID: id, Name: name, FID: fid, CreatedAt: time.Now().UTC()})
		if err != nil {
			return err
		}
		idBytes := appendU64(nil, uint64(id))
		if err := txn.Set([]byte(keyCommanderSeq), idBytes); err != nil {
			return err
		}
		if err := txn.Set(commanderNameKey(name), idBytes); err != nil {
			return err
		}
		if err := txn.Set(commanderIDKey(id), data); err != nil {
			return err
		}
		metrics.StoreWrites.WithLabelValues("commander").Inc()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("ensure commander %q: %w", name, err)
	}
	return id, nil
}

// Commanders lists the registered commanders by id.
func (s *Store) Commanders(ctx context.Context) ([]Commander, error) {
	var out []Commander
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixCommanderID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var c Commander
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &c)
			}); err != nil {
				return err
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list commanders: %w", err)
	}
	return out, nil
}

// CommanderByName returns the commander registered under name, or nil.
func (s *Store) CommanderByName(ctx context.Context, name string) (*Commander, error) {
	var c *Commander
	err := s.db.View(func(txn *badger.Txn) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, err := txn.Get(commanderNameKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		var id int64
		if err := item.Value(func(val []byte) error {
			id = int64(binary.BigEndian.Uint64(val))
			return nil
		}); err != nil {
			return err
		}

		rec, err := txn.Get(commanderIDKey(id))
		if err != nil {
			return err
		}
		c = &Commander{}
		return rec.Value(func(val []byte) error {
			return json.Unmarshal(val, c)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("commander %q: %w", name, err)
	}
	return c, nil
}

// CommanderByID returns the commander registered under id, or nil.
func (s *Store) CommanderByID(ctx context.Context, id int64) (*Commander, error) {
	var c *Commander
	err := s.db.View(func(txn *badger.Txn) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, err := txn.Get(commanderIDKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		c = &Commander{}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, c)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("commander %d: %w", id, err)
	}
	return c, nil
}
