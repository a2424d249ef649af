// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/journal"
	"github.com/tomtom215/astrographus/internal/logging"
	"github.com/tomtom215/astrographus/internal/metrics"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("store is closed")

// record is the stored form of an event.
type record struct {
	ID       string         `json:"id"`
	StoredAt time.Time      `json:"stored_at"`
	Event    *journal.Event `json:"event"`
}

// Store persists decoded events, tailer cursors and the commander registry
// in BadgerDB.
type Store struct {
	db *badger.DB

	// mu serializes commander id allocation.
	mu     sync.Mutex
	closed bool
}

// Open opens (or creates) the store described by cfg.
func Open(cfg config.StoreConfig) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("Event store opened")
	return &Store{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory store.
func OpenInMemory() (*Store, error) {
	return Open(config.StoreConfig{InMemory: true})
}

// Close closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}

// Append stores ev unless an event from the same file line at the same time
// is already stored for its commander. It reports whether ev was new.
func (s *Store) Append(ctx context.Context, ev *journal.Event) (bool, error) {
	added, err := s.AppendBatch(ctx, []*journal.Event{ev})
	if err != nil {
		return false, err
	}
	return added == 1, nil
}

// AppendBatch stores events in one transaction, skipping ones already
// present, and returns how many were new.
func (s *Store) AppendBatch(ctx context.Context, events []*journal.Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	added := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		added = 0
		for _, ev := range events {
			key := eventKey(ev)
			if _, err := txn.Get(key); err == nil {
				continue
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			data, err := json.Marshal(record{ID: uuid.NewString(), StoredAt: time.Now().UTC(), Event: ev})
			if err != nil {
				return fmt.Errorf("marshal %s: %w", ev.Kind, err)
			}
			if err := txn.Set(key, data); err != nil {
				return err
			}
			if err := txn.Set(kindTimeKey(ev), key); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("append events: %w", err)
	}
	metrics.StoreWrites.WithLabelValues("event").Add(float64(added))
	return added, nil
}

// Query returns the commander's events with from <= Time < to in ascending
// order. A zero to means no upper bound.
func (s *Store) Query(ctx context.Context, commander int64, from, to time.Time) ([]*journal.Event, error) {
	var out []*journal.Event
	err := s.scan(ctx, commander, from, to, func(ev *journal.Event) error {
		out = append(out, ev)
		return nil
	})
	return out, err
}

// Replay streams every event of the commander in ascending order to fn.
// Iteration stops at the first error fn returns.
func (s *Store) Replay(ctx context.Context, commander int64, fn func(*journal.Event) error) error {
	return s.scan(ctx, commander, time.Time{}, time.Time{}, fn)
}

func (s *Store) scan(ctx context.Context, commander int64, from, to time.Time, fn func(*journal.Event) error) error {
	prefix := eventPrefix(commander)
	start := appendU64(append([]byte{}, prefix...), nanos(from))
	var stop []byte
	if !to.IsZero() {
		stop = appendU64(append([]byte{}, prefix...), nanos(to))
	}

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			if stop != nil && bytes.Compare(item.Key(), stop) >= 0 {
				return nil
			}
			ev, err := decodeRecord(item)
			if err != nil {
				return err
			}
			if err := fn(ev); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	return nil
}

// Predecessor returns the latest event of any of kinds strictly before
// before, across all commanders, or nil when there is none.
func (s *Store) Predecessor(ctx context.Context, kinds []journal.Kind, before time.Time) (*journal.Event, error) {
	var best *journal.Event
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false

		for _, kind := range kinds {
			if err := ctx.Err(); err != nil {
				return err
			}
			prefix := kindPrefix(kind)
			seek := appendU64(append([]byte{}, prefix...), nanos(before))

			it := txn.NewIterator(opts)
			it.Seek(seek)
			if !it.ValidForPrefix(prefix) {
				it.Close()
				continue
			}
			ref, err := it.Item().ValueCopy(nil)
			it.Close()
			if err != nil {
				return err
			}

			item, err := txn.Get(ref)
			if err != nil {
				return fmt.Errorf("resolve index entry: %w", err)
			}
			ev, err := decodeRecord(item)
			if err != nil {
				return err
			}
			if best == nil || best.Before(ev) {
				best = ev
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("predecessor lookup: %w", err)
	}
	return best, nil
}

// RunGC runs one BadgerDB value log garbage collection pass. It returns nil
// when there was nothing to collect.
func (s *Store) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return fmt.Errorf("value log GC: %w", err)
	}
	return nil
}

func decodeRecord(item *badger.Item) (*journal.Event, error) {
	var rec record
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal event record: %w", err)
	}
	if rec.Event == nil {
		return nil, fmt.Errorf("event record %s is empty", rec.ID)
	}
	if err := journal.Redecode(rec.Event); err != nil {
		return nil, err
	}
	return rec.Event, nil
}
