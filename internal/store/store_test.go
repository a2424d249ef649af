// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/journal"
	"github.com/tomtom215/astrographus/internal/tailer"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func decodeLine(t *testing.T, line, file string, seq, commander int64) *journal.Event {
	t.Helper()
	ev, err := journal.NewDecoder().DecodeAt([]byte(line), journal.Source{File: file, Seq: seq})
	if err != nil {
		t.Fatalf("decode %s: %v", line, err)
	}
	ev.CommanderID = commander
	return ev
}

func music(t *testing.T, ts string, seq int64) *journal.Event {
	t.Helper()
	line := fmt.Sprintf(`{"timestamp":%q,"event":"Music","MusicTrack":"Exploration"}`, ts)
	return decodeLine(t, line, "Journal.2024-03-05T211512.01.log", seq, 1)
}

func TestAppend_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ev := music(t, "2024-03-05T21:15:13Z", 1)

	added, err := s.Append(ctx, ev)
	if err != nil || !added {
		t.Fatalf("first Append = %v, %v", added, err)
	}
	added, err = s.Append(ctx, ev)
	if err != nil {
		t.Fatalf("second Append: %v", err)
	}
	if added {
		t.Error("re-appending the same line must be a no-op")
	}

	events, err := s.Query(ctx, 1, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestQuery_OrderAndRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Stored out of order, with a timestamp tie broken by line sequence.
	batch := []*journal.Event{
		music(t, "2024-03-05T21:20:00Z", 4),
		music(t, "2024-03-05T21:15:13Z", 2),
		music(t, "2024-03-05T21:15:13Z", 1),
		music(t, "2024-03-05T21:18:00Z", 3),
	}
	other := decodeLine(t, `{"timestamp":"2024-03-05T21:16:00Z","event":"Music","MusicTrack":"Combat"}`, "Journal.2024-03-05T211512.01.log", 9, 2)
	if _, err := s.AppendBatch(ctx, append(batch, other)); err != nil {
		t.Fatalf("AppendBatch: %v", err)
	}

	all, err := s.Query(ctx, 1, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	var seqs []int64
	for _, ev := range all {
		seqs = append(seqs, ev.Seq)
	}
	if fmt.Sprint(seqs) != "[1 2 3 4]" {
		t.Errorf("seqs = %v, want [1 2 3 4]", seqs)
	}
	if m, ok := journal.As[*journal.Music](all[0]); !ok || m.Track != "Exploration" {
		t.Errorf("payload not rebuilt on read: %#v", all[0].Payload)
	}

	from := time.Date(2024, 3, 5, 21, 15, 13, 0, time.UTC)
	to := time.Date(2024, 3, 5, 21, 20, 0, 0, time.UTC)
	ranged, err := s.Query(ctx, 1, from.Add(time.Second), to)
	if err != nil {
		t.Fatalf("Query range: %v", err)
	}
	if len(ranged) != 1 || ranged[0].Seq != 3 {
		t.Errorf("range query returned %d events", len(ranged))
	}
}

func TestPredecessor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	load := decodeLine(t, `{"timestamp":"2024-03-05T21:15:14Z","event":"LoadGame","Commander":"Jameson","FID":"F1"}`, "Journal.2024-03-05T211512.01.log", 1, 1)
	cmdr := decodeLine(t, `{"timestamp":"2024-03-05T22:00:00Z","event":"Commander","Name":"Jameson","FID":"F1"}`, "Journal.2024-03-05T211512.01.log", 40, 1)
	later := decodeLine(t, `{"timestamp":"2024-03-06T09:00:00Z","event":"LoadGame","Commander":"Nova","FID":"F2"}`, "Journal.2024-03-06T090000.01.log", 1, 2)
	if _, err := s.AppendBatch(ctx, []*journal.Event{load, cmdr, later}); err != nil {
		t.Fatalf("AppendBatch: %v", err)
	}

	kinds := []journal.Kind{journal.KindLoadGame, journal.KindCommander}
	tests := []struct {
		name    string
		before  time.Time
		wantSeq int64
		wantNil bool
	}{
		{"before everything", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 0, true},
		{"strictly before", time.Date(2024, 3, 5, 21, 15, 14, 0, time.UTC), 0, true},
		{"after load game", time.Date(2024, 3, 5, 21, 30, 0, 0, time.UTC), 1, false},
		{"latest across kinds", time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC), 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := s.Predecessor(ctx, kinds, tt.before)
			if err != nil {
				t.Fatalf("Predecessor: %v", err)
			}
			if tt.wantNil {
				if ev != nil {
					t.Fatalf("expected nil, got %s seq %d", ev.Kind, ev.Seq)
				}
				return
			}
			if ev == nil || ev.Seq != tt.wantSeq {
				t.Fatalf("got %+v, want seq %d", ev, tt.wantSeq)
			}
		})
	}
}

func TestCursors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.LoadCursor(ctx, "Journal.a.log")
	if err != nil || got != nil {
		t.Fatalf("LoadCursor on empty store = %v, %v", got, err)
	}

	c := &tailer.Cursor{File: "Journal.a.log", Offset: 120, Seq: 3, Size: 120, Header: 42, Part: 2}
	if err := s.SaveCursor(ctx, c); err != nil {
		t.Fatalf("SaveCursor: %v", err)
	}
	got, err = s.LoadCursor(ctx, "Journal.a.log")
	if err != nil || got == nil {
		t.Fatalf("LoadCursor = %v, %v", got, err)
	}
	if got.Offset != 120 || got.Seq != 3 || got.Header != 42 || got.Part != 2 {
		t.Errorf("cursor = %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be stamped")
	}

	if err := s.ClearCursor(ctx, "Journal.a.log"); err != nil {
		t.Fatalf("ClearCursor: %v", err)
	}
	if got, _ := s.LoadCursor(ctx, "Journal.a.log"); got != nil {
		t.Error("cursor survived ClearCursor")
	}
}

func TestEnsureCommander(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.EnsureCommander(ctx, "Jameson", "F1")
	if err != nil {
		t.Fatalf("EnsureCommander: %v", err)
	}
	b, err := s.EnsureCommander(ctx, "Nova", "F2")
	if err != nil {
		t.Fatalf("EnsureCommander: %v", err)
	}
	again, err := s.EnsureCommander(ctx, "JAMESON", "")
	if err != nil {
		t.Fatalf("EnsureCommander: %v", err)
	}

	if a != 1 || b != 2 || again != a {
		t.Errorf("ids = %d, %d, %d; want 1, 2, 1", a, b, again)
	}
	if _, err := s.EnsureCommander(ctx, "  ", ""); err == nil {
		t.Error("expected error for empty name")
	}

	list, err := s.Commanders(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("Commanders = %v, %v", list, err)
	}
	if list[0].Name != "Jameson" || list[0].FID != "F1" {
		t.Errorf("first commander = %+v", list[0])
	}

	c, err := s.CommanderByName(ctx, "nova")
	if err != nil || c == nil || c.ID != 2 {
		t.Errorf("CommanderByName = %+v, %v", c, err)
	}

	c, err = s.CommanderByID(ctx, a)
	if err != nil || c == nil || c.Name != "Jameson" {
		t.Errorf("CommanderByID(%d) = %+v, %v", a, c, err)
	}
	if c, err := s.CommanderByID(ctx, 99); err != nil || c != nil {
		t.Errorf("CommanderByID(99) = %+v, %v; want nil, nil", c, err)
	}
}

func TestOpen_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(config.StoreConfig{Path: dir})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.EnsureCommander(ctx, "Jameson", ""); err != nil {
		t.Fatalf("EnsureCommander: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	s, err = Open(config.StoreConfig{Path: dir})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	id, err := s.EnsureCommander(ctx, "jameson", "")
	if err != nil || id != 1 {
		t.Errorf("id after reopen = %d, %v", id, err)
	}
}
