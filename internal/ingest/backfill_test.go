// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package ingest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/history"
	"github.com/tomtom215/astrographus/internal/journal"
	"github.com/tomtom215/astrographus/internal/lookup"
	"github.com/tomtom215/astrographus/internal/starscan"
)

type fakeLookup struct {
	mu      sync.Mutex
	systems map[string]*lookup.System
	bodies  map[string]*lookup.BodyList
	down    bool
	calls   []string
}

func (f *fakeLookup) System(_ context.Context, key lookup.SystemKey) (*lookup.System, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "system:"+key.Name)
	if f.down {
		return nil, fmt.Errorf("%w: test outage", lookup.ErrUnavailable)
	}
	return f.systems[key.Name], nil
}

func (f *fakeLookup) Bodies(_ context.Context, key lookup.SystemKey) (*lookup.BodyList, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "bodies:"+key.Name)
	if f.down {
		return nil, false, fmt.Errorf("%w: test outage", lookup.ErrUnavailable)
	}
	return f.bodies[key.Name], false, nil
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newAlphaCentauriLookup() *fakeLookup {
	one := 1
	return &fakeLookup{
		systems: map[string]*lookup.System{
			"Alpha Centauri": {Name: "Alpha Centauri", Address: 1458376315610, Coords: &journal.Vec3{X: 3.03125, Y: -0.09375, Z: 3.15625}},
		},
		bodies: map[string]*lookup.BodyList{
			"Alpha Centauri": {
				System:    lookup.SystemKey{Name: "Alpha Centauri", Address: 1458376315610},
				BodyCount: 1,
				Bodies: []lookup.Body{{
					Name:          "Alpha Centauri A",
					BodyID:        &one,
					Type:          "Star",
					SubType:       "G (White-Yellow) Star",
					SpectralClass: "G2",
					IsMainStar:    true,
					SolarRadius:   1.2,
				}},
			},
		},
	}
}

func TestBackfillResolvesCoordinates(t *testing.T) {
	dir := t.TempDir()
	writeJournal(t, dir, firstFile, firstSession)

	m, st := newTestMonitor(t, dir)
	ctx := context.Background()
	if _, err := m.Poll(ctx); err != nil {
		t.Fatal(err)
	}
	c, _ := st.CommanderByName(ctx, "Jameson")
	if c == nil {
		t.Fatal("commander not registered")
	}

	refs := m.Unresolved(10)[c.ID]
	if len(refs) != 1 || refs[0].Name != "Alpha Centauri" {
		t.Fatalf("Unresolved() = %+v, want Alpha Centauri", refs)
	}

	svc := newAlphaCentauriLookup()
	b := NewBackfiller(m, svc, config.LookupConfig{BackfillBatch: 10})
	if got := b.RunOnce(ctx); got != 2 {
		t.Fatalf("RunOnce() = %d, want 2 (coordinates and bodies)", got)
	}

	// Results are applied by the worker on its next tick.
	if len(m.Unresolved(10)[c.ID]) != 1 {
		t.Error("results applied before the next tick")
	}
	if _, err := m.Poll(ctx); err != nil {
		t.Fatal(err)
	}

	if refs := m.Unresolved(10)[c.ID]; len(refs) != 0 {
		t.Errorf("Unresolved() after backfill = %+v", refs)
	}
	last := lastEntry(t, m, c.ID)
	if last.System.StarPos == nil || last.System.StarPos.X != 3.03125 {
		t.Errorf("StarPos = %+v, want backfilled coordinates", last.System.StarPos)
	}
	m.View(c.ID, func(seq *history.Sequencer) {
		sys := seq.Scans().Find(starscan.SystemRef{Name: "Alpha Centauri", Address: 1458376315610})
		if sys == nil {
			t.Error("looked-up bodies did not create the system tree")
		}
	})

	calls := svc.callCount()
	if got := b.RunOnce(ctx); got != 0 {
		t.Errorf("second RunOnce() = %d, want 0", got)
	}
	if svc.callCount() != calls {
		t.Errorf("second pass made %d lookups, want none", svc.callCount()-calls)
	}
}

func TestBackfillSkipsWhileRebuilding(t *testing.T) {
	dir := t.TempDir()
	writeJournal(t, dir, firstFile, firstSession)

	m, _ := newTestMonitor(t, dir)
	if _, err := m.Poll(context.Background()); err != nil {
		t.Fatal(err)
	}

	svc := newAlphaCentauriLookup()
	b := NewBackfiller(m, svc, config.LookupConfig{})

	m.rebuilding.Store(true)
	if got := b.RunOnce(context.Background()); got != 0 {
		t.Errorf("RunOnce() while rebuilding = %d, want 0", got)
	}
	if svc.callCount() != 0 {
		t.Errorf("lookups while rebuilding = %d, want 0", svc.callCount())
	}
	m.rebuilding.Store(false)

	if got := b.RunOnce(context.Background()); got == 0 {
		t.Error("RunOnce() after rebuild offered nothing")
	}
}

func TestBackfillUnavailableRetriesLater(t *testing.T) {
	dir := t.TempDir()
	writeJournal(t, dir, firstFile, firstSession)

	m, st := newTestMonitor(t, dir)
	ctx := context.Background()
	if _, err := m.Poll(ctx); err != nil {
		t.Fatal(err)
	}
	c, _ := st.CommanderByName(ctx, "Jameson")

	svc := newAlphaCentauriLookup()
	svc.down = true
	b := NewBackfiller(m, svc, config.LookupConfig{})
	if got := b.RunOnce(ctx); got != 0 {
		t.Errorf("RunOnce() during outage = %d, want 0", got)
	}

	svc.mu.Lock()
	svc.down = false
	svc.mu.Unlock()
	if got := b.RunOnce(ctx); got != 2 {
		t.Errorf("RunOnce() after outage = %d, want 2", got)
	}
	if _, err := m.Poll(ctx); err != nil {
		t.Fatal(err)
	}
	if refs := m.Unresolved(10)[c.ID]; len(refs) != 0 {
		t.Errorf("Unresolved() = %+v, want none", refs)
	}
}
