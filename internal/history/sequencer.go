// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/astrographus/internal/accumulator"
	"github.com/tomtom215/astrographus/internal/bodyname"
	"github.com/tomtom215/astrographus/internal/journal"
	"github.com/tomtom215/astrographus/internal/logging"
	"github.com/tomtom215/astrographus/internal/merge"
	"github.com/tomtom215/astrographus/internal/metrics"
	"github.com/tomtom215/astrographus/internal/starscan"
)

// Outcome is what Append did with an event.
type Outcome int

const (
	Appended Outcome = iota
	Merged
	Discarded
	Duplicate
	Removed
)

func (o Outcome) String() string {
	switch o {
	case Appended:
		return "appended"
	case Merged:
		return "merged"
	case Discarded:
		return "discarded"
	case Duplicate:
		return "duplicate"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Config controls a Sequencer.
type Config struct {
	// CargoCutover: Cargo manifests older than this are folded into their
	// predecessor when they follow a Cargo, Loadout or LoadGame entry.
	CargoCutover time.Time

	// MergeEnabled is the global chatter-merge toggle.
	MergeEnabled bool

	// Diagnostics receives scan-tree attach problems. Optional.
	Diagnostics starscan.Diagnostics

	// Resolver overrides the default body-name resolver. Optional.
	Resolver *bodyname.Resolver
}

// EventSource streams stored events of one commander in ascending order.
type EventSource interface {
	Replay(ctx context.Context, commander int64, fn func(*journal.Event) error) error
}

// state is the running fold. Reference fields are immutable values
// replaced on change.
type state struct {
	ships      *accumulator.ShipInformation
	modules    *accumulator.ModulesInStore
	shipyards  *accumulator.ShipyardList
	outfitting *accumulator.OutfittingList
	markets    *accumulator.MarketList
	ledger     *accumulator.Ledger
	missions   *accumulator.MissionList
	inventory  *accumulator.Inventory
	stats      accumulator.Stats

	system    Location
	visits    map[string]int
	positions map[string]journal.Vec3
	docked    bool
	station   string
	marketID  int64
}

func newState() state {
	return state{
		ships:      accumulator.NewShipInformation(),
		modules:    accumulator.NewModulesInStore(),
		shipyards:  accumulator.NewShipyardList(),
		outfitting: accumulator.NewOutfittingList(),
		markets:    accumulator.NewMarketList(),
		ledger:     accumulator.NewLedger(),
		missions:   accumulator.NewMissionList(),
		inventory:  accumulator.NewInventory(),
		visits:     map[string]int{},
		positions:  map[string]journal.Vec3{},
	}
}

// Sequencer is the history fold driver. It owns the timeline, the
// accumulators and the scan trees, and is not safe for concurrent use:
// live appends, bulk loads and coordinate backfill all run on the ingest
// worker.
type Sequencer struct {
	cfg     Config
	merger  *merge.Merger
	scans   *starscan.Builder
	entries []*Entry
	seen    map[lineKey]struct{}
	st      state
}

// New creates an empty Sequencer.
func New(cfg Config) *Sequencer {
	s := &Sequencer{cfg: cfg, merger: merge.New(cfg.MergeEnabled)}
	s.Reset()
	return s
}

// Reset discards the timeline and all derived state.
func (s *Sequencer) Reset() {
	opts := []starscan.Option{starscan.WithDiagnostics(s.cfg.Diagnostics)}
	if s.cfg.Resolver != nil {
		opts = append(opts, starscan.WithResolver(s.cfg.Resolver))
	}
	s.scans = starscan.NewBuilder(opts...)
	s.entries = nil
	s.seen = make(map[lineKey]struct{})
	s.st = newState()
}

// lineKey identifies a journal line across rewrites of its file. A file
// that is truncated or replaced restarts its line numbers, so the line's
// timestamp is part of the identity, as it is in the store key.
type lineKey struct {
	file string
	seq  int64
	at   int64
}

func keyOf(ev *journal.Event) lineKey {
	return lineKey{file: ev.File, seq: ev.Seq, at: ev.Time.UnixNano()}
}

// Append folds one event. The fold order is fixed: duplicate guard, merge
// with the previous entry, inventory, removal policy, location, ledger,
// market caches, ships, modules, missions, stats, scan trees. It returns
// the new entry on Appended and the entry that absorbed ev on Merged.
func (s *Sequencer) Append(ev *journal.Event) (*Entry, Outcome) {
	if ev == nil {
		return nil, Discarded
	}
	if ev.File != "" {
		key := keyOf(ev)
		if _, dup := s.seen[key]; dup {
			metrics.EntriesRemoved.WithLabelValues("duplicate").Inc()
			return nil, Duplicate
		}
		s.seen[key] = struct{}{}
	}

	last := s.Last()
	if last != nil {
		out := s.merger.Merge(last.Event, ev)
		metrics.MergeOutcomes.WithLabelValues(out.String()).Inc()
		switch out {
		case merge.Merged:
			s.absorb(ev)
			return last, Merged
		case merge.Discarded:
			return nil, Discarded
		}
	}

	inventory := s.st.inventory.Apply(ev)
	if rule, drop := s.removal(ev, last); drop {
		if inventory != s.st.inventory {
			s.st.inventory = inventory
			last.Inventory = inventory
		}
		metrics.EntriesRemoved.WithLabelValues(rule).Inc()
		return nil, Removed
	}
	s.st.inventory = inventory

	newSystem := s.locate(ev)
	s.st.ledger = s.st.ledger.Apply(ev)
	s.st.shipyards = accumulator.ApplyShipyard(s.st.shipyards, ev)
	s.st.outfitting = accumulator.ApplyOutfitting(s.st.outfitting, ev)
	s.st.markets = accumulator.ApplyMarket(s.st.markets, ev)
	s.st.ships = s.st.ships.Apply(ev)
	s.st.modules = s.st.modules.Apply(ev)
	s.st.missions = s.st.missions.Apply(ev)
	s.st.stats = s.st.stats.Apply(ev, newSystem)
	s.attach(ev)

	e := &Entry{
		Index:     len(s.entries),
		Event:     ev,
		System:    s.st.system,
		Visits:    s.st.visits[visitKey(s.st.system.Ref())],
		Docked:    s.st.docked,
		Station:   s.st.station,
		MarketID:  s.st.marketID,
		Cash:      s.st.ledger.Cash,
		Ships:     s.st.ships,
		Inventory: s.st.inventory,
		Missions:  s.st.missions,
		Ledger:    s.st.ledger,
		Stats:     s.st.stats,
	}
	if ship := s.st.ships.Current(); ship != nil {
		e.ShipID = ship.ID
		e.Ship = ship
	}
	s.entries = append(s.entries, e)
	metrics.EntriesRetained.Inc()
	return e, Appended
}

// absorb applies the part of a merged event that running totals need. The
// merged entry itself keeps its original state pointers.
func (s *Sequencer) absorb(ev *journal.Event) {
	s.st.stats = s.st.stats.Apply(ev, false)
	s.st.ships = s.st.ships.Apply(ev)
}

// Load rebuilds the history of one commander from src. Progress made before
// an error is kept.
func (s *Sequencer) Load(ctx context.Context, src EventSource, commander int64) (int, error) {
	start := time.Now()
	s.Reset()

	err := src.Replay(ctx, commander, func(ev *journal.Event) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Append(ev)
		return nil
	})
	metrics.HistoryRebuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return len(s.entries), fmt.Errorf("load history for commander %d: %w", commander, err)
	}

	logging.Ctx(ctx).Info().
		Int64("commander_id", commander).
		Int("entries", len(s.entries)).
		Int("systems", len(s.scans.Systems())).
		Dur("duration", time.Since(start)).
		Msg("History rebuilt")
	return len(s.entries), nil
}

// Entries returns the timeline. The slice must not be modified.
func (s *Sequencer) Entries() []*Entry {
	return s.entries[:len(s.entries):len(s.entries)]
}

// Len returns the number of entries.
func (s *Sequencer) Len() int {
	return len(s.entries)
}

// Last returns the newest entry, or nil.
func (s *Sequencer) Last() *Entry {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// Scans returns the scan trees.
func (s *Sequencer) Scans() *starscan.Builder {
	return s.scans
}

// Stats returns the running statistics.
func (s *Sequencer) Stats() accumulator.Stats {
	return s.st.stats
}

// locate tracks the current system and docking state. It reports whether
// ev entered a system for the first time.
func (s *Sequencer) locate(ev *journal.Event) bool {
	if arr, ok := journal.Arrived(ev.Payload); ok {
		ref := starscan.SystemRef{Name: arr.StarSystem, Address: arr.SystemAddress}
		key := visitKey(ref)
		jumped := ev.Kind == journal.KindFSDJump || ev.Kind == journal.KindCarrierJump
		newSystem := false
		if jumped || !s.st.system.Same(ref) {
			s.st.visits[key]++
			newSystem = s.st.visits[key] == 1
		}

		loc := Location{Name: arr.StarSystem, Address: arr.SystemAddress}
		if arr.StarPos != nil {
			s.st.positions[key] = *arr.StarPos
		}
		if pos, ok := s.st.positions[key]; ok {
			loc.StarPos = &pos
		}
		s.st.system = loc
		s.st.docked = arr.Docked
		s.st.station = ""
		s.st.marketID = 0
		if arr.Docked {
			s.st.station = arr.StationName
			s.st.marketID = arr.MarketID
		}
		s.scans.System(ref)
		return newSystem
	}

	switch p := ev.Payload.(type) {
	case *journal.Docked:
		s.st.docked = true
		s.st.station = p.StationName
		s.st.marketID = p.MarketID
		if s.st.system.Name == "" && s.st.system.Address == 0 {
			s.st.system = Location{Name: p.StarSystem, Address: p.SystemAddress}
		}
	case *journal.Undocked:
		s.st.docked = false
		s.st.station = ""
		s.st.marketID = 0
	case *journal.Died:
		s.st.docked = false
	}
	return false
}

// attach feeds body events to the scan trees.
func (s *Sequencer) attach(ev *journal.Event) {
	ref := s.st.system.Ref()
	switch p := ev.Payload.(type) {
	case *journal.Scan:
		// Rejections are reported through the diagnostics sink.
		_ = s.scans.AddScan(ref, p)
	case *journal.SAAScanComplete:
		s.scans.AddSAAComplete(ref, p)
	case *journal.FSSDiscoveryScan:
		s.scans.AddDiscoveryScan(ref, p)
	case *journal.FSSAllBodiesFound:
		s.scans.AddAllBodiesFound(ref, p)
	default:
		if sig, ok := journal.SignalsOf(ev.Payload); ok {
			s.scans.AddSignals(ref, sig)
		}
	}
}

// BackfillCoordinates sets the position of every entry in system ref whose
// position is still unknown, and remembers it for later arrivals. It
// returns the number of entries updated.
func (s *Sequencer) BackfillCoordinates(ref starscan.SystemRef, pos journal.Vec3) int {
	s.st.positions[visitKey(ref)] = pos
	if s.st.system.Same(ref) && s.st.system.StarPos == nil {
		p := pos
		s.st.system.StarPos = &p
	}
	n := 0
	for _, e := range s.entries {
		if e.System.StarPos == nil && e.System.Same(ref) {
			p := pos
			e.System.StarPos = &p
			n++
		}
	}
	return n
}

// Unresolved returns up to limit distinct systems that entries visited
// without a known position, most recent first.
func (s *Sequencer) Unresolved(limit int) []starscan.SystemRef {
	var out []starscan.SystemRef
	seen := map[string]bool{}
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		loc := s.entries[i].System
		if loc.StarPos != nil || (loc.Name == "" && loc.Address == 0) {
			continue
		}
		key := visitKey(loc.Ref())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, loc.Ref())
	}
	return out
}

// visitKey identifies a system for visit counting: by name when known,
// else by address.
func visitKey(ref starscan.SystemRef) string {
	if ref.Name != "" {
		return strings.ToLower(ref.Name)
	}
	return "#" + strconv.FormatInt(ref.Address, 10)
}
