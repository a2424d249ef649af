// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package history

import (
	"strings"

	"github.com/tomtom215/astrographus/internal/accumulator"
	"github.com/tomtom215/astrographus/internal/journal"
	"github.com/tomtom215/astrographus/internal/starscan"
)

// Location is where the commander was at an entry.
type Location struct {
	Name    string        `json:"name"`
	Address int64         `json:"address"`
	StarPos *journal.Vec3 `json:"star_pos,omitempty"` // nil until known
}

// Ref returns the location as a scan-tree system reference.
func (l Location) Ref() starscan.SystemRef {
	return starscan.SystemRef{Name: l.Name, Address: l.Address}
}

// Same reports whether l and o name the same system.
func (l Location) Same(o starscan.SystemRef) bool {
	if l.Address != 0 && o.Address != 0 {
		return l.Address == o.Address
	}
	return l.Name != "" && strings.EqualFold(l.Name, o.Name)
}

// Entry is one retained event plus the world state as of that event. The
// accumulator pointers are shared with later entries until something
// changes; they are never modified. Only System.StarPos is filled in later,
// by coordinate backfill.
type Entry struct {
	Index int            `json:"index"`
	Event *journal.Event `json:"event"`

	System   Location `json:"system"`
	Visits   int      `json:"visits"` // visits to System up to and including this entry
	Docked   bool     `json:"docked"`
	Station  string   `json:"station,omitempty"`
	MarketID int64    `json:"market_id,omitempty"`

	ShipID int64             `json:"ship_id"`
	Ship   *accumulator.Ship `json:"ship,omitempty"`
	Cash   int64             `json:"cash"`

	Ships     *accumulator.ShipInformation `json:"-"`
	Inventory *accumulator.Inventory       `json:"-"`
	Missions  *accumulator.MissionList     `json:"-"`
	Ledger    *accumulator.Ledger          `json:"-"`
	Stats     accumulator.Stats            `json:"-"`
}

// Kind is the entry's event kind.
func (e *Entry) Kind() journal.Kind {
	return e.Event.Kind
}
