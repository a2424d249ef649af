// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package accumulator

import (
	"sort"
	"strings"

	"github.com/tomtom215/astrographus/internal/journal"
)

// ShipState is where a ship currently is relative to the commander.
type ShipState string

const (
	ShipOwned  ShipState = "owned"
	ShipStored ShipState = "stored"
	ShipSold   ShipState = "sold"
)

// Ship is one ship record. Records are never modified after they have been
// published in a ShipInformation; changes go through clone.
type Ship struct {
	ID            int64                         `json:"id"`
	Type          string                        `json:"type"`
	Name          string                        `json:"name,omitempty"`
	Ident         string                        `json:"ident,omitempty"`
	State         ShipState                     `json:"state"`
	StoredSystem  string                        `json:"stored_system,omitempty"`
	HullValue     int64                         `json:"hull_value,omitempty"`
	ModulesValue  int64                         `json:"modules_value,omitempty"`
	Rebuy         int64                         `json:"rebuy,omitempty"`
	FuelCapacity  float64                       `json:"fuel_capacity,omitempty"`
	FuelLevel     float64                       `json:"fuel_level,omitempty"`
	CargoCapacity int                           `json:"cargo_capacity,omitempty"`
	Modules       map[string]journal.ShipModule `json:"modules,omitempty"` // by slot
}

func (s *Ship) clone() *Ship {
	c := *s
	if s.Modules != nil {
		c.Modules = make(map[string]journal.ShipModule, len(s.Modules))
		for k, v := range s.Modules {
			c.Modules[k] = v
		}
	}
	return &c
}

// ShipInformation is the fleet as of one history entry.
type ShipInformation struct {
	CurrentID int64           `json:"current_id"`
	HasShip   bool            `json:"has_ship"`
	Ships     map[int64]*Ship `json:"ships"`
}

// NewShipInformation returns an empty fleet.
func NewShipInformation() *ShipInformation {
	return &ShipInformation{Ships: map[int64]*Ship{}}
}

// Current returns the ship the commander is flying, or nil.
func (si *ShipInformation) Current() *Ship {
	if si == nil || !si.HasShip {
		return nil
	}
	return si.Ships[si.CurrentID]
}

// Owned returns owned and stored ships ordered by id.
func (si *ShipInformation) Owned() []*Ship {
	var out []*Ship
	for _, s := range si.Ships {
		if s.State != ShipSold {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// shipEdit collects changes against a ShipInformation and publishes a new
// value only when something was touched.
type shipEdit struct {
	base    *ShipInformation
	out     *ShipInformation
	touched map[int64]bool
}

func (si *ShipInformation) edit() *shipEdit {
	return &shipEdit{base: si}
}

func (e *shipEdit) init() {
	if e.out != nil {
		return
	}
	ships := make(map[int64]*Ship, len(e.base.Ships)+1)
	for k, v := range e.base.Ships {
		ships[k] = v
	}
	e.out = &ShipInformation{CurrentID: e.base.CurrentID, HasShip: e.base.HasShip, Ships: ships}
	e.touched = make(map[int64]bool)
}

// ship returns a private copy of the ship with id, creating it with typ when
// unknown.
func (e *shipEdit) ship(id int64, typ string) *Ship {
	e.init()
	if e.touched[id] {
		return e.out.Ships[id]
	}
	s, ok := e.out.Ships[id]
	if ok {
		s = s.clone()
	} else {
		s = &Ship{ID: id, State: ShipOwned}
	}
	if typ != "" {
		s.Type = strings.ToLower(typ)
	}
	e.out.Ships[id] = s
	e.touched[id] = true
	return s
}

func (e *shipEdit) setCurrent(id int64) {
	e.init()
	e.out.CurrentID = id
	e.out.HasShip = true
}

func (e *shipEdit) current() *Ship {
	if !e.base.HasShip && (e.out == nil || !e.out.HasShip) {
		return nil
	}
	id := e.base.CurrentID
	if e.out != nil {
		id = e.out.CurrentID
	}
	return e.ship(id, "")
}

func (e *shipEdit) result() *ShipInformation {
	if e.out == nil {
		return e.base
	}
	return e.out
}

// Apply folds one event into the fleet. It returns si itself when the event
// does not concern ships.
func (si *ShipInformation) Apply(ev *journal.Event) *ShipInformation {
	e := si.edit()
	switch p := ev.Payload.(type) {
	case *journal.LoadGame:
		if p.Ship == "" || strings.EqualFold(p.Ship, "TestBuggy") || strings.HasPrefix(strings.ToLower(p.Ship), "suit") {
			return si
		}
		s := e.ship(p.ShipID, p.Ship)
		s.State = ShipOwned
		s.StoredSystem = ""
		if p.ShipName != "" {
			s.Name = p.ShipName
		}
		if p.ShipIdent != "" {
			s.Ident = p.ShipIdent
		}
		e.setCurrent(p.ShipID)

	case *journal.Loadout:
		s := e.ship(p.ShipID, p.Ship)
		s.State = ShipOwned
		s.StoredSystem = ""
		s.Name, s.Ident = p.ShipName, p.ShipIdent
		s.HullValue, s.ModulesValue, s.Rebuy = p.HullValue, p.ModulesValue, p.Rebuy
		s.FuelCapacity, s.CargoCapacity = p.FuelCapacity, p.CargoCapacity
		s.Modules = make(map[string]journal.ShipModule, len(p.Modules))
		for _, m := range p.Modules {
			s.Modules[m.Slot] = m
		}
		e.setCurrent(p.ShipID)

	case *journal.ShipyardBuy:
		if p.StoreShipID != nil {
			s := e.ship(*p.StoreShipID, p.StoreOldShip)
			s.State = ShipStored
		}
		if p.SellShipID != nil {
			s := e.ship(*p.SellShipID, p.SellOldShip)
			s.State = ShipSold
		}
		// The new ship's id arrives with ShipyardNew.

	case *journal.ShipyardNew:
		s := e.ship(p.NewShipID, p.ShipType)
		s.State = ShipOwned
		e.setCurrent(p.NewShipID)

	case *journal.ShipyardSwap:
		if p.StoreShipID != nil {
			e.ship(*p.StoreShipID, p.StoreOldShip).State = ShipStored
		}
		if p.SellShipID != nil {
			e.ship(*p.SellShipID, p.SellOldShip).State = ShipSold
		}
		s := e.ship(p.ShipID, p.ShipType)
		s.State = ShipOwned
		s.StoredSystem = ""
		e.setCurrent(p.ShipID)

	case *journal.ShipyardSell:
		e.ship(p.SellShipID, p.ShipType).State = ShipSold

	case *journal.ShipyardTransfer:
		s := e.ship(p.ShipID, p.ShipType)
		s.State = ShipStored
		s.StoredSystem = p.System

	case *journal.SetUserShipName:
		s := e.ship(p.ShipID, p.Ship)
		s.Name, s.Ident = p.UserShipName, p.UserShipID

	case *journal.ModuleBuy:
		s := e.ship(p.ShipID, p.Ship)
		setModule(s, p.Slot, p.BuyItem)
	case *journal.ModuleSell:
		s := e.ship(p.ShipID, p.Ship)
		delete(s.Modules, p.Slot)
	case *journal.ModuleStore:
		s := e.ship(p.ShipID, p.Ship)
		if p.ReplacementItem != "" {
			setModule(s, p.Slot, p.ReplacementItem)
		} else {
			delete(s.Modules, p.Slot)
		}
	case *journal.ModuleRetrieve:
		s := e.ship(p.ShipID, p.Ship)
		setModule(s, p.Slot, p.RetrievedItem)

	case *journal.FuelScoop:
		if s := e.current(); s != nil {
			s.FuelLevel = p.Total
		}
	case *journal.FSDJump:
		if s := e.current(); s != nil && p.FuelLevel > 0 {
			s.FuelLevel = p.FuelLevel
		}
	case *journal.RefuelAll:
		if s := e.current(); s != nil && s.FuelCapacity > 0 {
			s.FuelLevel = s.FuelCapacity
		}
	}
	return e.result()
}

func setModule(s *Ship, slot, item string) {
	if s.Modules == nil {
		s.Modules = make(map[string]journal.ShipModule)
	}
	m := s.Modules[slot]
	m.Slot = slot
	m.Item = strings.ToLower(item)
	m.On = true
	if m.Health == 0 {
		m.Health = 1
	}
	s.Modules[slot] = m
}
