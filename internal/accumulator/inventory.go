// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package accumulator

import (
	"strings"

	"github.com/tomtom215/astrographus/internal/journal"
)

// Inventory is materials by category and commodities carried in the ship's
// hold. Names are lower-case journal symbols.
type Inventory struct {
	Materials   map[string]map[string]int `json:"materials"` // category -> name -> count
	Commodities map[string]int            `json:"commodities"`
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{Materials: map[string]map[string]int{}, Commodities: map[string]int{}}
}

// CommodityCount returns the number of units of name held.
func (inv *Inventory) CommodityCount(name string) int {
	return inv.Commodities[journal.CommodityName(name)]
}

// Apply folds one event into the inventory. Absolute events (Materials,
// Cargo with an item list) replace their half; everything else adjusts it.
func (inv *Inventory) Apply(ev *journal.Event) *Inventory {
	switch p := ev.Payload.(type) {
	case *journal.Materials:
		mats := map[string]map[string]int{
			"raw":          counts(p.Raw),
			"manufactured": counts(p.Manufactured),
			"encoded":      counts(p.Encoded),
		}
		return &Inventory{Materials: mats, Commodities: inv.Commodities}
	case *journal.MaterialCollected:
		return inv.material(p.Category, p.Name, p.Count)
	case *journal.MaterialDiscarded:
		return inv.material(p.Category, p.Name, -p.Count)
	case *journal.MissionCompleted:
		out := inv
		for _, r := range p.MaterialsReward {
			out = out.material(r.Category, r.Name, r.Count)
		}
		for _, r := range p.CommodityReward {
			out = out.commodity(r.Name, r.Count)
		}
		if p.DeliveredCommodity != "" {
			out = out.commodity(p.DeliveredCommodity, -p.DeliveredCount)
		}
		return out

	case *journal.Cargo:
		if !p.HasInventory || (p.Vessel != "" && !strings.EqualFold(p.Vessel, "Ship")) {
			return inv
		}
		c := make(map[string]int, len(p.Inventory))
		for _, it := range p.Inventory {
			c[journal.CommodityName(it.Name)] += it.Count
		}
		return &Inventory{Materials: inv.Materials, Commodities: c}
	case *journal.MarketBuy:
		return inv.commodity(p.Type, p.Count)
	case *journal.MarketSell:
		return inv.commodity(p.Type, -p.Count)
	case *journal.CollectCargo:
		return inv.commodity(p.Type, 1)
	case *journal.MiningRefined:
		return inv.commodity(p.Type, 1)
	case *journal.EjectCargo:
		return inv.commodity(p.Type, -p.Count)
	}
	return inv
}

func counts(list []journal.MaterialCount) map[string]int {
	m := make(map[string]int, len(list))
	for _, mc := range list {
		m[strings.ToLower(mc.Name)] = mc.Count
	}
	return m
}

func (inv *Inventory) material(category, name string, delta int) *Inventory {
	if delta == 0 || name == "" {
		return inv
	}
	category = strings.ToLower(category)
	name = strings.ToLower(name)

	mats := make(map[string]map[string]int, len(inv.Materials)+1)
	for k, v := range inv.Materials {
		mats[k] = v
	}
	cat := make(map[string]int, len(mats[category])+1)
	for k, v := range mats[category] {
		cat[k] = v
	}
	if n := cat[name] + delta; n > 0 {
		cat[name] = n
	} else {
		delete(cat, name)
	}
	mats[category] = cat
	return &Inventory{Materials: mats, Commodities: inv.Commodities}
}

func (inv *Inventory) commodity(name string, delta int) *Inventory {
	name = journal.CommodityName(name)
	if delta == 0 || name == "" {
		return inv
	}
	c := make(map[string]int, len(inv.Commodities)+1)
	for k, v := range inv.Commodities {
		c[k] = v
	}
	if n := c[name] + delta; n > 0 {
		c[name] = n
	} else {
		delete(c, name)
	}
	return &Inventory{Materials: inv.Materials, Commodities: c}
}
