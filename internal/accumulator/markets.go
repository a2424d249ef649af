// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package accumulator

import (
	"time"

	"github.com/tomtom215/astrographus/internal/journal"
)

// Snapshot is the last listing seen at one market.
type Snapshot[T any] struct {
	MarketID    int64     `json:"market_id"`
	StationName string    `json:"station_name"`
	StarSystem  string    `json:"star_system"`
	Seen        time.Time `json:"seen"`
	Items       []T       `json:"items"`
}

// MarketCache keeps the newest listing per market id. Identical repeat
// listings leave the cache unchanged.
type MarketCache[T comparable] struct {
	Markets map[int64]*Snapshot[T] `json:"markets"`
}

func newMarketCache[T comparable]() *MarketCache[T] {
	return &MarketCache[T]{Markets: map[int64]*Snapshot[T]{}}
}

// Get returns the listing for market id, or nil.
func (c *MarketCache[T]) Get(id int64) *Snapshot[T] {
	return c.Markets[id]
}

func (c *MarketCache[T]) put(s *Snapshot[T]) *MarketCache[T] {
	if old, ok := c.Markets[s.MarketID]; ok && sameItems(old.Items, s.Items) {
		return c
	}
	m := make(map[int64]*Snapshot[T], len(c.Markets)+1)
	for k, v := range c.Markets {
		m[k] = v
	}
	m[s.MarketID] = s
	return &MarketCache[T]{Markets: m}
}

func sameItems[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ShipyardList caches shipyard price lists.
type ShipyardList = MarketCache[journal.ShipPrice]

// OutfittingList caches outfitting module lists.
type OutfittingList = MarketCache[journal.OutfitItem]

// MarketList caches commodity market listings.
type MarketList = MarketCache[journal.MarketItem]

func NewShipyardList() *ShipyardList     { return newMarketCache[journal.ShipPrice]() }
func NewOutfittingList() *OutfittingList { return newMarketCache[journal.OutfitItem]() }
func NewMarketList() *MarketList         { return newMarketCache[journal.MarketItem]() }

// ApplyShipyard folds a Shipyard event with a price list.
func ApplyShipyard(c *ShipyardList, ev *journal.Event) *ShipyardList {
	p, ok := journal.As[*journal.Shipyard](ev)
	if !ok || len(p.PriceList) == 0 {
		return c
	}
	return c.put(&Snapshot[journal.ShipPrice]{
		MarketID: p.MarketID, StationName: p.StationName, StarSystem: p.StarSystem,
		Seen: ev.Time, Items: append([]journal.ShipPrice(nil), p.PriceList...),
	})
}

// ApplyOutfitting folds an Outfitting event with an item list.
func ApplyOutfitting(c *OutfittingList, ev *journal.Event) *OutfittingList {
	p, ok := journal.As[*journal.Outfitting](ev)
	if !ok || len(p.Items) == 0 {
		return c
	}
	return c.put(&Snapshot[journal.OutfitItem]{
		MarketID: p.MarketID, StationName: p.StationName, StarSystem: p.StarSystem,
		Seen: ev.Time, Items: append([]journal.OutfitItem(nil), p.Items...),
	})
}

// ApplyMarket folds a Market event with an item list.
func ApplyMarket(c *MarketList, ev *journal.Event) *MarketList {
	p, ok := journal.As[*journal.Market](ev)
	if !ok || len(p.Items) == 0 {
		return c
	}
	return c.put(&Snapshot[journal.MarketItem]{
		MarketID: p.MarketID, StationName: p.StationName, StarSystem: p.StarSystem,
		Seen: ev.Time, Items: append([]journal.MarketItem(nil), p.Items...),
	})
}
