// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

import "strings"

type CargoItem struct {
	Name          string `json:"name"`
	NameLocalised string `json:"name_localised,omitempty"`
	Count         int    `json:"count"`
	Stolen        int    `json:"stolen,omitempty"`
	MissionID     int64  `json:"mission_id,omitempty"`
}

// Cargo is a full cargo manifest. HasInventory is false when neither the
// line nor the Cargo.json side-car carried the item list.
type Cargo struct {
	Vessel       string      `json:"vessel"`
	Count        int         `json:"count"`
	Inventory    []CargoItem `json:"inventory,omitempty"`
	HasInventory bool        `json:"has_inventory"`
}

type MarketItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	BuyPrice  int64  `json:"buy_price"`
	SellPrice int64  `json:"sell_price"`
	Stock     int    `json:"stock"`
	Demand    int    `json:"demand"`
}

type Market struct {
	MarketID    int64        `json:"market_id"`
	StationName string       `json:"station_name"`
	StarSystem  string       `json:"star_system"`
	Items       []MarketItem `json:"items,omitempty"`
}

type OutfitItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	BuyPrice int64  `json:"buy_price"`
}

type Outfitting struct {
	MarketID    int64        `json:"market_id"`
	StationName string       `json:"station_name"`
	StarSystem  string       `json:"star_system"`
	Items       []OutfitItem `json:"items,omitempty"`
}

type ShipPrice struct {
	ID        int64  `json:"id"`
	ShipType  string `json:"ship_type"`
	ShipPrice int64  `json:"ship_price"`
}

type Shipyard struct {
	MarketID    int64       `json:"market_id"`
	StationName string      `json:"station_name"`
	StarSystem  string      `json:"star_system"`
	PriceList   []ShipPrice `json:"price_list,omitempty"`
}

type ModuleInfoItem struct {
	Slot     string  `json:"slot"`
	Item     string  `json:"item"`
	Power    float64 `json:"power"`
	Priority int     `json:"priority"`
}

type ModuleInfo struct {
	Modules []ModuleInfoItem `json:"modules,omitempty"`
}

type MaterialCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Materials is the absolute materials inventory written at login.
type Materials struct {
	Raw          []MaterialCount `json:"raw"`
	Manufactured []MaterialCount `json:"manufactured"`
	Encoded      []MaterialCount `json:"encoded"`
}

type MaterialCollected struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

type MaterialDiscarded struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

type MarketBuy struct {
	MarketID  int64  `json:"market_id"`
	Type      string `json:"type"`
	Count     int    `json:"count"`
	BuyPrice  int64  `json:"buy_price"`
	TotalCost int64  `json:"total_cost"`
}

type MarketSell struct {
	MarketID     int64  `json:"market_id"`
	Type         string `json:"type"`
	Count        int    `json:"count"`
	SellPrice    int64  `json:"sell_price"`
	TotalSale    int64  `json:"total_sale"`
	AvgPricePaid int64  `json:"avg_price_paid"`
}

type CollectCargo struct {
	Type   string `json:"type"`
	Stolen bool   `json:"stolen"`
}

type EjectCargo struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	Abandoned bool   `json:"abandoned"`
}

type MiningRefined struct {
	Type string `json:"type"`
}

func (*Cargo) payloadKind() Kind             { return KindCargo }
func (*Market) payloadKind() Kind            { return KindMarket }
func (*Outfitting) payloadKind() Kind        { return KindOutfitting }
func (*Shipyard) payloadKind() Kind          { return KindShipyard }
func (*ModuleInfo) payloadKind() Kind        { return KindModuleInfo }
func (*Materials) payloadKind() Kind         { return KindMaterials }
func (*MaterialCollected) payloadKind() Kind { return KindMaterialCollected }
func (*MaterialDiscarded) payloadKind() Kind { return KindMaterialDiscarded }
func (*MarketBuy) payloadKind() Kind         { return KindMarketBuy }
func (*MarketSell) payloadKind() Kind        { return KindMarketSell }
func (*CollectCargo) payloadKind() Kind      { return KindCollectCargo }
func (*EjectCargo) payloadKind() Kind        { return KindEjectCargo }
func (*MiningRefined) payloadKind() Kind     { return KindMiningRefined }

// CommodityName normalises journal commodity identifiers: "$gold_name;" and
// "Gold" both become "gold".
func CommodityName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, ";")
	s = strings.TrimSuffix(s, "_name")
	return s
}

func parseCargo(f Fields) Payload {
	c := &Cargo{
		Vessel:       f.Str("Vessel"),
		Count:        f.Int("Count"),
		HasInventory: f.Has("Inventory"),
	}
	if c.Vessel == "" {
		c.Vessel = "Ship"
	}
	for _, it := range f.Objects("Inventory") {
		c.Inventory = append(c.Inventory, CargoItem{
			Name:          CommodityName(it.Str("Name")),
			NameLocalised: it.Str("Name_Localised"),
			Count:         it.Int("Count"),
			Stolen:        it.Int("Stolen"),
			MissionID:     it.Long("MissionID"),
		})
	}
	if c.Count == 0 {
		for _, it := range c.Inventory {
			c.Count += it.Count
		}
	}
	return c
}

func parseMaterials(f Fields) Payload {
	read := func(key string) []MaterialCount {
		objs := f.Objects(key)
		out := make([]MaterialCount, 0, len(objs))
		for _, o := range objs {
			out = append(out, MaterialCount{Name: strings.ToLower(o.Str("Name")), Count: o.Int("Count")})
		}
		return out
	}
	return &Materials{Raw: read("Raw"), Manufactured: read("Manufactured"), Encoded: read("Encoded")}
}

//nolint:gochecknoinits // parser registration
func init() {
	register(KindCargo, parseCargo)
	register(KindMarket, func(f Fields) Payload {
		m := &Market{MarketID: f.Long("MarketID"), StationName: f.Str("StationName"), StarSystem: f.Str("StarSystem")}
		for _, it := range f.Objects("Items") {
			m.Items = append(m.Items, MarketItem{
				ID:        it.Long("id"),
				Name:      CommodityName(it.Str("Name")),
				Category:  it.Localised("Category"),
				BuyPrice:  it.Long("BuyPrice"),
				SellPrice: it.Long("SellPrice"),
				Stock:     it.Int("Stock"),
				Demand:    it.Int("Demand"),
			})
		}
		return m
	})
	register(KindOutfitting, func(f Fields) Payload {
		o := &Outfitting{MarketID: f.Long("MarketID"), StationName: f.Str("StationName"), StarSystem: f.Str("StarSystem")}
		for _, it := range f.Objects("Items") {
			o.Items = append(o.Items, OutfitItem{ID: it.Long("id"), Name: strings.ToLower(it.Str("Name")), BuyPrice: it.Long("BuyPrice")})
		}
		return o
	})
	register(KindShipyard, func(f Fields) Payload {
		s := &Shipyard{MarketID: f.Long("MarketID"), StationName: f.Str("StationName"), StarSystem: f.Str("StarSystem")}
		for _, it := range f.Objects("PriceList") {
			s.PriceList = append(s.PriceList, ShipPrice{ID: it.Long("id"), ShipType: strings.ToLower(it.Str("ShipType")), ShipPrice: it.Long("ShipPrice")})
		}
		return s
	})
	register(KindModuleInfo, func(f Fields) Payload {
		m := &ModuleInfo{}
		for _, it := range f.Objects("Modules") {
			m.Modules = append(m.Modules, ModuleInfoItem{
				Slot:     it.Str("Slot"),
				Item:     strings.ToLower(it.Str("Item")),
				Power:    it.Float("Power"),
				Priority: it.Int("Priority"),
			})
		}
		return m
	})
	register(KindMaterials, parseMaterials)
	register(KindMaterialCollected, func(f Fields) Payload {
		return &MaterialCollected{Category: f.Str("Category"), Name: strings.ToLower(f.Str("Name")), Count: f.Int("Count")}
	})
	register(KindMaterialDiscarded, func(f Fields) Payload {
		return &MaterialDiscarded{Category: f.Str("Category"), Name: strings.ToLower(f.Str("Name")), Count: f.Int("Count")}
	})
	register(KindMarketBuy, func(f Fields) Payload {
		return &MarketBuy{
			MarketID:  f.Long("MarketID"),
			Type:      CommodityName(f.Str("Type")),
			Count:     f.Int("Count"),
			BuyPrice:  f.Long("BuyPrice"),
			TotalCost: f.Long("TotalCost"),
		}
	})
	register(KindMarketSell, func(f Fields) Payload {
		return &MarketSell{
			MarketID:     f.Long("MarketID"),
			Type:         CommodityName(f.Str("Type")),
			Count:        f.Int("Count"),
			SellPrice:    f.Long("SellPrice"),
			TotalSale:    f.Long("TotalSale"),
			AvgPricePaid: f.Long("AvgPricePaid"),
		}
	})
	register(KindCollectCargo, func(f Fields) Payload {
		return &CollectCargo{Type: CommodityName(f.Str("Type")), Stolen: f.Bool("Stolen")}
	})
	register(KindEjectCargo, func(f Fields) Payload {
		return &EjectCargo{Type: CommodityName(f.Str("Type")), Count: f.Int("Count"), Abandoned: f.Bool("Abandoned")}
	})
	register(KindMiningRefined, func(f Fields) Payload {
		return &MiningRefined{Type: CommodityName(f.Str("Type"))}
	})
}
