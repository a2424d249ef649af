// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

import "strings"

type ShipModule struct {
	Slot     string  `json:"slot"`
	Item     string  `json:"item"`
	On       bool    `json:"on"`
	Priority int     `json:"priority"`
	Health   float64 `json:"health"`
	Value    int64   `json:"value,omitempty"`
}

// Loadout is the full fitting of the current ship.
type Loadout struct {
	Ship          string       `json:"ship"`
	ShipID        int64        `json:"ship_id"`
	ShipName      string       `json:"ship_name"`
	ShipIdent     string       `json:"ship_ident"`
	HullValue     int64        `json:"hull_value"`
	ModulesValue  int64        `json:"modules_value"`
	Rebuy         int64        `json:"rebuy"`
	FuelCapacity  float64      `json:"fuel_capacity"`
	CargoCapacity int          `json:"cargo_capacity"`
	Modules       []ShipModule `json:"modules"`
}

// ShipyardBuy either stores or sells the current ship; the matching ID is
// non-nil.
type ShipyardBuy struct {
	MarketID     int64  `json:"market_id"`
	ShipType     string `json:"ship_type"`
	ShipPrice    int64  `json:"ship_price"`
	StoreOldShip string `json:"store_old_ship,omitempty"`
	StoreShipID  *int64 `json:"store_ship_id,omitempty"`
	SellOldShip  string `json:"sell_old_ship,omitempty"`
	SellShipID   *int64 `json:"sell_ship_id,omitempty"`
	SellPrice    int64  `json:"sell_price,omitempty"`
}

type ShipyardSell struct {
	ShipType   string `json:"ship_type"`
	SellShipID int64  `json:"sell_ship_id"`
	ShipPrice  int64  `json:"ship_price"`
	System     string `json:"system,omitempty"`
}

type ShipyardNew struct {
	ShipType  string `json:"ship_type"`
	NewShipID int64  `json:"new_ship_id"`
}

type ShipyardSwap struct {
	ShipType     string `json:"ship_type"`
	ShipID       int64  `json:"ship_id"`
	StoreOldShip string `json:"store_old_ship,omitempty"`
	StoreShipID  *int64 `json:"store_ship_id,omitempty"`
	SellOldShip  string `json:"sell_old_ship,omitempty"`
	SellShipID   *int64 `json:"sell_ship_id,omitempty"`
}

type ShipyardTransfer struct {
	ShipType      string `json:"ship_type"`
	ShipID        int64  `json:"ship_id"`
	System        string `json:"system"`
	TransferPrice int64  `json:"transfer_price"`
}

type SetUserShipName struct {
	Ship         string `json:"ship"`
	ShipID       int64  `json:"ship_id"`
	UserShipName string `json:"user_ship_name"`
	UserShipID   string `json:"user_ship_id"`
}

type ModuleBuy struct {
	Slot       string `json:"slot"`
	BuyItem    string `json:"buy_item"`
	BuyPrice   int64  `json:"buy_price"`
	SellItem   string `json:"sell_item,omitempty"`
	SellPrice  int64  `json:"sell_price,omitempty"`
	StoredItem string `json:"stored_item,omitempty"`
	Ship       string `json:"ship"`
	ShipID     int64  `json:"ship_id"`
}

type ModuleSell struct {
	Slot      string `json:"slot"`
	SellItem  string `json:"sell_item"`
	SellPrice int64  `json:"sell_price"`
	Ship      string `json:"ship"`
	ShipID    int64  `json:"ship_id"`
}

type ModuleStore struct {
	Slot            string `json:"slot"`
	StoredItem      string `json:"stored_item"`
	Ship            string `json:"ship"`
	ShipID          int64  `json:"ship_id"`
	ReplacementItem string `json:"replacement_item,omitempty"`
	Hot             bool   `json:"hot,omitempty"`
}

type ModuleRetrieve struct {
	Slot          string `json:"slot"`
	RetrievedItem string `json:"retrieved_item"`
	Ship          string `json:"ship"`
	ShipID        int64  `json:"ship_id"`
	SwapOutItem   string `json:"swap_out_item,omitempty"`
	Hot           bool   `json:"hot,omitempty"`
}

type StoredModule struct {
	Name         string `json:"name"`
	StorageSlot  int    `json:"storage_slot"`
	StarSystem   string `json:"star_system,omitempty"`
	MarketID     int64  `json:"market_id,omitempty"`
	TransferCost int64  `json:"transfer_cost,omitempty"`
	Hot          bool   `json:"hot,omitempty"`
	InTransit    bool   `json:"in_transit,omitempty"`
}

// StoredModules is the absolute list of modules in storage.
type StoredModules struct {
	MarketID int64          `json:"market_id"`
	Items    []StoredModule `json:"items"`
}

func (*Loadout) payloadKind() Kind          { return KindLoadout }
func (*ShipyardBuy) payloadKind() Kind      { return KindShipyardBuy }
func (*ShipyardSell) payloadKind() Kind     { return KindShipyardSell }
func (*ShipyardNew) payloadKind() Kind      { return KindShipyardNew }
func (*ShipyardSwap) payloadKind() Kind     { return KindShipyardSwap }
func (*ShipyardTransfer) payloadKind() Kind { return KindShipyardTransfer }
func (*SetUserShipName) payloadKind() Kind  { return KindSetUserShipName }
func (*ModuleBuy) payloadKind() Kind        { return KindModuleBuy }
func (*ModuleSell) payloadKind() Kind       { return KindModuleSell }
func (*ModuleStore) payloadKind() Kind      { return KindModuleStore }
func (*ModuleRetrieve) payloadKind() Kind   { return KindModuleRetrieve }
func (*StoredModules) payloadKind() Kind    { return KindStoredModules }

func int64Ptr(f Fields, key string) *int64 {
	n, ok := f.Int64(key)
	if !ok {
		return nil
	}
	return &n
}

func lower(f Fields, keys ...string) string {
	return strings.ToLower(f.Str(keys...))
}

func parseLoadout(f Fields) Payload {
	l := &Loadout{
		Ship:          lower(f, "Ship"),
		ShipID:        f.Long("ShipID"),
		ShipName:      f.Str("ShipName"),
		ShipIdent:     f.Str("ShipIdent"),
		HullValue:     f.Long("HullValue"),
		ModulesValue:  f.Long("ModulesValue"),
		Rebuy:         f.Long("Rebuy"),
		CargoCapacity: f.Int("CargoCapacity"),
	}
	if fc := f.Obj("FuelCapacity"); fc != nil {
		l.FuelCapacity = fc.Float("Main")
	}
	for _, m := range f.Objects("Modules") {
		l.Modules = append(l.Modules, ShipModule{
			Slot:     m.Str("Slot"),
			Item:     lower(m, "Item"),
			On:       m.Bool("On"),
			Priority: m.Int("Priority"),
			Health:   m.Float("Health"),
			Value:    m.Long("Value"),
		})
	}
	return l
}

//nolint:gochecknoinits // parser registration
func init() {
	register(KindLoadout, parseLoadout)
	register(KindShipyardBuy, func(f Fields) Payload {
		return &ShipyardBuy{
			MarketID:     f.Long("MarketID"),
			ShipType:     lower(f, "ShipType"),
			ShipPrice:    f.Long("ShipPrice"),
			StoreOldShip: lower(f, "StoreOldShip"),
			StoreShipID:  int64Ptr(f, "StoreShipID"),
			SellOldShip:  lower(f, "SellOldShip"),
			SellShipID:   int64Ptr(f, "SellShipID"),
			SellPrice:    f.Long("SellPrice"),
		}
	})
	register(KindShipyardSell, func(f Fields) Payload {
		return &ShipyardSell{
			ShipType:   lower(f, "ShipType"),
			SellShipID: f.Long("SellShipID"),
			ShipPrice:  f.Long("ShipPrice"),
			System:     f.Str("System"),
		}
	})
	register(KindShipyardNew, func(f Fields) Payload {
		return &ShipyardNew{ShipType: lower(f, "ShipType"), NewShipID: f.Long("NewShipID")}
	})
	register(KindShipyardSwap, func(f Fields) Payload {
		return &ShipyardSwap{
			ShipType:     lower(f, "ShipType"),
			ShipID:       f.Long("ShipID"),
			StoreOldShip: lower(f, "StoreOldShip"),
			StoreShipID:  int64Ptr(f, "StoreShipID"),
			SellOldShip:  lower(f, "SellOldShip"),
			SellShipID:   int64Ptr(f, "SellShipID"),
		}
	})
	register(KindShipyardTransfer, func(f Fields) Payload {
		return &ShipyardTransfer{
			ShipType:      lower(f, "ShipType"),
			ShipID:        f.Long("ShipID"),
			System:        f.Str("System"),
			TransferPrice: f.Long("TransferPrice"),
		}
	})
	register(KindSetUserShipName, func(f Fields) Payload {
		return &SetUserShipName{
			Ship:         lower(f, "Ship"),
			ShipID:       f.Long("ShipID"),
			UserShipName: f.Str("UserShipName"),
			UserShipID:   f.Str("UserShipId", "UserShipID"),
		}
	})
	register(KindModuleBuy, func(f Fields) Payload {
		return &ModuleBuy{
			Slot:       f.Str("Slot"),
			BuyItem:    lower(f, "BuyItem"),
			BuyPrice:   f.Long("BuyPrice"),
			SellItem:   lower(f, "SellItem"),
			SellPrice:  f.Long("SellPrice"),
			StoredItem: lower(f, "StoredItem"),
			Ship:       lower(f, "Ship"),
			ShipID:     f.Long("ShipID"),
		}
	})
	register(KindModuleSell, func(f Fields) Payload {
		return &ModuleSell{
			Slot:      f.Str("Slot"),
			SellItem:  lower(f, "SellItem"),
			SellPrice: f.Long("SellPrice"),
			Ship:      lower(f, "Ship"),
			ShipID:    f.Long("ShipID"),
		}
	})
	register(KindModuleStore, func(f Fields) Payload {
		return &ModuleStore{
			Slot:            f.Str("Slot"),
			StoredItem:      lower(f, "StoredItem"),
			Ship:            lower(f, "Ship"),
			ShipID:          f.Long("ShipID"),
			ReplacementItem: lower(f, "ReplacementItem"),
			Hot:             f.Bool("Hot"),
		}
	})
	register(KindModuleRetrieve, func(f Fields) Payload {
		return &ModuleRetrieve{
			Slot:          f.Str("Slot"),
			RetrievedItem: lower(f, "RetrievedItem"),
			Ship:          lower(f, "Ship"),
			ShipID:        f.Long("ShipID"),
			SwapOutItem:   lower(f, "SwapOutItem"),
			Hot:           f.Bool("Hot"),
		}
	})
	register(KindStoredModules, func(f Fields) Payload {
		s := &StoredModules{MarketID: f.Long("MarketID")}
		for _, it := range f.Objects("Items") {
			s.Items = append(s.Items, StoredModule{
				Name:         lower(it, "Name"),
				StorageSlot:  it.Int("StorageSlot"),
				StarSystem:   it.Str("StarSystem"),
				MarketID:     it.Long("MarketID"),
				TransferCost: it.Long("TransferCost"),
				Hot:          it.Bool("Hot"),
				InTransit:    it.Bool("InTransit"),
			})
		}
		return s
	})
}
