// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package accumulator

import (
	"testing"
	"time"

	"github.com/tomtom215/astrographus/internal/journal"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func event(kind journal.Kind, p journal.Payload) *journal.Event {
	return &journal.Event{Kind: kind, Time: t0, Payload: p}
}

func i64(v int64) *int64 { return &v }

func TestShipInformationCopyOnWrite(t *testing.T) {
	ships := NewShipInformation()
	ships = ships.Apply(event(journal.KindLoadout, &journal.Loadout{
		Ship: "Anaconda", ShipID: 7, ShipName: "Deep Space", FuelCapacity: 32,
		Modules: []journal.ShipModule{{Slot: "FrameShiftDrive", Item: "int_hyperdrive_size6_class5", On: true, Health: 1}},
	}))
	before := ships
	beforeShip := before.Current()

	after := ships.Apply(event(journal.KindModuleBuy, &journal.ModuleBuy{
		Slot: "FrameShiftDrive", BuyItem: "Int_Hyperdrive_Size6_Class2", ShipID: 7, Ship: "anaconda",
	}))

	if after == before {
		t.Fatal("Apply returned the same value after a module change")
	}
	if got := beforeShip.Modules["FrameShiftDrive"].Item; got != "int_hyperdrive_size6_class5" {
		t.Errorf("old snapshot changed: FSD = %q", got)
	}
	if got := after.Current().Modules["FrameShiftDrive"].Item; got != "int_hyperdrive_size6_class2" {
		t.Errorf("new snapshot FSD = %q", got)
	}
	if before.Apply(event(journal.KindMusic, &journal.Music{Track: "Exploration"})) != before {
		t.Error("unrelated event produced a new value")
	}
}

func TestShipInformationFleet(t *testing.T) {
	steps := []*journal.Event{
		event(journal.KindLoadGame, &journal.LoadGame{Commander: "Jameson", Ship: "SideWinder", ShipID: 1, Credits: 1000}),
		event(journal.KindShipyardBuy, &journal.ShipyardBuy{ShipType: "cobramkiii", ShipPrice: 300, StoreOldShip: "SideWinder", StoreShipID: i64(1)}),
		event(journal.KindShipyardNew, &journal.ShipyardNew{ShipType: "cobramkiii", NewShipID: 2}),
		event(journal.KindShipyardTransfer, &journal.ShipyardTransfer{ShipType: "SideWinder", ShipID: 1, System: "Lave", TransferPrice: 40}),
		event(journal.KindSetUserShipName, &journal.SetUserShipName{Ship: "cobramkiii", ShipID: 2, UserShipName: "Hauler", UserShipID: "HL-01"}),
		event(journal.KindShipyardSwap, &journal.ShipyardSwap{ShipType: "SideWinder", ShipID: 1, SellOldShip: "CobraMkIII", SellShipID: i64(2)}),
	}
	ships := NewShipInformation()
	for _, ev := range steps {
		ships = ships.Apply(ev)
	}

	tests := []struct {
		id    int64
		state ShipState
		name  string
	}{
		{1, ShipOwned, ""},
		{2, ShipSold, "Hauler"},
	}
	for _, tt := range tests {
		s := ships.Ships[tt.id]
		if s == nil {
			t.Fatalf("ship %d missing", tt.id)
		}
		if s.State != tt.state || s.Name != tt.name {
			t.Errorf("ship %d = {%s %q}, want {%s %q}", tt.id, s.State, s.Name, tt.state, tt.name)
		}
	}
	if cur := ships.Current(); cur == nil || cur.ID != 1 {
		t.Errorf("Current() = %+v, want ship 1", cur)
	}
	if got := len(ships.Owned()); got != 1 {
		t.Errorf("len(Owned()) = %d, want 1", got)
	}
}

func TestLedger(t *testing.T) {
	l := NewLedger()
	steps := []struct {
		ev   *journal.Event
		cash int64
	}{
		{event(journal.KindLoadGame, &journal.LoadGame{Credits: 10000}), 10000},
		{event(journal.KindMarketBuy, &journal.MarketBuy{Type: "gold", Count: 2, TotalCost: 2000}), 8000},
		{event(journal.KindMarketSell, &journal.MarketSell{Type: "gold", Count: 2, TotalSale: 2600}), 10600},
		{event(journal.KindMissionCompleted, &journal.MissionCompleted{MissionID: 1, Reward: 500, Donation: 100}), 11000},
		{event(journal.KindPayFines, &journal.PayFines{Amount: 1000}), 10000},
		{event(journal.KindLoadGame, &journal.LoadGame{Credits: 12345}), 12345},
	}
	var history []*Ledger
	for i, s := range steps {
		l = l.Apply(s.ev)
		history = append(history, l)
		if l.Cash != s.cash {
			t.Fatalf("step %d: Cash = %d, want %d", i, l.Cash, s.cash)
		}
	}
	if got := len(l.Transactions); got != len(steps) {
		t.Errorf("len(Transactions) = %d, want %d", got, len(steps))
	}
	for i, h := range history {
		if len(h.Transactions) != i+1 {
			t.Errorf("snapshot %d has %d transactions, want %d", i, len(h.Transactions), i+1)
		}
	}
	if l.Apply(event(journal.KindLoadGame, &journal.LoadGame{Credits: 12345})) != l {
		t.Error("unchanged balance produced a new ledger")
	}
}

func TestMissionList(t *testing.T) {
	ml := NewMissionList()
	ml = ml.Apply(event(journal.KindMissionAccepted, &journal.MissionAccepted{MissionID: 1, Name: "Mission_Delivery", DestinationSystem: "Lave"}))
	ml = ml.Apply(event(journal.KindMissionAccepted, &journal.MissionAccepted{MissionID: 2, Name: "Mission_Courier"}))
	accepted := ml
	ml = ml.Apply(event(journal.KindMissionRedirected, &journal.MissionRedirected{MissionID: 1, NewDestinationSystem: "Diso", NewDestinationStation: "Shifnalport"}))
	ml = ml.Apply(event(journal.KindMissionCompleted, &journal.MissionCompleted{MissionID: 1, Reward: 9000}))
	ml = ml.Apply(event(journal.KindMissionFailed, &journal.MissionFailed{MissionID: 3}))

	if got := accepted.Missions[1].State; got != MissionActive {
		t.Errorf("snapshot mission 1 state = %s, want active", got)
	}
	m := ml.Missions[1]
	if m.State != MissionCompleted || m.Reward != 9000 || m.Destination != "Diso / Shifnalport" {
		t.Errorf("mission 1 = %+v", m)
	}
	if got := ml.Missions[3]; got == nil || got.State != MissionFailed {
		t.Errorf("mission 3 = %+v, want failed without acceptance", got)
	}
	if act := ml.Active(); len(act) != 1 || act[0].ID != 2 {
		t.Errorf("Active() = %v", act)
	}
}

func TestInventory(t *testing.T) {
	inv := NewInventory()
	inv = inv.Apply(event(journal.KindMaterials, &journal.Materials{
		Raw: []journal.MaterialCount{{Name: "iron", Count: 10}},
	}))
	inv = inv.Apply(event(journal.KindMaterialCollected, &journal.MaterialCollected{Category: "Raw", Name: "Iron", Count: 3}))
	inv = inv.Apply(event(journal.KindMaterialDiscarded, &journal.MaterialDiscarded{Category: "Raw", Name: "iron", Count: 13}))
	if _, ok := inv.Materials["raw"]["iron"]; ok {
		t.Errorf("iron not removed at zero: %v", inv.Materials["raw"])
	}

	inv = inv.Apply(event(journal.KindCargo, &journal.Cargo{Vessel: "Ship", HasInventory: true, Inventory: []journal.CargoItem{{Name: "gold", Count: 4}}}))
	snapshot := inv
	inv = inv.Apply(event(journal.KindMarketSell, &journal.MarketSell{Type: "$gold_name;", Count: 1}))
	inv = inv.Apply(event(journal.KindCargo, &journal.Cargo{Vessel: "SRV", HasInventory: true}))

	if got := snapshot.CommodityCount("gold"); got != 4 {
		t.Errorf("snapshot gold = %d, want 4", got)
	}
	if got := inv.CommodityCount("Gold"); got != 3 {
		t.Errorf("gold = %d, want 3", got)
	}
}

func TestStats(t *testing.T) {
	var s Stats
	events := []*journal.Event{
		event(journal.KindFSDJump, &journal.FSDJump{Arrival: journal.Arrival{StarSystem: "Lave", JumpDist: 12.5}}),
		event(journal.KindScan, &journal.Scan{BodyName: "Lave", StarType: "K"}),
		event(journal.KindScan, &journal.Scan{BodyName: "Lave 1", PlanetClass: "Icy body"}),
		event(journal.KindScan, &journal.Scan{BodyName: "Lave 2", Source: journal.SourceLookup}),
		event(journal.KindSAAScanComplete, &journal.SAAScanComplete{BodyName: "Lave 1", ProbesUsed: 5, EfficiencyTarget: 4}),
	}
	for i, ev := range events {
		s = s.Apply(ev, i == 0)
	}
	want := Stats{Jumps: 1, DistanceLY: 12.5, SystemsVisited: 1, StarsScanned: 1, BodiesScanned: 1, BodiesMapped: 1}
	if s != want {
		t.Errorf("Stats = %+v, want %+v", s, want)
	}
}

func TestMarketCaches(t *testing.T) {
	yard := NewShipyardList()
	ev := event(journal.KindShipyard, &journal.Shipyard{MarketID: 5, StationName: "Lave Station", PriceList: []journal.ShipPrice{{ID: 1, ShipType: "cobramkiii", ShipPrice: 350000}}})
	yard = ApplyShipyard(yard, ev)
	if yard.Get(5) == nil {
		t.Fatal("shipyard not cached")
	}
	if ApplyShipyard(yard, ev) != yard {
		t.Error("identical listing produced a new cache")
	}
	if ApplyShipyard(yard, event(journal.KindShipyard, &journal.Shipyard{MarketID: 6})) != yard {
		t.Error("empty listing produced a new cache")
	}

	outfit := ApplyOutfitting(NewOutfittingList(), event(journal.KindOutfitting, &journal.Outfitting{MarketID: 5, Items: []journal.OutfitItem{{ID: 9, Name: "hpt_pulselaser_fixed_small", BuyPrice: 2200}}}))
	if got := outfit.Get(5); got == nil || len(got.Items) != 1 {
		t.Errorf("outfitting = %+v", got)
	}
}

func TestModulesInStore(t *testing.T) {
	m := NewModulesInStore()
	m = m.Apply(event(journal.KindModuleStore, &journal.ModuleStore{Slot: "Slot01", StoredItem: "Int_ShieldGenerator_Size4_Class2"}))
	m = m.Apply(event(journal.KindModuleBuy, &journal.ModuleBuy{Slot: "Slot02", BuyItem: "int_cargorack_size4_class1", StoredItem: "Int_FuelScoop_Size3_Class5"}))
	stored := m
	m = m.Apply(event(journal.KindModuleRetrieve, &journal.ModuleRetrieve{Slot: "Slot01", RetrievedItem: "int_shieldgenerator_size4_class2", SwapOutItem: "int_shieldgenerator_size3_class1"}))

	if got := len(stored.Items); got != 2 {
		t.Errorf("snapshot has %d items, want 2", got)
	}
	names := map[string]bool{}
	for _, it := range m.Items {
		names[it.Name] = true
	}
	if len(m.Items) != 2 || !names["int_fuelscoop_size3_class5"] || !names["int_shieldgenerator_size3_class1"] {
		t.Errorf("Items = %+v", m.Items)
	}

	m = m.Apply(event(journal.KindStoredModules, &journal.StoredModules{Items: []journal.StoredModule{{Name: "x"}}}))
	if len(m.Items) != 1 {
		t.Errorf("StoredModules did not replace the list: %+v", m.Items)
	}
}
