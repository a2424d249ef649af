// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package starscan

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/astrographus/internal/bodyname"
	"github.com/tomtom215/astrographus/internal/journal"
)

const solAddress int64 = 10477373803

var sol = SystemRef{Name: "Sol", Address: solAddress}

func intp(v int) *int { return &v }

func star(name string, id int) *journal.Scan {
	return &journal.Scan{
		ScanType:      "Detailed",
		BodyName:      name,
		BodyID:        intp(id),
		StarSystem:    "Sol",
		SystemAddress: solAddress,
		StarType:      "G",
	}
}

func planet(name string, id int, parents ...journal.ParentRef) *journal.Scan {
	return &journal.Scan{
		ScanType:              "Detailed",
		BodyName:              name,
		BodyID:                intp(id),
		Parents:               parents,
		StarSystem:            "Sol",
		SystemAddress:         solAddress,
		DistanceFromArrivalLS: 500,
		PlanetClass:           "Earthlike body",
	}
}

func TestMappedAfterScan(t *testing.T) {
	b := NewBuilder()
	if err := b.AddScan(sol, star("Sol A", 0)); err != nil {
		t.Fatalf("AddScan: %v", err)
	}
	b.AddSAAComplete(sol, &journal.SAAScanComplete{
		BodyName: "Sol A", BodyID: intp(0), SystemAddress: solAddress,
		ProbesUsed: 3, EfficiencyTarget: 4,
	})

	sys := b.Find(sol)
	if sys == nil {
		t.Fatal("system not found")
	}
	node := sys.Find("A")
	if node == nil {
		t.Fatal("node A not found")
	}
	if !node.IsMapped || !node.WasMappedEfficiently {
		t.Errorf("IsMapped=%v WasMappedEfficiently=%v, want both true", node.IsMapped, node.WasMappedEfficiently)
	}
	if sys.PrimaryDesignator != "A" {
		t.Errorf("PrimaryDesignator = %q, want A", sys.PrimaryDesignator)
	}
}

func TestMappedBeforeScanIsDeferred(t *testing.T) {
	b := NewBuilder()
	b.AddSAAComplete(sol, &journal.SAAScanComplete{
		BodyName: "Sol 3", SystemAddress: solAddress, ProbesUsed: 9, EfficiencyTarget: 5,
	})
	if got := b.Deferred(); got != 1 {
		t.Fatalf("Deferred() = %d, want 1", got)
	}

	if err := b.AddScan(sol, planet("Sol 3", 3, journal.ParentRef{Type: "Star", BodyID: 0})); err != nil {
		t.Fatalf("AddScan: %v", err)
	}
	if got := b.Deferred(); got != 0 {
		t.Errorf("Deferred() after scan = %d, want 0", got)
	}
	node := b.Find(sol).Find(bodyname.MainStar, "3")
	if node == nil {
		t.Fatal("node Main Star/3 not found")
	}
	if !node.IsMapped {
		t.Error("deferred mapping not applied")
	}
	if node.WasMappedEfficiently {
		t.Error("9 probes against a target of 5 reported efficient")
	}
}

func TestPrimaryCorrection(t *testing.T) {
	b := NewBuilder()
	feed := []*journal.Scan{
		planet("Sol 3", 3, journal.ParentRef{Type: "Star", BodyID: 0}),
		planet("Sol 3 a", 4, journal.ParentRef{Type: "Planet", BodyID: 3}, journal.ParentRef{Type: "Star", BodyID: 0}),
	}
	for _, s := range feed {
		if err := b.AddScan(sol, s); err != nil {
			t.Fatalf("AddScan(%s): %v", s.BodyName, err)
		}
	}
	sys := b.Find(sol)
	if sys.Find(bodyname.MainStar, "3", "a") == nil {
		t.Fatal("implicit primary not used before correction")
	}
	before := sys.ScanCount()

	if err := b.AddScan(sol, star("Sol A", 0)); err != nil {
		t.Fatalf("AddScan(Sol A): %v", err)
	}
	if sys.Find(bodyname.MainStar) != nil {
		t.Error("Main Star node survived correction")
	}
	if sys.Find("A", "3", "a") == nil {
		t.Error("moon not moved under A")
	}
	if got, want := sys.ScanCount(), before+1; got != want {
		t.Errorf("ScanCount() = %d, want %d", got, want)
	}
	if n := sys.NodesByID[0]; n == nil || n.Name != "A" {
		t.Errorf("NodesByID[0] = %v, want node A", n)
	}
}

func TestParentIDsFilledFromChain(t *testing.T) {
	b := NewBuilder()
	moon := planet("Sol 5 b", 12,
		journal.ParentRef{Type: "Planet", BodyID: 9},
		journal.ParentRef{Type: "Null", BodyID: 1},
		journal.ParentRef{Type: "Star", BodyID: 0},
	)
	if err := b.AddScan(sol, moon); err != nil {
		t.Fatalf("AddScan: %v", err)
	}
	sys := b.Find(sol)
	tests := []struct {
		path []string
		id   int
	}{
		{[]string{bodyname.MainStar, "5", "b"}, 12},
		{[]string{bodyname.MainStar, "5"}, 9},
		{[]string{bodyname.MainStar}, 0},
	}
	for _, tt := range tests {
		n := sys.Find(tt.path...)
		if n == nil {
			t.Fatalf("node %v missing", tt.path)
		}
		if n.BodyID == nil || *n.BodyID != tt.id {
			t.Errorf("node %v BodyID = %v, want %d", tt.path, n.BodyID, tt.id)
		}
	}
	if sys.Find(bodyname.MainStar, "5").Scan != nil {
		t.Error("placeholder parent carries a scan")
	}
}

func TestRefeedIsIdempotent(t *testing.T) {
	feed := func(b *Builder) {
		_ = b.AddScan(sol, star("Sol A", 0))
		_ = b.AddScan(sol, planet("Sol 3", 3, journal.ParentRef{Type: "Star", BodyID: 0}))
		b.AddSignals(sol, &journal.BodySignals{
			BodyName: "Sol 3", BodyID: intp(3), SystemAddress: solAddress,
			Signals: []journal.Signal{{Type: "$SAA_SignalType_Biological;", Count: 2}},
			Genuses: []string{"Bacterium"},
		})
		b.AddSAAComplete(sol, &journal.SAAScanComplete{BodyName: "Sol 3", BodyID: intp(3), SystemAddress: solAddress, ProbesUsed: 4, EfficiencyTarget: 6})
	}

	once := NewBuilder()
	feed(once)
	twice := NewBuilder()
	feed(twice)
	feed(twice)

	a, err := json.Marshal(once)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	c, err := json.Marshal(twice)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(a) != string(c) {
		t.Errorf("refeed changed the tree\nonce:  %s\ntwice: %s", a, c)
	}
}

func TestSystemPromotion(t *testing.T) {
	b := NewBuilder()
	byName := b.System(SystemRef{Name: "Sol"})
	byAddr := b.System(sol)
	if byName != byAddr {
		t.Fatal("name-only system not promoted to the address table")
	}
	if byAddr.Address != solAddress {
		t.Errorf("Address = %d, want %d", byAddr.Address, solAddress)
	}
	if got := len(b.Systems()); got != 1 {
		t.Errorf("len(Systems()) = %d, want 1", got)
	}

	other := b.System(SystemRef{Name: "Sol", Address: 42})
	if other == byAddr {
		t.Error("different address reused the same system")
	}
	if b.System(SystemRef{}) != nil {
		t.Error("empty reference created a system")
	}
}

func TestStarBelts(t *testing.T) {
	tests := []struct {
		name   string
		system SystemRef
		star   string
		ring   string
		path   []string
	}{
		{
			name:   "prefix stripped",
			system: SystemRef{Name: "HIP 1", Address: 7},
			star:   "HIP 1",
			ring:   "HIP 1 A Belt",
			path:   []string{bodyname.MainStar, "A Belt"},
		},
		{
			name:   "secondary star",
			system: SystemRef{Name: "HIP 1", Address: 7},
			star:   "HIP 1 B",
			ring:   "HIP 1 B A Belt",
			path:   []string{"B", "A Belt"},
		},
		{
			name:   "lave exception",
			system: SystemRef{Name: "Lave", Address: 8},
			star:   "Lave",
			ring:   "Castellan Belt",
			path:   []string{bodyname.MainStar, "A Belt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			s := &journal.Scan{
				ScanType:              "Detailed",
				BodyName:              tt.star,
				StarSystem:            tt.system.Name,
				SystemAddress:         tt.system.Address,
				StarType:              "K",
				DistanceFromArrivalLS: 12,
				Rings:                 []journal.Ring{{Name: tt.ring, RingClass: "eRingClass_Rocky"}},
			}
			if err := b.AddScan(tt.system, s); err != nil {
				t.Fatalf("AddScan: %v", err)
			}
			n := b.Find(tt.system).Find(tt.path...)
			if n == nil {
				t.Fatalf("belt %v missing", tt.path)
			}
			if n.Kind != bodyname.KindBelt || n.Belt == nil || n.Belt.Name != tt.ring {
				t.Errorf("belt node = %+v", n)
			}
		})
	}
}

func TestRejectedScanReportsDiagnostic(t *testing.T) {
	var got []Diagnostic
	b := NewBuilder(WithDiagnostics(func(d Diagnostic) { got = append(got, d) }))

	err := b.AddScan(sol, planet("Sol 1 a b c d", 99))
	if !errors.Is(err, bodyname.ErrUnresolvable) {
		t.Fatalf("AddScan error = %v, want ErrUnresolvable", err)
	}
	if len(got) != 1 || got[0].Body != "Sol 1 a b c d" {
		t.Errorf("diagnostics = %v", got)
	}
	if n := b.Find(sol).ScanCount(); n != 0 {
		t.Errorf("ScanCount() = %d, want 0", n)
	}
}

func TestNoSystem(t *testing.T) {
	var got []Diagnostic
	b := NewBuilder(WithDiagnostics(func(d Diagnostic) { got = append(got, d) }))
	err := b.AddScan(SystemRef{}, &journal.Scan{BodyName: "Somewhere 1", ScanType: "Basic"})
	if !errors.Is(err, ErrNoSystem) {
		t.Fatalf("AddScan error = %v, want ErrNoSystem", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d diagnostics, want 1", len(got))
	}
}

func TestLookupNeverReplacesJournal(t *testing.T) {
	journalScan := func() *journal.Scan {
		s := planet("Sol 3", 3)
		s.ScanType = "AutoScan"
		return s
	}
	lookupScan := func() *journal.Scan {
		s := planet("Sol 3", 3)
		s.PlanetClass = "Water world"
		return s
	}

	tests := []struct {
		name  string
		steps func(b *Builder)
		class string
	}{
		{
			name: "journal first",
			steps: func(b *Builder) {
				_ = b.AddScan(sol, journalScan())
				b.AddFromLookup(sol, []*journal.Scan{lookupScan()})
			},
			class: "Earthlike body",
		},
		{
			name: "lookup first",
			steps: func(b *Builder) {
				b.AddFromLookup(sol, []*journal.Scan{lookupScan()})
				_ = b.AddScan(sol, journalScan())
			},
			class: "Earthlike body",
		},
		{
			name: "lookup fills gap",
			steps: func(b *Builder) {
				b.AddFromLookup(sol, []*journal.Scan{lookupScan()})
			},
			class: "Water world",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.steps(b)
			n := b.Find(sol).Find(bodyname.MainStar, "3")
			if n == nil || n.Scan == nil {
				t.Fatal("Sol 3 has no scan")
			}
			if n.Scan.PlanetClass != tt.class {
				t.Errorf("PlanetClass = %q, want %q", n.Scan.PlanetClass, tt.class)
			}
		})
	}
}

func TestSignalsMerge(t *testing.T) {
	b := NewBuilder()
	_ = b.AddScan(sol, planet("Sol 4", 4))
	b.AddSignals(sol, &journal.BodySignals{
		BodyName: "Sol 4", BodyID: intp(4), SystemAddress: solAddress,
		Signals: []journal.Signal{{Type: "Biological", Count: 1}},
		Genuses: []string{"Tussock"},
	})
	b.AddSignals(SystemRef{}, &journal.BodySignals{
		BodyName: "Sol 4", BodyID: intp(4), SystemAddress: solAddress,
		Signals: []journal.Signal{{Type: "Biological", Count: 3}, {Type: "Geological", Count: 2}},
		Genuses: []string{"Tussock", "Stratum"},
	})

	n := b.Find(sol).Find(bodyname.MainStar, "4")
	if len(n.Signals) != 2 || n.Signals[0].Count != 3 {
		t.Errorf("Signals = %+v", n.Signals)
	}
	if len(n.Genuses) != 2 {
		t.Errorf("Genuses = %v", n.Genuses)
	}
}

func TestDiscoveryCounts(t *testing.T) {
	b := NewBuilder()
	b.AddDiscoveryScan(sol, &journal.FSSDiscoveryScan{SystemName: "Sol", SystemAddress: solAddress, BodyCount: 40, NonBodyCount: 3})
	b.AddAllBodiesFound(sol, &journal.FSSAllBodiesFound{SystemName: "Sol", SystemAddress: solAddress, Count: 41})

	sys := b.Find(sol)
	if !sys.AllBodiesFound || sys.ExpectedBodies != 41 || sys.NonBodyCount != 3 {
		t.Errorf("system = %+v", sys)
	}
}

func TestBodyIDIndexStaysConsistent(t *testing.T) {
	b := NewBuilder()
	steps := []*journal.Scan{
		planet("Sol 1", 3),
		planet("Sol 2", 3), // id moves to another node
		planet("Sol 1", 4), // node changes id
	}
	for i, s := range steps {
		if err := b.AddScan(sol, s); err != nil {
			t.Fatalf("step %d AddScan: %v", i, err)
		}
		sys := b.Find(sol)
		sys.Walk(func(n *ScanNode) {
			if n.BodyID != nil && sys.NodesByID[*n.BodyID] != n {
				t.Errorf("step %d: %s has BodyID %d but is not indexed under it", i, n.PathName, *n.BodyID)
			}
		})
		for id, n := range sys.NodesByID {
			if n.BodyID == nil || *n.BodyID != id {
				t.Errorf("step %d: NodesByID[%d] is %s with a different BodyID", i, id, n.PathName)
			}
		}
	}

	sys := b.Find(sol)
	if n := sys.NodesByID[3]; n == nil || n.BodyName != "Sol 2" {
		t.Errorf("NodesByID[3] = %v, want Sol 2", n)
	}
	if n := sys.NodesByID[4]; n == nil || n.BodyName != "Sol 1" {
		t.Errorf("NodesByID[4] = %v, want Sol 1", n)
	}
}
