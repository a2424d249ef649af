// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package bodyname

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		path    string
		kind    NodeKind
		topKind NodeKind
	}{
		{
			name: "main star named after system",
			in:   Input{BodyName: "Sol", IsStar: true, SystemName: "Sol"},
			path: "Main Star", kind: KindStar, topKind: KindStar,
		},
		{
			name: "confirmed primary replaces main star",
			in:   Input{BodyName: "Sol", IsStar: true, SystemName: "Sol", PrimaryDesignator: "A"},
			path: "A", kind: KindStar, topKind: KindStar,
		},
		{
			name: "belt of secondary star",
			in:   Input{BodyName: "Aurioum B A Belt", SystemName: "Aurioum"},
			path: "B/A Belt", kind: KindBelt, topKind: KindStar,
		},
		{
			name: "belt of main star",
			in:   Input{BodyName: "Lave A Belt", SystemName: "Lave"},
			path: "Main Star/A Belt", kind: KindBelt, topKind: KindStar,
		},
		{
			name: "moon under explicit star",
			in:   Input{BodyName: "Eol Prou LW-L c8-306 A 4 a", SystemName: "Eol Prou LW-L c8-306"},
			path: "A/4/a", kind: KindBody, topKind: KindStar,
		},
		{
			name: "planet gets implicit primary",
			in:   Input{BodyName: "Sol 3", SystemName: "Sol"},
			path: "Main Star/3", kind: KindBody, topKind: KindStar,
		},
		{
			name: "belt cluster of main star",
			in:   Input{BodyName: "HIP 1 A Belt Cluster 4", SystemName: "HIP 1"},
			path: "Main Star/A Belt/Cluster 4", kind: KindBeltCluster, topKind: KindStar,
		},
		{
			name: "belt cluster of secondary star",
			in:   Input{BodyName: "HIP 1 B A Belt Cluster 12", SystemName: "HIP 1"},
			path: "B/A Belt/Cluster 12", kind: KindBeltCluster, topKind: KindStar,
		},
		{
			name: "planetary ring",
			in:   Input{BodyName: "Sol 6 A Ring", SystemName: "Sol"},
			path: "Main Star/6/A Ring", kind: KindRing, topKind: KindStar,
		},
		{
			name: "barycentre leading designator",
			in:   Input{BodyName: "Wregoe AB 1 a", SystemName: "Wregoe"},
			path: "AB/1/a", kind: KindBody, topKind: KindBarycentre,
		},
		{
			name: "renamed body via Sol aliases",
			in:   Input{BodyName: "Earth", SystemName: "Sol"},
			path: "Main Star/3", kind: KindBody, topKind: KindStar,
		},
		{
			name: "alias moon",
			in:   Input{BodyName: "Moon", SystemName: "sol"},
			path: "Main Star/3/a", kind: KindBody, topKind: KindStar,
		},
		{
			name: "unrelated star at arrival point",
			in:   Input{BodyName: "Barnard's Star", IsStar: true, SystemName: "Barnard's Loop"},
			path: "Barnard's Star", kind: KindStar, topKind: KindStar,
		},
		{
			name: "unrelated body",
			in:   Input{BodyName: "Hutton Orbital", SystemName: "Alpha Centauri"},
			path: "Main Star/Hutton/Orbital", kind: KindBody, topKind: KindStar,
		},
		{
			name: "system prefix needs a word boundary",
			in:   Input{BodyName: "Solati 1", SystemName: "Sol"},
			path: "Main Star/Solati/1", kind: KindBody, topKind: KindStar,
		},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := r.Resolve(tt.in)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got := strings.Join(d.Path, "/"); got != tt.path {
				t.Errorf("path = %q, want %q", got, tt.path)
			}
			if d.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", d.Kind, tt.kind)
			}
			if d.TopKind != tt.topKind {
				t.Errorf("top kind = %s, want %s", d.TopKind, tt.topKind)
			}
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"empty name", Input{BodyName: "", SystemName: "Sol"}},
		{"too deep", Input{BodyName: "Sol A 1 a b c d", SystemName: "Sol"}},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.in)
			if !errors.Is(err, ErrUnresolvable) {
				t.Fatalf("expected ErrUnresolvable, got %v", err)
			}
			var re *ResolutionError
			if !errors.As(err, &re) || re.System != "Sol" {
				t.Errorf("expected *ResolutionError naming the system, got %#v", err)
			}
		})
	}
}

func TestResolve_DepthLimit(t *testing.T) {
	r := New()
	d, err := r.Resolve(Input{BodyName: "Sol A 1 a b c", SystemName: "Sol"})
	if err != nil {
		t.Fatalf("five segments must resolve: %v", err)
	}
	if len(d.Path) != MaxDepth {
		t.Errorf("path = %v", d.Path)
	}
}

func TestWithAliases(t *testing.T) {
	r := New(WithAliases("Shinrarta Dezhra", map[string]string{"Founders World": "Shinrarta Dezhra A 1"}))
	d, err := r.Resolve(Input{BodyName: "Founders World", SystemName: "Shinrarta Dezhra"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := strings.Join(d.Path, "/"); got != "A/1" {
		t.Errorf("path = %q", got)
	}

	// Aliases are per system.
	d, err = r.Resolve(Input{BodyName: "Earth", SystemName: "Achenar"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := strings.Join(d.Path, "/"); got != "Main Star/Earth" {
		t.Errorf("path = %q", got)
	}
}

func TestCompare(t *testing.T) {
	names := []string{"b", "A Belt", "10", "2", "a", "1", "Main Star", "12 a", "12", "B"}
	sort.SliceStable(names, func(i, j int) bool { return Less(names[i], names[j]) })

	want := "1,2,10,12,12 a,a,A Belt,b,B,Main Star"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}

	if Compare("a", "A") != 0 {
		t.Error("compare must be case-insensitive")
	}
	if Compare("9", "A") >= 0 || Compare("A", "9") <= 0 {
		t.Error("numeric designators sort before letters")
	}
}
