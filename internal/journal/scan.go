// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

import (
	"strings"
)

// ScanSource distinguishes journal scans from lookup-service supplements.
type ScanSource int

const (
	SourceJournal ScanSource = iota
	SourceLookup
)

// ParentRef is one element of a Scan's Parents chain, nearest first:
// {"Planet": 3}, {"Star": 1}, {"Null": 0}.
type ParentRef struct {
	Type   string `json:"type"` // Star, Planet, Ring, Null (barycentre)
	BodyID int    `json:"body_id"`
}

type Ring struct {
	Name      string  `json:"name"`
	RingClass string  `json:"ring_class"`
	MassMT    float64 `json:"mass_mt"`
	InnerRad  float64 `json:"inner_rad"`
	OuterRad  float64 `json:"outer_rad"`
}

// IsBelt reports whether the ring is an asteroid belt around a star.
func (r Ring) IsBelt() bool {
	return strings.Contains(strings.ToLower(r.Name), " belt")
}

type MaterialShare struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// Scan is a body, star or belt cluster scan.
type Scan struct {
	ScanType              string          `json:"scan_type"`
	BodyName              string          `json:"body_name"`
	BodyID                *int            `json:"body_id,omitempty"`
	Parents               []ParentRef     `json:"parents,omitempty"`
	StarSystem            string          `json:"star_system"`
	SystemAddress         int64           `json:"system_address"`
	DistanceFromArrivalLS float64         `json:"distance_from_arrival_ls"`
	StarType              string          `json:"star_type,omitempty"`
	Subclass              int             `json:"subclass,omitempty"`
	StellarMass           float64         `json:"stellar_mass,omitempty"`
	Radius                float64         `json:"radius,omitempty"`
	AbsoluteMagnitude     float64         `json:"absolute_magnitude,omitempty"`
	AgeMY                 float64         `json:"age_my,omitempty"`
	Luminosity            string          `json:"luminosity,omitempty"`
	PlanetClass           string          `json:"planet_class,omitempty"`
	Atmosphere            string          `json:"atmosphere,omitempty"`
	Volcanism             string          `json:"volcanism,omitempty"`
	TerraformState        string          `json:"terraform_state,omitempty"`
	MassEM                float64         `json:"mass_em,omitempty"`
	SurfaceGravity        float64         `json:"surface_gravity,omitempty"`
	SurfaceTemperature    float64         `json:"surface_temperature,omitempty"`
	SurfacePressure       float64         `json:"surface_pressure,omitempty"`
	Landable              bool            `json:"landable,omitempty"`
	TidalLock             bool            `json:"tidal_lock,omitempty"`
	Rings                 []Ring          `json:"rings,omitempty"`
	ReserveLevel          string          `json:"reserve_level,omitempty"`
	Materials             []MaterialShare `json:"materials,omitempty"`
	WasDiscovered         bool            `json:"was_discovered"`
	WasMapped             bool            `json:"was_mapped"`
	Source                ScanSource      `json:"source"`
}

// IsStar reports whether the scan describes a star.
func (s *Scan) IsStar() bool {
	return s.StarType != ""
}

// IsBeltCluster reports whether the scan is of an asteroid belt cluster.
func (s *Scan) IsBeltCluster() bool {
	return strings.Contains(strings.ToLower(s.BodyName), "belt cluster")
}

// scanTypeRank orders scan detail levels as the game reports them.
var scanTypeRank = map[string]int{
	"":                  0,
	"NavBeaconDetail":   1,
	"AutoScan":          2,
	"Basic":             2,
	"Detailed":          3,
	"Detailed_Horizons": 3,
}

// Completeness scores how much information the scan carries. A payload is
// only replaced by one scoring at least as much; lookup-service scans never
// outrank journal scans.
func (s *Scan) Completeness() int {
	score := scanTypeRank[s.ScanType] * 100
	if s.Source == SourceJournal {
		score += 1000
	}
	if s.BodyID != nil {
		score += 10
	}
	if len(s.Parents) > 0 {
		score += 10
	}
	if len(s.Materials) > 0 {
		score += 5
	}
	if len(s.Rings) > 0 {
		score += 5
	}
	if s.PlanetClass != "" || s.StarType != "" {
		score += 5
	}
	return score
}

type SAAScanComplete struct {
	BodyName         string `json:"body_name"`
	BodyID           *int   `json:"body_id,omitempty"`
	SystemAddress    int64  `json:"system_address"`
	ProbesUsed       int    `json:"probes_used"`
	EfficiencyTarget int    `json:"efficiency_target"`
}

// Efficient reports whether the body was mapped within its probe target.
func (s *SAAScanComplete) Efficient() bool {
	return s.ProbesUsed <= s.EfficiencyTarget
}

type Signal struct {
	Type          string `json:"type"`
	TypeLocalised string `json:"type_localised,omitempty"`
	Count         int    `json:"count"`
}

// BodySignals is the shared content of SAASignalsFound and FSSBodySignals.
type BodySignals struct {
	BodyName      string   `json:"body_name"`
	BodyID        *int     `json:"body_id,omitempty"`
	SystemAddress int64    `json:"system_address"`
	Signals       []Signal `json:"signals"`
	Genuses       []string `json:"genuses,omitempty"`
}

type SAASignalsFound struct{ BodySignals }
type FSSBodySignals struct{ BodySignals }

type FSSDiscoveryScan struct {
	SystemName    string  `json:"system_name"`
	SystemAddress int64   `json:"system_address"`
	BodyCount     int     `json:"body_count"`
	NonBodyCount  int     `json:"non_body_count"`
	Progress      float64 `json:"progress"`
}

type FSSAllBodiesFound struct {
	SystemName    string `json:"system_name"`
	SystemAddress int64  `json:"system_address"`
	Count         int    `json:"count"`
}

// SignalRecord is one discovered signal source.
type SignalRecord struct {
	Name          string `json:"name"`
	NameLocalised string `json:"name_localised,omitempty"`
	SignalType    string `json:"signal_type,omitempty"`
	IsStation     bool   `json:"is_station,omitempty"`
	USSType       string `json:"uss_type,omitempty"`
	ThreatLevel   int    `json:"threat_level,omitempty"`
}

// FSSSignalDiscovered accumulates a burst of signal discoveries; Signals is
// kept in first-seen order.
type FSSSignalDiscovered struct {
	SystemAddress int64          `json:"system_address"`
	Signals       []SignalRecord `json:"signals"`
}

type NavBeaconScan struct {
	SystemAddress int64 `json:"system_address"`
	NumBodies     int   `json:"num_bodies"`
}

func (*Scan) payloadKind() Kind                { return KindScan }
func (*SAAScanComplete) payloadKind() Kind     { return KindSAAScanComplete }
func (*SAASignalsFound) payloadKind() Kind     { return KindSAASignalsFound }
func (*FSSBodySignals) payloadKind() Kind      { return KindFSSBodySignals }
func (*FSSDiscoveryScan) payloadKind() Kind    { return KindFSSDiscoveryScan }
func (*FSSAllBodiesFound) payloadKind() Kind   { return KindFSSAllBodiesFound }
func (*FSSSignalDiscovered) payloadKind() Kind { return KindFSSSignalDiscovered }
func (*NavBeaconScan) payloadKind() Kind       { return KindNavBeaconScan }

// SignalsOf returns the shared content of SAASignalsFound and FSSBodySignals.
func SignalsOf(p Payload) (*BodySignals, bool) {
	switch s := p.(type) {
	case *SAASignalsFound:
		return &s.BodySignals, true
	case *FSSBodySignals:
		return &s.BodySignals, true
	}
	return nil, false
}

func parseParents(f Fields) []ParentRef {
	objs := f.Objects("Parents")
	if len(objs) == 0 {
		return nil
	}
	out := make([]ParentRef, 0, len(objs))
	for _, o := range objs {
		// each element is a single-key object
		for typ := range o {
			out = append(out, ParentRef{Type: typ, BodyID: o.Int(typ)})
		}
	}
	return out
}

// ParseScan builds a Scan from a journal-shaped document. Exported for the
// lookup client, which converts remote bodies into the same shape.
func ParseScan(f Fields) *Scan {
	s := &Scan{
		ScanType:              f.Str("ScanType"),
		BodyName:              f.Str("BodyName"),
		BodyID:                f.IntPtr("BodyID"),
		Parents:               parseParents(f),
		StarSystem:            f.Str("StarSystem"),
		SystemAddress:         f.Long("SystemAddress"),
		DistanceFromArrivalLS: f.Float("DistanceFromArrivalLS"),
		StarType:              f.Str("StarType"),
		Subclass:              f.Int("Subclass"),
		StellarMass:           f.Float("StellarMass"),
		Radius:                f.Float("Radius"),
		AbsoluteMagnitude:     f.Float("AbsoluteMagnitude"),
		AgeMY:                 f.Float("Age_MY"),
		Luminosity:            f.Str("Luminosity"),
		PlanetClass:           f.Str("PlanetClass"),
		Atmosphere:            f.Str("Atmosphere"),
		Volcanism:             f.Str("Volcanism"),
		TerraformState:        f.Str("TerraformState"),
		MassEM:                f.Float("MassEM"),
		SurfaceGravity:        f.Float("SurfaceGravity"),
		SurfaceTemperature:    f.Float("SurfaceTemperature"),
		SurfacePressure:       f.Float("SurfacePressure"),
		Landable:              f.Bool("Landable"),
		TidalLock:             f.Bool("TidalLock"),
		ReserveLevel:          f.Str("ReserveLevel"),
		WasDiscovered:         f.Bool("WasDiscovered"),
		WasMapped:             f.Bool("WasMapped"),
	}
	for _, r := range f.Objects("Rings") {
		s.Rings = append(s.Rings, Ring{
			Name:      r.Str("Name"),
			RingClass: r.Str("RingClass"),
			MassMT:    r.Float("MassMT"),
			InnerRad:  r.Float("InnerRad"),
			OuterRad:  r.Float("OuterRad"),
		})
	}
	for _, m := range f.Objects("Materials") {
		s.Materials = append(s.Materials, MaterialShare{Name: m.Str("Name"), Percent: m.Float("Percent")})
	}
	return s
}

func parseBodySignals(f Fields) BodySignals {
	bs := BodySignals{
		BodyName:      f.Str("BodyName"),
		BodyID:        f.IntPtr("BodyID"),
		SystemAddress: f.Long("SystemAddress"),
	}
	for _, s := range f.Objects("Signals") {
		bs.Signals = append(bs.Signals, Signal{
			Type:          s.Str("Type"),
			TypeLocalised: s.Str("Type_Localised"),
			Count:         s.Int("Count"),
		})
	}
	for _, g := range f.Objects("Genuses") {
		bs.Genuses = append(bs.Genuses, g.Localised("Genus"))
	}
	return bs
}

func parseSignalDiscovered(f Fields) Payload {
	return &FSSSignalDiscovered{
		SystemAddress: f.Long("SystemAddress"),
		Signals: []SignalRecord{{
			Name:          f.Str("SignalName"),
			NameLocalised: f.Str("SignalName_Localised"),
			SignalType:    f.Str("SignalType"),
			IsStation:     f.Bool("IsStation"),
			USSType:       f.Str("USSType"),
			ThreatLevel:   f.Int("ThreatLevel"),
		}},
	}
}

//nolint:gochecknoinits // parser registration
func init() {
	register(KindScan, func(f Fields) Payload { return ParseScan(f) })
	register(KindSAAScanComplete, func(f Fields) Payload {
		return &SAAScanComplete{
			BodyName:         f.Str("BodyName"),
			BodyID:           f.IntPtr("BodyID"),
			SystemAddress:    f.Long("SystemAddress"),
			ProbesUsed:       f.Int("ProbesUsed"),
			EfficiencyTarget: f.Int("EfficiencyTarget"),
		}
	})
	register(KindSAASignalsFound, func(f Fields) Payload { return &SAASignalsFound{parseBodySignals(f)} })
	register(KindFSSBodySignals, func(f Fields) Payload { return &FSSBodySignals{parseBodySignals(f)} })
	register(KindFSSDiscoveryScan, func(f Fields) Payload {
		return &FSSDiscoveryScan{
			SystemName:    f.Str("SystemName"),
			SystemAddress: f.Long("SystemAddress"),
			BodyCount:     f.Int("BodyCount"),
			NonBodyCount:  f.Int("NonBodyCount"),
			Progress:      f.Float("Progress"),
		}
	})
	register(KindFSSAllBodiesFound, func(f Fields) Payload {
		return &FSSAllBodiesFound{
			SystemName:    f.Str("SystemName"),
			SystemAddress: f.Long("SystemAddress"),
			Count:         f.Int("Count"),
		}
	})
	register(KindFSSSignalDiscovered, parseSignalDiscovered)
	register(KindNavBeaconScan, func(f Fields) Payload {
		return &NavBeaconScan{SystemAddress: f.Long("SystemAddress"), NumBodies: f.Int("NumBodies")}
	})
}
