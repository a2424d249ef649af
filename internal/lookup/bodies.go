// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package lookup

import (
	"sort"
	"strings"
	"unicode"

	"github.com/tomtom215/astrographus/internal/journal"
)

const (
	solarRadiusMetres = 695_700_000.0
	standardGravity   = 9.80665
	atmospherePascals = 101_325.0
)

// Body is one body as the remote service describes it. Units follow the
// service: solar radii for stars, kilometres for planets, g for gravity and
// atmospheres for pressure.
type Body struct {
	Name              string             `json:"name"`
	BodyID            *int               `json:"bodyId"`
	Type              string             `json:"type"`
	SubType           string             `json:"subType"`
	Parents           []map[string]int   `json:"parents"`
	DistanceToArrival float64            `json:"distanceToArrival"`
	IsMainStar        bool               `json:"isMainStar"`
	Age               float64            `json:"age"`
	SpectralClass     string             `json:"spectralClass"`
	Luminosity        string             `json:"luminosity"`
	AbsoluteMagnitude float64            `json:"absoluteMagnitude"`
	SolarMasses       float64            `json:"solarMasses"`
	SolarRadius       float64            `json:"solarRadius"`
	EarthMasses       float64            `json:"earthMasses"`
	Radius            float64            `json:"radius"`
	Gravity           float64            `json:"gravity"`
	SurfaceTemp       float64            `json:"surfaceTemperature"`
	SurfacePressure   float64            `json:"surfacePressure"`
	IsLandable        bool               `json:"isLandable"`
	AtmosphereType    string             `json:"atmosphereType"`
	VolcanismType     string             `json:"volcanismType"`
	TerraformingState string             `json:"terraformingState"`
	TidallyLocked     bool               `json:"rotationalPeriodTidallyLocked"`
	ReserveLevel      string             `json:"reserveLevel"`
	Materials         map[string]float64 `json:"materials"`
	Rings             []BodyRing         `json:"rings"`
	Belts             []BodyRing         `json:"belts"`
}

// BodyRing is a ring or belt around a body.
type BodyRing struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Mass        float64 `json:"mass"`
	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`
}

// planetClasses maps the service's planet sub-types onto journal names.
var planetClasses = map[string]string{
	"metal-rich body":                   "Metal rich body",
	"high metal content world":          "High metal content body",
	"rocky body":                        "Rocky body",
	"rocky ice world":                   "Rocky ice body",
	"icy body":                          "Icy body",
	"earth-like world":                  "Earthlike body",
	"water world":                       "Water world",
	"ammonia world":                     "Ammonia world",
	"water giant":                       "Water giant",
	"class i gas giant":                 "Sudarsky class I gas giant",
	"class ii gas giant":                "Sudarsky class II gas giant",
	"class iii gas giant":               "Sudarsky class III gas giant",
	"class iv gas giant":                "Sudarsky class IV gas giant",
	"class v gas giant":                 "Sudarsky class V gas giant",
	"gas giant with water-based life":   "Gas giant with water based life",
	"gas giant with ammonia-based life": "Gas giant with ammonia based life",
	"helium-rich gas giant":             "Helium rich gas giant",
	"helium gas giant":                  "Helium gas giant",
}

// Scans converts the body list into journal scans for the scan tree. The
// scans are marked as lookup-sourced so they never displace journal data.
func (l *BodyList) Scans() []*journal.Scan {
	if l == nil {
		return nil
	}
	out := make([]*journal.Scan, 0, len(l.Bodies))
	for i := range l.Bodies {
		out = append(out, l.Bodies[i].Scan(l.System))
	}
	return out
}

// Scan converts one body.
func (b *Body) Scan(sys SystemKey) *journal.Scan {
	s := &journal.Scan{
		BodyName:              b.Name,
		BodyID:                b.BodyID,
		Parents:               parentRefs(b.Parents),
		StarSystem:            sys.Name,
		SystemAddress:         sys.Address,
		DistanceFromArrivalLS: b.DistanceToArrival,
		Atmosphere:            b.AtmosphereType,
		Volcanism:             b.VolcanismType,
		TerraformState:        b.TerraformingState,
		SurfaceTemperature:    b.SurfaceTemp,
		Landable:              b.IsLandable,
		TidalLock:             b.TidallyLocked,
		ReserveLevel:          b.ReserveLevel,
		Materials:             materialShares(b.Materials),
		WasDiscovered:         true,
		Source:                journal.SourceLookup,
	}

	if strings.EqualFold(b.Type, "Star") {
		s.StarType, s.Subclass = spectral(b.SpectralClass, b.SubType)
		s.StellarMass = b.SolarMasses
		s.Radius = b.SolarRadius * solarRadiusMetres
		s.AbsoluteMagnitude = b.AbsoluteMagnitude
		s.AgeMY = b.Age
		s.Luminosity = b.Luminosity
		s.Rings = rings(b.Belts)
		return s
	}

	s.PlanetClass = planetClass(b.SubType)
	s.MassEM = b.EarthMasses
	s.Radius = b.Radius * 1000
	s.SurfaceGravity = b.Gravity * standardGravity
	s.SurfacePressure = b.SurfacePressure * atmospherePascals
	s.Rings = rings(b.Rings)
	return s
}

func planetClass(subType string) string {
	if pc, ok := planetClasses[strings.ToLower(subType)]; ok {
		return pc
	}
	return subType
}

// spectral splits "K1" into "K" and 1. Stars without a spectral class keep
// the first word of the sub-type so they still read as stars.
func spectral(class, subType string) (string, int) {
	letters := strings.TrimRightFunc(class, unicode.IsDigit)
	digits := class[len(letters):]
	sub := 0
	for _, r := range digits {
		sub = sub*10 + int(r-'0')
	}
	if letters != "" {
		return letters, sub
	}
	if f := strings.Fields(subType); len(f) > 0 {
		return f[0], 0
	}
	return "Unknown", 0
}

// parentRefs turns [{"Null":1},{"Star":0}] into parent references.
func parentRefs(parents []map[string]int) []journal.ParentRef {
	if len(parents) == 0 {
		return nil
	}
	out := make([]journal.ParentRef, 0, len(parents))
	for _, p := range parents {
		for typ, id := range p {
			out = append(out, journal.ParentRef{Type: typ, BodyID: id})
		}
	}
	return out
}

func materialShares(m map[string]float64) []journal.MaterialShare {
	if len(m) == 0 {
		return nil
	}
	out := make([]journal.MaterialShare, 0, len(m))
	for name, pct := range m {
		out = append(out, journal.MaterialShare{Name: strings.ToLower(name), Percent: pct})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ringClass maps "Metal Rich" to "eRingClass_MetalRich". The game spells
// metallic rings with one l.
func ringClass(t string) string {
	if strings.EqualFold(t, "metallic") {
		return "eRingClass_Metalic"
	}
	return "eRingClass_" + strings.ReplaceAll(t, " ", "")
}

func rings(in []BodyRing) []journal.Ring {
	if len(in) == 0 {
		return nil
	}
	out := make([]journal.Ring, 0, len(in))
	for _, r := range in {
		out = append(out, journal.Ring{
			Name:      r.Name,
			RingClass: ringClass(r.Type),
			MassMT:    r.Mass,
			InnerRad:  r.InnerRadius * 1000,
			OuterRad:  r.OuterRadius * 1000,
		})
	}
	return out
}
