// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package starscan

import (
	"strings"

	"github.com/tomtom215/astrographus/internal/bodyname"
	"github.com/tomtom215/astrographus/internal/journal"
)

// beltExceptions maps belts whose names do not carry their star's name.
var beltExceptions = map[string]map[string]string{
	"lave": {"castellan belt": "A Belt"},
}

// attachBelts adds a child node for every asteroid belt listed on a star
// scan. Belt nodes created earlier by belt cluster scans gain the ring data.
func (b *Builder) attachBelts(sys *SystemNode, star *ScanNode, scan *journal.Scan) {
	for i := range scan.Rings {
		ring := scan.Rings[i]
		if !ring.IsBelt() {
			continue
		}
		name := beltName(sys.Name, scan.BodyName, ring.Name)
		node, _ := star.Children.getOrAdd(name, func() *ScanNode {
			return &ScanNode{
				Name:     name,
				PathName: star.PathName + "." + name,
				Kind:     bodyname.KindBelt,
				Level:    star.Level + 1,
				Children: &Children{},
			}
		})
		node.Belt = &ring
		if node.BodyName == "" {
			node.BodyName = ring.Name
		}
	}
}

// beltName strips the star's body name from the front of a belt name.
func beltName(system, star, belt string) string {
	if m, ok := beltExceptions[strings.ToLower(system)]; ok {
		if to, ok := m[strings.ToLower(belt)]; ok {
			return to
		}
	}
	if rem, ok := bodyname.Relative(belt, star); ok && rem != "" {
		return rem
	}
	return belt
}
