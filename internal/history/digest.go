// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package history

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/astrographus/internal/accumulator"
	"github.com/tomtom215/astrographus/internal/starscan"
)

type digest struct {
	Entries    int                          `json:"entries"`
	System     Location                     `json:"system"`
	Docked     bool                         `json:"docked"`
	Station    string                       `json:"station"`
	Visits     map[string]int               `json:"visits"`
	Ships      *accumulator.ShipInformation `json:"ships"`
	Modules    *accumulator.ModulesInStore  `json:"modules"`
	Shipyards  *accumulator.ShipyardList    `json:"shipyards"`
	Outfitting *accumulator.OutfittingList  `json:"outfitting"`
	Markets    *accumulator.MarketList      `json:"markets"`
	Ledger     *accumulator.Ledger          `json:"ledger"`
	Missions   *accumulator.MissionList     `json:"missions"`
	Inventory  *accumulator.Inventory       `json:"inventory"`
	Stats      accumulator.Stats            `json:"stats"`
	Systems    *starscan.Builder            `json:"systems"`
}

// Digest encodes every accumulator and the scan trees deterministically.
// Folding the same events live or in bulk yields the same digest.
func (s *Sequencer) Digest() ([]byte, error) {
	b, err := json.Marshal(digest{
		Entries:    len(s.entries),
		System:     s.st.system,
		Docked:     s.st.docked,
		Station:    s.st.station,
		Visits:     s.st.visits,
		Ships:      s.st.ships,
		Modules:    s.st.modules,
		Shipyards:  s.st.shipyards,
		Outfitting: s.st.outfitting,
		Markets:    s.st.markets,
		Ledger:     s.st.ledger,
		Missions:   s.st.missions,
		Inventory:  s.st.inventory,
		Stats:      s.st.stats,
		Systems:    s.scans,
	})
	if err != nil {
		return nil, fmt.Errorf("encode history digest: %w", err)
	}
	return b, nil
}
