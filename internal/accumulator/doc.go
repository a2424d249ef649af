// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package accumulator holds the world-model reducers folded by the history
sequencer: the fleet (ShipInformation), modules in storage, shipyard,
outfitting and market caches, the cash ledger, statistics, missions and the
materials and commodities inventory.

Every reducer is immutable. Apply returns the receiver when an event does
not change it and a new value otherwise, so a history entry can keep a
pointer to the state as of that entry:

	ships := accumulator.NewShipInformation()
	for _, ev := range events {
		ships = ships.Apply(ev)
	}

Ship records are shared between fleet versions and copied before any
change.
*/
package accumulator
