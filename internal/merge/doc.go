// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

// Package merge folds bursts of chatter events into one representative
// event.
//
// Rules by kind:
//
//	FSSSignalDiscovered  2000 ms   append signals, first-seen order
//	FuelScoop            10000 ms  sum Scooped, last Total wins
//	ShipTargeted         250 ms    append target state
//	Friends              no window union of names
//	UnderAttack          no window append attacked party
//	ReceiveText          no window append when the channel matches
//	FSSAllBodiesFound    no window same system and count is discarded
//
// Every other kind stands alone. Windows are inclusive.
package merge
