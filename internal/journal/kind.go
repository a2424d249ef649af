// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

// Kind is the closed set of journal event types understood by the decoder.
// Lines whose "event" value is not listed here are rejected with UnknownKind.
type Kind int

const (
	KindUnknown Kind = iota

	// session
	KindFileheader
	KindContinued
	KindShutdown
	KindLoadGame
	KindCommander
	KindNewCommander

	// travel
	KindLocation
	KindFSDJump
	KindCarrierJump
	KindStartJump
	KindSupercruiseEntry
	KindSupercruiseExit
	KindDocked
	KindUndocked
	KindTouchdown
	KindLiftoff
	KindApproachBody
	KindNavRoute
	KindMusic

	// exploration
	KindScan
	KindSAAScanComplete
	KindSAASignalsFound
	KindFSSBodySignals
	KindFSSDiscoveryScan
	KindFSSAllBodiesFound
	KindFSSSignalDiscovered
	KindNavBeaconScan

	// chatter
	KindFuelScoop
	KindRefuelAll
	KindRepair
	KindFriends
	KindShipTargeted
	KindUnderAttack
	KindReceiveText
	KindSendText

	// inventory and markets
	KindCargo
	KindMarket
	KindOutfitting
	KindShipyard
	KindModuleInfo
	KindMaterials
	KindMaterialCollected
	KindMaterialDiscarded
	KindMarketBuy
	KindMarketSell
	KindCollectCargo
	KindEjectCargo
	KindMiningRefined

	// ships and outfitting
	KindLoadout
	KindShipyardBuy
	KindShipyardSell
	KindShipyardNew
	KindShipyardSwap
	KindShipyardTransfer
	KindSetUserShipName
	KindModuleBuy
	KindModuleSell
	KindModuleStore
	KindModuleRetrieve
	KindStoredModules

	// missions
	KindMissionAccepted
	KindMissionCompleted
	KindMissionFailed
	KindMissionAbandoned
	KindMissionRedirected

	// finance and combat
	KindBounty
	KindRedeemVoucher
	KindPayFines
	KindSellExplorationData
	KindMultiSellExplorationData
	KindDied
	KindResurrect

	kindCount
)

var kindNames = [...]string{
	KindUnknown:                  "Unknown",
	KindFileheader:               "Fileheader",
	KindContinued:                "Continued",
	KindShutdown:                 "Shutdown",
	KindLoadGame:                 "LoadGame",
	KindCommander:                "Commander",
	KindNewCommander:             "NewCommander",
	KindLocation:                 "Location",
	KindFSDJump:                  "FSDJump",
	KindCarrierJump:              "CarrierJump",
	KindStartJump:                "StartJump",
	KindSupercruiseEntry:         "SupercruiseEntry",
	KindSupercruiseExit:          "SupercruiseExit",
	KindDocked:                   "Docked",
	KindUndocked:                 "Undocked",
	KindTouchdown:                "Touchdown",
	KindLiftoff:                  "Liftoff",
	KindApproachBody:             "ApproachBody",
	KindNavRoute:                 "NavRoute",
	KindMusic:                    "Music",
	KindScan:                     "Scan",
	KindSAAScanComplete:          "SAAScanComplete",
	KindSAASignalsFound:          "SAASignalsFound",
	KindFSSBodySignals:           "FSSBodySignals",
	KindFSSDiscoveryScan:         "FSSDiscoveryScan",
	KindFSSAllBodiesFound:        "FSSAllBodiesFound",
	KindFSSSignalDiscovered:      "FSSSignalDiscovered",
	KindNavBeaconScan:            "NavBeaconScan",
	KindFuelScoop:                "FuelScoop",
	KindRefuelAll:                "RefuelAll",
	KindRepair:                   "Repair",
	KindFriends:                  "Friends",
	KindShipTargeted:             "ShipTargeted",
	KindUnderAttack:              "UnderAttack",
	KindReceiveText:              "ReceiveText",
	KindSendText:                 "SendText",
	KindCargo:                    "Cargo",
	KindMarket:                   "Market",
	KindOutfitting:               "Outfitting",
	KindShipyard:                 "Shipyard",
	KindModuleInfo:               "ModuleInfo",
	KindMaterials:                "Materials",
	KindMaterialCollected:        "MaterialCollected",
	KindMaterialDiscarded:        "MaterialDiscarded",
	KindMarketBuy:                "MarketBuy",
	KindMarketSell:               "MarketSell",
	KindCollectCargo:             "CollectCargo",
	KindEjectCargo:               "EjectCargo",
	KindMiningRefined:            "MiningRefined",
	KindLoadout:                  "Loadout",
	KindShipyardBuy:              "ShipyardBuy",
	KindShipyardSell:             "ShipyardSell",
	KindShipyardNew:              "ShipyardNew",
	KindShipyardSwap:             "ShipyardSwap",
	KindShipyardTransfer:         "ShipyardTransfer",
	KindSetUserShipName:          "SetUserShipName",
	KindModuleBuy:                "ModuleBuy",
	KindModuleSell:               "ModuleSell",
	KindModuleStore:              "ModuleStore",
	KindModuleRetrieve:           "ModuleRetrieve",
	KindStoredModules:            "StoredModules",
	KindMissionAccepted:          "MissionAccepted",
	KindMissionCompleted:         "MissionCompleted",
	KindMissionFailed:            "MissionFailed",
	KindMissionAbandoned:         "MissionAbandoned",
	KindMissionRedirected:        "MissionRedirected",
	KindBounty:                   "Bounty",
	KindRedeemVoucher:            "RedeemVoucher",
	KindPayFines:                 "PayFines",
	KindSellExplorationData:      "SellExplorationData",
	KindMultiSellExplorationData: "MultiSellExplorationData",
	KindDied:                     "Died",
	KindResurrect:                "Resurrect",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := KindUnknown + 1; k < kindCount; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// String returns the journal "event" name for the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// ParseKind maps a journal "event" value to its Kind.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindByName[name]
	return k, ok
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// MarshalText encodes the kind by name so stored and digested data stay
// readable and stable across enum reordering.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name; unknown names map to KindUnknown.
func (k *Kind) UnmarshalText(b []byte) error {
	*k, _ = ParseKind(string(b))
	return nil
}
