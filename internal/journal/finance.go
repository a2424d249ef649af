// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

type Bounty struct {
	Target        string `json:"target"`
	VictimFaction string `json:"victim_faction"`
	TotalReward   int64  `json:"total_reward"`
}

type RedeemVoucher struct {
	Type    string `json:"type"`
	Amount  int64  `json:"amount"`
	Faction string `json:"faction,omitempty"`
}

type PayFines struct {
	Amount int64 `json:"amount"`
}

type SellExplorationData struct {
	Systems       []string `json:"systems"`
	Discovered    []string `json:"discovered,omitempty"`
	BaseValue     int64    `json:"base_value"`
	Bonus         int64    `json:"bonus"`
	TotalEarnings int64    `json:"total_earnings"`
}

type DiscoveredSystem struct {
	SystemName string `json:"system_name"`
	NumBodies  int    `json:"num_bodies"`
}

type MultiSellExplorationData struct {
	Discovered    []DiscoveredSystem `json:"discovered"`
	BaseValue     int64              `json:"base_value"`
	Bonus         int64              `json:"bonus"`
	TotalEarnings int64              `json:"total_earnings"`
}

type Died struct {
	KillerName string `json:"killer_name,omitempty"`
	KillerShip string `json:"killer_ship,omitempty"`
}

type Resurrect struct {
	Option   string `json:"option"`
	Cost     int64  `json:"cost"`
	Bankrupt bool   `json:"bankrupt"`
}

func (*Bounty) payloadKind() Kind                   { return KindBounty }
func (*RedeemVoucher) payloadKind() Kind            { return KindRedeemVoucher }
func (*PayFines) payloadKind() Kind                 { return KindPayFines }
func (*SellExplorationData) payloadKind() Kind      { return KindSellExplorationData }
func (*MultiSellExplorationData) payloadKind() Kind { return KindMultiSellExplorationData }
func (*Died) payloadKind() Kind                     { return KindDied }
func (*Resurrect) payloadKind() Kind                { return KindResurrect }

//nolint:gochecknoinits // parser registration
func init() {
	register(KindBounty, func(f Fields) Payload {
		reward := f.Long("TotalReward")
		if reward == 0 {
			// ship bounties before 3.0 only carried a flat Reward
			reward = f.Long("Reward")
		}
		return &Bounty{
			Target:        f.Localised("Target"),
			VictimFaction: f.Faction("VictimFaction"),
			TotalReward:   reward,
		}
	})
	register(KindRedeemVoucher, func(f Fields) Payload {
		return &RedeemVoucher{Type: f.Str("Type"), Amount: f.Long("Amount"), Faction: f.Str("Faction")}
	})
	register(KindPayFines, func(f Fields) Payload {
		return &PayFines{Amount: f.Long("Amount")}
	})
	register(KindSellExplorationData, func(f Fields) Payload {
		return &SellExplorationData{
			Systems:       f.Strings("Systems"),
			Discovered:    f.Strings("Discovered"),
			BaseValue:     f.Long("BaseValue"),
			Bonus:         f.Long("Bonus"),
			TotalEarnings: f.Long("TotalEarnings"),
		}
	})
	register(KindMultiSellExplorationData, func(f Fields) Payload {
		m := &MultiSellExplorationData{
			BaseValue:     f.Long("BaseValue"),
			Bonus:         f.Long("Bonus"),
			TotalEarnings: f.Long("TotalEarnings"),
		}
		for _, d := range f.Objects("Discovered") {
			m.Discovered = append(m.Discovered, DiscoveredSystem{SystemName: d.Str("SystemName"), NumBodies: d.Int("NumBodies")})
		}
		return m
	})
	register(KindDied, func(f Fields) Payload {
		return &Died{KillerName: f.Localised("KillerName"), KillerShip: lower(f, "KillerShip")}
	})
	register(KindResurrect, func(f Fields) Payload {
		return &Resurrect{Option: f.Str("Option"), Cost: f.Long("Cost"), Bankrupt: f.Bool("Bankrupt")}
	})
}
