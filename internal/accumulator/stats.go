// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package accumulator

import (
	"github.com/tomtom215/astrographus/internal/journal"
)

// Stats are cumulative counters. Stats is a plain value; Apply returns a
// modified copy.
type Stats struct {
	Jumps           int     `json:"jumps"`
	DistanceLY      float64 `json:"distance_ly"`
	SystemsVisited  int     `json:"systems_visited"`
	FuelScooped     float64 `json:"fuel_scooped"`
	BodiesScanned   int     `json:"bodies_scanned"`
	StarsScanned    int     `json:"stars_scanned"`
	BodiesMapped    int     `json:"bodies_mapped"`
	EfficientMaps   int     `json:"efficient_maps"`
	ExplorationSold int64   `json:"exploration_sold"`

	Bounties      int   `json:"bounties"`
	BountyRewards int64 `json:"bounty_rewards"`
	Deaths        int   `json:"deaths"`
	FinesPaid     int64 `json:"fines_paid"`

	CommoditiesBought int   `json:"commodities_bought"`
	CommoditiesSold   int   `json:"commodities_sold"`
	TradeProfit       int64 `json:"trade_profit"`

	MissionsAccepted  int   `json:"missions_accepted"`
	MissionsCompleted int   `json:"missions_completed"`
	MissionsFailed    int   `json:"missions_failed"`
	MissionRewards    int64 `json:"mission_rewards"`

	Docks int `json:"docks"`
}

// Apply returns the stats after ev. newSystem reports that ev entered a
// system for the first time in this history.
func (s Stats) Apply(ev *journal.Event, newSystem bool) Stats {
	switch p := ev.Payload.(type) {
	case *journal.FSDJump:
		s.Jumps++
		s.DistanceLY += p.JumpDist
	case *journal.CarrierJump:
		s.DistanceLY += p.JumpDist
	case *journal.FuelScoop:
		s.FuelScooped += p.Scooped
	case *journal.Scan:
		if p.Source == journal.SourceJournal {
			if p.IsStar() {
				s.StarsScanned++
			} else if !p.IsBeltCluster() {
				s.BodiesScanned++
			}
		}
	case *journal.SAAScanComplete:
		s.BodiesMapped++
		if p.Efficient() {
			s.EfficientMaps++
		}
	case *journal.SellExplorationData:
		s.ExplorationSold += p.TotalEarnings
	case *journal.MultiSellExplorationData:
		s.ExplorationSold += p.TotalEarnings
	case *journal.Bounty:
		s.Bounties++
		s.BountyRewards += p.TotalReward
	case *journal.Died:
		s.Deaths++
	case *journal.PayFines:
		s.FinesPaid += p.Amount
	case *journal.MarketBuy:
		s.CommoditiesBought += p.Count
	case *journal.MarketSell:
		s.CommoditiesSold += p.Count
		s.TradeProfit += p.TotalSale - p.AvgPricePaid*int64(p.Count)
	case *journal.MissionAccepted:
		s.MissionsAccepted++
	case *journal.MissionCompleted:
		s.MissionsCompleted++
		s.MissionRewards += p.Reward
	case *journal.MissionFailed:
		s.MissionsFailed++
	case *journal.Docked:
		s.Docks++
	}
	if newSystem {
		s.SystemsVisited++
	}
	return s
}
