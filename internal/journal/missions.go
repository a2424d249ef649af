// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

import "time"

type MissionAccepted struct {
	MissionID          int64     `json:"mission_id"`
	Name               string    `json:"name"`
	LocalisedName      string    `json:"localised_name,omitempty"`
	Faction            string    `json:"faction"`
	DestinationSystem  string    `json:"destination_system,omitempty"`
	DestinationStation string    `json:"destination_station,omitempty"`
	Expiry             time.Time `json:"expiry,omitempty"`
	Reward             int64     `json:"reward,omitempty"`
	Influence          string    `json:"influence,omitempty"`
	Reputation         string    `json:"reputation,omitempty"`
	Commodity          string    `json:"commodity,omitempty"`
	Count              int       `json:"count,omitempty"`
}

type CommodityReward struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MaterialReward struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type MissionCompleted struct {
	MissionID          int64             `json:"mission_id"`
	Name               string            `json:"name"`
	Faction            string            `json:"faction"`
	Reward             int64             `json:"reward"`
	Donation           int64             `json:"donation,omitempty"`
	CommodityReward    []CommodityReward `json:"commodity_reward,omitempty"`
	MaterialsReward    []MaterialReward  `json:"materials_reward,omitempty"`
	DeliveredCommodity string            `json:"delivered_commodity,omitempty"`
	DeliveredCount     int               `json:"delivered_count,omitempty"`
}

type MissionFailed struct {
	MissionID int64  `json:"mission_id"`
	Name      string `json:"name"`
	Fine      int64  `json:"fine,omitempty"`
}

type MissionAbandoned struct {
	MissionID int64  `json:"mission_id"`
	Name      string `json:"name"`
	Fine      int64  `json:"fine,omitempty"`
}

type MissionRedirected struct {
	MissionID             int64  `json:"mission_id"`
	Name                  string `json:"name"`
	NewDestinationSystem  string `json:"new_destination_system"`
	NewDestinationStation string `json:"new_destination_station"`
}

func (*MissionAccepted) payloadKind() Kind   { return KindMissionAccepted }
func (*MissionCompleted) payloadKind() Kind  { return KindMissionCompleted }
func (*MissionFailed) payloadKind() Kind     { return KindMissionFailed }
func (*MissionAbandoned) payloadKind() Kind  { return KindMissionAbandoned }
func (*MissionRedirected) payloadKind() Kind { return KindMissionRedirected }

//nolint:gochecknoinits // parser registration
func init() {
	register(KindMissionAccepted, func(f Fields) Payload {
		return &MissionAccepted{
			MissionID:          f.Long("MissionID"),
			Name:               f.Str("Name"),
			LocalisedName:      f.Str("LocalisedName"),
			Faction:            f.Faction("Faction"),
			DestinationSystem:  f.Str("DestinationSystem"),
			DestinationStation: f.Str("DestinationStation"),
			Expiry:             f.Time("Expiry"),
			Reward:             f.Long("Reward"),
			Influence:          f.Str("Influence"),
			Reputation:         f.Str("Reputation"),
			Commodity:          CommodityName(f.Str("Commodity")),
			Count:              f.Int("Count"),
		}
	})
	register(KindMissionCompleted, func(f Fields) Payload {
		m := &MissionCompleted{
			MissionID:          f.Long("MissionID"),
			Name:               f.Str("Name"),
			Faction:            f.Faction("Faction"),
			Reward:             f.Long("Reward"),
			Donation:           f.Long("Donated", "Donation"),
			DeliveredCommodity: CommodityName(f.Str("Commodity")),
			DeliveredCount:     f.Int("Count"),
		}
		for _, c := range f.Objects("CommodityReward") {
			m.CommodityReward = append(m.CommodityReward, CommodityReward{Name: CommodityName(c.Str("Name")), Count: c.Int("Count")})
		}
		for _, r := range f.Objects("MaterialsReward") {
			m.MaterialsReward = append(m.MaterialsReward, MaterialReward{
				Name:     lower(r, "Name"),
				Category: r.Localised("Category"),
				Count:    r.Int("Count"),
			})
		}
		return m
	})
	register(KindMissionFailed, func(f Fields) Payload {
		return &MissionFailed{MissionID: f.Long("MissionID"), Name: f.Str("Name"), Fine: f.Long("Fine")}
	})
	register(KindMissionAbandoned, func(f Fields) Payload {
		return &MissionAbandoned{MissionID: f.Long("MissionID"), Name: f.Str("Name"), Fine: f.Long("Fine")}
	})
	register(KindMissionRedirected, func(f Fields) Payload {
		return &MissionRedirected{
			MissionID:             f.Long("MissionID"),
			Name:                  f.Str("Name"),
			NewDestinationSystem:  f.Str("NewDestinationSystem"),
			NewDestinationStation: f.Str("NewDestinationStation"),
		}
	})
}
