// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

// FuelScoop accumulates a burst of scoop events: Scooped is summed, Total is
// the latest tank level, Count is the number of events folded in.
type FuelScoop struct {
	Scooped float64 `json:"scooped"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
}

type RefuelAll struct {
	Cost   int64   `json:"cost"`
	Amount float64 `json:"amount"`
}

type Repair struct {
	Item string `json:"item"`
	Cost int64  `json:"cost"`
}

type FriendStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Friends holds the union of friend status changes, first-seen order.
type Friends struct {
	Friends []FriendStatus `json:"friends"`
}

type TargetState struct {
	TargetLocked bool   `json:"target_locked"`
	Ship         string `json:"ship,omitempty"`
	PilotName    string `json:"pilot_name,omitempty"`
	ScanStage    int    `json:"scan_stage,omitempty"`
	LegalStatus  string `json:"legal_status,omitempty"`
	Bounty       int64  `json:"bounty,omitempty"`
}

// ShipTargeted holds a burst of target-lock changes in arrival order.
type ShipTargeted struct {
	Targets []TargetState `json:"targets"`
}

// UnderAttack lists who was attacked ("You", "Fighter", "Mothership") in
// arrival order.
type UnderAttack struct {
	Targets []string `json:"targets"`
}

type TextMessage struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// ReceiveText holds consecutive messages received on one channel.
type ReceiveText struct {
	Channel  string        `json:"channel"`
	Messages []TextMessage `json:"messages"`
}

type SendText struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (*FuelScoop) payloadKind() Kind    { return KindFuelScoop }
func (*RefuelAll) payloadKind() Kind    { return KindRefuelAll }
func (*Repair) payloadKind() Kind       { return KindRepair }
func (*Friends) payloadKind() Kind      { return KindFriends }
func (*ShipTargeted) payloadKind() Kind { return KindShipTargeted }
func (*UnderAttack) payloadKind() Kind  { return KindUnderAttack }
func (*ReceiveText) payloadKind() Kind  { return KindReceiveText }
func (*SendText) payloadKind() Kind     { return KindSendText }

//nolint:gochecknoinits // parser registration
func init() {
	register(KindFuelScoop, func(f Fields) Payload {
		return &FuelScoop{Scooped: f.Float("Scooped"), Total: f.Float("Total"), Count: 1}
	})
	register(KindRefuelAll, func(f Fields) Payload {
		return &RefuelAll{Cost: f.Long("Cost"), Amount: f.Float("Amount")}
	})
	register(KindRepair, func(f Fields) Payload {
		return &Repair{Item: f.Localised("Item"), Cost: f.Long("Cost")}
	})
	register(KindFriends, func(f Fields) Payload {
		return &Friends{Friends: []FriendStatus{{Name: f.Str("Name"), Status: f.Str("Status")}}}
	})
	register(KindShipTargeted, func(f Fields) Payload {
		return &ShipTargeted{Targets: []TargetState{{
			TargetLocked: f.Bool("TargetLocked"),
			Ship:         f.Localised("Ship"),
			PilotName:    f.Localised("PilotName"),
			ScanStage:    f.Int("ScanStage"),
			LegalStatus:  f.Str("LegalStatus"),
			Bounty:       f.Long("Bounty"),
		}}}
	})
	register(KindUnderAttack, func(f Fields) Payload {
		return &UnderAttack{Targets: []string{f.Str("Target")}}
	})
	register(KindReceiveText, func(f Fields) Payload {
		return &ReceiveText{
			Channel:  f.Str("Channel"),
			Messages: []TextMessage{{From: f.Localised("From"), Message: f.Localised("Message")}},
		}
	})
	register(KindSendText, func(f Fields) Payload {
		return &SendText{To: f.Str("To"), Message: f.Str("Message")}
	})
}
