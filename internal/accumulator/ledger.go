// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package accumulator

import (
	"time"

	"github.com/tomtom215/astrographus/internal/journal"
)

// Transaction is one cash movement.
type Transaction struct {
	Time    time.Time    `json:"time"`
	Kind    journal.Kind `json:"kind"`
	Amount  int64        `json:"amount"`
	Balance int64        `json:"balance"`
	Note    string       `json:"note,omitempty"`
}

// Ledger tracks the commander's cash. LoadGame resets the balance to the
// absolute value the game reports; every other movement is a delta.
type Ledger struct {
	Cash         int64         `json:"cash"`
	Transactions []Transaction `json:"transactions"`
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Apply folds one event into the ledger.
func (l *Ledger) Apply(ev *journal.Event) *Ledger {
	switch p := ev.Payload.(type) {
	case *journal.LoadGame:
		if p.Credits == l.Cash && len(l.Transactions) > 0 {
			return l
		}
		return l.record(ev, p.Credits-l.Cash, "balance")
	case *journal.MarketBuy:
		return l.record(ev, -p.TotalCost, p.Type)
	case *journal.MarketSell:
		return l.record(ev, p.TotalSale, p.Type)
	case *journal.ShipyardBuy:
		return l.record(ev, p.SellPrice-p.ShipPrice, p.ShipType)
	case *journal.ShipyardSell:
		return l.record(ev, p.ShipPrice, p.ShipType)
	case *journal.ShipyardTransfer:
		return l.record(ev, -p.TransferPrice, p.ShipType)
	case *journal.ModuleBuy:
		return l.record(ev, p.SellPrice-p.BuyPrice, p.BuyItem)
	case *journal.ModuleSell:
		return l.record(ev, p.SellPrice, p.SellItem)
	case *journal.RefuelAll:
		return l.record(ev, -p.Cost, "")
	case *journal.Repair:
		return l.record(ev, -p.Cost, p.Item)
	case *journal.RedeemVoucher:
		return l.record(ev, p.Amount, p.Type)
	case *journal.PayFines:
		return l.record(ev, -p.Amount, "")
	case *journal.SellExplorationData:
		return l.record(ev, p.TotalEarnings, "")
	case *journal.MultiSellExplorationData:
		return l.record(ev, p.TotalEarnings, "")
	case *journal.MissionCompleted:
		return l.record(ev, p.Reward-p.Donation, p.Name)
	case *journal.MissionFailed:
		return l.record(ev, -p.Fine, p.Name)
	case *journal.MissionAbandoned:
		return l.record(ev, -p.Fine, p.Name)
	case *journal.Resurrect:
		return l.record(ev, -p.Cost, p.Option)
	}
	return l
}

func (l *Ledger) record(ev *journal.Event, amount int64, note string) *Ledger {
	if amount == 0 && ev.Kind != journal.KindLoadGame {
		return l
	}
	balance := l.Cash + amount
	// Full slice expression: appending must never write into an array an
	// older Ledger still shares.
	tx := append(l.Transactions[:len(l.Transactions):len(l.Transactions)], Transaction{
		Time:    ev.Time,
		Kind:    ev.Kind,
		Amount:  amount,
		Balance: balance,
		Note:    note,
	})
	return &Ledger{Cash: balance, Transactions: tx}
}
