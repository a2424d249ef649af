// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package merge

import (
	"time"

	"github.com/tomtom215/astrographus/internal/journal"
)

// Outcome is the result of offering an event to its predecessor.
type Outcome int

const (
	// NotMerged: next stands alone and becomes a new entry.
	NotMerged Outcome = iota
	// Merged: next was folded into prev and must not be appended.
	Merged
	// Discarded: next repeats prev exactly and carries no new information.
	Discarded
)

// String returns the metric label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Merged:
		return "merged"
	case Discarded:
		return "discarded"
	default:
		return "not_merged"
	}
}

// noWindow marks rules that merge consecutive events regardless of the gap
// between them.
const noWindow time.Duration = 0

type rule struct {
	window time.Duration
	fold   func(prev, next *journal.Event) Outcome
}

var rules = map[journal.Kind]rule{
	journal.KindFSSSignalDiscovered: {window: 2000 * time.Millisecond, fold: foldSignals},
	journal.KindFuelScoop:           {window: 10000 * time.Millisecond, fold: foldFuelScoop},
	journal.KindShipTargeted:        {window: 250 * time.Millisecond, fold: foldTargets},
	journal.KindFriends:             {window: noWindow, fold: foldFriends},
	journal.KindUnderAttack:         {window: noWindow, fold: foldUnderAttack},
	journal.KindReceiveText:         {window: noWindow, fold: foldReceiveText},
	journal.KindFSSAllBodiesFound:   {window: noWindow, fold: foldAllBodiesFound},
}

// Merger collapses chatter: bursts of same-kind events fold into the first
// one. It holds no state of its own; the caller supplies the previous
// retained event.
type Merger struct {
	Enabled bool
}

// New creates a Merger. A disabled Merger never merges.
func New(enabled bool) *Merger {
	return &Merger{Enabled: enabled}
}

// Merge offers next to prev. On Merged, prev's payload has absorbed next;
// merging only ever adds to sums and lists.
func (m *Merger) Merge(prev, next *journal.Event) Outcome {
	if m == nil || !m.Enabled || prev == nil || next == nil || prev.Kind != next.Kind {
		return NotMerged
	}
	r, ok := rules[next.Kind]
	if !ok {
		return NotMerged
	}
	if r.window != noWindow {
		gap := next.Time.Sub(prev.Time)
		if gap < 0 {
			gap = -gap
		}
		if gap > r.window {
			return NotMerged
		}
	}
	return r.fold(prev, next)
}

// Mergeable reports whether kind has a merge rule.
func Mergeable(kind journal.Kind) bool {
	_, ok := rules[kind]
	return ok
}

func foldSignals(prev, next *journal.Event) Outcome {
	p, ok1 := journal.As[*journal.FSSSignalDiscovered](prev)
	n, ok2 := journal.As[*journal.FSSSignalDiscovered](next)
	if !ok1 || !ok2 || p.SystemAddress != n.SystemAddress {
		return NotMerged
	}
	p.Signals = append(p.Signals, n.Signals...)
	return Merged
}

func foldFuelScoop(prev, next *journal.Event) Outcome {
	p, ok1 := journal.As[*journal.FuelScoop](prev)
	n, ok2 := journal.As[*journal.FuelScoop](next)
	if !ok1 || !ok2 {
		return NotMerged
	}
	p.Scooped += n.Scooped
	p.Total = n.Total
	p.Count += n.Count
	return Merged
}

func foldTargets(prev, next *journal.Event) Outcome {
	p, ok1 := journal.As[*journal.ShipTargeted](prev)
	n, ok2 := journal.As[*journal.ShipTargeted](next)
	if !ok1 || !ok2 {
		return NotMerged
	}
	p.Targets = append(p.Targets, n.Targets...)
	return Merged
}

func foldFriends(prev, next *journal.Event) Outcome {
	p, ok1 := journal.As[*journal.Friends](prev)
	n, ok2 := journal.As[*journal.Friends](next)
	if !ok1 || !ok2 {
		return NotMerged
	}
	for _, f := range n.Friends {
		found := false
		for i := range p.Friends {
			if p.Friends[i].Name == f.Name {
				p.Friends[i].Status = f.Status
				found = true
				break
			}
		}
		if !found {
			p.Friends = append(p.Friends, f)
		}
	}
	return Merged
}

func foldUnderAttack(prev, next *journal.Event) Outcome {
	p, ok1 := journal.As[*journal.UnderAttack](prev)
	n, ok2 := journal.As[*journal.UnderAttack](next)
	if !ok1 || !ok2 {
		return NotMerged
	}
	p.Targets = append(p.Targets, n.Targets...)
	return Merged
}

func foldReceiveText(prev, next *journal.Event) Outcome {
	p, ok1 := journal.As[*journal.ReceiveText](prev)
	n, ok2 := journal.As[*journal.ReceiveText](next)
	if !ok1 || !ok2 || p.Channel != n.Channel {
		return NotMerged
	}
	p.Messages = append(p.Messages, n.Messages...)
	return Merged
}

func foldAllBodiesFound(prev, next *journal.Event) Outcome {
	p, ok1 := journal.As[*journal.FSSAllBodiesFound](prev)
	n, ok2 := journal.As[*journal.FSSAllBodiesFound](next)
	if !ok1 || !ok2 || p.Count != n.Count {
		return NotMerged
	}
	if p.SystemAddress != 0 && n.SystemAddress != 0 {
		if p.SystemAddress != n.SystemAddress {
			return NotMerged
		}
	} else if p.SystemName != n.SystemName {
		return NotMerged
	}
	return Discarded
}
