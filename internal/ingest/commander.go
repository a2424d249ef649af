// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package ingest

import (
	"context"

	"github.com/tomtom215/astrographus/internal/journal"
	"github.com/tomtom215/astrographus/internal/tailer"
)

// stamp sets the part and commander of ev. Caller holds the gate.
//
// A session names its commander in LoadGame (or Commander/NewCommander)
// shortly after the Fileheader. Lines before that, and every line of a
// continuation file, take the commander of the latest session start that
// precedes them.
func (m *Monitor) stamp(ctx context.Context, h *tailer.Handle, ev *journal.Event) {
	ev.Part = h.Part()

	switch p := ev.Payload.(type) {
	case *journal.Fileheader:
		part := max(p.Part, 1)
		h.SetPart(part)
		ev.Part = part
		if part > 1 {
			m.commander = m.stitch(ctx, ev)
		} else {
			m.commander = 0
		}
		m.known = true
	case *journal.LoadGame:
		m.commander = m.ensure(ctx, p.Commander, p.FID)
		m.known = true
	case *journal.Commander:
		m.commander = m.ensure(ctx, p.Name, p.FID)
		m.known = true
	case *journal.NewCommander:
		m.commander = m.ensure(ctx, p.Name, p.FID)
		m.known = true
	default:
		if !m.known {
			m.commander = m.stitch(ctx, ev)
			m.known = true
		}
	}
	ev.CommanderID = m.commander
}

// stitch returns the commander of the latest session start before ev, or 0.
func (m *Monitor) stitch(ctx context.Context, ev *journal.Event) int64 {
	pred, err := m.store.Predecessor(ctx, commanderKinds, ev.Time)
	if err != nil {
		m.log.Warn().Err(err).Str("file", ev.File).Int64("seq", ev.Seq).Msg("Commander lookup failed")
		return 0
	}
	if pred == nil {
		return 0
	}
	if pred.CommanderID != 0 {
		return pred.CommanderID
	}

	switch p := pred.Payload.(type) {
	case *journal.LoadGame:
		return m.ensure(ctx, p.Commander, p.FID)
	case *journal.Commander:
		return m.ensure(ctx, p.Name, p.FID)
	case *journal.NewCommander:
		return m.ensure(ctx, p.Name, p.FID)
	}
	return 0
}

func (m *Monitor) ensure(ctx context.Context, name, fid string) int64 {
	id, err := m.store.EnsureCommander(ctx, name, fid)
	if err != nil {
		m.log.Warn().Err(err).Str("commander", name).Msg("Commander not registered")
		return 0
	}
	return id
}
