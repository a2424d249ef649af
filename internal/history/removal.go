// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package history

import (
	"github.com/tomtom215/astrographus/internal/journal"
)

// removal decides whether ev is dropped from the timeline and names the
// rule that dropped it.
//
//   - cargo: before the cutover the game wrote a Cargo manifest right after
//     every Cargo, Loadout and LoadGame. The inventory it carries is written
//     forward onto the retained predecessor.
//   - continued: end-of-file markers are consumed by continuation stitching.
//   - music: soundtrack changes.
func (s *Sequencer) removal(ev *journal.Event, last *Entry) (string, bool) {
	switch ev.Kind {
	case journal.KindContinued:
		return "continued", true
	case journal.KindMusic:
		return "music", true
	case journal.KindCargo:
		if last == nil || !ev.Time.Before(s.cfg.CargoCutover) {
			return "", false
		}
		switch last.Kind() {
		case journal.KindCargo, journal.KindLoadout, journal.KindLoadGame:
			return "cargo", true
		}
	}
	return "", false
}
