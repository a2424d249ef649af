// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package journal decodes Elite Dangerous journal lines into typed events.

Each line is one JSON object carrying at least "event" and "timestamp". The
Decoder reads it into a generic Fields document (numbers kept as json.Number),
maps the event name onto the closed Kind set, and builds the kind's typed
Payload. Unknown fields are ignored; unknown event names and malformed lines
are returned as *DecodeError and never panic.

	dec := journal.NewDecoder(journal.WithSidecars(journal.NewSidecarReader(dir, 5, 50*time.Millisecond)))
	ev, err := dec.DecodeAt(line, journal.Source{File: name, Seq: n})
	switch {
	case errors.Is(err, journal.ErrSidecarPending):
	    // retry next tick
	case err != nil:
	    // drop the line
	}
	if scan, ok := journal.As[*journal.Scan](ev); ok {
	    ...
	}

# Side-car files

Market, Outfitting, Shipyard, NavRoute, ModuleInfo and inventory-less Cargo
events carry only a summary on the journal line; the full content is in a
sibling JSON file (Market.json, ...). SidecarReader waits a bounded number
of attempts for a side-car whose timestamp matches the event and merges its
fields into the event before the payload is built, so Event.Raw always
holds the complete record.
*/
package journal
