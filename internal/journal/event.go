// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

import (
	"time"

	"github.com/goccy/go-json"
)

// Event is one decoded journal line.
//
// Events are created once by the Decoder. The only sanctioned mutation is
// the merger folding a later same-kind event into Payload; it only ever
// grows accumulation fields (sums, lists).
type Event struct {
	Kind        Kind            `json:"kind"`
	Time        time.Time       `json:"time"`
	Seq         int64           `json:"seq"`  // line index within File
	File        string          `json:"file"` // base name of the journal file
	Part        int             `json:"part"` // Fileheader part of File
	CommanderID int64           `json:"commander_id"`
	Raw         json.RawMessage `json:"raw"` // original line, side-car content merged in

	Fields  Fields  `json:"-"`
	Payload Payload `json:"-"`
}

// Payload is the kind-specific typed content of an Event. The set of
// implementations is closed; consumers switch on Event.Kind or use As.
type Payload interface {
	payloadKind() Kind
}

// As returns the event's payload as T.
//
//	if scan, ok := journal.As[*journal.Scan](ev); ok { ... }
func As[T Payload](ev *Event) (T, bool) {
	var zero T
	if ev == nil || ev.Payload == nil {
		return zero, false
	}
	p, ok := ev.Payload.(T)
	return p, ok
}

// Before reports whether e sorts before o in timeline order: timestamp,
// then file, then line sequence.
func (e *Event) Before(o *Event) bool {
	if !e.Time.Equal(o.Time) {
		return e.Time.Before(o.Time)
	}
	if e.File != o.File {
		return e.File < o.File
	}
	return e.Seq < o.Seq
}

// Source identifies the line an event was decoded from.
type Source struct {
	File string
	Seq  int64
}

// Source returns the file and line the event came from.
func (e *Event) Source() Source {
	return Source{File: e.File, Seq: e.Seq}
}
