// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type parseFunc func(Fields) Payload

var parsers [kindCount]parseFunc

func register(k Kind, fn parseFunc) {
	parsers[k] = fn
}

// Decoder turns journal lines into Events. A Decoder is not safe for
// concurrent use; the ingest worker owns one.
type Decoder struct {
	sidecars *SidecarReader
	maxAge   time.Duration
	now      func() time.Time
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithSidecars enables side-car merging for Market, Outfitting, Shipyard,
// NavRoute, Cargo and ModuleInfo events.
func WithSidecars(r *SidecarReader) DecoderOption {
	return func(d *Decoder) { d.sidecars = r }
}

// WithSidecarMaxAge skips side-car reads for lines older than age. Historic
// files are decoded from the line alone since their side-cars are long gone.
// Zero disables the check.
func WithSidecarMaxAge(age time.Duration) DecoderOption {
	return func(d *Decoder) { d.maxAge = age }
}

// WithClock overrides the clock used for the side-car age check.
func WithClock(now func() time.Time) DecoderOption {
	return func(d *Decoder) { d.now = now }
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses one line. Every failure is a *DecodeError.
func (d *Decoder) Decode(line []byte) (*Event, error) {
	return d.DecodeAt(line, Source{})
}

// DecodeAt parses one line read from src.
func (d *Decoder) DecodeAt(line []byte, src Source) (*Event, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &DecodeError{Kind: MalformedPayload, Err: errors.New("line is not a JSON object")}
	}

	fields, err := decodeFields(trimmed)
	if err != nil {
		return nil, &DecodeError{Kind: MalformedPayload, Err: err}
	}

	name := fields.Str("event")
	if name == "" {
		return nil, &DecodeError{Kind: MalformedPayload, Err: errors.New("missing event")}
	}
	ts := fields.Time("timestamp")
	if ts.IsZero() {
		return nil, &DecodeError{Kind: MalformedPayload, Event: name, Err: fmt.Errorf("bad timestamp %q", fields.Str("timestamp"))}
	}
	kind, ok := ParseKind(name)
	if !ok || parsers[kind] == nil {
		return nil, &DecodeError{Kind: UnknownKind, Event: name, Err: ErrUnknownKind}
	}

	raw := make([]byte, len(trimmed))
	copy(raw, trimmed)

	if d.wantsSidecar(kind, fields, ts) {
		extra, err := d.sidecars.Read(kind, ts)
		if err != nil {
			return nil, &DecodeError{Kind: SidecarPending, Event: name, Err: err}
		}
		mergeSidecar(fields, extra)
		if merged, err := json.Marshal(fields); err == nil {
			raw = merged
		}
	}

	return &Event{
		Kind:    kind,
		Time:    ts,
		Seq:     src.Seq,
		File:    src.File,
		Raw:     raw,
		Fields:  fields,
		Payload: parsers[kind](fields),
	}, nil
}

// Redecode rebuilds Fields and Payload of a stored event from its Raw bytes.
// Stored events already carry their side-car content, so no side-car is read.
func Redecode(ev *Event) error {
	fields, err := decodeFields(ev.Raw)
	if err != nil {
		return &DecodeError{Kind: MalformedPayload, Event: ev.Kind.String(), Err: err}
	}
	if ev.Kind <= KindUnknown || ev.Kind >= kindCount || parsers[ev.Kind] == nil {
		return &DecodeError{Kind: UnknownKind, Event: ev.Kind.String(), Err: ErrUnknownKind}
	}
	ev.Fields = fields
	ev.Payload = parsers[ev.Kind](fields)
	return nil
}

func decodeFields(b []byte) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if m == nil {
		return nil, errors.New("null document")
	}
	return Fields(m), nil
}

func (d *Decoder) wantsSidecar(kind Kind, f Fields, ts time.Time) bool {
	if d.sidecars == nil {
		return false
	}
	spec, ok := sidecarSpecs[kind]
	if !ok || f.Has(spec.keys...) {
		return false
	}
	if kind == KindCargo && f.Str("Vessel") == "SRV" {
		return false
	}
	if d.maxAge > 0 && d.now().Sub(ts) > d.maxAge {
		return false
	}
	return true
}

// mergeSidecar copies side-car keys the line does not already carry.
func mergeSidecar(dst, src Fields) {
	for k, v := range src {
		if k == "timestamp" || k == "event" {
			continue
		}
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
}
