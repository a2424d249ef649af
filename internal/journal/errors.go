// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DecodeError.
type ErrorKind int

const (
	// MalformedPayload: not a JSON object, or missing event/timestamp.
	MalformedPayload ErrorKind = iota + 1
	// UnknownKind: well-formed line with an event name outside the closed set.
	UnknownKind
	// SidecarPending: the side-car file did not match within the bounded wait.
	// The caller retries the line next tick.
	SidecarPending
)

// String returns the metric label for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case MalformedPayload:
		return "malformed_payload"
	case UnknownKind:
		return "unknown_kind"
	case SidecarPending:
		return "sidecar_pending"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by DecodeError.Is.
var (
	ErrMalformed      = errors.New("malformed journal line")
	ErrUnknownKind    = errors.New("unknown journal event")
	ErrSidecarPending = errors.New("side-car file not yet available")
)

// DecodeError reports why a line was rejected. Decoding never panics; every
// failure surfaces as a DecodeError.
type DecodeError struct {
	Kind  ErrorKind
	Event string // event name when it could be read
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Event != "" {
		return fmt.Sprintf("decode %s: %s: %v", e.Event, e.Kind, e.Err)
	}
	return fmt.Sprintf("decode: %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error kind.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == MalformedPayload
	case ErrUnknownKind:
		return e.Kind == UnknownKind
	case ErrSidecarPending:
		return e.Kind == SidecarPending
	}
	return false
}

// ReasonOf returns the metric label for err, or "" when err is not a
// DecodeError.
func ReasonOf(err error) string {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind.String()
	}
	return ""
}
