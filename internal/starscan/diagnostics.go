// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package starscan

import (
	"errors"
	"fmt"

	"github.com/tomtom215/astrographus/internal/bodyname"
)

// ErrNoSystem is reported for body events that name no system and arrive
// before any system is known.
var ErrNoSystem = errors.New("body event has no system")

// AttachConflict reports a scan whose body kind contradicts the node it
// lands on. The node takes the new kind; the conflict is informational.
type AttachConflict struct {
	System string
	Body   string
	Was    bodyname.NodeKind
	Now    bodyname.NodeKind
}

func (e *AttachConflict) Error() string {
	return fmt.Sprintf("%s in %s changed kind from %s to %s", e.Body, e.System, e.Was, e.Now)
}

// Diagnostic is a human-readable report of a body event that could not be
// placed as reported.
type Diagnostic struct {
	System string
	Body   string
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("system %q body %q: %v", d.System, d.Body, d.Err)
}

// Diagnostics receives one Diagnostic per rejected or conflicting attach.
type Diagnostics func(Diagnostic)
