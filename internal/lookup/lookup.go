// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package lookup

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/tomtom215/astrographus/internal/journal"
)

// ErrUnavailable means the remote service could not answer. The key is not
// resolved and may be retried later; it is never read as "absent".
var ErrUnavailable = errors.New("lookup: service unavailable")

// SystemKey identifies a system by address, by name, or both.
type SystemKey struct {
	Name    string
	Address int64
}

// String returns the cache key: the address when known, else the folded name.
func (k SystemKey) String() string {
	if k.Address != 0 {
		return "#" + strconv.FormatInt(k.Address, 10)
	}
	return strings.ToLower(strings.TrimSpace(k.Name))
}

// IsZero reports whether the key names nothing.
func (k SystemKey) IsZero() bool {
	return k.Address == 0 && strings.TrimSpace(k.Name) == ""
}

// System is what the lookup service knows about a star system.
type System struct {
	Name    string        `json:"name"`
	Address int64         `json:"id64"`
	Coords  *journal.Vec3 `json:"coords,omitempty"`
}

// BodyList is the known bodies of one system.
type BodyList struct {
	System    SystemKey
	BodyCount int
	Bodies    []Body
}

// Service resolves systems and their bodies.
//
// A nil result with a nil error means the service confirmed the system is
// unknown to it. ErrUnavailable (checked with errors.Is) means no answer.
// The boolean from Bodies reports whether the answer came from a cache.
type Service interface {
	System(ctx context.Context, key SystemKey) (*System, error)
	Bodies(ctx context.Context, key SystemKey) (*BodyList, bool, error)
}
