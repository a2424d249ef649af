// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package bodyname

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MaxDepth is the deepest supported path: star, planet, moon, sub-moon and
// a ring or cluster leaf.
const MaxDepth = 5

// MainStar is the implicit primary designator used until a system confirms
// an explicit "A" star.
const MainStar = "Main Star"

// NodeKind is what a path segment denotes.
type NodeKind int

const (
	KindStar NodeKind = iota
	KindBarycentre
	KindBody
	KindBelt
	KindBeltCluster
	KindRing
)

var nodeKindNames = [...]string{
	KindStar:        "star",
	KindBarycentre:  "barycentre",
	KindBody:        "body",
	KindBelt:        "belt",
	KindBeltCluster: "beltcluster",
	KindRing:        "ring",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "unknown"
	}
	return nodeKindNames[k]
}

// MarshalText encodes the kind by name.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ErrUnresolvable is matched by every *ResolutionError.
var ErrUnresolvable = errors.New("body name cannot be resolved")

// ResolutionError reports a body whose designation is empty or deeper than
// MaxDepth. The event is dropped and the error reported as a diagnostic.
type ResolutionError struct {
	System   string
	Body     string
	Segments int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q in %q: %d path segments (allowed 1-%d)", e.Body, e.System, e.Segments, MaxDepth)
}

func (e *ResolutionError) Is(target error) bool {
	return target == ErrUnresolvable
}

// Input describes one body reference.
type Input struct {
	BodyName              string
	BodyID                *int
	IsStar                bool
	StarType              string
	DistanceFromArrivalLS float64
	SystemName            string

	// PrimaryDesignator replaces MainStar for implicit insertion once the
	// system has confirmed an explicit primary star.
	PrimaryDesignator string
}

// Designation is the resolved placement of a body.
type Designation struct {
	Path    []string // star designator first, body itself last
	Kind    NodeKind // kind of the last segment
	TopKind NodeKind // kind of the first segment
}

// Name returns the body's own segment.
func (d Designation) Name() string {
	if len(d.Path) == 0 {
		return ""
	}
	return d.Path[len(d.Path)-1]
}

// Resolver maps raw body names onto tree paths. It holds only immutable
// alias tables and is safe for concurrent use.
type Resolver struct {
	aliases map[string]map[string]string // system -> body -> canonical name
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAliases adds renamed-body aliases for one system. Keys and system
// names are matched case-insensitively.
func WithAliases(system string, aliases map[string]string) Option {
	return func(r *Resolver) {
		key := strings.ToLower(system)
		m := r.aliases[key]
		if m == nil {
			m = make(map[string]string, len(aliases))
			r.aliases[key] = m
		}
		for from, to := range aliases {
			m[strings.ToLower(from)] = to
		}
	}
}

var solAliases = map[string]string{
	"Mercury": "Sol 1",
	"Venus":   "Sol 2",
	"Earth":   "Sol 3",
	"Moon":    "Sol 3 a",
	"Mars":    "Sol 4",
	"Jupiter": "Sol 5",
	"Saturn":  "Sol 6",
	"Uranus":  "Sol 7",
	"Neptune": "Sol 8",
	"Pluto":   "Sol 9",
	"Charon":  "Sol 9 a",
}

// New creates a Resolver with the built-in Sol alias table.
func New(opts ...Option) *Resolver {
	r := &Resolver{aliases: make(map[string]map[string]string)}
	WithAliases("Sol", solAliases)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve places a body in its system's tree.
//
//	Resolve({BodyName: "Sol", IsStar: true, SystemName: "Sol"})          // [Main Star]
//	Resolve({BodyName: "Aurioum B A Belt", SystemName: "Aurioum"})       // [B, A Belt]
//	Resolve({BodyName: "Eol Prou LW-L c8-306 A 4 a", SystemName: "..."}) // [A, 4, a]
func (r *Resolver) Resolve(in Input) (Designation, error) {
	primary := in.PrimaryDesignator
	if primary == "" {
		primary = MainStar
	}

	name := strings.TrimSpace(in.BodyName)
	if alias, ok := r.alias(in.SystemName, name); ok {
		name = alias
	}

	var d Designation
	if rem, related := relativeTo(name, in.SystemName); related {
		if rem == "" {
			d = Designation{Path: []string{primary}, Kind: KindStar}
			if !in.IsStar {
				d.Kind = KindBody
			}
		} else {
			d = decompose(strings.Fields(rem), in.IsStar, primary)
		}
	} else {
		switch {
		case name == "":
			d = Designation{}
		case in.IsStar && in.DistanceFromArrivalLS == 0:
			d = Designation{Path: []string{name}, Kind: KindStar}
		default:
			d = decompose(append([]string{primary}, strings.Fields(name)...), in.IsStar, primary)
		}
	}

	if n := len(d.Path); n == 0 || n > MaxDepth {
		return Designation{}, &ResolutionError{System: in.SystemName, Body: in.BodyName, Segments: n}
	}
	d.TopKind = topKind(d)
	return d, nil
}

func (r *Resolver) alias(system, body string) (string, bool) {
	m, ok := r.aliases[strings.ToLower(system)]
	if !ok {
		return "", false
	}
	to, ok := m[strings.ToLower(body)]
	return to, ok
}

// Relative returns body with the system name removed from its front, and
// whether body starts with the system name at all.
func Relative(body, system string) (string, bool) {
	return relativeTo(strings.TrimSpace(body), system)
}

// relativeTo strips the system name from the front of body on a word
// boundary.
func relativeTo(body, system string) (string, bool) {
	system = strings.TrimSpace(system)
	if system == "" || len(body) < len(system) || !strings.EqualFold(body[:len(system)], system) {
		return "", false
	}
	rest := body[len(system):]
	if rest != "" && rest[0] != ' ' && rest[0] != '-' {
		return "", false
	}
	return strings.Trim(rest, " -"), true
}

func decompose(parts []string, isStar bool, primary string) Designation {
	n := len(parts)

	// <letter> Belt Cluster <N> and <star> <letter> Belt Cluster <N>
	if n >= 4 && strings.EqualFold(parts[n-3], "belt") && strings.EqualFold(parts[n-2], "cluster") && isLetter(parts[n-4]) {
		star := primary
		if n == 5 {
			star = parts[0]
		} else if n != 4 {
			return Designation{Path: parts, Kind: KindBeltCluster}
		}
		return Designation{
			Path: []string{star, parts[n-4] + " Belt", "Cluster " + parts[n-1]},
			Kind: KindBeltCluster,
		}
	}

	// <letter> Belt and <star> <letter> Belt
	if n >= 2 && strings.EqualFold(parts[n-1], "belt") && isLetter(parts[n-2]) {
		star := primary
		if n == 3 {
			star = parts[0]
		} else if n != 2 {
			return Designation{Path: parts, Kind: KindBelt}
		}
		return Designation{Path: []string{star, parts[n-2] + " Belt"}, Kind: KindBelt}
	}

	kind := KindBody
	if isStar {
		kind = KindStar
	}
	if n >= 2 && strings.EqualFold(parts[n-1], "ring") && isLetter(parts[n-2]) {
		ring := parts[n-2] + " Ring"
		parts = append(parts[:n-2:n-2], ring)
		kind = KindRing
	}

	if len(parts) > 0 && startsWithDigit(parts[0]) {
		parts = append([]string{primary}, parts...)
	}
	return Designation{Path: parts, Kind: kind}
}

func topKind(d Designation) NodeKind {
	if len(d.Path) == 1 {
		if d.Kind == KindBody && isBarycentre(d.Path[0]) {
			return KindBarycentre
		}
		return d.Kind
	}
	if isBarycentre(d.Path[0]) {
		return KindBarycentre
	}
	return KindStar
}

// isBarycentre reports a multi-letter star designator such as "AB".
func isBarycentre(s string) bool {
	if s == MainStar || len(s) < 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func isLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	return unicode.IsLetter(rune(s[0]))
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
