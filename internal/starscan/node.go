// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package starscan

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/astrographus/internal/bodyname"
	"github.com/tomtom215/astrographus/internal/journal"
)

// SystemRef identifies a star system by address, name or both. Address 0
// means the address is not known.
type SystemRef struct {
	Name    string `json:"name"`
	Address int64  `json:"address"`
}

// IsZero reports whether the reference names nothing.
func (r SystemRef) IsZero() bool {
	return r.Address == 0 && strings.TrimSpace(r.Name) == ""
}

// Or fills the empty parts of r from name and address.
func (r SystemRef) Or(name string, address int64) SystemRef {
	if r.Name == "" {
		r.Name = name
	}
	if r.Address == 0 {
		r.Address = address
	}
	return r
}

// SystemNode is the body tree of one star system.
type SystemNode struct {
	Name    string `json:"name"`
	Address int64  `json:"address"`

	// PrimaryDesignator is "A" once the system's primary star has been seen
	// explicitly; until then implicit stars are "Main Star".
	PrimaryDesignator string `json:"primary_designator,omitempty"`

	StarNodes *Children         `json:"stars"`
	NodesByID map[int]*ScanNode `json:"-"`
	ToProcess []*pendingEvent   `json:"-"`

	ExpectedBodies int  `json:"expected_bodies"`
	NonBodyCount   int  `json:"non_body_count"`
	AllBodiesFound bool `json:"all_bodies_found"`

	applied []*pendingEvent
}

func newSystemNode(ref SystemRef) *SystemNode {
	return &SystemNode{
		Name:      ref.Name,
		Address:   ref.Address,
		StarNodes: &Children{},
		NodesByID: make(map[int]*ScanNode),
	}
}

// Ref returns the system's identity.
func (s *SystemNode) Ref() SystemRef {
	return SystemRef{Name: s.Name, Address: s.Address}
}

// Deferred returns how many body events are waiting for their node.
func (s *SystemNode) Deferred() int {
	return len(s.ToProcess)
}

// ScanCount returns the number of nodes carrying a scan payload.
func (s *SystemNode) ScanCount() int {
	n := 0
	s.Walk(func(node *ScanNode) {
		if node.Scan != nil {
			n++
		}
	})
	return n
}

// Walk visits every node depth-first in sibling order.
func (s *SystemNode) Walk(fn func(*ScanNode)) {
	var walk func(c *Children)
	walk = func(c *Children) {
		for _, n := range c.Nodes() {
			fn(n)
			walk(n.Children)
		}
	}
	walk(s.StarNodes)
}

// Find returns the node at path, or nil.
func (s *SystemNode) Find(path ...string) *ScanNode {
	c := s.StarNodes
	var n *ScanNode
	for _, seg := range path {
		if n = c.Get(seg); n == nil {
			return nil
		}
		c = n.Children
	}
	return n
}

// ScanNode is one star, barycentre, body, belt, belt cluster or ring.
type ScanNode struct {
	Name     string            `json:"name"`      // own path segment
	PathName string            `json:"path_name"` // dotted path from the star
	BodyName string            `json:"body_name,omitempty"`
	Kind     bodyname.NodeKind `json:"kind"`
	BodyID   *int              `json:"body_id,omitempty"`
	Level    int               `json:"level"` // 0 for stars and barycentres

	Scan *journal.Scan `json:"scan,omitempty"`
	Belt *journal.Ring `json:"belt,omitempty"`

	IsMapped             bool             `json:"is_mapped"`
	WasMappedEfficiently bool             `json:"was_mapped_efficiently"`
	Signals              []journal.Signal `json:"signals,omitempty"`
	Genuses              []string         `json:"genuses,omitempty"`
	CustomName           string           `json:"custom_name,omitempty"`

	Children *Children `json:"children"`
}

// DisplayName is the custom name when set, else the body name, else the
// path segment.
func (n *ScanNode) DisplayName() string {
	switch {
	case n.CustomName != "":
		return n.CustomName
	case n.BodyName != "":
		return n.BodyName
	default:
		return n.Name
	}
}

// Children is a set of sibling nodes kept in bodyname.Compare order.
type Children struct {
	nodes []*ScanNode
}

func (c *Children) search(name string) (int, bool) {
	i := sort.Search(len(c.nodes), func(i int) bool {
		return bodyname.Compare(c.nodes[i].Name, name) >= 0
	})
	return i, i < len(c.nodes) && bodyname.Compare(c.nodes[i].Name, name) == 0
}

// Get returns the child called name, or nil.
func (c *Children) Get(name string) *ScanNode {
	if c == nil {
		return nil
	}
	if i, ok := c.search(name); ok {
		return c.nodes[i]
	}
	return nil
}

// getOrAdd returns the child called name, creating it with mk when absent.
func (c *Children) getOrAdd(name string, mk func() *ScanNode) (*ScanNode, bool) {
	i, ok := c.search(name)
	if ok {
		return c.nodes[i], false
	}
	n := mk()
	c.nodes = append(c.nodes, nil)
	copy(c.nodes[i+1:], c.nodes[i:])
	c.nodes[i] = n
	return n, true
}

// Nodes returns the children in order. The slice must not be modified.
func (c *Children) Nodes() []*ScanNode {
	if c == nil {
		return nil
	}
	return c.nodes
}

// Len returns the number of children.
func (c *Children) Len() int {
	if c == nil {
		return 0
	}
	return len(c.nodes)
}

// MarshalJSON encodes the children as an ordered array.
func (c *Children) MarshalJSON() ([]byte, error) {
	if c == nil || len(c.nodes) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(c.nodes)
}
