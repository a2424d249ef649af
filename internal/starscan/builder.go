// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package starscan

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/astrographus/internal/bodyname"
	"github.com/tomtom215/astrographus/internal/journal"
	"github.com/tomtom215/astrographus/internal/metrics"
)

// pendingEvent is a body event kept in a system's applied log, and in its
// ToProcess list while its node does not exist yet.
type pendingEvent struct {
	key     string
	scan    *journal.Scan
	mapped  *journal.SAAScanComplete
	signals *journal.BodySignals
}

func (p *pendingEvent) bodyName() string {
	switch {
	case p.scan != nil:
		return p.scan.BodyName
	case p.mapped != nil:
		return p.mapped.BodyName
	case p.signals != nil:
		return p.signals.BodyName
	}
	return ""
}

func (p *pendingEvent) bodyID() *int {
	switch {
	case p.scan != nil:
		return p.scan.BodyID
	case p.mapped != nil:
		return p.mapped.BodyID
	case p.signals != nil:
		return p.signals.BodyID
	}
	return nil
}

// Builder folds body events into per-system trees. It is not safe for
// concurrent use; the history sequencer owns it.
type Builder struct {
	resolver  *bodyname.Resolver
	diag      Diagnostics
	byAddress map[int64]*SystemNode
	byName    map[string]*SystemNode
	last      *SystemNode
	replaying bool
	deferred  int
}

// Option configures a Builder.
type Option func(*Builder)

// WithDiagnostics sets the sink for rejected and conflicting attaches.
func WithDiagnostics(d Diagnostics) Option {
	return func(b *Builder) { b.diag = d }
}

// WithResolver replaces the default body-name resolver.
func WithResolver(r *bodyname.Resolver) Option {
	return func(b *Builder) { b.resolver = r }
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		resolver:  bodyname.New(),
		byAddress: make(map[int64]*SystemNode),
		byName:    make(map[string]*SystemNode),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// System returns the node for ref, creating it when needed. A system first
// seen by name is promoted into the address table once its address is
// known, so one physical system always maps to one node. It returns nil for
// an empty reference.
func (b *Builder) System(ref SystemRef) *SystemNode {
	if ref.IsZero() {
		return nil
	}
	key := strings.ToLower(strings.TrimSpace(ref.Name))

	if ref.Address != 0 {
		if s, ok := b.byAddress[ref.Address]; ok {
			if s.Name == "" && ref.Name != "" {
				s.Name = ref.Name
			}
			if key != "" {
				if _, taken := b.byName[key]; !taken {
					b.byName[key] = s
				}
			}
			b.last = s
			return s
		}
		if s, ok := b.byName[key]; ok && s.Address == 0 {
			s.Address = ref.Address
			b.byAddress[ref.Address] = s
			b.last = s
			return s
		}
		s := newSystemNode(ref)
		b.byAddress[ref.Address] = s
		if key != "" {
			if _, taken := b.byName[key]; !taken {
				b.byName[key] = s
			}
		}
		b.last = s
		return s
	}

	s, ok := b.byName[key]
	if !ok {
		s = newSystemNode(ref)
		b.byName[key] = s
	}
	b.last = s
	return s
}

// Find returns the node for ref without creating one.
func (b *Builder) Find(ref SystemRef) *SystemNode {
	if ref.Address != 0 {
		if s, ok := b.byAddress[ref.Address]; ok {
			return s
		}
	}
	if s, ok := b.byName[strings.ToLower(strings.TrimSpace(ref.Name))]; ok {
		if ref.Address == 0 || s.Address == 0 || s.Address == ref.Address {
			return s
		}
	}
	return nil
}

// Systems returns every system ordered by address, then name.
func (b *Builder) Systems() []*SystemNode {
	seen := make(map[*SystemNode]bool, len(b.byName))
	var out []*SystemNode
	for _, s := range b.byAddress {
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range b.byName {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Deferred returns the number of body events waiting across all systems.
func (b *Builder) Deferred() int {
	return b.deferred
}

// MarshalJSON encodes every system tree in Systems order.
func (b *Builder) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Systems())
}

// system picks the target system for a body event: the event's own system
// when it names one, else ref, else the last system touched.
func (b *Builder) system(ref SystemRef, name string, address int64) *SystemNode {
	own := SystemRef{Name: name, Address: address}
	switch {
	case !own.IsZero():
		return b.System(own.Or(ref.Name, ref.Address))
	case !ref.IsZero():
		return b.System(ref)
	default:
		return b.last
	}
}

// AddScan attaches a scan. Scans from the journal replace an existing
// payload when at least as complete; lookup-service scans never replace
// journal ones.
func (b *Builder) AddScan(ref SystemRef, scan *journal.Scan) error {
	if scan == nil {
		return nil
	}
	sys := b.system(ref, scan.StarSystem, scan.SystemAddress)
	if sys == nil {
		b.report(Diagnostic{Body: scan.BodyName, Err: ErrNoSystem})
		return ErrNoSystem
	}

	if _, err := b.resolve(sys, scan.BodyName, scan); err != nil {
		b.report(Diagnostic{System: sys.Name, Body: scan.BodyName, Err: err})
		metrics.ScanAttaches.WithLabelValues("rejected").Inc()
		return err
	}

	ev := &pendingEvent{key: "scan:" + strings.ToLower(scan.BodyName), scan: scan}
	if !sys.record(ev) {
		return nil
	}

	if b.confirmsPrimary(sys, scan) {
		sys.PrimaryDesignator = "A"
		if sys.StarNodes.Get(bodyname.MainStar) != nil {
			b.rederive(sys)
			return nil
		}
	}
	b.apply(sys, ev)
	return nil
}

// AddFromLookup attaches scans supplied by the lookup service. They fill
// gaps only.
func (b *Builder) AddFromLookup(ref SystemRef, scans []*journal.Scan) {
	for _, s := range scans {
		s.Source = journal.SourceLookup
		_ = b.AddScan(ref, s)
	}
}

// AddSAAComplete marks a body as surface mapped. When the body's node does
// not exist yet the event waits in the system's ToProcess list.
func (b *Builder) AddSAAComplete(ref SystemRef, saa *journal.SAAScanComplete) {
	sys := b.system(ref, "", saa.SystemAddress)
	if sys == nil {
		b.report(Diagnostic{Body: saa.BodyName, Err: ErrNoSystem})
		return
	}
	ev := &pendingEvent{key: "saa:" + strings.ToLower(saa.BodyName), mapped: saa}
	if sys.record(ev) {
		b.apply(sys, ev)
	}
}

// AddSignals records the signals found on a body.
func (b *Builder) AddSignals(ref SystemRef, sig *journal.BodySignals) {
	sys := b.system(ref, "", sig.SystemAddress)
	if sys == nil {
		b.report(Diagnostic{Body: sig.BodyName, Err: ErrNoSystem})
		return
	}
	ev := &pendingEvent{key: "sig:" + strings.ToLower(sig.BodyName), signals: sig}
	if sys.record(ev) {
		b.apply(sys, ev)
	}
}

// AddDiscoveryScan records the body count reported by a discovery scan.
func (b *Builder) AddDiscoveryScan(ref SystemRef, d *journal.FSSDiscoveryScan) {
	if sys := b.system(ref, d.SystemName, d.SystemAddress); sys != nil {
		sys.ExpectedBodies = d.BodyCount
		sys.NonBodyCount = d.NonBodyCount
	}
}

// AddAllBodiesFound marks the system as fully discovered.
func (b *Builder) AddAllBodiesFound(ref SystemRef, a *journal.FSSAllBodiesFound) {
	if sys := b.system(ref, a.SystemName, a.SystemAddress); sys != nil {
		sys.AllBodiesFound = true
		if a.Count > sys.ExpectedBodies {
			sys.ExpectedBodies = a.Count
		}
	}
}

// record adds ev to the system's applied log, replacing an earlier event for
// the same body. It reports false when ev brings nothing new.
func (s *SystemNode) record(ev *pendingEvent) bool {
	for i, old := range s.applied {
		if old.key != ev.key {
			continue
		}
		if ev.scan != nil && ev.scan.Completeness() < old.scan.Completeness() {
			return false
		}
		s.applied[i] = ev
		return true
	}
	s.applied = append(s.applied, ev)
	return true
}

// confirmsPrimary reports a star scan naming the system's "A" star while
// the primary is still implicit.
func (b *Builder) confirmsPrimary(sys *SystemNode, scan *journal.Scan) bool {
	if sys.PrimaryDesignator != "" || !scan.IsStar() {
		return false
	}
	rem, ok := bodyname.Relative(scan.BodyName, sys.Name)
	return ok && rem == "A"
}

// rederive rebuilds the system's tree by replaying its applied log against
// the corrected primary designator.
func (b *Builder) rederive(sys *SystemNode) {
	b.deferred -= len(sys.ToProcess)
	sys.StarNodes = &Children{}
	sys.NodesByID = make(map[int]*ScanNode)
	sys.ToProcess = nil

	b.replaying = true
	for _, ev := range sys.applied {
		b.apply(sys, ev)
	}
	b.replaying = false

	metrics.ScanRederivations.Inc()
	metrics.ScanDeferredQueue.Set(float64(b.deferred))
}

// apply places one event, deferring it when its node is missing, and
// retries the system's deferred events after every successful scan attach.
func (b *Builder) apply(sys *SystemNode, ev *pendingEvent) {
	if ev.scan != nil {
		if !b.attachScan(sys, ev.scan) {
			return
		}
		metrics.ScanAttaches.WithLabelValues("attached").Inc()
		b.drain(sys)
		return
	}
	if !b.attachBodyEvent(sys, ev) {
		sys.ToProcess = append(sys.ToProcess, ev)
		b.deferred++
		metrics.ScanAttaches.WithLabelValues("deferred").Inc()
		metrics.ScanDeferredQueue.Set(float64(b.deferred))
	}
}

func (b *Builder) drain(sys *SystemNode) {
	if len(sys.ToProcess) == 0 {
		return
	}
	kept := sys.ToProcess[:0]
	for _, ev := range sys.ToProcess {
		if b.attachBodyEvent(sys, ev) {
			b.deferred--
			continue
		}
		kept = append(kept, ev)
	}
	for i := len(kept); i < len(sys.ToProcess); i++ {
		sys.ToProcess[i] = nil
	}
	sys.ToProcess = kept
	metrics.ScanDeferredQueue.Set(float64(b.deferred))
}

func (b *Builder) resolve(sys *SystemNode, body string, scan *journal.Scan) (bodyname.Designation, error) {
	in := bodyname.Input{
		BodyName:          body,
		SystemName:        sys.Name,
		PrimaryDesignator: sys.PrimaryDesignator,
	}
	if scan != nil {
		in.BodyID = scan.BodyID
		in.IsStar = scan.IsStar()
		in.StarType = scan.StarType
		in.DistanceFromArrivalLS = scan.DistanceFromArrivalLS
	}
	return b.resolver.Resolve(in)
}

func (b *Builder) attachScan(sys *SystemNode, scan *journal.Scan) bool {
	d, err := b.resolve(sys, scan.BodyName, scan)
	if err != nil {
		b.report(Diagnostic{System: sys.Name, Body: scan.BodyName, Err: err})
		metrics.ScanAttaches.WithLabelValues("rejected").Inc()
		return false
	}

	chain := b.ensurePath(sys, d)
	node := chain[len(chain)-1]

	if node.Scan != nil && node.Kind != d.Kind {
		b.report(Diagnostic{
			System: sys.Name,
			Body:   scan.BodyName,
			Err:    &AttachConflict{System: sys.Name, Body: scan.BodyName, Was: node.Kind, Now: d.Kind},
		})
		metrics.ScanAttaches.WithLabelValues("conflict").Inc()
	}
	node.Kind = d.Kind

	if node.Scan == nil || scan.Completeness() >= node.Scan.Completeness() {
		node.Scan = scan
		node.BodyName = scan.BodyName
	}
	if scan.BodyID != nil {
		sys.index(node, *scan.BodyID)
	}
	assignParentIDs(sys, chain, scan.Parents)

	if scan.IsStar() {
		b.attachBelts(sys, node, scan)
	}
	return true
}

// ensurePath creates the nodes along d as placeholders where missing and
// returns them root first.
func (b *Builder) ensurePath(sys *SystemNode, d bodyname.Designation) []*ScanNode {
	chain := make([]*ScanNode, 0, len(d.Path))
	siblings := sys.StarNodes
	for level, seg := range d.Path {
		kind := bodyname.KindBody
		switch {
		case level == len(d.Path)-1:
			kind = d.Kind
		case level == 0:
			kind = d.TopKind
		case d.Kind == bodyname.KindBeltCluster:
			kind = bodyname.KindBelt
		}
		pathName := strings.Join(d.Path[:level+1], ".")
		node, _ := siblings.getOrAdd(seg, func() *ScanNode {
			return &ScanNode{Name: seg, PathName: pathName, Kind: kind, Level: level, Children: &Children{}}
		})
		chain = append(chain, node)
		siblings = node.Children
	}
	return chain
}

// assignParentIDs fills missing body ids of ancestors from the scan's
// Parents chain, nearest parent first. Barycentres ("Null") have no node in
// the path and are skipped; the walk stops at the first kind mismatch.
func assignParentIDs(sys *SystemNode, chain []*ScanNode, parents []journal.ParentRef) {
	i := len(chain) - 2
	for _, p := range parents {
		if i < 0 {
			return
		}
		if p.Type == "Null" {
			continue
		}
		node := chain[i]
		if !parentMatches(p.Type, node.Kind) {
			return
		}
		if node.BodyID == nil {
			sys.index(node, p.BodyID)
		}
		i--
	}
}

func parentMatches(typ string, kind bodyname.NodeKind) bool {
	switch typ {
	case "Star":
		return kind == bodyname.KindStar
	case "Planet":
		return kind == bodyname.KindBody
	case "Ring":
		return kind == bodyname.KindBelt || kind == bodyname.KindRing
	}
	return false
}

// index records node under id. A node keeps one id and an id names one
// node, so every node with a BodyID is reachable through NodesByID.
func (s *SystemNode) index(node *ScanNode, id int) {
	if node.BodyID != nil && *node.BodyID != id {
		if s.NodesByID[*node.BodyID] == node {
			delete(s.NodesByID, *node.BodyID)
		}
	}
	if prev, ok := s.NodesByID[id]; ok && prev != node {
		prev.BodyID = nil
	}
	v := id
	node.BodyID = &v
	s.NodesByID[id] = node
}

// attachBodyEvent applies a mapped or signals event to an existing node.
func (b *Builder) attachBodyEvent(sys *SystemNode, ev *pendingEvent) bool {
	node := b.locate(sys, ev.bodyName(), ev.bodyID())
	if node == nil {
		return false
	}
	switch {
	case ev.mapped != nil:
		node.IsMapped = true
		node.WasMappedEfficiently = ev.mapped.Efficient()
	case ev.signals != nil:
		node.Signals = mergeSignals(node.Signals, ev.signals.Signals)
		node.Genuses = mergeGenuses(node.Genuses, ev.signals.Genuses)
	}
	if id := ev.bodyID(); id != nil && node.BodyID == nil {
		sys.index(node, *id)
	}
	return true
}

// locate finds a node by body id, then by resolved name.
func (b *Builder) locate(sys *SystemNode, body string, id *int) *ScanNode {
	if id != nil {
		if n, ok := sys.NodesByID[*id]; ok {
			return n
		}
	}
	d, err := b.resolve(sys, body, nil)
	if err != nil {
		return nil
	}
	return sys.Find(d.Path...)
}

func mergeSignals(have, add []journal.Signal) []journal.Signal {
	out := append([]journal.Signal(nil), have...)
	for _, s := range add {
		found := false
		for i := range out {
			if out[i].Type == s.Type {
				if s.Count > out[i].Count {
					out[i].Count = s.Count
				}
				found = true
				break
			}
		}
		if !found {
			out = append(out, s)
		}
	}
	return out
}

func mergeGenuses(have, add []string) []string {
	out := append([]string(nil), have...)
	for _, g := range add {
		found := false
		for _, h := range out {
			if h == g {
				found = true
				break
			}
		}
		if !found {
			out = append(out, g)
		}
	}
	return out
}

func (b *Builder) report(d Diagnostic) {
	if b.replaying || b.diag == nil {
		return
	}
	b.diag(d)
}

// String summarizes the builder for logs.
func (b *Builder) String() string {
	return "starscan(" + strconv.Itoa(len(b.Systems())) + " systems, " + strconv.Itoa(b.deferred) + " deferred)"
}
