// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/eventbus"
	"github.com/tomtom215/astrographus/internal/history"
	"github.com/tomtom215/astrographus/internal/journal"
	"github.com/tomtom215/astrographus/internal/logging"
	"github.com/tomtom215/astrographus/internal/metrics"
	"github.com/tomtom215/astrographus/internal/starscan"
	"github.com/tomtom215/astrographus/internal/store"
	"github.com/tomtom215/astrographus/internal/tailer"
)

// ErrRunning is returned by Start on a running monitor.
var ErrRunning = errors.New("ingest: monitor already running")

// Store is the persistence the monitor needs. *store.Store satisfies it.
type Store interface {
	history.EventSource
	tailer.CursorStore
	Append(ctx context.Context, ev *journal.Event) (bool, error)
	Predecessor(ctx context.Context, kinds []journal.Kind, before time.Time) (*journal.Event, error)
	EnsureCommander(ctx context.Context, name, fid string) (int64, error)
	CommanderByName(ctx context.Context, name string) (*store.Commander, error)
	CommanderByID(ctx context.Context, id int64) (*store.Commander, error)
}

// Publisher receives a notice for every appended or merged entry.
// *eventbus.Bus satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, n eventbus.Notice) error
}

// commanderKinds are the events that name the commander of a session.
var commanderKinds = []journal.Kind{journal.KindLoadGame, journal.KindCommander, journal.KindNewCommander}

// Resolution is lookup data for one system, offered by the backfiller and
// applied by the worker on its next tick.
type Resolution struct {
	Commander int64
	System    starscan.SystemRef
	Coords    *journal.Vec3
	Scans     []*journal.Scan
}

// Monitor is the ingest worker. One goroutine polls the journal directory
// and folds every new line: decode, stamp the commander, persist, sequence,
// publish, checkpoint.
//
// Sequencers are single-threaded; every access to them goes through the
// dispatch gate.
type Monitor struct {
	cfg     config.JournalConfig
	histCfg history.Config
	store   Store
	tailer  *tailer.Tailer
	decoder *journal.Decoder
	pub     Publisher
	log     zerolog.Logger

	// gate is held for each dispatched batch, each rebuild and each read
	// of sequencer state from other goroutines.
	gate       sync.Mutex
	handles    map[string]*tailer.Handle
	active     tailer.FileInfo // newest file read so far; older files are not polled
	reading    string          // file the last lines came from
	sequencers map[int64]*history.Sequencer
	names      map[int64]string
	commander  int64
	known      bool // whether commander reflects the file being read

	pendingMu sync.Mutex
	pending   []Resolution

	rebuilding atomic.Bool

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wake    chan struct{}
	wg      sync.WaitGroup
	watcher *tailer.Watcher
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithPublisher publishes entry notices to p.
func WithPublisher(p Publisher) Option {
	return func(m *Monitor) { m.pub = p }
}

// WithDiagnostics forwards scan-tree diagnostics to fn in addition to the
// log.
func WithDiagnostics(fn starscan.Diagnostics) Option {
	return func(m *Monitor) {
		logged := m.histCfg.Diagnostics
		m.histCfg.Diagnostics = func(d starscan.Diagnostic) {
			logged(d)
			fn(d)
		}
	}
}

// WithDecoder replaces the decoder built from the journal configuration.
func WithDecoder(d *journal.Decoder) Option {
	return func(m *Monitor) { m.decoder = d }
}

// NewMonitor creates a monitor over cfg.Journal.Dir.
func NewMonitor(cfg *config.Config, st Store, opts ...Option) *Monitor {
	log := logging.WithComponent("ingest")
	m := &Monitor{
		cfg: cfg.Journal,
		histCfg: history.Config{
			CargoCutover: cfg.CargoCutoverTime(),
			MergeEnabled: cfg.Merge.Enabled,
			Diagnostics: func(d starscan.Diagnostic) {
				log.Warn().Str("system", d.System).Str("body", d.Body).Err(d.Err).Msg("Body event not placed")
			},
		},
		store:  st,
		tailer: tailer.New(cfg.Journal.Dir, cfg.Journal.FilePattern, st),
		decoder: journal.NewDecoder(
			journal.WithSidecars(journal.NewSidecarReader(cfg.Journal.Dir, cfg.Journal.SidecarAttempts, cfg.Journal.SidecarWait)),
			journal.WithSidecarMaxAge(cfg.Journal.SidecarMaxAge),
		),
		log:        log,
		handles:    make(map[string]*tailer.Handle),
		sequencers: make(map[int64]*history.Sequencer),
		names:      make(map[int64]string),
		wake:       make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start loads the startup commander's history and begins polling.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrRunning
	}
	m.running = true
	m.stop = make(chan struct{})
	m.mu.Unlock()

	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())

	if id, err := m.startupCommander(ctx); err != nil {
		m.log.Warn().Err(err).Msg("Could not determine startup commander")
	} else if id != 0 {
		if _, err := m.LoadHistory(ctx, id); err != nil {
			m.log.Warn().Err(err).Int64("commander_id", id).Msg("Startup history load incomplete")
		}
	}

	var hints <-chan struct{}
	if m.cfg.WatchEnabled {
		w, err := tailer.NewWatcher(m.cfg.Dir, m.cfg.FilePattern)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			m.log.Warn().Err(err).Msg("Journal watcher unavailable, polling only")
		} else {
			m.watcher = w
			hints = w.Hints
		}
	}

	m.wg.Add(1)
	go m.run(ctx, hints)

	m.log.Info().Str("dir", m.cfg.Dir).Dur("poll_interval", m.cfg.PollInterval).Bool("watch", m.watcher != nil).
		Msg("Journal monitor started")
	return nil
}

// Stop signals the worker and waits for it. A batch in flight completes
// first.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	close(m.stop)
	m.mu.Unlock()

	m.wg.Wait()
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
	m.log.Info().Msg("Journal monitor stopped")
	return nil
}

func (m *Monitor) run(ctx context.Context, hints <-chan struct{}) {
	defer m.wg.Done()

	interval := m.cfg.PollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := m.Poll(ctx); err != nil {
			m.log.Warn().Err(err).Msg("Journal poll failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-m.stop:
			return
		case <-ticker.C:
		case <-hints:
		case <-m.wake:
		}
	}
}

// Poll runs one tick and returns the number of events ingested. It is
// what the worker goroutine calls; tests call it directly.
func (m *Monitor) Poll(ctx context.Context) (int, error) {
	start := time.Now()
	files, err := m.tailer.Discover()
	if err != nil {
		return 0, err
	}

	m.gate.Lock()
	defer m.gate.Unlock()

	// The batch is delivered whole even when ctx ends mid-way.
	ctx = context.WithoutCancel(ctx)

	m.applyPending()

	total := 0
	for _, f := range files {
		if m.active.Name != "" && fileBefore(f, m.active) {
			delete(m.handles, f.Name)
			continue
		}
		h, err := m.handle(ctx, f)
		if err != nil {
			metrics.JournalFileErrors.Inc()
			m.log.Debug().Err(err).Str("file", f.Name).Msg("Journal file skipped this tick")
			continue
		}
		lines, err := m.tailer.ReadNewLines(h)
		if err != nil {
			metrics.JournalFileErrors.Inc()
			m.log.Debug().Err(err).Str("file", f.Name).Msg("Journal read failed, retrying next tick")
			continue
		}
		if m.active.Name == "" || fileBefore(m.active, f) {
			m.active = f
		}
		if h.Rotated() || (len(lines) > 0 && f.Name != m.reading) {
			m.known = false
		}
		if len(lines) > 0 {
			m.reading = f.Name
		}
		total += m.dispatch(ctx, h, lines)
		if err := m.tailer.Checkpoint(ctx, h); err != nil {
			m.log.Warn().Err(err).Str("file", f.Name).Msg("Cursor checkpoint failed")
		}
	}

	metrics.RecordTick(time.Since(start), total)
	return total, nil
}

// fileBefore orders files the way Discover does.
func fileBefore(a, b tailer.FileInfo) bool {
	if !a.Stamp.Equal(b.Stamp) {
		return a.Stamp.Before(b.Stamp)
	}
	if a.Segment != b.Segment {
		return a.Segment < b.Segment
	}
	return a.Name < b.Name
}

func (m *Monitor) handle(ctx context.Context, f tailer.FileInfo) (*tailer.Handle, error) {
	if h, ok := m.handles[f.Name]; ok {
		return h, nil
	}
	h, err := m.tailer.OpenOrResume(ctx, f.Path)
	if err != nil {
		return nil, err
	}
	m.handles[f.Name] = h
	return h, nil
}

// dispatch ingests lines in order. A line whose side-car is not ready, or
// that cannot be stored, is unread together with the rest of the batch.
func (m *Monitor) dispatch(ctx context.Context, h *tailer.Handle, lines []tailer.Line) int {
	n := 0
	for _, line := range lines {
		ev, err := m.decoder.DecodeAt(line.Text, journal.Source{File: h.Name(), Seq: line.Seq})
		if err != nil {
			if errors.Is(err, journal.ErrSidecarPending) {
				h.Unread(line)
				m.log.Debug().Err(err).Str("file", h.Name()).Int64("seq", line.Seq).Msg("Side-car pending, line deferred")
				return n
			}
			metrics.RecordDecodeError(journal.ReasonOf(err))
			m.log.Debug().Err(err).Str("file", h.Name()).Int64("seq", line.Seq).Msg("Journal line dropped")
			continue
		}
		metrics.EventsDecoded.WithLabelValues(ev.Kind.String()).Inc()

		m.stamp(ctx, h, ev)

		if _, err := m.store.Append(ctx, ev); err != nil {
			h.Unread(line)
			m.log.Error().Err(err).Str("file", h.Name()).Int64("seq", line.Seq).Msg("Event not stored, retrying next tick")
			return n
		}
		m.fold(ctx, ev)
		n++
	}
	return n
}

// fold runs the commander's sequencer over ev and publishes the outcome.
func (m *Monitor) fold(ctx context.Context, ev *journal.Event) {
	if ev.CommanderID == 0 {
		return
	}
	seq, ok := m.sequencers[ev.CommanderID]
	if !ok {
		// The store already holds ev, so the rebuild includes it and the
		// Append below reports a duplicate.
		seq = m.load(ctx, ev.CommanderID)
	}

	entry, out := seq.Append(ev)
	var topic string
	switch out {
	case history.Appended:
		topic = eventbus.TopicEntry
	case history.Merged:
		topic = eventbus.TopicMerged
	default:
		return
	}
	if m.pub == nil {
		return
	}
	if err := m.pub.Publish(ctx, topic, notice(ev.CommanderID, entry, out)); err != nil {
		m.log.Debug().Err(err).Str("topic", topic).Msg("Notice not published")
	}
}

func notice(commander int64, e *history.Entry, out history.Outcome) eventbus.Notice {
	return eventbus.Notice{
		Commander: commander,
		Index:     e.Index,
		Kind:      e.Kind().String(),
		Time:      e.Event.Time,
		System:    e.System.Name,
		Address:   e.System.Address,
		Docked:    e.Docked,
		Station:   e.Station,
		Cash:      e.Cash,
		Outcome:   out.String(),
	}
}

// LoadHistory rebuilds the history of commander from the store. Live
// dispatch waits until it finishes; the backfiller skips its passes.
// Entries built before an error are kept.
func (m *Monitor) LoadHistory(ctx context.Context, commander int64) (int, error) {
	m.gate.Lock()
	defer m.gate.Unlock()

	seq := history.New(m.histCfg)
	m.rebuilding.Store(true)
	n, err := seq.Load(m.withCommander(ctx, commander), m.store, commander)
	m.rebuilding.Store(false)
	m.sequencers[commander] = seq
	return n, err
}

// load is LoadHistory for callers holding the gate.
func (m *Monitor) load(ctx context.Context, commander int64) *history.Sequencer {
	seq := history.New(m.histCfg)
	m.rebuilding.Store(true)
	if _, err := seq.Load(m.withCommander(ctx, commander), m.store, commander); err != nil {
		m.log.Warn().Err(err).Int64("commander_id", commander).Msg("History load incomplete")
	}
	m.rebuilding.Store(false)
	m.sequencers[commander] = seq
	return seq
}

// withCommander adds the commander's name to ctx for log lines written
// under it. Names are read from the store once per commander.
func (m *Monitor) withCommander(ctx context.Context, commander int64) context.Context {
	name, ok := m.names[commander]
	if !ok {
		c, err := m.store.CommanderByID(ctx, commander)
		if err != nil {
			m.log.Debug().Err(err).Int64("commander_id", commander).Msg("Commander name unavailable")
			return ctx
		}
		if c == nil {
			return ctx
		}
		name = c.Name
		m.names[commander] = name
	}
	if name == "" {
		return ctx
	}
	return logging.ContextWithCommander(ctx, name)
}

// Rebuilding reports whether a bulk history rebuild is running.
func (m *Monitor) Rebuilding() bool {
	return m.rebuilding.Load()
}

// Commander returns the id of the commander of the line read last, 0 when
// unknown.
func (m *Monitor) Commander() int64 {
	m.gate.Lock()
	defer m.gate.Unlock()
	return m.commander
}

// View runs fn with the sequencer of commander while holding the dispatch
// gate. fn receives nil when the commander has no history loaded and must
// not keep the sequencer.
func (m *Monitor) View(commander int64, fn func(*history.Sequencer)) {
	m.gate.Lock()
	defer m.gate.Unlock()
	fn(m.sequencers[commander])
}

// Unresolved returns, per commander, up to limit systems visited without
// known coordinates.
func (m *Monitor) Unresolved(limit int) map[int64][]starscan.SystemRef {
	m.gate.Lock()
	defer m.gate.Unlock()

	out := make(map[int64][]starscan.SystemRef)
	for id, seq := range m.sequencers {
		if refs := seq.Unresolved(limit); len(refs) > 0 {
			out[id] = refs
		}
	}
	return out
}

// CurrentSystems returns each commander's latest system.
func (m *Monitor) CurrentSystems() map[int64]starscan.SystemRef {
	m.gate.Lock()
	defer m.gate.Unlock()

	out := make(map[int64]starscan.SystemRef)
	for id, seq := range m.sequencers {
		if last := seq.Last(); last != nil && !last.System.Ref().IsZero() {
			out[id] = last.System.Ref()
		}
	}
	return out
}

// Offer queues lookup results for the next tick and wakes the worker.
func (m *Monitor) Offer(rs ...Resolution) {
	if len(rs) == 0 {
		return
	}
	m.pendingMu.Lock()
	m.pending = append(m.pending, rs...)
	m.pendingMu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// applyPending applies offered lookup results. Caller holds the gate.
func (m *Monitor) applyPending() {
	m.pendingMu.Lock()
	pending := m.pending
	m.pending = nil
	m.pendingMu.Unlock()

	for _, r := range pending {
		seq := m.sequencers[r.Commander]
		if seq == nil {
			continue
		}
		if r.Coords != nil {
			if n := seq.BackfillCoordinates(r.System, *r.Coords); n > 0 {
				metrics.BackfillResolved.Inc()
				m.log.Debug().Str("system", r.System.Name).Int("entries", n).Msg("Coordinates backfilled")
			}
		}
		if len(r.Scans) > 0 {
			seq.Scans().AddFromLookup(r.System, r.Scans)
		}
	}
}

func (m *Monitor) startupCommander(ctx context.Context) (int64, error) {
	if m.cfg.Commander != "" {
		c, err := m.store.CommanderByName(ctx, m.cfg.Commander)
		if err != nil {
			return 0, fmt.Errorf("look up commander %q: %w", m.cfg.Commander, err)
		}
		if c == nil {
			return 0, nil
		}
		return c.ID, nil
	}
	ev, err := m.store.Predecessor(ctx, commanderKinds, time.Now().Add(time.Hour))
	if err != nil || ev == nil {
		return 0, err
	}
	return ev.CommanderID, nil
}
