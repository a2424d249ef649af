// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/logging"
	"github.com/tomtom215/astrographus/internal/lookup"
	"github.com/tomtom215/astrographus/internal/starscan"
)

// Backfiller resolves what the journal does not say about visited systems:
// coordinates of systems entered without StarPos, and the known bodies of
// each commander's current system. It never touches sequencers itself;
// results go through Monitor.Offer and are applied on the next tick.
type Backfiller struct {
	mon      *Monitor
	svc      lookup.Service
	interval time.Duration
	batch    int
	log      zerolog.Logger

	// fetched remembers whose current system already had its bodies
	// requested.
	fetched map[int64]starscan.SystemRef
}

// NewBackfiller creates a backfiller querying svc, normally a *lookup.Cache.
func NewBackfiller(mon *Monitor, svc lookup.Service, cfg config.LookupConfig) *Backfiller {
	interval := cfg.BackfillInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	batch := cfg.BackfillBatch
	if batch <= 0 {
		batch = 20
	}
	return &Backfiller{
		mon:      mon,
		svc:      svc,
		interval: interval,
		batch:    batch,
		log:      logging.WithComponent("backfill"),
		fetched:  make(map[int64]starscan.SystemRef),
	}
}

// Serve implements suture.Service.
func (b *Backfiller) Serve(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			b.RunOnce(ctx)
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (b *Backfiller) String() string {
	return "coordinate-backfill"
}

// RunOnce performs one pass and returns the number of results offered.
// The pass is skipped while a history rebuild is running.
func (b *Backfiller) RunOnce(ctx context.Context) int {
	if b.mon.Rebuilding() {
		b.log.Debug().Msg("History rebuild running, pass skipped")
		return 0
	}

	var out []Resolution
	for cmdr, refs := range b.mon.Unresolved(b.batch) {
		for _, ref := range refs {
			if ctx.Err() != nil {
				break
			}
			sys, err := b.svc.System(ctx, lookup.SystemKey{Name: ref.Name, Address: ref.Address})
			if err != nil {
				b.logFailure(err, ref, "system")
				continue
			}
			if sys == nil || sys.Coords == nil {
				continue
			}
			out = append(out, Resolution{Commander: cmdr, System: ref, Coords: sys.Coords})
		}
	}

	for cmdr, ref := range b.mon.CurrentSystems() {
		if ctx.Err() != nil {
			break
		}
		if b.fetched[cmdr] == ref {
			continue
		}
		list, _, err := b.svc.Bodies(ctx, lookup.SystemKey{Name: ref.Name, Address: ref.Address})
		if err != nil {
			b.logFailure(err, ref, "bodies")
			continue
		}
		b.fetched[cmdr] = ref
		if list == nil || len(list.Bodies) == 0 {
			continue
		}
		out = append(out, Resolution{Commander: cmdr, System: ref, Scans: list.Scans()})
	}

	b.mon.Offer(out...)
	return len(out)
}

func (b *Backfiller) logFailure(err error, ref starscan.SystemRef, what string) {
	ev := b.log.Warn()
	if errors.Is(err, lookup.ErrUnavailable) {
		ev = b.log.Debug()
	}
	ev.Err(err).Str("system", ref.Name).Int64("address", ref.Address).Str("lookup", what).Msg("Lookup failed")
}
