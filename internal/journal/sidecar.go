// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type sidecarSpec struct {
	file string
	keys []string // any of these on the line means the side-car is not needed
}

var sidecarSpecs = map[Kind]sidecarSpec{
	KindMarket:     {file: "Market.json", keys: []string{"Items"}},
	KindOutfitting: {file: "Outfitting.json", keys: []string{"Items"}},
	KindShipyard:   {file: "Shipyard.json", keys: []string{"PriceList"}},
	KindNavRoute:   {file: "NavRoute.json", keys: []string{"Route"}},
	KindCargo:      {file: "Cargo.json", keys: []string{"Inventory"}},
	KindModuleInfo: {file: "ModulesInfo.json", keys: []string{"Modules"}},
}

// SidecarFile returns the side-car file name for kind, or "" when the kind
// has none.
func SidecarFile(kind Kind) string {
	return sidecarSpecs[kind].file
}

type sidecarMemo struct {
	size   int64
	mod    time.Time
	fields Fields
	stamp  time.Time
}

// SidecarReader reads the JSON files the game writes next to the journal
// for events too large for one line. Files are matched to events by their
// timestamp; an unchanged file (same size and modification time) is served
// from a memo instead of being parsed again.
type SidecarReader struct {
	dir      string
	attempts int
	wait     time.Duration
	sleep    func(time.Duration)

	mu   sync.Mutex
	memo map[string]sidecarMemo
}

// NewSidecarReader creates a reader for dir that tries up to attempts times,
// pausing wait between tries.
func NewSidecarReader(dir string, attempts int, wait time.Duration) *SidecarReader {
	if attempts < 1 {
		attempts = 1
	}
	return &SidecarReader{
		dir:      dir,
		attempts: attempts,
		wait:     wait,
		sleep:    time.Sleep,
		memo:     make(map[string]sidecarMemo),
	}
}

// Read returns the side-car content for an event of kind written at at.
// ErrSidecarPending is returned when no matching file appears within the
// bounded wait.
func (r *SidecarReader) Read(kind Kind, at time.Time) (Fields, error) {
	spec, ok := sidecarSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("%s has no side-car", kind)
	}
	path := filepath.Join(r.dir, spec.file)

	var last error
	for i := 0; i < r.attempts; i++ {
		if i > 0 && r.wait > 0 {
			r.sleep(r.wait)
		}
		m, err := r.load(path)
		if err != nil {
			last = err
			continue
		}
		if m.stamp.Equal(at) {
			return m.fields, nil
		}
		last = fmt.Errorf("%s timestamp %s does not match %s", spec.file,
			m.stamp.Format(time.RFC3339), at.Format(time.RFC3339))
	}
	return nil, fmt.Errorf("%w: %v", ErrSidecarPending, last)
}

func (r *SidecarReader) load(path string) (sidecarMemo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return sidecarMemo{}, err
	}

	r.mu.Lock()
	m, ok := r.memo[path]
	r.mu.Unlock()
	if ok && m.size == info.Size() && m.mod.Equal(info.ModTime()) {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sidecarMemo{}, err
	}
	fields, err := decodeFields(data)
	if err != nil {
		// usually caught mid-write by the game
		return sidecarMemo{}, err
	}
	stamp := fields.Time("timestamp")
	if stamp.IsZero() {
		return sidecarMemo{}, errors.New("side-car without timestamp")
	}

	m = sidecarMemo{size: info.Size(), mod: info.ModTime(), fields: fields, stamp: stamp}
	r.mu.Lock()
	r.memo[path] = m
	r.mu.Unlock()
	return m, nil
}
