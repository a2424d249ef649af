// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package tailer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/tomtom215/astrographus/internal/logging"
)

// Watcher turns journal directory notifications into wake-up hints for the
// polling loop. Hints are coalesced: any number of writes between two
// receives yields a single hint. Polling stays authoritative; a missed
// notification only delays a read until the next tick.
type Watcher struct {
	Dir   string
	Hints <-chan struct{}

	pattern string
	hints   chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for dir. Files matching pattern and the
// side-car .json files wake the loop.
func NewWatcher(dir, pattern string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if pattern == "" {
		pattern = DefaultPattern
	}

	ch := make(chan struct{}, 1)
	return &Watcher{
		Dir:     dir,
		Hints:   ch,
		pattern: pattern,
		hints:   ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		_ = w.watcher.Close()
		close(w.done)
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for its loop to exit.
func (w *Watcher) Stop() {
	_ = w.watcher.Close()
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if w.relevant(event.Name) {
				w.notify()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Debug().Err(err).Str("dir", w.Dir).Msg("Journal watcher error")
		}
	}
}

func (w *Watcher) relevant(path string) bool {
	base := filepath.Base(path)
	if ok, _ := filepath.Match(w.pattern, base); ok {
		return true
	}
	return strings.HasSuffix(base, ".json")
}

func (w *Watcher) notify() {
	select {
	case w.hints <- struct{}{}:
	default:
	}
}
