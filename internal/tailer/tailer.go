// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package tailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/astrographus/internal/logging"
	"github.com/tomtom215/astrographus/internal/metrics"
)

// ErrIOTransient wraps per-file read failures. The caller logs it, skips
// the file for this tick and retries on the next one.
var ErrIOTransient = errors.New("transient journal I/O error")

// headerProbe bounds how much of the file is read to fingerprint the
// first line.
const headerProbe = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Line is one complete journal line.
type Line struct {
	Text   []byte // line without its terminator
	Offset int64  // byte offset of the first byte of the line
	End    int64  // byte offset just past the terminator
	Seq    int64  // index of the line among the file's non-blank lines
}

// Handle is an open read position on one journal file. Handles are owned by
// a single goroutine.
type Handle struct {
	path    string
	cursor  Cursor
	saved   Cursor
	rotated bool
}

// Path returns the file path.
func (h *Handle) Path() string { return h.path }

// Name returns the file base name.
func (h *Handle) Name() string { return h.cursor.File }

// Cursor returns the in-memory read position.
func (h *Handle) Cursor() Cursor { return h.cursor }

// Part returns the Fileheader part recorded for the file, 0 until seen.
func (h *Handle) Part() int { return h.cursor.Part }

// SetPart records the file's Fileheader part so resumed reads keep it.
func (h *Handle) SetPart(part int) { h.cursor.Part = part }

// Dirty reports whether the cursor moved since the last checkpoint.
func (h *Handle) Dirty() bool { return h.cursor != h.saved }

// Rotated reports, and clears, whether the last read reset the cursor
// because the file was truncated or replaced.
func (h *Handle) Rotated() bool {
	r := h.rotated
	h.rotated = false
	return r
}

// Unread rewinds the cursor to line so it is delivered again on the next
// read. Lines after it in the same batch are delivered again as well.
func (h *Handle) Unread(line Line) {
	if line.Offset < h.cursor.Offset {
		h.cursor.Offset = line.Offset
		h.cursor.Seq = line.Seq
	}
}

// Tailer reads growing journal files incrementally.
type Tailer struct {
	dir     string
	pattern string
	cursors CursorStore
}

// New creates a Tailer over the files in dir matching pattern.
func New(dir, pattern string, cursors CursorStore) *Tailer {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if cursors == nil {
		cursors = NewMemoryCursorStore()
	}
	return &Tailer{dir: dir, pattern: pattern, cursors: cursors}
}

// Dir returns the journal directory.
func (t *Tailer) Dir() string { return t.dir }

// OpenOrResume opens path at its saved cursor. When the file shrank below
// the cursor or its first line changed, reading restarts at offset 0.
func (t *Tailer) OpenOrResume(ctx context.Context, path string) (*Handle, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from Discover
	if err != nil {
		return nil, transient("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, transient("stat", path, err)
	}
	header, err := fingerprint(f)
	if err != nil {
		return nil, transient("read header", path, err)
	}

	name := filepath.Base(path)
	h := &Handle{path: path, cursor: Cursor{File: name, Header: header}}

	saved, err := t.cursors.LoadCursor(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load cursor for %s: %w", name, err)
	}
	if saved != nil {
		switch {
		case info.Size() < saved.Offset:
			logging.Warn().Str("file", name).Int64("size", info.Size()).Int64("offset", saved.Offset).
				Msg("Journal shrank below saved cursor, restarting")
			metrics.JournalRotations.Inc()
			h.rotated = true
		case saved.Header != 0 && header != 0 && saved.Header != header:
			logging.Warn().Str("file", name).Msg("Journal header changed, restarting")
			metrics.JournalRotations.Inc()
			h.rotated = true
		default:
			h.cursor = *saved
			if h.cursor.Header == 0 {
				h.cursor.Header = header
			}
		}
	}
	h.saved = h.cursor
	if saved != nil && !h.rotated {
		h.saved = *saved
	}
	return h, nil
}

// ReadNewLines returns every complete line after the cursor and advances
// it. A trailing partial line is left for a later read.
func (t *Tailer) ReadNewLines(h *Handle) ([]Line, error) {
	f, err := os.Open(h.path) //nolint:gosec // path comes from Discover
	if err != nil {
		return nil, transient("open", h.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, transient("stat", h.path, err)
	}
	size := info.Size()

	header, err := fingerprint(f)
	if err != nil {
		return nil, transient("read header", h.path, err)
	}
	if size < h.cursor.Offset || (h.cursor.Header != 0 && header != 0 && header != h.cursor.Header) {
		logging.Warn().Str("file", h.cursor.File).Int64("size", size).Int64("offset", h.cursor.Offset).
			Msg("Journal truncated or replaced, restarting")
		metrics.JournalRotations.Inc()
		h.cursor = Cursor{File: h.cursor.File, Header: header}
		h.rotated = true
	}
	if h.cursor.Header == 0 {
		h.cursor.Header = header
	}
	h.cursor.Size = size
	if size == h.cursor.Offset {
		return nil, nil
	}

	buf := make([]byte, size-h.cursor.Offset)
	n, err := f.ReadAt(buf, h.cursor.Offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, transient("read", h.path, err)
	}
	buf = buf[:n]

	var lines []Line
	pos := 0
	seq := h.cursor.Seq
	for {
		i := bytes.IndexByte(buf[pos:], '\n')
		if i < 0 {
			break
		}
		start := h.cursor.Offset + int64(pos)
		text := bytes.TrimSuffix(buf[pos:pos+i], []byte{'\r'})
		if start == 0 {
			text = bytes.TrimPrefix(text, utf8BOM)
		}
		pos += i + 1
		if len(bytes.TrimSpace(text)) == 0 {
			continue
		}
		lines = append(lines, Line{Text: text, Offset: start, End: h.cursor.Offset + int64(pos), Seq: seq})
		seq++
	}

	h.cursor.Offset += int64(pos)
	h.cursor.Seq = seq
	return lines, nil
}

// Checkpoint persists the handle's cursor. After a restart, reading resumes
// exactly at the checkpointed offset.
func (t *Tailer) Checkpoint(ctx context.Context, h *Handle) error {
	if !h.Dirty() {
		return nil
	}
	if err := t.cursors.SaveCursor(ctx, &h.cursor); err != nil {
		return fmt.Errorf("save cursor for %s: %w", h.cursor.File, err)
	}
	h.saved = h.cursor
	return nil
}

// fingerprint hashes the first complete line of f, or returns 0 when the
// file has no complete line yet.
func fingerprint(f *os.File) (uint64, error) {
	buf := make([]byte, headerProbe)
	n, err := f.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	i := bytes.IndexByte(buf[:n], '\n')
	if i < 0 {
		return 0, nil
	}
	return xxhash.Sum64(buf[:i]), nil
}

func transient(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIOTransient, op, filepath.Base(path), err)
}
