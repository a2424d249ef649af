// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package tailer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultPattern matches both journal naming schemes.
const DefaultPattern = "Journal.*.log"

const (
	legacyStampLayout = "060102150405"      // Journal.yymmddhhmmss.NN.log
	isoStampLayout    = "2006-01-02T150405" // Journal.YYYY-MM-DDTHHMMSS.NN.log
)

// FileInfo describes a discovered journal file.
type FileInfo struct {
	Path    string
	Name    string
	Stamp   time.Time // zero when the name carries no parsable timestamp
	Segment int       // the NN part of the name
}

// Discover lists the journal files in the tailer's directory, oldest first:
// by the timestamp embedded in the name, then by name.
func (t *Tailer) Discover() ([]FileInfo, error) {
	paths, err := filepath.Glob(filepath.Join(t.dir, t.pattern))
	if err != nil {
		return nil, fmt.Errorf("glob journal files: %w", err)
	}

	files := make([]FileInfo, 0, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		stamp, segment, _ := ParseName(name)
		files = append(files, FileInfo{Path: p, Name: name, Stamp: stamp, Segment: segment})
	}
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if !a.Stamp.Equal(b.Stamp) {
			return a.Stamp.Before(b.Stamp)
		}
		if a.Segment != b.Segment {
			return a.Segment < b.Segment
		}
		return a.Name < b.Name
	})
	return files, nil
}

// ParseName extracts the timestamp and segment number from a journal file
// name in either the legacy or the current scheme.
//
//	ParseName("Journal.190127074000.01.log")       // 2019-01-27 07:40:00, 1
//	ParseName("Journal.2024-03-05T211512.01.log")  // 2024-03-05 21:15:12, 1
func ParseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, "Journal.") || !strings.HasSuffix(name, ".log") {
		return time.Time{}, 0, false
	}
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(name, "Journal."), ".log"), ".")
	if len(parts) != 2 {
		return time.Time{}, 0, false
	}
	segment, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, 0, false
	}

	layout := isoStampLayout
	if !strings.Contains(parts[0], "T") {
		layout = legacyStampLayout
	}
	stamp, err := time.ParseInLocation(layout, parts[0], time.UTC)
	if err != nil {
		return time.Time{}, segment, false
	}
	return stamp, segment, true
}
