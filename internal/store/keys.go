// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package store

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/tomtom215/astrographus/internal/journal"
)

// Key layout. Integers are big-endian so byte order matches numeric order.
//
//	ev:<commander u64><unixnano u64><file>\x00<seq u64>   event record
//	kt:<kind>:<unixnano u64><file>\x00<seq u64>           kind/time index -> event key
//	cur:<file>                                            tailer cursor
//	cmn:<lower-case name>                                 commander name -> id
//	cmi:<id u64>                                          commander record
//	cmseq                                                 last commander id
const (
	prefixEvent         = "ev:"
	prefixKindTime      = "kt:"
	prefixCursor        = "cur:"
	prefixCommanderName = "cmn:"
	prefixCommanderID   = "cmi:"
	keyCommanderSeq     = "cmseq"
)

func appendU64(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(b, v)
}

func nanos(t time.Time) uint64 {
	n := t.UnixNano()
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func eventPrefix(commander int64) []byte {
	return appendU64([]byte(prefixEvent), uint64(commander))
}

func eventKey(ev *journal.Event) []byte {
	k := eventPrefix(ev.CommanderID)
	k = appendU64(k, nanos(ev.Time))
	return appendSource(k, ev.File, ev.Seq)
}

func kindPrefix(kind journal.Kind) []byte {
	return []byte(prefixKindTime + kind.String() + ":")
}

func kindTimeKey(ev *journal.Event) []byte {
	k := appendU64(kindPrefix(ev.Kind), nanos(ev.Time))
	return appendSource(k, ev.File, ev.Seq)
}

func appendSource(b []byte, file string, seq int64) []byte {
	b = append(b, file...)
	b = append(b, 0)
	return appendU64(b, uint64(seq))
}

func cursorKey(file string) []byte {
	return []byte(prefixCursor + file)
}

func commanderNameKey(name string) []byte {
	return []byte(prefixCommanderName + strings.ToLower(strings.TrimSpace(name)))
}

func commanderIDKey(id int64) []byte {
	return appendU64([]byte(prefixCommanderID), uint64(id))
}
