// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package starscan builds the body tree of every visited star system from
Scan, SAAScanComplete, body signal and discovery events.

Systems are keyed by address when known and by name otherwise; a system
first seen by name moves to the address table when its address arrives.
Body names are placed with package bodyname. Until a system's "A" star is
scanned, stars implied by planet names hang under a "Main Star" node; the
first explicit "A" scan rebuilds the tree from the system's applied events.

Mapping and signal events for bodies that have no node yet wait in the
system's ToProcess list and are retried after every scan attach.

A Builder is not safe for concurrent use.
*/
package starscan
