// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package lookup resolves star systems and their bodies through the EDSM web
API, behind a de-duplicating cache.

EDSMClient rate-limits requests with golang.org/x/time/rate and guards them
with a sony/gobreaker circuit breaker. Cache wraps any Service with
golang.org/x/sync/singleflight so concurrent callers asking for the same
system share one request, and remembers three kinds of answer:

  - found: kept for the cache TTL
  - confirmed absent (nil, nil): kept for the absent TTL
  - unavailable (ErrUnavailable): kept briefly, then retried

Lookup results only supplement journal data. BodyList.Scans converts bodies
to lookup-sourced scans that the scan tree never lets replace a journal scan.
*/
package lookup
