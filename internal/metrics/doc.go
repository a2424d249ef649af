// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package metrics provides Prometheus collectors for the ingestion pipeline.

Collectors are registered with promauto on the default registry and cover:
  - tailer throughput, per-file failures and cursor resets
  - decoder rejections by reason and decoded events by kind
  - merge outcomes, retained and removed history entries, rebuild duration
  - scan tree attaches, primary-star re-derivations, deferred queue depth
  - lookup requests, cache hits and misses, circuit breaker state
  - store writes and bus notifications

When metrics.enabled is set, the daemon serves them on metrics.addr:

	curl http://127.0.0.1:9464/metrics
*/
package metrics
