// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tailer Metrics
	JournalLinesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_lines_read_total",
			Help: "Total number of complete journal lines read by the tailer",
		},
	)

	JournalFileErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_file_errors_total",
			Help: "Total number of per-file I/O failures (file skipped for the tick)",
		},
	)

	JournalRotations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_rotations_total",
			Help: "Total number of cursors reset after truncation or header change",
		},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_tick_duration_seconds",
			Help:    "Duration of one ingest tick (read, decode, fold, checkpoint)",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// Decoder Metrics
	DecodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_decode_errors_total",
			Help: "Total number of rejected journal lines",
		},
		[]string{"reason"}, // "malformed_payload", "unknown_kind", "sidecar_pending"
	)

	EventsDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_events_decoded_total",
			Help: "Total number of decoded events by kind",
		},
		[]string{"kind"},
	)

	// Fold Metrics
	MergeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_merge_outcomes_total",
			Help: "Outcome of merging each event with its predecessor",
		},
		[]string{"outcome"}, // "not_merged", "merged", "discarded"
	)

	EntriesRetained = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_entries_retained_total",
			Help: "Total number of history entries appended to the timeline",
		},
	)

	EntriesRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_entries_removed_total",
			Help: "Total number of events dropped by the removal policy",
		},
		[]string{"rule"}, // "cargo", "continued", "music", "duplicate"
	)

	HistoryRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "history_rebuild_duration_seconds",
			Help:    "Duration of bulk history rebuilds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Scan Tree Metrics
	ScanAttaches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starscan_attach_total",
			Help: "Scan tree attach attempts by result",
		},
		[]string{"result"}, // "attached", "deferred", "rejected", "conflict"
	)

	ScanRederivations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starscan_rederivations_total",
			Help: "Total number of primary-star corrections that replayed a system",
		},
	)

	ScanDeferredQueue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starscan_deferred_events",
			Help: "Deferred body events waiting for their node across all systems",
		},
	)

	// Lookup Metrics
	LookupRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_requests_total",
			Help: "Remote lookups by operation and result",
		},
		[]string{"operation", "result"}, // result: "found", "absent", "unavailable"
	)

	LookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lookup_request_duration_seconds",
			Help:    "Duration of remote lookups",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	LookupCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookup_cache_hits_total",
			Help: "Total number of lookup cache hits",
		},
	)

	LookupCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookup_cache_misses_total",
			Help: "Total number of lookup cache misses",
		},
	)

	LookupSharedCalls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookup_singleflight_shared_total",
			Help: "Lookups satisfied by joining an in-flight request",
		},
	)

	BackfillResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_backfill_resolved_total",
			Help: "Systems whose coordinates were backfilled from the lookup service",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Store Metrics
	StoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_writes_total",
			Help: "BadgerDB writes by record type",
		},
		[]string{"type"}, // "event", "cursor", "commander"
	)

	// Bus Metrics
	BusPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventbus_published_total",
			Help: "Notifications published by topic",
		},
		[]string{"topic"},
	)
)

// RecordTick records one ingest tick.
func RecordTick(duration time.Duration, lines int) {
	TickDuration.Observe(duration.Seconds())
	JournalLinesRead.Add(float64(lines))
}

// RecordDecodeError records a rejected journal line.
func RecordDecodeError(reason string) {
	DecodeErrors.WithLabelValues(reason).Inc()
}

// RecordLookup records a remote lookup and its result.
func RecordLookup(operation, result string, duration time.Duration) {
	LookupRequests.WithLabelValues(operation, result).Inc()
	LookupDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheLookup records a lookup cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		LookupCacheHits.Inc()
	} else {
		LookupCacheMisses.Inc()
	}
}

// RecordBreakerTransition records a circuit breaker state change.
// States use the gobreaker numbering: 0=closed, 1=half-open, 2=open.
func RecordBreakerTransition(name, from, to string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}
