// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Command astrographus is the headless ingestion daemon.

It tails the Elite Dangerous journal directory, stores every decoded event
in a BadgerDB event store and keeps a live history per commander: location,
finances, inventory, ships, missions, statistics and a scan tree per star
system.

Startup order:

 1. Configuration: koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog with JSON or console output
 3. Event store: BadgerDB
 4. Supervisor tree: suture v4 with ingest, lookup and ops layers
 5. Journal monitor, plus optional event bus tap, lookup backfill, store GC
    and metrics listener

Configuration is read from CONFIG_PATH or astrographus.yaml; common overrides:

	JOURNAL_DIR=/path/to/journals
	STORE_PATH=/var/lib/astrographus
	COMMANDER=Jameson
	EDSM_ENABLED=true
	METRICS_ENABLED=true METRICS_ADDR=127.0.0.1:9464
	LOG_LEVEL=debug LOG_FORMAT=console

SIGINT or SIGTERM stops the tree; the monitor finishes its in-flight batch
and checkpoints before exit.
*/
package main
