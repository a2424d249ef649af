// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package services adapts Astrographus components to suture.Service.

Each adapter turns a component's lifecycle into a context-aware Serve:

  - MonitorService: Start/Stop of the journal monitor
  - HTTPServerService: ListenAndServe/Shutdown of the metrics listener
  - PeriodicService: a task on a ticker, used for store value log GC and
    lookup cache expiry

The coordinate backfiller implements suture.Service itself and is added to
the tree directly.

Every adapter implements fmt.Stringer so suture can name it in its log
events.
*/
package services
