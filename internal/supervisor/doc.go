// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package supervisor runs the long-lived services of Astrographus under a
suture v4 tree.

	RootSupervisor ("astrographus")
	├── IngestSupervisor ("ingest-layer")
	│   └── MonitorService (journal monitor)
	├── LookupSupervisor ("lookup-layer")
	│   ├── Backfiller (if lookup.enabled)
	│   └── PeriodicService "lookup-cache-janitor" (if lookup.enabled)
	└── OpsSupervisor ("ops-layer")
	    ├── PeriodicService "store-gc"
	    └── HTTPServerService "metrics-server" (if metrics.enabled)

Crashed services restart with suture's backoff. Each layer counts its own
failures, so a flapping lookup service does not restart the monitor.

Supervisor events are logged through sutureslog, which takes a *slog.Logger;
logging.NewSlogLogger bridges it to the zerolog output.

# Usage

	tree, err := supervisor.NewSupervisorTree(
	    logging.NewSlogLogger("supervisor"),
	    supervisor.TreeConfigFrom(cfg.Supervisor),
	)
	if err != nil {
	    return err
	}
	tree.AddIngestService(services.NewMonitorService(monitor))
	errCh := tree.ServeBackground(ctx)

Adapters for the individual services live in the services subpackage.
*/
package supervisor
