// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package services

import (
	"context"
	"fmt"
)

// StartStopper is the Start/Stop lifecycle of the journal monitor.
// Satisfied by *ingest.Monitor.
type StartStopper interface {
	Start(ctx context.Context) error
	Stop() error
}

// MonitorService runs the journal monitor under the supervisor.
//
// Serve calls Start, blocks until ctx is canceled and then calls Stop,
// which waits for the in-flight batch.
//
//	svc := services.NewMonitorService(monitor)
//	tree.AddIngestService(svc)
type MonitorService struct {
	monitor StartStopper
	name    string
}

// NewMonitorService creates a monitor service wrapper.
func NewMonitorService(monitor StartStopper) *MonitorService {
	return &MonitorService{
		monitor: monitor,
		name:    "journal-monitor",
	}
}

// Serve implements suture.Service. A failed Start is returned so suture
// restarts the service with backoff.
func (s *MonitorService) Serve(ctx context.Context) error {
	if err := s.monitor.Start(ctx); err != nil {
		return fmt.Errorf("journal monitor start failed: %w", err)
	}

	<-ctx.Done()

	if err := s.monitor.Stop(); err != nil {
		return fmt.Errorf("journal monitor stop failed: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer for suture logging.
func (s *MonitorService) String() string {
	return s.name
}
