// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package services

import (
	"context"
	"time"

	"github.com/tomtom215/astrographus/internal/logging"
)

// PeriodicService runs a maintenance task on a fixed interval: store value
// log garbage collection, lookup cache expiry. A failing run is logged and
// retried on the next tick; it never ends the service.
//
//	gc := services.NewPeriodicService("store-gc", 10*time.Minute, func(context.Context) error {
//	    return st.RunGC(0.5)
//	})
//	tree.AddOpsService(gc)
type PeriodicService struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
}

// NewPeriodicService creates a periodic service. A non-positive interval
// defaults to one minute.
func NewPeriodicService(name string, interval time.Duration, task func(ctx context.Context) error) *PeriodicService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicService{
		name:     name,
		interval: interval,
		task:     task,
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log := logging.WithComponent(s.name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.task(ctx); err != nil {
				log.Warn().Err(err).Msg("Periodic task failed")
				continue
			}
			log.Debug().Dur("duration", time.Since(start)).Msg("Periodic task completed")
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (s *PeriodicService) String() string {
	return s.name
}
