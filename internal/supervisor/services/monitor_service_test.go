// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type mockMonitor struct {
	starts    atomic.Int32
	stops     atomic.Int32
	failUntil int32
	stopErr   error
}

func (m *mockMonitor) Start(context.Context) error {
	if m.starts.Add(1) <= m.failUntil {
		return errors.New("simulated start failure")
	}
	return nil
}

func (m *mockMonitor) Stop() error {
	m.stops.Add(1)
	return m.stopErr
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMonitorService(t *testing.T) {
	t.Run("starts and stops with the context", func(t *testing.T) {
		mon := &mockMonitor{}
		svc := NewMonitorService(mon)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		waitFor(t, func() bool { return mon.starts.Load() == 1 })
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(time.Second):
			t.Fatal("service did not stop in time")
		}
		if mon.stops.Load() != 1 {
			t.Errorf("Stop called %d times, want 1", mon.stops.Load())
		}
	})

	t.Run("propagates start error", func(t *testing.T) {
		mon := &mockMonitor{failUntil: 1}
		if err := NewMonitorService(mon).Serve(context.Background()); err == nil {
			t.Error("Serve() = nil, want start error")
		}
		if mon.stops.Load() != 0 {
			t.Error("Stop called after failed Start")
		}
	})

	t.Run("reports stop error", func(t *testing.T) {
		mon := &mockMonitor{stopErr: errors.New("stop failed")}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := NewMonitorService(mon).Serve(ctx); err == nil {
			t.Error("Serve() = nil, want stop error")
		}
	})

	t.Run("String returns service name", func(t *testing.T) {
		if got := NewMonitorService(&mockMonitor{}).String(); got != "journal-monitor" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestMonitorServiceRestartedBySupervisor(t *testing.T) {
	mon := &mockMonitor{failUntil: 2}
	sup := suture.New("ingest-test", suture.Spec{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          100 * time.Millisecond,
	})
	sup.Add(NewMonitorService(mon))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	errCh := sup.ServeBackground(ctx)

	waitFor(t, func() bool { return mon.starts.Load() >= 3 })
	cancel()
	<-errCh
}

func TestPeriodicService(t *testing.T) {
	var runs atomic.Int32
	svc := NewPeriodicService("store-gc", 10*time.Millisecond, func(context.Context) error {
		if runs.Add(1) == 1 {
			return errors.New("first run fails")
		}
		return nil
	})
	if svc.String() != "store-gc" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	waitFor(t, func() bool { return runs.Load() >= 3 })
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("service did not stop in time")
	}
}

func TestPeriodicServiceDefaultInterval(t *testing.T) {
	svc := NewPeriodicService("janitor", 0, func(context.Context) error { return nil })
	if svc.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", svc.interval)
	}
}
