// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/logging"
	"github.com/tomtom215/astrographus/internal/metrics"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New(config.BusConfig{Enabled: true, BufferSize: 8})
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entries, err := bus.Subscribe(ctx, TopicEntry)
	if err != nil {
		t.Fatal(err)
	}
	merged, err := bus.Subscribe(ctx, TopicMerged)
	if err != nil {
		t.Fatal(err)
	}

	before := testutil.ToFloat64(metrics.BusPublished.WithLabelValues(TopicEntry))

	pubCtx := logging.ContextWithRunID(context.Background(), "run-1")
	want := Notice{Commander: 3, Index: 7, Kind: "FSDJump", System: "Sol", Outcome: "appended"}
	if err := bus.Publish(pubCtx, TopicEntry, want); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-entries:
		got, err := Decode(msg)
		msg.Ack()
		if err != nil {
			t.Fatal(err)
		}
		if got.Index != 7 || got.System != "Sol" || got.Kind != "FSDJump" {
			t.Errorf("notice = %+v", got)
		}
		if msg.Metadata.Get(MetaCommander) != "3" || msg.Metadata.Get(MetaRunID) != "run-1" {
			t.Errorf("metadata = %v", msg.Metadata)
		}
		if msg.UUID == "" {
			t.Error("message has no id")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message on entry topic")
	}

	select {
	case msg := <-merged:
		t.Errorf("unexpected message on merged topic: %s", msg.Payload)
	case <-time.After(50 * time.Millisecond):
	}

	if got := testutil.ToFloat64(metrics.BusPublished.WithLabelValues(TopicEntry)) - before; got != 1 {
		t.Errorf("published counter moved by %v, want 1", got)
	}
}

func TestClosedBus(t *testing.T) {
	bus := New(config.BusConfig{})
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := bus.Publish(context.Background(), TopicEntry, Notice{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Publish() = %v, want ErrClosed", err)
	}
	if _, err := bus.Subscribe(context.Background(), TopicEntry); !errors.Is(err, ErrClosed) {
		t.Errorf("Subscribe() = %v, want ErrClosed", err)
	}
}

func TestTapStopsWithContext(t *testing.T) {
	bus := New(config.BusConfig{BufferSize: 4})
	t.Cleanup(func() { _ = bus.Close() })

	tap := NewTap(bus)
	if tap.String() != "notice-tap" {
		t.Errorf("String() = %q", tap.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tap.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	if err := bus.Publish(context.Background(), TopicMerged, Notice{Commander: 1, Outcome: "merged"}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tap did not stop")
	}
}

func TestTapOnClosedBus(t *testing.T) {
	bus := New(config.BusConfig{})
	_ = bus.Close()
	if err := NewTap(bus).Serve(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Serve() = %v, want ErrClosed", err)
	}
}
