// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHTTPServer is a test double for HTTPServer.
type mockHTTPServer struct {
	listenErr   error
	block       bool
	shutdownErr error
	listens     atomic.Int32
	shutdowns   atomic.Int32
	listening   chan struct{}
	stopCh      chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		listening: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	m.listens.Add(1)
	select {
	case m.listening <- struct{}{}:
	default:
	}
	if m.listenErr != nil {
		return m.listenErr
	}
	if m.block {
		<-m.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdowns.Add(1)
	close(m.stopCh)
	return m.shutdownErr
}

var _ suture.Service = (*HTTPServerService)(nil)

func TestNewHTTPServerService(t *testing.T) {
	tests := []struct {
		name        string
		svcName     string
		timeout     time.Duration
		wantName    string
		wantTimeout time.Duration
	}{
		{"explicit", "metrics-server", 5 * time.Second, "metrics-server", 5 * time.Second},
		{"zero timeout", "metrics-server", 0, "metrics-server", 10 * time.Second},
		{"negative timeout", "metrics-server", -time.Second, "metrics-server", 10 * time.Second},
		{"empty name", "", time.Second, "http-server", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewHTTPServerService(tt.svcName, newMockHTTPServer(), tt.timeout)
			if svc.String() != tt.wantName {
				t.Errorf("String() = %q, want %q", svc.String(), tt.wantName)
			}
			if svc.shutdownTimeout != tt.wantTimeout {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.wantTimeout)
			}
		})
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Run("shuts down gracefully on context cancellation", func(t *testing.T) {
		server := newMockHTTPServer()
		server.block = true
		svc := NewHTTPServerService("metrics-server", server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		select {
		case <-server.listening:
		case <-time.After(time.Second):
			t.Fatal("server did not start")
		}
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after cancellation")
		}
		if server.listens.Load() != 1 || server.shutdowns.Load() != 1 {
			t.Errorf("listens = %d, shutdowns = %d, want 1 each", server.listens.Load(), server.shutdowns.Load())
		}
	})

	t.Run("returns error on startup failure", func(t *testing.T) {
		bindErr := errors.New("bind: address already in use")
		server := newMockHTTPServer()
		server.listenErr = bindErr
		svc := NewHTTPServerService("metrics-server", server, time.Second)

		if err := svc.Serve(context.Background()); !errors.Is(err, bindErr) {
			t.Errorf("Serve() = %v, want %v", err, bindErr)
		}
	})

	t.Run("returns shutdown error", func(t *testing.T) {
		shutdownErr := errors.New("shutdown timeout")
		server := newMockHTTPServer()
		server.block = true
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService("metrics-server", server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()
		<-server.listening
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, shutdownErr) {
				t.Errorf("Serve() = %v, want shutdown error", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
	})
}
