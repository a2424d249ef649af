// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package eventbus

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/logging"
	"github.com/tomtom215/astrographus/internal/metrics"
)

// Topics.
const (
	TopicEntry  = "history.entry"
	TopicMerged = "history.merged"
)

// Metadata keys set on every message.
const (
	MetaCommander = "commander"
	MetaRunID     = "run_id"
)

// ErrClosed is returned when publishing on a closed bus.
var ErrClosed = errors.New("eventbus: closed")

// Notice announces a history entry that was appended or grew by merging.
type Notice struct {
	Commander int64     `json:"commander"`
	Index     int       `json:"index"`
	Kind      string    `json:"kind"`
	Time      time.Time `json:"time"`
	System    string    `json:"system,omitempty"`
	Address   int64     `json:"address,omitempty"`
	Docked    bool      `json:"docked"`
	Station   string    `json:"station,omitempty"`
	Cash      int64     `json:"cash"`
	Outcome   string    `json:"outcome"`
}

// Bus is an in-process publish/subscribe channel for history notices.
type Bus struct {
	pubsub *gochannel.GoChannel

	mu     sync.RWMutex
	closed bool
}

// New creates a bus.
func New(cfg config.BusConfig) *Bus {
	ps := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
	}, watermill.NewSlogLogger(logging.NewSlogLogger("eventbus")))
	return &Bus{pubsub: ps}
}

// Publish sends n on topic.
func (b *Bus) Publish(ctx context.Context, topic string, n Notice) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set(MetaCommander, strconv.FormatInt(n.Commander, 10))
	if id := logging.RunIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetaRunID, id)
	}
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.BusPublished.WithLabelValues(topic).Inc()
	return nil
}

// Subscribe returns the messages published on topic after the call. The
// channel closes when ctx ends or the bus closes. Receivers must Ack each
// message.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrClosed
	}
	return b.pubsub.Subscribe(ctx, topic)
}

// Close stops the bus and closes all subscriptions.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}

// Decode reads the notice carried by msg.
func Decode(msg *message.Message) (Notice, error) {
	var n Notice
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		return Notice{}, fmt.Errorf("unmarshal notice %s: %w", msg.UUID, err)
	}
	return n, nil
}
