// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package eventbus

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/astrographus/internal/logging"
)

// Tap logs every notice on the history topics at debug level. It runs as
// a supervised service and gives operators a live view of the fold.
type Tap struct {
	bus    *Bus
	topics []string
}

// NewTap creates a tap on the entry and merged topics.
func NewTap(bus *Bus) *Tap {
	return &Tap{bus: bus, topics: []string{TopicEntry, TopicMerged}}
}

// Serve implements suture.Service.
func (t *Tap) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chans := make([]<-chan *message.Message, 0, len(t.topics))
	for _, topic := range t.topics {
		ch, err := t.bus.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		chans = append(chans, ch)
	}

	log := logging.WithComponent("notices")
	merged := fanIn(ctx, chans)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-merged:
			if !ok {
				return ErrClosed
			}
			n, err := Decode(msg)
			msg.Ack()
			if err != nil {
				log.Warn().Err(err).Msg("Undecodable notice")
				continue
			}
			log.Debug().
				Int64("commander_id", n.Commander).
				Int("index", n.Index).
				Str("kind", n.Kind).
				Str("system", n.System).
				Str("outcome", n.Outcome).
				Str("run_id", msg.Metadata.Get(MetaRunID)).
				Msg("History notice")
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (t *Tap) String() string {
	return "notice-tap"
}

// fanIn merges chans into one channel that closes when all inputs close.
func fanIn(ctx context.Context, chans []<-chan *message.Message) <-chan *message.Message {
	out := make(chan *message.Message)
	done := make(chan struct{}, len(chans))
	for _, ch := range chans {
		go func(ch <-chan *message.Message) {
			defer func() { done <- struct{}{} }()
			for msg := range ch {
				select {
				case out <- msg:
				case <-ctx.Done():
					msg.Nack()
					return
				}
			}
		}(ch)
	}
	go func() {
		for range chans {
			<-done
		}
		close(out)
	}()
	return out
}
