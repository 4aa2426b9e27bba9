// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/cicerone/internal/metrics"
)

// subscriberBuffer bounds each subscriber's output channel. The hub
// drains continuously, so this only absorbs short bursts.
const subscriberBuffer = 64

// Bus is the in-process progress event bus. A single GoChannel pub/sub
// connects guide pipelines to the WebSocket hub; nothing leaves the
// process.
type Bus struct {
	pubsub *gochannel.GoChannel

	mu     sync.RWMutex
	closed bool
}

// NewBus creates the bus with bounded subscriber channels.
func NewBus() *Bus {
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: subscriberBuffer,
	}, NewLoggerAdapter())

	return &Bus{pubsub: pubsub}
}

// PublishProgress serializes and publishes one pipeline stage event.
func (b *Bus) PublishProgress(ctx context.Context, ev *ProgressEvent) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("event bus is closed")
	}
	b.mu.RUnlock()

	data, err := ev.Serialize()
	if err != nil {
		return err
	}

	msg := message.NewMessage(ev.EventID, data)
	msg.Metadata.Set("request_id", ev.RequestID)
	msg.Metadata.Set("operation", ev.Operation)
	msg.Metadata.Set("stage", ev.Stage)
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(TopicGuide, msg); err != nil {
		return fmt.Errorf("publish progress event: %w", err)
	}

	metrics.RecordEventPublished(TopicGuide)
	return nil
}

// Subscribe returns a channel of progress messages. The subscription
// ends when ctx is canceled; consumers must Ack every message.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, fmt.Errorf("event bus is closed")
	}
	return b.pubsub.Subscribe(ctx, TopicGuide)
}

// Close shuts down the pub/sub and releases all subscribers.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	return b.pubsub.Close()
}
