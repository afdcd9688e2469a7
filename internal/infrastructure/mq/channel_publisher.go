package mq

import (
	"context"
	"errors"
	"sync"

	"mindful_server/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("publisher closed")

// ChannelPublisher hands events to a single goroutine over a bounded channel.
// Events are handled one at a time, in the order Publish accepted them.
// A handler panic is logged and the loop carries on with the next event.
type ChannelPublisher struct {
	events  chan Event
	handler Handler
	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
}

func NewChannelPublisher(size int, handler Handler) *ChannelPublisher {
	if handler == nil {
		handler = LogHandler
	}
	p := &ChannelPublisher{
		events:  make(chan Event, size),
		handler: handler,
		done:    make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *ChannelPublisher) loop() {
	defer close(p.done)
	for ev := range p.events {
		p.dispatch(ev)
	}
}

func (p *ChannelPublisher) dispatch(ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("event handler panic", zap.String("type", ev.Type), zap.Any("recover", rec))
		}
	}()
	p.handler(context.Background(), ev)
}

// Publish blocks while the channel is full, until ctx is done.
func (p *ChannelPublisher) Publish(ctx context.Context, ev Event) error {
	// the read lock keeps Close from closing the channel under a pending send
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.events <- ev:
		metrics.RecordEvent(ev.Type, nil)
		return nil
	case <-ctx.Done():
		metrics.RecordEvent(ev.Type, ctx.Err())
		return ctx.Err()
	}
}

// Close stops accepting events and waits for queued ones to be handled.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.events)
	p.mu.Unlock()
	<-p.done
	return nil
}

// LogHandler writes each event to the application log.
func LogHandler(_ context.Context, ev Event) {
	zap.L().Info("domain event",
		zap.String("id", ev.ID),
		zap.String("type", ev.Type),
		zap.String("aggregate_id", ev.AggregateID),
		zap.ByteString("payload", ev.Payload),
	)
}
