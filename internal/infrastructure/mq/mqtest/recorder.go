// Package mqtest provides an in-memory publisher for asserting on events.
package mqtest

import (
	"context"
	"sync"

	"mindful_server/internal/infrastructure/mq"
)

// Recorder keeps every published event in order.
type Recorder struct {
	mu     sync.Mutex
	events []mq.Event
}

func (r *Recorder) Publish(_ context.Context, ev mq.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []mq.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mq.Event(nil), r.events...)
}

// Types returns the recorded event types in publish order.
func (r *Recorder) Types() []string {
	var types []string
	for _, ev := range r.Events() {
		types = append(types, ev.Type)
	}
	return types
}

var _ mq.Publisher = (*Recorder)(nil)
