package dispatchmock

import (
	"context"
	"sync"

	"quickfactor-backend/internal/domain/event"
)

var _ event.Dispatcher = (*Recorder)(nil)

// Recorder keeps every dispatched event so tests can assert on emission
// order and payloads.
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (m *Recorder) Dispatch(ctx context.Context, events ...event.Event) {
	m.mu.Lock()
	m.events = append(m.events, events...)
	m.mu.Unlock()
}

func (m *Recorder) Events() []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Event, len(m.events))
	copy(out, m.events)
	return out
}

// Kinds returns the dispatched kinds in order.
func (m *Recorder) Kinds() []event.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Kind, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Kind)
	}
	return out
}

// Has reports whether a kind was dispatched at least once.
func (m *Recorder) Has(kind event.Kind) bool {
	for _, k := range m.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}
