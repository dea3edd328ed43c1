package event

import (
	"context"
	"sync"
	"time"

	"dsc/core"
)

type memoryStore struct {
	mux    sync.RWMutex
	events []*core.Event
	traces map[string]struct{}
}

// NewMemory in memory event store
func NewMemory() core.EventStore {
	return &memoryStore{
		traces: make(map[string]struct{}),
	}
}

func (s *memoryStore) Create(ctx context.Context, events ...*core.Event) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, event := range events {
		if _, ok := s.traces[event.TraceID]; ok && event.TraceID != "" {
			continue
		}

		event.ID = int64(len(s.events) + 1)
		if event.CreatedAt.IsZero() {
			event.CreatedAt = time.Now()
		}

		cp := *event
		s.events = append(s.events, &cp)
		s.traces[event.TraceID] = struct{}{}
	}

	return nil
}

func (s *memoryStore) List(ctx context.Context, fromID int64, limit int) ([]*core.Event, error) {
	return s.list(fromID, limit, func(*core.Event) bool { return true }), nil
}

func (s *memoryStore) ListByUser(ctx context.Context, user string, fromID int64, limit int) ([]*core.Event, error) {
	return s.list(fromID, limit, func(e *core.Event) bool {
		return e.From == user || e.To == user
	}), nil
}

func (s *memoryStore) list(fromID int64, limit int, match func(*core.Event) bool) []*core.Event {
	if limit <= 0 {
		limit = defaultLimit
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	var events []*core.Event
	for _, e := range s.events {
		if e.ID <= fromID || !match(e) {
			continue
		}

		cp := *e
		events = append(events, &cp)
		if len(events) >= limit {
			break
		}
	}

	return events
}
