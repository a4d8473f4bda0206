package memory

import (
	"context"
	"sync"

	audit "assetdesk/pkg/platform/audit"
)

// InMemoryStore keeps audit events per subject. Used in development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]audit.Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Subject] = append(s.events[event.Subject], event)
	return nil
}

// ListBySubject returns up to limit of subject's events, newest first.
func (s *InMemoryStore) ListBySubject(_ context.Context, subject string, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.events[subject]
	n := len(stored)
	if limit > 0 {
		n = min(n, limit)
	}
	out := make([]audit.Event, 0, n)
	for i := len(stored) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string][]audit.Event)
}
