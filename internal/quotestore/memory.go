package quotestore

import (
	"context"
	"sync"
	"time"

	"github.com/velamo/remitroute/internal/model"
)

// Quotes stay retrievable for this long past expiry before a save sweeps
// them out, mirroring the redis TTL.
const retention = 24 * time.Hour

type MemoryStore struct {
	mu       sync.Mutex
	quotes   map[string]*model.Quote
	executed map[string]bool
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		quotes:   make(map[string]*model.Quote),
		executed: make(map[string]bool),
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, q *model.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.quotes[q.ID] = q
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok || s.now().After(q.ExpiresAt.Add(retention)) {
		return nil, ErrNotFound
	}
	return q, nil
}

func (s *MemoryStore) ClaimExecution(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.executed[id] {
		return false, nil
	}
	s.executed[id] = true
	return true, nil
}

func (s *MemoryStore) ReleaseExecution(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.executed, id)
	return nil
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, q := range s.quotes {
		if now.After(q.ExpiresAt.Add(retention)) {
			delete(s.quotes, id)
			delete(s.executed, id)
		}
	}
}
