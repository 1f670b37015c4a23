package checkpoint

import (
	"context"
	"sync"
)

// InMemoryStore keeps checkpoints in a map. Used by tests and by the
// reconciler's unit scenarios.
type InMemoryStore struct {
	mu      sync.RWMutex
	heights map[string]uint64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{heights: make(map[string]uint64)}
}

func (s *InMemoryStore) LastScannedHeight(_ context.Context, name string) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	height, ok := s.heights[name]
	return height, ok, nil
}

func (s *InMemoryStore) SetLastScannedHeight(_ context.Context, name string, height uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heights[name] = height
	return nil
}
