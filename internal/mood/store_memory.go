package mood

import (
	"context"
	"sync"

	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// InMemoryStore holds the aggregate behind a mutex, so the swap is trivially
// atomic.
type InMemoryStore struct {
	mu      sync.RWMutex
	current *Mood
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Replace(_ context.Context, m Mood) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &m
	return nil
}

func (s *InMemoryStore) Current(_ context.Context) (Mood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Mood{}, sentinel.ErrNotFound
	}
	return *s.current, nil
}
