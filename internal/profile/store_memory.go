package profile

import (
	"context"
	"sync"

	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// InMemoryStore keeps profiles in a map for tests and local runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[uint64]Profile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[uint64]Profile)}
}

func (s *InMemoryStore) Save(_ context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[p.ID] = p
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uint64) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.rows[id]; ok {
		return p, nil
	}
	return Profile{}, sentinel.ErrNotFound
}
