package registration

import (
	"context"
	"sort"
	"sync"

	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// InMemoryStore keeps registrations in a map. It favors clarity over
// performance and backs the unit tests and local runs without PostgreSQL.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[uint64]Registration
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[uint64]Registration)}
}

func (s *InMemoryStore) Upsert(_ context.Context, reg Registration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[reg.ID]
	if !ok {
		s.rows[reg.ID] = reg
		return true, nil
	}

	// registered_at is first-write-wins; only the owner may move.
	if existing.Owner != reg.Owner {
		existing.Owner = reg.Owner
		s.rows[reg.ID] = existing
	}
	return false, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uint64) (Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if reg, ok := s.rows[id]; ok {
		return reg, nil
	}
	return Registration{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context) ([]Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Registration, 0, len(s.rows))
	for _, reg := range s.rows {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
