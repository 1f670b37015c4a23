package verification

import (
	"context"
	"sort"
	"sync"
)

type key struct {
	fid   uint64
	claim string
}

// InMemoryStore keeps verifications in a map for tests and local runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[key]Verification
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[key]Verification)}
}

func (s *InMemoryStore) Upsert(_ context.Context, v Verification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{fid: v.FID, claim: v.Claim}
	_, ok := s.rows[k]
	s.rows[k] = v
	return !ok, nil
}

func (s *InMemoryStore) ListByFID(_ context.Context, fid uint64) ([]Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Verification
	for _, v := range s.rows {
		if v.FID == fid {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Claim < out[j].Claim })
	return out, nil
}
