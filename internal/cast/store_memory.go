package cast

import (
	"context"
	"regexp"
	"sort"
	"sync"
)

// mentionPattern matches @handle mentions; mention-bearing casts are excluded
// from mood selection.
var mentionPattern = regexp.MustCompile(`@[a-zA-Z0-9_]+`)

// InMemoryStore keeps casts in a map for tests and local runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[string]Cast
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[string]Cast)}
}

func (s *InMemoryStore) Upsert(_ context.Context, c Cast) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[c.Hash]
	if !ok {
		s.rows[c.Hash] = c
		return true, nil
	}

	// Text and timestamps are immutable; only the flags may change when the
	// source marks a cast deleted or recast after we first saw it.
	existing.Deleted = c.Deleted
	existing.Recast = c.Recast
	s.rows[c.Hash] = existing
	return false, nil
}

func (s *InMemoryStore) ListRecentOriginal(_ context.Context, limit int) ([]Cast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Cast
	for _, c := range s.rows {
		if c.Deleted || c.Recast || c.ReplyParentRoot != "" {
			continue
		}
		if mentionPattern.MatchString(c.Text) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) StatsByAuthor(_ context.Context) (map[uint64]AuthorStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[uint64]AuthorStats)
	for _, c := range s.rows {
		if c.Deleted {
			continue
		}
		st := stats[c.AuthorID]
		st.CastCount++
		if c.PublishedAt.After(st.LastCastAt) {
			st.LastCastAt = c.PublishedAt
		}
		stats[c.AuthorID] = st
	}
	return stats, nil
}
