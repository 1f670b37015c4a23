package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemoryStore
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
}

func (s *InMemoryStoreSuite) TestUpsertIsIdempotentPerClaim() {
	v := Verification{FID: 7, Claim: "0xclaim", VerifiedAt: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)}

	created, err := s.store.Upsert(s.ctx, v)
	s.Require().NoError(err)
	s.True(created)

	created, err = s.store.Upsert(s.ctx, v)
	s.Require().NoError(err)
	s.False(created)

	rows, err := s.store.ListByFID(s.ctx, 7)
	s.Require().NoError(err)
	s.Len(rows, 1)
}

func (s *InMemoryStoreSuite) TestReverificationRefreshesTimestamp() {
	first := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	_, err := s.store.Upsert(s.ctx, Verification{FID: 7, Claim: "0xclaim", VerifiedAt: first})
	s.Require().NoError(err)
	created, err := s.store.Upsert(s.ctx, Verification{FID: 7, Claim: "0xclaim", VerifiedAt: later})
	s.Require().NoError(err)
	s.False(created)

	rows, err := s.store.ListByFID(s.ctx, 7)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(later, rows[0].VerifiedAt)
}

func (s *InMemoryStoreSuite) TestDistinctClaimsAccumulate() {
	now := time.Now().UTC()
	_, err := s.store.Upsert(s.ctx, Verification{FID: 7, Claim: "0xaaa", VerifiedAt: now})
	s.Require().NoError(err)
	_, err = s.store.Upsert(s.ctx, Verification{FID: 7, Claim: "0xbbb", VerifiedAt: now})
	s.Require().NoError(err)
	_, err = s.store.Upsert(s.ctx, Verification{FID: 9, Claim: "0xaaa", VerifiedAt: now})
	s.Require().NoError(err)

	rows, err := s.store.ListByFID(s.ctx, 7)
	s.Require().NoError(err)
	s.Len(rows, 2)

	rows, err = s.store.ListByFID(s.ctx, 9)
	s.Require().NoError(err)
	s.Len(rows, 1)
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}
