//go:build integration

package registration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/MrKevinOConnell/zencasterbackend/internal/registration"
	"github.com/MrKevinOConnell/zencasterbackend/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *registration.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = registration.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "registration"))
}

func (s *PostgresStoreSuite) TestUpsertReportsInsertVersusUpdate() {
	ctx := context.Background()
	reg := registration.Registration{ID: 42, Owner: "0xaaa", RegisteredAt: time.Now().UTC().Truncate(time.Microsecond)}

	created, err := s.store.Upsert(ctx, reg)
	s.Require().NoError(err)
	s.True(created)

	created, err = s.store.Upsert(ctx, reg)
	s.Require().NoError(err)
	s.False(created)
}

func (s *PostgresStoreSuite) TestOwnerFollowsTransferRegisteredAtDoesNot() {
	ctx := context.Background()
	registeredAt := time.Date(2023, 1, 10, 8, 0, 0, 0, time.UTC)

	_, err := s.store.Upsert(ctx, registration.Registration{ID: 7, Owner: "0xaaa", RegisteredAt: registeredAt})
	s.Require().NoError(err)
	_, err = s.store.Upsert(ctx, registration.Registration{ID: 7, Owner: "0xbbb", RegisteredAt: registeredAt.Add(time.Hour)})
	s.Require().NoError(err)

	got, err := s.store.FindByID(ctx, 7)
	s.Require().NoError(err)
	s.Equal("0xbbb", got.Owner)
	s.Equal(registeredAt, got.RegisteredAt.UTC())
}

func (s *PostgresStoreSuite) TestConcurrentUpsertsOnOneID() {
	ctx := context.Background()
	reg := registration.Registration{ID: 99, Owner: "0xccc", RegisteredAt: time.Now().UTC()}

	done := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		go func() {
			created, err := s.store.Upsert(ctx, reg)
			s.NoError(err)
			done <- created
		}()
	}

	var inserts int
	for i := 0; i < 20; i++ {
		if <-done {
			inserts++
		}
	}
	// Exactly one goroutine observes the insert; the rest see the conflict.
	s.Equal(1, inserts)

	rows, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(rows, 1)
}

func (s *PostgresStoreSuite) TestListOrdersByID() {
	ctx := context.Background()
	now := time.Now().UTC()
	for _, id := range []uint64{30, 10, 20} {
		_, err := s.store.Upsert(ctx, registration.Registration{ID: id, Owner: "0xaaa", RegisteredAt: now})
		s.Require().NoError(err)
	}

	rows, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal(uint64(10), rows[0].ID)
	s.Equal(uint64(20), rows[1].ID)
	s.Equal(uint64(30), rows[2].ID)
}
