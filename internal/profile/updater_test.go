package profile

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrKevinOConnell/zencasterbackend/internal/cast"
	"github.com/MrKevinOConnell/zencasterbackend/internal/registration"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpdaterRecomputesProfiles(t *testing.T) {
	ctx := context.Background()
	registrations := registration.NewInMemoryStore()
	casts := cast.NewInMemoryStore()
	profiles := NewInMemoryStore()

	registeredAt := time.Date(2023, 1, 10, 8, 0, 0, 0, time.UTC)
	_, err := registrations.Upsert(ctx, registration.Registration{ID: 1, Owner: "0xa1", RegisteredAt: registeredAt})
	require.NoError(t, err)
	_, err = registrations.Upsert(ctx, registration.Registration{ID: 2, Owner: "0xa2", RegisteredAt: registeredAt})
	require.NoError(t, err)

	lastCast := time.Date(2023, 2, 1, 12, 30, 0, 0, time.UTC)
	_, err = casts.Upsert(ctx, cast.Cast{Hash: "h1", AuthorID: 1, Text: "gm", PublishedAt: lastCast.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = casts.Upsert(ctx, cast.Cast{Hash: "h2", AuthorID: 1, Text: "gn", PublishedAt: lastCast})
	require.NoError(t, err)

	updater := NewUpdater(registrations, casts, profiles, nil, discardLogger())
	refreshed, err := updater.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed)

	active, err := profiles.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, active.CastCount)
	assert.Equal(t, lastCast, active.LastCastAt)
	assert.Equal(t, "0xa1", active.Owner)

	quiet, err := profiles.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, quiet.CastCount)
	assert.True(t, quiet.LastCastAt.IsZero())
}

func TestUpdaterIsIdempotent(t *testing.T) {
	ctx := context.Background()
	registrations := registration.NewInMemoryStore()
	casts := cast.NewInMemoryStore()
	profiles := NewInMemoryStore()

	_, err := registrations.Upsert(ctx, registration.Registration{ID: 1, Owner: "0xa1", RegisteredAt: time.Now().UTC()})
	require.NoError(t, err)
	_, err = casts.Upsert(ctx, cast.Cast{Hash: "h1", AuthorID: 1, Text: "gm", PublishedAt: time.Now().UTC()})
	require.NoError(t, err)

	updater := NewUpdater(registrations, casts, profiles, nil, discardLogger())
	_, err = updater.Run(ctx)
	require.NoError(t, err)
	first, err := profiles.FindByID(ctx, 1)
	require.NoError(t, err)

	_, err = updater.Run(ctx)
	require.NoError(t, err)
	second, err := profiles.FindByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first.CastCount, second.CastCount)
	assert.Equal(t, first.LastCastAt, second.LastCastAt)
}
