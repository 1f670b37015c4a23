package cast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func castAt(hash, text string, minute int) Cast {
	return Cast{
		Hash:        hash,
		AuthorID:    1,
		Text:        text,
		PublishedAt: time.Date(2023, 2, 1, 12, minute, 0, 0, time.UTC),
	}
}

func TestListRecentOriginalFilters(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	reply := castAt("reply", "responding to the thread", 1)
	reply.ReplyParentRoot = "0xparent"
	deleted := castAt("deleted", "this one is gone", 2)
	deleted.Deleted = true
	recast := castAt("recast", "recast: someone else said this", 3)
	recast.Recast = true
	mention := castAt("mention", "hey @dwr what do you think", 4)
	keepOld := castAt("keep-old", "building something new today", 5)
	keepNew := castAt("keep-new", "what a sunset", 6)

	for _, c := range []Cast{reply, deleted, recast, mention, keepOld, keepNew} {
		_, err := store.Upsert(ctx, c)
		require.NoError(t, err)
	}

	selected, err := store.ListRecentOriginal(ctx, 8)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "keep-new", selected[0].Hash, "most recent first")
	assert.Equal(t, "keep-old", selected[1].Hash)
}

func TestListRecentOriginalHonorsLimit(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	for i := 0; i < 12; i++ {
		_, err := store.Upsert(ctx, castAt(string(rune('a'+i)), "plain text", i))
		require.NoError(t, err)
	}

	selected, err := store.ListRecentOriginal(ctx, 8)
	require.NoError(t, err)
	assert.Len(t, selected, 8)
}

func TestUpsertRefreshesFlagsOnly(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	original := castAt("h1", "original text", 0)
	created, err := store.Upsert(ctx, original)
	require.NoError(t, err)
	require.True(t, created)

	tombstone := original
	tombstone.Text = "rewritten text should be ignored"
	tombstone.Deleted = true
	created, err = store.Upsert(ctx, tombstone)
	require.NoError(t, err)
	assert.False(t, created)

	stats, err := store.StatsByAuthor(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats, "deleted casts drop out of author stats")
}

func TestStatsByAuthor(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	a := castAt("a", "one", 1)
	b := castAt("b", "two", 5)
	c := castAt("c", "three", 3)
	c.AuthorID = 2

	for _, cst := range []Cast{a, b, c} {
		_, err := store.Upsert(ctx, cst)
		require.NoError(t, err)
	}

	stats, err := store.StatsByAuthor(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 2, stats[1].CastCount)
	assert.Equal(t, b.PublishedAt, stats[1].LastCastAt)
	assert.Equal(t, 1, stats[2].CastCount)
}
