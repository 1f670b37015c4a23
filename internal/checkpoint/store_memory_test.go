package checkpoint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	_, ok, err := store.LastScannedHeight(ctx, "id-registry")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetLastScannedHeight(ctx, "id-registry", 100))
	require.NoError(t, store.SetLastScannedHeight(ctx, "id-registry", 250))

	height, ok, err := store.LastScannedHeight(ctx, "id-registry")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(250), height)

	// Cursors are independent per name.
	_, ok, err = store.LastScannedHeight(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}
