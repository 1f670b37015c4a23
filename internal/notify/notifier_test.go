package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct {
	calls int
}

func (f *failingSink) Publish(context.Context, Message) error {
	f.calls++
	return errors.New("transport down")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBroadcastFansOutToAllSinks(t *testing.T) {
	first := NewRecorder()
	second := NewRecorder()
	b := NewBroadcaster(discardLogger(), first, second)

	b.Broadcast(context.Background(), EventCastsUpdate, map[string]any{"merged": 3})

	for _, rec := range []*Recorder{first, second} {
		msgs := rec.Messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "broadcast", msgs[0].Type)
		assert.Equal(t, EventCastsUpdate, msgs[0].Event)
		assert.NotEmpty(t, msgs[0].ID)
		assert.False(t, msgs[0].SentAt.IsZero())
	}

	// Each broadcast gets its own id.
	b.Broadcast(context.Background(), EventMoodUpdate, nil)
	msgs := first.Messages()
	require.Len(t, msgs, 2)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
}

func TestBroadcastSwallowsSinkFailures(t *testing.T) {
	broken := &failingSink{}
	healthy := NewRecorder()
	b := NewBroadcaster(discardLogger(), broken, healthy)

	b.Broadcast(context.Background(), EventRegistrationsUpdate, nil)

	// The broken sink was attempted and the healthy one still delivered.
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, []string{EventRegistrationsUpdate}, healthy.Events())
}

func TestBroadcastDefaultsNilPayload(t *testing.T) {
	rec := NewRecorder()
	b := NewBroadcaster(discardLogger(), rec)

	b.Broadcast(context.Background(), EventMoodUpdate, nil)

	msgs := rec.Messages()
	require.Len(t, msgs, 1)
	assert.NotNil(t, msgs[0].Payload)
}

func TestBroadcastWithNoSinksIsANoOp(t *testing.T) {
	b := NewBroadcaster(discardLogger())
	b.Broadcast(context.Background(), EventCastsUpdate, nil)
}
