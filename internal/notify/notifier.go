package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event names carried on the broadcast channel.
const (
	EventCastsUpdate         = "casts-update"
	EventMoodUpdate          = "mood-update"
	EventRegistrationsUpdate = "registrations-update"
)

// Message is the wire shape of one broadcast. It is a cache-invalidation
// hint, not a durable log entry; Type is always "broadcast".
type Message struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Event   string    `json:"event"`
	Payload any       `json:"payload"`
	SentAt  time.Time `json:"sent_at"`
}

// Sink delivers one message to one transport.
type Sink interface {
	Publish(ctx context.Context, msg Message) error
}

// Notifier is what the pipelines call when a tick commits a visible change.
type Notifier interface {
	Broadcast(ctx context.Context, event string, payload any)
}

// Broadcaster fans one message out to every configured sink. Sink failures
// are logged and swallowed: no delivery guarantee is made to subscribers.
type Broadcaster struct {
	sinks []Sink
	log   *slog.Logger
}

func NewBroadcaster(log *slog.Logger, sinks ...Sink) *Broadcaster {
	return &Broadcaster{sinks: sinks, log: log}
}

func (b *Broadcaster) Broadcast(ctx context.Context, event string, payload any) {
	if payload == nil {
		payload = map[string]any{}
	}
	msg := Message{
		ID:      uuid.NewString(),
		Type:    "broadcast",
		Event:   event,
		Payload: payload,
		SentAt:  time.Now().UTC(),
	}
	for _, sink := range b.sinks {
		if err := sink.Publish(ctx, msg); err != nil {
			b.log.Warn("broadcast publish failed", "event", event, "error", err)
		}
	}
}

// Recorder is an in-memory sink for tests.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

// Messages returns a copy of everything published so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Events returns just the event names, in publish order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.messages))
	for _, msg := range r.messages {
		out = append(out, msg.Event)
	}
	return out
}
