package notify

import (
	"context"
	"encoding/json"
	"fmt"

	platformredis "github.com/MrKevinOConnell/zencasterbackend/internal/platform/redis"
)

// RedisSink publishes broadcasts on a Redis pub/sub channel. Subscribers that
// are offline simply miss the hint, which matches the channel's contract.
type RedisSink struct {
	client  *platformredis.Client
	channel string
}

func NewRedisSink(client *platformredis.Client, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal broadcast: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, body).Err(); err != nil {
		return fmt.Errorf("publish broadcast to %s: %w", s.channel, err)
	}
	return nil
}
