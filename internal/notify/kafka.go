package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/config"
)

// KafkaSink appends broadcasts to a Kafka topic so downstream consumers can
// replay invalidation traffic. The produce is synchronous; the broadcaster
// already treats sink errors as non-fatal.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink dials the configured brokers. Returns nil when no brokers are
// configured.
func NewKafkaSink(cfg config.KafkaConfig) (*KafkaSink, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
	)
	if err != nil {
		return nil, fmt.Errorf("dial kafka: %w", err)
	}
	return &KafkaSink{client: client, topic: cfg.Topic}, nil
}

func (s *KafkaSink) Publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal broadcast: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(msg.Event),
		Value: body,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce broadcast to %s: %w", s.topic, err)
	}
	return nil
}

// Close flushes and releases the underlying client.
func (s *KafkaSink) Close() {
	s.client.Close()
}
