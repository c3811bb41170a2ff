// Package events publishes export notifications to the message queue
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	wbfkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
)

// Sender - то, что умеет wbf-продюсер
type Sender interface {
	SendWithRetry(ctx context.Context, strategy retry.Strategy, key []byte, v []byte) error
}

type KafkaPublisher struct {
	sender   Sender
	closer   func() error
	strategy retry.Strategy
}

// NewKafkaPublisher connects a producer to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, strategy retry.Strategy) *KafkaPublisher {
	p := wbfkafka.NewProducer(brokers, topic)
	return &KafkaPublisher{sender: p, closer: p.Close, strategy: strategy}
}

func newPublisher(s Sender, strategy retry.Strategy) *KafkaPublisher {
	return &KafkaPublisher{sender: s, closer: func() error { return nil }, strategy: strategy}
}

// Publish sends ev as JSON keyed by its export id.
func (p *KafkaPublisher) Publish(ctx context.Context, ev model.ExportEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal export event: %w", err)
	}
	if err := p.sender.SendWithRetry(ctx, p.strategy, []byte(ev.ExportID), payload); err != nil {
		return fmt.Errorf("failed to publish export event %q: %w", ev.ExportID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.closer()
}

// NoopPublisher - ЗАГЛУШКА, когда брокер не сконфигурирован
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, ev model.ExportEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
