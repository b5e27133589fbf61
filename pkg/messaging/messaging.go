// Package messaging provides a topic-based event bus for audit and
// notification events, backed by a Watermill in-process pub/sub.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/steward-io/steward/pkg/lifecycle"
)

// System manages event publication and subscription with lifecycle coordination.
type System interface {
	// Start registers a shutdown hook that closes the underlying pub/sub.
	Start(lc *lifecycle.Coordinator) error
	// Publish serializes payload as JSON and publishes it on the given topic.
	// Topics follow the <verb>.<stage> routing key convention.
	Publish(topic string, payload any) error
	// Subscribe returns a channel of messages for the given topic.
	// Consumers must Ack or Nack every received message.
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

type bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// New creates a messaging system from the given configuration.
func New(cfg *Config, logger *slog.Logger) System {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: int64(cfg.BufferSize),
			Persistent:          cfg.Persistent,
		},
		watermill.NewSlogLogger(logger.With("system", "messaging")),
	)

	return &bus{
		pubsub: pubsub,
		logger: logger.With("system", "messaging"),
	}
}

func (b *bus) Start(lc *lifecycle.Coordinator) error {
	b.logger.Info("starting event bus")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		b.logger.Info("closing event bus")

		if err := b.pubsub.Close(); err != nil {
			b.logger.Error("event bus close failed", "error", err)
			return
		}

		b.logger.Info("event bus closed")
	})

	return nil
}

func (b *bus) Publish(topic string, payload any) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	return nil
}

func (b *bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	return b.pubsub.Subscribe(ctx, topic)
}

// Topic builds a <verb>.<stage> routing key.
func Topic(verb, stage string) string {
	return verb + "." + stage
}
