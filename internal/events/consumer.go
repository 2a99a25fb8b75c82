package events

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads booking lifecycle events from a topic as part of a
// consumer group.
type Consumer struct {
	reader *kafka.Reader
}

// NewConsumer creates a consumer-group reader for the given topic.
func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

// Close releases the underlying reader.
func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads messages until the context is cancelled or the handler
// returns an error. Offsets are committed by ReadMessage as part of the
// consumer group protocol.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}
