package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Producer publishes booking lifecycle events to Kafka. The writer is shared
// across publishes and flushed on Close.
type Producer struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

// NewProducer creates a producer for the given brokers and topic.
func NewProducer(brokers []string, topic string, logger *logrus.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: writer, logger: logger}
}

// Publish sends one event keyed by booking id. Marshal failures are returned;
// broker failures are returned after the writer's internal retries.
func (p *Producer) Publish(ctx context.Context, event BookingEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	key := event.BookingID.String()
	if event.BookingID == uuid.Nil {
		key = event.TicketID.String()
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.logger.WithFields(logrus.Fields{
		"type":       event.Type,
		"booking_id": event.BookingID,
	}).Debug("Published booking event")
	return nil
}

// Close flushes pending messages.
func (p *Producer) Close() error {
	return p.writer.Close()
}
