package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/config"
	"github.com/skyvoyage/flight-booking-backend/internal/events"
)

// The notification worker consumes booking lifecycle events and sends the
// matching customer notification. Delivery is simulated with structured log
// output until an email provider is wired in.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, cfg.Kafka.BookingTopic)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down notification worker...")
		cancel()
	}()

	logger.WithFields(logrus.Fields{
		"topic": cfg.Kafka.BookingTopic,
		"group": cfg.Kafka.ConsumerGroup,
	}).Info("Notification worker started")

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkago.Message) error {
		var event events.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.WithError(err).WithField("offset", msg.Offset).Warn("Skipping undecodable event")
			return nil
		}
		notify(logger, event)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("Consumer stopped")
		os.Exit(1)
	}

	logger.Info("Notification worker exited")
}

func notify(logger *logrus.Logger, event events.BookingEvent) {
	fields := logrus.Fields{
		"booking_id":        event.BookingID,
		"booking_reference": event.BookingReference,
		"user_id":           event.UserID,
	}

	switch event.Type {
	case events.TypeBookingReserved:
		logger.WithFields(fields).Info("Notification: seats held, complete payment before the hold expires")
	case events.TypeBookingConfirmed:
		logger.WithFields(fields).Info("Notification: booking confirmed, awaiting payment")
	case events.TypeBookingCompleted:
		logger.WithFields(fields).Info("Notification: payment received, tickets issued")
	case events.TypeBookingExpired:
		logger.WithFields(fields).Info("Notification: booking expired, seats released")
	case events.TypeRefundProcessed:
		fields["ticket_id"] = event.TicketID
		logger.WithFields(fields).Info("Notification: refund processed")
	default:
		logger.WithField("type", event.Type).Warn("Unknown event type")
	}
}
