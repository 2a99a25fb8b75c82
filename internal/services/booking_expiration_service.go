package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/events"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// ExpirationStore is the slice of persistence the sweeper needs.
type ExpirationStore interface {
	FindStaleBookings(cutoff time.Time, limit int) ([]models.Booking, error)
	ExpireBooking(bookingID uuid.UUID, cutoff time.Time) (bool, error)
}

// BookingExpirationService cancels PENDING and CONFIRMED bookings whose hold
// window has lapsed, releasing their seats. The hold is fixed and not
// renewable; a booking can outlive its window only until the next sweep.
type BookingExpirationService struct {
	store        ExpirationStore
	publisher    EventPublisher
	holdDuration time.Duration
	interval     time.Duration
	batchSize    int
	logger       *logrus.Logger
	stopCh       chan struct{}
}

// NewBookingExpirationService creates a new expiration sweeper.
func NewBookingExpirationService(
	store ExpirationStore,
	publisher EventPublisher,
	holdDuration, interval time.Duration,
	batchSize int,
	logger *logrus.Logger,
) *BookingExpirationService {
	return &BookingExpirationService{
		store:        store,
		publisher:    publisher,
		holdDuration: holdDuration,
		interval:     interval,
		batchSize:    batchSize,
		logger:       logger,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (s *BookingExpirationService) Start() {
	s.logger.WithFields(logrus.Fields{
		"interval":      s.interval,
		"hold_duration": s.holdDuration,
	}).Info("Starting booking expiration sweeper")
	go s.run()
}

// Stop stops the background sweep loop.
func (s *BookingExpirationService) Stop() {
	s.logger.Info("Stopping booking expiration sweeper")
	close(s.stopCh)
}

func (s *BookingExpirationService) run() {
	// Sweep immediately on start
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			s.logger.Info("Booking expiration sweeper stopped")
			return
		}
	}
}

// sweep expires every stale booking it can find, each in its own
// transaction so one failure does not block the rest.
func (s *BookingExpirationService) sweep() {
	cutoff := time.Now().Add(-s.holdDuration)

	stale, err := s.store.FindStaleBookings(cutoff, s.batchSize)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list stale bookings")
		return
	}
	if len(stale) == 0 {
		return
	}

	s.logger.WithField("count", len(stale)).Info("Expiring stale bookings")

	for _, booking := range stale {
		expired, err := s.store.ExpireBooking(booking.ID, cutoff)
		if err != nil {
			s.logger.WithError(err).WithField("booking_id", booking.ID).Error("Failed to expire booking")
			continue
		}
		if !expired {
			// Paid or cancelled between listing and cleanup.
			continue
		}

		s.logger.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"reference":  booking.BookingReference,
		}).Info("Booking expired, seats released")

		if s.publisher != nil {
			event := events.BookingEvent{
				Type:             events.TypeBookingExpired,
				BookingID:        booking.ID,
				BookingReference: booking.BookingReference,
				UserID:           booking.UserID,
				FlightID:         booking.FlightID,
				Status:           string(models.BookingStatusCancelled),
			}
			if err := s.publisher.Publish(context.Background(), event); err != nil {
				s.logger.WithError(err).WithField("booking_id", booking.ID).Warn("Failed to publish expiry event")
			}
		}
	}
}

// RunOnce runs a single sweep cycle (useful for testing or manual trigger)
func (s *BookingExpirationService) RunOnce() {
	s.sweep()
}
