package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/events"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// PurchaseStore is the persistence surface the purchase flow needs. The
// sqlx-backed implementation lives in internal/database.
type PurchaseStore interface {
	ReserveFlight(userID, flightID uuid.UUID, seatIDs []uuid.UUID, deviceInfo []byte) (*models.Booking, []models.ReservedSeat, error)
	AddPassengers(bookingID, userID uuid.UUID, passengers []models.PassengerInput) (int, error)
	AssignSeats(bookingID, userID uuid.UUID, assignments []models.SeatAssignment) (int, error)
	ConfirmBooking(bookingID, userID uuid.UUID) (*models.Booking, error)
	MakePayment(bookingID, userID uuid.UUID, paymentMethod string) (*models.PaymentResult, error)
	GetBookingByID(bookingID uuid.UUID) (*models.Booking, error)
	GetBookingDetails(bookingID uuid.UUID) (*models.BookingDetails, error)
	GetUserBookings(userID uuid.UUID) ([]models.Booking, error)
	GetBookingPassengers(bookingID uuid.UUID) ([]models.BookingPassenger, error)
}

// EventPublisher fans lifecycle transitions out to Kafka.
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// PurchaseService drives the reservation-to-payment pipeline. Transactional
// work happens in the store; this layer does request-shape validation,
// logging and event publication.
type PurchaseService struct {
	store        PurchaseStore
	publisher    EventPublisher
	holdDuration time.Duration
	logger       *logrus.Logger
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(
	store PurchaseStore,
	publisher EventPublisher,
	holdDuration time.Duration,
	logger *logrus.Logger,
) *PurchaseService {
	return &PurchaseService{
		store:        store,
		publisher:    publisher,
		holdDuration: holdDuration,
		logger:       logger,
	}
}

// ReserveFlight holds the requested seats and opens a PENDING booking. The
// hold expires after the configured duration unless payment completes first.
func (s *PurchaseService) ReserveFlight(
	ctx context.Context,
	userID uuid.UUID,
	req models.ReserveFlightRequest,
	deviceInfo []byte,
) (*models.ReservationResponse, error) {
	if len(req.SeatIDs) == 0 {
		return nil, models.NewValidationError("purchase.errors.seats_unavailable", nil)
	}
	if len(req.SeatIDs) > models.MaxPassengers {
		return nil, models.NewValidationError("purchase.errors.too_many_seats",
			map[string]string{"max": "9"})
	}

	booking, reserved, err := s.store.ReserveFlight(userID, req.FlightID, req.SeatIDs, deviceInfo)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"reference":  booking.BookingReference,
		"flight_id":  req.FlightID,
		"seats":      len(reserved),
		"total":      booking.TotalAmountCents.String(),
	}).Info("Flight reserved")

	s.publish(ctx, events.BookingEvent{
		Type:             events.TypeBookingReserved,
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		UserID:           userID,
		FlightID:         booking.FlightID,
		TotalAmountCents: int64(booking.TotalAmountCents),
		Status:           string(booking.Status),
	})

	return &models.ReservationResponse{
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		ReservedSeats:    reserved,
		TotalAmountCents: booking.TotalAmountCents,
		TotalAmount:      booking.TotalAmountCents.String(),
		ExpiresAt:        booking.BookingDate.Add(s.holdDuration),
	}, nil
}

// AddPassengers links passengers to a pending booking, first submitted is
// the main contact. Duplicate emails within one request are rejected before
// touching the store.
func (s *PurchaseService) AddPassengers(
	ctx context.Context,
	bookingID, userID uuid.UUID,
	req models.AddPassengersRequest,
) (int, error) {
	if len(req.Passengers) == 0 {
		return 0, models.NewValidationError("purchase.errors.no_passengers", nil)
	}
	if len(req.Passengers) > models.MaxPassengers {
		return 0, models.NewValidationError("purchase.errors.too_many_seats",
			map[string]string{"max": "9"})
	}

	seen := make(map[string]bool, len(req.Passengers))
	for _, p := range req.Passengers {
		email := strings.ToLower(strings.TrimSpace(p.Email))
		if seen[email] {
			return 0, models.NewValidationError("purchase.errors.duplicate_emails",
				map[string]string{"email": p.Email})
		}
		seen[email] = true
	}

	added, err := s.store.AddPassengers(bookingID, userID, req.Passengers)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"added":      added,
	}).Info("Passengers added to booking")
	return added, nil
}

// AssignSeats binds linked passengers to reserved seats by seat number.
func (s *PurchaseService) AssignSeats(
	ctx context.Context,
	bookingID, userID uuid.UUID,
	req models.AssignSeatsRequest,
) (int, error) {
	if len(req.Assignments) == 0 {
		return 0, models.NewValidationError("purchase.errors.unassigned_seats", nil)
	}

	assigned, err := s.store.AssignSeats(bookingID, userID, req.Assignments)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"assigned":   assigned,
	}).Info("Seats assigned")
	return assigned, nil
}

// ConfirmBooking transitions PENDING -> CONFIRMED. Requires accepted terms,
// at least one passenger and a fully assigned seat map. Confirmation does
// not renew the hold window.
func (s *PurchaseService) ConfirmBooking(
	ctx context.Context,
	bookingID, userID uuid.UUID,
	req models.ConfirmBookingRequest,
) (*models.Booking, error) {
	if !req.AgreeToTerms {
		return nil, models.NewValidationError("purchase.errors.terms_not_accepted", nil)
	}

	booking, err := s.store.ConfirmBooking(bookingID, userID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"reference":  booking.BookingReference,
	}).Info("Booking confirmed")

	s.publish(ctx, events.BookingEvent{
		Type:             events.TypeBookingConfirmed,
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		UserID:           userID,
		FlightID:         booking.FlightID,
		Status:           string(booking.Status),
	})
	return booking, nil
}

// MakePayment captures the simulated payment, issues tickets and completes
// the booking.
func (s *PurchaseService) MakePayment(
	ctx context.Context,
	bookingID, userID uuid.UUID,
	req models.MakePaymentRequest,
) (*models.PaymentResult, error) {
	result, err := s.store.MakePayment(bookingID, userID, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":     bookingID,
		"transaction_id": result.TransactionID,
		"amount":         result.Amount,
		"tickets":        len(result.Tickets),
	}).Info("Payment completed, tickets issued")

	s.publish(ctx, events.BookingEvent{
		Type:             events.TypeBookingCompleted,
		BookingID:        bookingID,
		UserID:           userID,
		TotalAmountCents: int64(result.AmountCents),
		Status:           string(models.BookingStatusCompleted),
	})
	return result, nil
}

// GetBookingDetails returns the aggregate view, owner only.
func (s *PurchaseService) GetBookingDetails(bookingID, userID uuid.UUID) (*models.BookingDetails, error) {
	details, err := s.store.GetBookingDetails(bookingID)
	if err != nil {
		return nil, err
	}
	if details.Booking.UserID != userID {
		return nil, models.NewForbiddenError("purchase.errors.access_denied")
	}
	return details, nil
}

// GetUserBookings lists the caller's bookings.
func (s *PurchaseService) GetUserBookings(userID uuid.UUID) ([]models.Booking, error) {
	return s.store.GetUserBookings(userID)
}

// GetBookingPassengers lists a booking's passengers, owner only.
func (s *PurchaseService) GetBookingPassengers(bookingID, userID uuid.UUID) ([]models.BookingPassenger, error) {
	booking, err := s.store.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.NewForbiddenError("purchase.errors.access_denied")
	}
	return s.store.GetBookingPassengers(bookingID)
}

// publish sends an event without failing the request. The booking state is
// already committed when this runs.
func (s *PurchaseService) publish(ctx context.Context, event events.BookingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"type":       event.Type,
			"booking_id": event.BookingID,
		}).Warn("Failed to publish booking event")
	}
}
