package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// TicketStore reads issued tickets.
type TicketStore interface {
	GetTicketByID(ticketID uuid.UUID) (*models.Ticket, error)
	GetTicketByNumber(ticketNumber string) (*models.Ticket, error)
	GetBookingTickets(bookingID uuid.UUID) ([]models.TicketDetails, error)
}

// BookingReader gives ticket lookups their ownership context.
type BookingReader interface {
	GetBookingByID(bookingID uuid.UUID) (*models.Booking, error)
}

// TicketService serves ticket lookups, owner only.
type TicketService struct {
	tickets  TicketStore
	bookings BookingReader
	logger   *logrus.Logger
}

// NewTicketService creates a new ticket service.
func NewTicketService(tickets TicketStore, bookings BookingReader, logger *logrus.Logger) *TicketService {
	return &TicketService{tickets: tickets, bookings: bookings, logger: logger}
}

// GetBookingTickets lists a booking's tickets for its owner.
func (s *TicketService) GetBookingTickets(bookingID, userID uuid.UUID) ([]models.TicketDetails, error) {
	booking, err := s.bookings.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.NewForbiddenError("purchase.errors.access_denied")
	}
	return s.tickets.GetBookingTickets(bookingID)
}

// GetTicket loads one ticket for the owner of its booking.
func (s *TicketService) GetTicket(ticketID, userID uuid.UUID) (*models.Ticket, error) {
	ticket, err := s.tickets.GetTicketByID(ticketID)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetBookingByID(ticket.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.NewForbiddenError("purchase.errors.access_denied")
	}
	return ticket, nil
}
