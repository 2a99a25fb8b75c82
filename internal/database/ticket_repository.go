package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// TicketRepository reads issued tickets. Issuance lives in
// BookingRepository.MakePayment; status changes live in RefundRepository.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// GetTicketByID loads a single ticket.
func (r *TicketRepository) GetTicketByID(ticketID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.Get(&ticket, `
		SELECT id, ticket_number, booking_id, passenger_id, flight_seat_id, status, issue_date
		FROM tickets
		WHERE id = $1`, ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("refund.errors.ticket_not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	return &ticket, nil
}

// GetTicketByNumber loads a ticket by its public number.
func (r *TicketRepository) GetTicketByNumber(ticketNumber string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.Get(&ticket, `
		SELECT id, ticket_number, booking_id, passenger_id, flight_seat_id, status, issue_date
		FROM tickets
		WHERE ticket_number = $1`, ticketNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("refund.errors.ticket_not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	return &ticket, nil
}

// GetBookingTickets lists a booking's tickets with passenger, seat and
// flight context.
func (r *TicketRepository) GetBookingTickets(bookingID uuid.UUID) ([]models.TicketDetails, error) {
	var tickets []models.TicketDetails
	err := r.db.Select(&tickets, `
		SELECT t.id, t.ticket_number, t.booking_id, t.passenger_id, t.flight_seat_id,
		       t.status, t.issue_date,
		       p.email AS passenger_email, p.first_name AS passenger_first_name,
		       p.last_name AS passenger_last_name,
		       fs.seat_number, fs.seat_class,
		       f.flight_number, f.departure_time, f.arrival_time
		FROM tickets t
		JOIN passengers p ON p.id = t.passenger_id
		JOIN flight_seats fs ON fs.id = t.flight_seat_id
		JOIN flights f ON f.id = fs.flight_id
		WHERE t.booking_id = $1
		ORDER BY fs.seat_number`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking tickets: %w", err)
	}
	return tickets, nil
}
