package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus matches the tickets.status column. Transitions are forward
// only: ISSUED -> CANCELLED (refund requested) -> REFUNDED (refund processed).
// Tickets are never deleted.
type TicketStatus string

const (
	TicketStatusIssued    TicketStatus = "ISSUED"
	TicketStatusCancelled TicketStatus = "CANCELLED"
	TicketStatusRefunded  TicketStatus = "REFUNDED"
)

// Refundable reports whether a refund may still be opened against the ticket.
func (s TicketStatus) Refundable() bool {
	return s == TicketStatusIssued || s == TicketStatusCancelled
}

// Ticket is issued once per seat reservation when payment completes.
type Ticket struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	TicketNumber string       `db:"ticket_number" json:"ticket_number"`
	BookingID    uuid.UUID    `db:"booking_id" json:"booking_id"`
	PassengerID  uuid.UUID    `db:"passenger_id" json:"passenger_id"`
	FlightSeatID uuid.UUID    `db:"flight_seat_id" json:"flight_seat_id"`
	Status       TicketStatus `db:"status" json:"status"`
	IssueDate    time.Time    `db:"issue_date" json:"issue_date"`
}

// TicketDetails is a ticket joined with passenger, seat and flight context
// for the booking-tickets listing.
type TicketDetails struct {
	Ticket
	PassengerEmail     string    `db:"passenger_email" json:"passenger_email"`
	PassengerFirstName string    `db:"passenger_first_name" json:"passenger_first_name"`
	PassengerLastName  string    `db:"passenger_last_name" json:"passenger_last_name"`
	SeatNumber         string    `db:"seat_number" json:"seat_number"`
	SeatClass          SeatClass `db:"seat_class" json:"seat_class"`
	FlightNumber       string    `db:"flight_number" json:"flight_number"`
	DepartureTime      time.Time `db:"departure_time" json:"departure_time"`
	ArrivalTime        time.Time `db:"arrival_time" json:"arrival_time"`
}
