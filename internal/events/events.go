package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted on the booking lifecycle topic.
const (
	TypeBookingReserved  = "booking.reserved"
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCompleted = "booking.completed"
	TypeBookingExpired   = "booking.expired"
	TypeRefundProcessed  = "refund.processed"
)

// BookingEvent is the payload published for every lifecycle transition. The
// notification worker consumes these to fan out emails.
type BookingEvent struct {
	Type             string    `json:"type"`
	BookingID        uuid.UUID `json:"booking_id"`
	TicketID         uuid.UUID `json:"ticket_id,omitempty"`
	BookingReference string    `json:"booking_reference,omitempty"`
	UserID           uuid.UUID `json:"user_id,omitempty"`
	FlightID         uuid.UUID `json:"flight_id,omitempty"`
	TotalAmountCents int64     `json:"total_amount_cents,omitempty"`
	Status           string    `json:"status"`
	OccurredAt       time.Time `json:"occurred_at"`
}
