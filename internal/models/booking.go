package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxPassengers is the hard cap on seats and passengers per booking.
const MaxPassengers = 9

// BookingStatus matches the bookings.status column.
// Transitions: PENDING -> {CONFIRMED, CANCELLED};
// CONFIRMED -> {COMPLETED, CANCELLED}; COMPLETED and CANCELLED are terminal.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Booking owns a set of seat reservations. BookingDate doubles as the expiry
// clock: the sweeper cancels PENDING/CONFIRMED bookings once
// booking_date < now - hold duration.
type Booking struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	BookingReference string        `db:"booking_reference" json:"booking_reference"`
	FlightID         uuid.UUID     `db:"flight_id" json:"flight_id"`
	UserID           uuid.UUID     `db:"user_id" json:"user_id"`
	TotalAmountCents Cents         `db:"total_amount_cents" json:"total_amount_cents"`
	Status           BookingStatus `db:"status" json:"status"`
	BookingDate      time.Time     `db:"booking_date" json:"booking_date"`
	DeviceInfo       []byte        `db:"device_info" json:"-"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

// SeatReservation joins a booking to a held seat. PassengerID stays null
// until assignment; confirmation requires every reservation to be assigned.
type SeatReservation struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	BookingID    uuid.UUID  `db:"booking_id" json:"booking_id"`
	FlightSeatID uuid.UUID  `db:"flight_seat_id" json:"flight_seat_id"`
	PassengerID  *uuid.UUID `db:"passenger_id" json:"passenger_id,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`

	// Joined seat context for listings.
	SeatNumber string    `db:"seat_number" json:"seat_number,omitempty"`
	SeatClass  SeatClass `db:"seat_class" json:"seat_class,omitempty"`
}

// BookingPassenger links a booking to a passenger record; the first passenger
// submitted is the main contact. (booking_id, passenger_id) is unique.
type BookingPassenger struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BookingID     uuid.UUID `db:"booking_id" json:"booking_id"`
	PassengerID   uuid.UUID `db:"passenger_id" json:"passenger_id"`
	IsMainContact bool      `db:"is_main_contact" json:"is_main_contact"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	// Joined passenger context for listings.
	Email     string `db:"email" json:"email,omitempty"`
	FirstName string `db:"first_name" json:"first_name,omitempty"`
	LastName  string `db:"last_name" json:"last_name,omitempty"`
}

// ReserveFlightRequest starts the purchase flow.
type ReserveFlightRequest struct {
	FlightID uuid.UUID   `json:"flight_id" binding:"required"`
	SeatIDs  []uuid.UUID `json:"seat_ids" binding:"required,min=1"`
}

// ReservedSeat is the per-seat slice of a reservation response.
type ReservedSeat struct {
	ID         uuid.UUID `json:"id"`
	SeatNumber string    `json:"seat_number"`
	SeatClass  SeatClass `json:"class"`
}

// ReservationResponse reports a successful hold. ExpiresAt is booking_date
// plus the hold duration; the hold is not renewable.
type ReservationResponse struct {
	BookingID        uuid.UUID      `json:"booking_id"`
	BookingReference string         `json:"booking_reference"`
	ReservedSeats    []ReservedSeat `json:"reserved_seats"`
	TotalAmountCents Cents          `json:"total_amount_cents"`
	TotalAmount      string         `json:"total_amount"`
	ExpiresAt        time.Time      `json:"expires_at"`
}

// PassengerInput identifies a pre-existing passenger by email, optionally
// with an inline seat assignment.
type PassengerInput struct {
	Email  string     `json:"email" binding:"required,email"`
	SeatID *uuid.UUID `json:"seat_id,omitempty"`
}

// AddPassengersRequest links passengers to a pending booking.
type AddPassengersRequest struct {
	Passengers []PassengerInput `json:"passengers" binding:"required,min=1"`
}

// SeatAssignment binds an already-linked passenger (by email) to a reserved
// seat (by seat number).
type SeatAssignment struct {
	PassengerEmail string `json:"passenger_email" binding:"required,email"`
	SeatNumber     string `json:"seat_number" binding:"required"`
}

// AssignSeatsRequest is the alternate seat-binding path.
type AssignSeatsRequest struct {
	Assignments []SeatAssignment `json:"assignments" binding:"required,min=1"`
}

// ConfirmBookingRequest gates confirmation on accepted terms.
type ConfirmBookingRequest struct {
	AgreeToTerms bool `json:"agree_to_terms"`
}

// MakePaymentRequest carries the simulated payment method. Card details are
// accepted but never stored or verified.
type MakePaymentRequest struct {
	PaymentMethod string       `json:"payment_method" binding:"required"`
	CardDetails   *CardDetails `json:"card_details,omitempty"`
}

// CardDetails is part of the simulated payment surface.
type CardDetails struct {
	CardNumber string `json:"card_number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// PaymentResult reports a completed payment and the tickets it issued.
type PaymentResult struct {
	BookingID     uuid.UUID `json:"booking_id"`
	TransactionID string    `json:"transaction_id"`
	AmountCents   Cents     `json:"amount_cents"`
	Amount        string    `json:"amount"`
	Tickets       []Ticket  `json:"tickets"`
}

// BookingDetails aggregates a booking with its reservations, passengers,
// payments and tickets for the detail endpoint.
type BookingDetails struct {
	Booking          Booking            `json:"booking"`
	Flight           *Flight            `json:"flight,omitempty"`
	SeatReservations []SeatReservation  `json:"seat_reservations"`
	Passengers       []BookingPassenger `json:"passengers"`
	Payments         []Payment          `json:"payments"`
	Tickets          []Ticket           `json:"tickets"`
}
