package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus matches the payments.status column. Payment capture is
// simulated; a payment is created COMPLETED and flips to REFUNDED when a
// refund on one of the booking's tickets is processed.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Payment records a simulated capture for a booking's total amount.
type Payment struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	BookingID     uuid.UUID     `db:"booking_id" json:"booking_id"`
	AmountCents   Cents         `db:"amount_cents" json:"amount_cents"`
	PaymentMethod string        `db:"payment_method" json:"payment_method"`
	Status        PaymentStatus `db:"status" json:"status"`
	TransactionID string        `db:"transaction_id" json:"transaction_id"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
