package models

import (
	"time"

	"github.com/google/uuid"
)

// Passenger is a pre-existing identity record matched by email. The purchase
// flow never creates passengers; it only links them to bookings.
type Passenger struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	PassportNumber string     `db:"passport_number" json:"passport_number"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Nationality    string     `db:"nationality" json:"nationality"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// UpdatePassengerRequest edits a passenger profile. Nil fields keep the
// stored value; email is immutable.
type UpdatePassengerRequest struct {
	FirstName      *string    `json:"first_name,omitempty"`
	LastName       *string    `json:"last_name,omitempty"`
	PassportNumber *string    `json:"passport_number,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Nationality    *string    `json:"nationality,omitempty"`
}
