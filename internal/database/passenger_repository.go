package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// PassengerRepository manages passenger identity records. The purchase flow
// only reads them; creation is a separate administrative surface.
type PassengerRepository struct {
	db *sqlx.DB
}

// NewPassengerRepository creates a new PassengerRepository
func NewPassengerRepository(db *sqlx.DB) *PassengerRepository {
	return &PassengerRepository{db: db}
}

// CreatePassenger inserts a passenger record. Email is unique.
func (r *PassengerRepository) CreatePassenger(p *models.Passenger) (*models.Passenger, error) {
	p.ID = uuid.New()
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))

	var exists int
	if err := r.db.Get(&exists, `SELECT COUNT(*) FROM passengers WHERE email = $1`, p.Email); err != nil {
		return nil, fmt.Errorf("failed to check passenger email: %w", err)
	}
	if exists > 0 {
		return nil, models.NewConflictError("passengers.errors.email_taken", map[string]string{"email": p.Email})
	}

	err := r.db.QueryRowx(`
		INSERT INTO passengers (id, email, first_name, last_name, passport_number, date_of_birth, nationality)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		p.ID, p.Email, p.FirstName, p.LastName, p.PassportNumber, p.DateOfBirth, p.Nationality,
	).Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create passenger: %w", err)
	}
	return p, nil
}

// GetPassengerByEmail looks up a passenger by email, case-insensitively.
func (r *PassengerRepository) GetPassengerByEmail(email string) (*models.Passenger, error) {
	var p models.Passenger
	err := r.db.Get(&p, `
		SELECT id, email, first_name, last_name, passport_number, date_of_birth, nationality, created_at
		FROM passengers
		WHERE LOWER(email) = LOWER($1)`, strings.TrimSpace(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewValidationError("purchase.errors.passenger_not_found", map[string]string{"email": email})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load passenger: %w", err)
	}
	return &p, nil
}

// UpdatePassenger applies a partial profile edit. Email cannot change since
// bookings reference passengers by it.
func (r *PassengerRepository) UpdatePassenger(passengerID uuid.UUID, req models.UpdatePassengerRequest) (*models.Passenger, error) {
	var p models.Passenger
	err := r.db.QueryRowx(`
		UPDATE passengers SET
			first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			passport_number = COALESCE($3, passport_number),
			date_of_birth = COALESCE($4, date_of_birth),
			nationality = COALESCE($5, nationality)
		WHERE id = $6
		RETURNING id, email, first_name, last_name, passport_number, date_of_birth, nationality, created_at`,
		req.FirstName, req.LastName, req.PassportNumber, req.DateOfBirth, req.Nationality, passengerID,
	).StructScan(&p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("passengers.errors.not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update passenger: %w", err)
	}
	return &p, nil
}

// GetPassengerByID loads a passenger record.
func (r *PassengerRepository) GetPassengerByID(passengerID uuid.UUID) (*models.Passenger, error) {
	var p models.Passenger
	err := r.db.Get(&p, `
		SELECT id, email, first_name, last_name, passport_number, date_of_birth, nationality, created_at
		FROM passengers
		WHERE id = $1`, passengerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("passengers.errors.not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load passenger: %w", err)
	}
	return &p, nil
}
