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

// FlightRepository reads flight schedule and seat inventory. Flights,
// airlines and airports are reference data; only flight_seats.is_available
// is mutated, and that happens in BookingRepository.
type FlightRepository struct {
	db *sqlx.DB
}

// NewFlightRepository creates a new FlightRepository
func NewFlightRepository(db *sqlx.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// SearchFlights returns a page of flights matching the given filters.
func (r *FlightRepository) SearchFlights(params models.FlightSearchParams) (*models.FlightSearchResult, error) {
	params.Normalize()

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argPos))
		args = append(args, value)
		argPos++
	}

	if params.DepartureDate != nil {
		addCondition("f.departure_time::date = $%d::date", *params.DepartureDate)
	}
	if params.DepartureDateStart != nil {
		addCondition("f.departure_time >= $%d", *params.DepartureDateStart)
	}
	if params.DepartureDateEnd != nil {
		addCondition("f.departure_time <= $%d", *params.DepartureDateEnd)
	}
	if params.DepartureAirportCode != "" {
		addCondition("LOWER(dep.code) = LOWER($%d)", strings.TrimSpace(params.DepartureAirportCode))
	}
	if params.ArrivalAirportCode != "" {
		addCondition("LOWER(arr.code) = LOWER($%d)", strings.TrimSpace(params.ArrivalAirportCode))
	}
	if params.AirlineCode != "" {
		addCondition("LOWER(al.code) = LOWER($%d)", strings.TrimSpace(params.AirlineCode))
	}
	if params.MinFareCents != nil {
		addCondition("f.base_fare_cents >= $%d", *params.MinFareCents)
	}
	if params.MaxFareCents != nil {
		addCondition("f.base_fare_cents <= $%d", *params.MaxFareCents)
	}

	where := strings.Join(conditions, " AND ")

	fromClause := `
		FROM flights f
		JOIN airlines al ON al.id = f.airline_id
		JOIN airports dep ON dep.id = f.departure_airport_id
		JOIN airports arr ON arr.id = f.arrival_airport_id
		WHERE ` + where

	var totalCount int
	if err := r.db.Get(&totalCount, "SELECT COUNT(*) "+fromClause, args...); err != nil {
		return nil, fmt.Errorf("failed to count flights: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT f.id, f.flight_number, f.airline_id, f.departure_airport_id, f.arrival_airport_id,
		       f.departure_time, f.arrival_time, f.base_fare_cents,
		       al.code AS airline_code, al.name AS airline_name,
		       dep.code AS departure_airport_code, arr.code AS arrival_airport_code
		%s
		ORDER BY f.departure_time
		LIMIT $%d OFFSET $%d`, fromClause, argPos, argPos+1)
	args = append(args, params.Limit, (params.Page-1)*params.Limit)

	var flights []models.Flight
	if err := r.db.Select(&flights, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search flights: %w", err)
	}

	totalPages := (totalCount + params.Limit - 1) / params.Limit
	return &models.FlightSearchResult{
		Flights:    flights,
		TotalCount: totalCount,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetFlightByID loads a single flight with airline and airport codes.
func (r *FlightRepository) GetFlightByID(flightID uuid.UUID) (*models.Flight, error) {
	var flight models.Flight
	err := r.db.Get(&flight, `
		SELECT f.id, f.flight_number, f.airline_id, f.departure_airport_id, f.arrival_airport_id,
		       f.departure_time, f.arrival_time, f.base_fare_cents,
		       al.code AS airline_code, al.name AS airline_name,
		       dep.code AS departure_airport_code, arr.code AS arrival_airport_code
		FROM flights f
		JOIN airlines al ON al.id = f.airline_id
		JOIN airports dep ON dep.id = f.departure_airport_id
		JOIN airports arr ON arr.id = f.arrival_airport_id
		WHERE f.id = $1`, flightID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("purchase.errors.flight_not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load flight: %w", err)
	}
	return &flight, nil
}

// GetAvailableSeats lists a flight's seats that are not currently held.
func (r *FlightRepository) GetAvailableSeats(flightID uuid.UUID) ([]models.FlightSeat, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM flights WHERE id = $1`, flightID); err != nil {
		return nil, fmt.Errorf("failed to check flight: %w", err)
	}
	if count == 0 {
		return nil, models.NewNotFoundError("purchase.errors.flight_not_found", nil)
	}

	var seats []models.FlightSeat
	err := r.db.Select(&seats, `
		SELECT id, flight_id, seat_number, seat_class, price_cents, is_available
		FROM flight_seats
		WHERE flight_id = $1 AND is_available = true
		ORDER BY seat_number`, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to load available seats: %w", err)
	}
	return seats, nil
}
