package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Cents is a monetary amount in integer cents. Summation stays exact; the
// database column is NUMERIC(10,2).
type Cents int64

// String renders the amount with two decimals, e.g. 27000 -> "270.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Airline is reference data, read-only to this service.
type Airline struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Code string    `db:"code" json:"code"`
	Name string    `db:"name" json:"name"`
}

// Airport is reference data, read-only to this service.
type Airport struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Code    string    `db:"code" json:"code"`
	Name    string    `db:"name" json:"name"`
	City    string    `db:"city" json:"city"`
	Country string    `db:"country" json:"country"`
}

// Flight is an immutable schedule record. The purchase flow never mutates it.
type Flight struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	FlightNumber       string    `db:"flight_number" json:"flight_number"`
	AirlineID          uuid.UUID `db:"airline_id" json:"airline_id"`
	DepartureAirportID uuid.UUID `db:"departure_airport_id" json:"departure_airport_id"`
	ArrivalAirportID   uuid.UUID `db:"arrival_airport_id" json:"arrival_airport_id"`
	DepartureTime      time.Time `db:"departure_time" json:"departure_time"`
	ArrivalTime        time.Time `db:"arrival_time" json:"arrival_time"`
	BaseFareCents      Cents     `db:"base_fare_cents" json:"base_fare_cents"`

	// Denormalized display fields populated by search queries.
	AirlineCode          string `db:"airline_code" json:"airline_code,omitempty"`
	AirlineName          string `db:"airline_name" json:"airline_name,omitempty"`
	DepartureAirportCode string `db:"departure_airport_code" json:"departure_airport_code,omitempty"`
	ArrivalAirportCode   string `db:"arrival_airport_code" json:"arrival_airport_code,omitempty"`
}

// SeatClass matches the flight_seats.seat_class column.
type SeatClass string

const (
	SeatClassEconomy  SeatClass = "ECONOMY"
	SeatClassBusiness SeatClass = "BUSINESS"
	SeatClassFirst    SeatClass = "FIRST"
)

// FlightSeat belongs to exactly one flight. is_available is false exactly
// while some non-terminal booking holds the seat.
type FlightSeat struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FlightID    uuid.UUID `db:"flight_id" json:"flight_id"`
	SeatNumber  string    `db:"seat_number" json:"seat_number"`
	SeatClass   SeatClass `db:"seat_class" json:"seat_class"`
	PriceCents  Cents     `db:"price_cents" json:"price_cents"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
}

// FlightSearchParams filters the paginated flight listing.
type FlightSearchParams struct {
	DepartureDate        *time.Time
	DepartureDateStart   *time.Time
	DepartureDateEnd     *time.Time
	DepartureAirportCode string
	ArrivalAirportCode   string
	AirlineCode          string
	MinFareCents         *Cents
	MaxFareCents         *Cents
	Page                 int
	Limit                int
}

// Normalize clamps pagination to sane defaults.
func (p *FlightSearchParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
}

// FlightSearchResult is one page of matching flights.
type FlightSearchResult struct {
	Flights    []Flight `json:"flights"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
}
