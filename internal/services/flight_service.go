package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// FlightStore reads flight schedule and seat inventory.
type FlightStore interface {
	SearchFlights(params models.FlightSearchParams) (*models.FlightSearchResult, error)
	GetFlightByID(flightID uuid.UUID) (*models.Flight, error)
	GetAvailableSeats(flightID uuid.UUID) ([]models.FlightSeat, error)
}

// SearchCache stores flight search pages.
type SearchCache interface {
	GetSearch(ctx context.Context, params models.FlightSearchParams) (*models.FlightSearchResult, error)
	SetSearch(ctx context.Context, params models.FlightSearchParams, result *models.FlightSearchResult) error
}

// FlightService serves the browse side of the app: search, flight detail and
// seat availability. Search results go through a short-TTL cache; seat
// availability always hits the database since holds change it constantly.
type FlightService struct {
	store  FlightStore
	cache  SearchCache
	logger *logrus.Logger
}

// NewFlightService creates a new flight service.
func NewFlightService(store FlightStore, cache SearchCache, logger *logrus.Logger) *FlightService {
	return &FlightService{store: store, cache: cache, logger: logger}
}

// SearchFlights returns a page of flights, from cache when possible.
func (s *FlightService) SearchFlights(ctx context.Context, params models.FlightSearchParams) (*models.FlightSearchResult, error) {
	params.Normalize()

	if s.cache != nil {
		cached, err := s.cache.GetSearch(ctx, params)
		if err != nil {
			s.logger.WithError(err).Warn("Flight search cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	result, err := s.store.SearchFlights(params)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, params, result); err != nil {
			s.logger.WithError(err).Warn("Flight search cache write failed")
		}
	}
	return result, nil
}

// GetFlight loads one flight with airline and airport context.
func (s *FlightService) GetFlight(flightID uuid.UUID) (*models.Flight, error) {
	return s.store.GetFlightByID(flightID)
}

// GetAvailableSeats lists seats currently open for reservation.
func (s *FlightService) GetAvailableSeats(flightID uuid.UUID) ([]models.FlightSeat, error) {
	return s.store.GetAvailableSeats(flightID)
}
