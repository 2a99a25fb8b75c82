package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

type mockFlightStore struct {
	mock.Mock
}

func (m *mockFlightStore) SearchFlights(params models.FlightSearchParams) (*models.FlightSearchResult, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightSearchResult), args.Error(1)
}

func (m *mockFlightStore) GetFlightByID(flightID uuid.UUID) (*models.Flight, error) {
	args := m.Called(flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *mockFlightStore) GetAvailableSeats(flightID uuid.UUID) ([]models.FlightSeat, error) {
	args := m.Called(flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlightSeat), args.Error(1)
}

type mockSearchCache struct {
	mock.Mock
}

func (m *mockSearchCache) GetSearch(ctx context.Context, params models.FlightSearchParams) (*models.FlightSearchResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightSearchResult), args.Error(1)
}

func (m *mockSearchCache) SetSearch(ctx context.Context, params models.FlightSearchParams, result *models.FlightSearchResult) error {
	return m.Called(ctx, params, result).Error(0)
}

func TestSearchFlightsCaching(t *testing.T) {
	params := models.FlightSearchParams{DepartureAirportCode: "DUB", Page: 1, Limit: 10}
	result := &models.FlightSearchResult{TotalCount: 3, Page: 1, Limit: 10}

	t.Run("Cache Hit Skips Store", func(t *testing.T) {
		store := new(mockFlightStore)
		cache := new(mockSearchCache)
		svc := NewFlightService(store, cache, testLogger())

		cache.On("GetSearch", mock.Anything, params).Return(result, nil)

		got, err := svc.SearchFlights(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, 3, got.TotalCount)
		store.AssertNotCalled(t, "SearchFlights")
	})

	t.Run("Cache Miss Fills Cache", func(t *testing.T) {
		store := new(mockFlightStore)
		cache := new(mockSearchCache)
		svc := NewFlightService(store, cache, testLogger())

		cache.On("GetSearch", mock.Anything, params).Return(nil, nil)
		store.On("SearchFlights", params).Return(result, nil)
		cache.On("SetSearch", mock.Anything, params, result).Return(nil)

		got, err := svc.SearchFlights(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, 3, got.TotalCount)
		cache.AssertExpectations(t)
	})

	t.Run("Cache Errors Fall Through To Store", func(t *testing.T) {
		store := new(mockFlightStore)
		cache := new(mockSearchCache)
		svc := NewFlightService(store, cache, testLogger())

		cache.On("GetSearch", mock.Anything, params).Return(nil, assert.AnError)
		store.On("SearchFlights", params).Return(result, nil)
		cache.On("SetSearch", mock.Anything, params, result).Return(assert.AnError)

		got, err := svc.SearchFlights(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, 3, got.TotalCount)
	})

	t.Run("Nil Cache Works", func(t *testing.T) {
		store := new(mockFlightStore)
		svc := NewFlightService(store, nil, testLogger())

		store.On("SearchFlights", params).Return(result, nil)

		got, err := svc.SearchFlights(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, 3, got.TotalCount)
	})
}
