package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skyvoyage/flight-booking-backend/internal/events"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

type mockExpirationStore struct {
	mock.Mock
}

func (m *mockExpirationStore) FindStaleBookings(cutoff time.Time, limit int) ([]models.Booking, error) {
	args := m.Called(cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockExpirationStore) ExpireBooking(bookingID uuid.UUID, cutoff time.Time) (bool, error) {
	args := m.Called(bookingID, cutoff)
	return args.Bool(0), args.Error(1)
}

func TestSweepExpiresStaleBookings(t *testing.T) {
	store := new(mockExpirationStore)
	publisher := new(mockPublisher)
	svc := NewBookingExpirationService(store, publisher, 10*time.Minute, time.Minute, 100, testLogger())

	expired := models.Booking{ID: uuid.New(), BookingReference: "REF-11111111", Status: models.BookingStatusPending}
	movedOn := models.Booking{ID: uuid.New(), BookingReference: "REF-22222222", Status: models.BookingStatusPending}
	failing := models.Booking{ID: uuid.New(), BookingReference: "REF-33333333", Status: models.BookingStatusConfirmed}

	store.On("FindStaleBookings", mock.Anything, 100).
		Return([]models.Booking{expired, movedOn, failing}, nil)
	store.On("ExpireBooking", expired.ID, mock.Anything).Return(true, nil)
	store.On("ExpireBooking", movedOn.ID, mock.Anything).Return(false, nil)
	store.On("ExpireBooking", failing.ID, mock.Anything).Return(false, assert.AnError)

	// Only the booking that actually expired gets an event.
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.TypeBookingExpired && e.BookingID == expired.ID
	})).Return(nil).Once()

	svc.RunOnce()

	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSweepNothingStale(t *testing.T) {
	store := new(mockExpirationStore)
	publisher := new(mockPublisher)
	svc := NewBookingExpirationService(store, publisher, 10*time.Minute, time.Minute, 100, testLogger())

	store.On("FindStaleBookings", mock.Anything, 100).Return([]models.Booking{}, nil)

	svc.RunOnce()

	store.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish")
}

func TestSweepListFailureIsIsolated(t *testing.T) {
	store := new(mockExpirationStore)
	svc := NewBookingExpirationService(store, nil, 10*time.Minute, time.Minute, 100, testLogger())

	store.On("FindStaleBookings", mock.Anything, 100).Return(nil, assert.AnError)

	// Must not panic; next tick retries.
	svc.RunOnce()

	store.AssertNotCalled(t, "ExpireBooking")
}

func TestSweepCutoffUsesHoldDuration(t *testing.T) {
	store := new(mockExpirationStore)
	svc := NewBookingExpirationService(store, nil, 10*time.Minute, time.Minute, 100, testLogger())

	store.On("FindStaleBookings", mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().Add(-10 * time.Minute)
		return cutoff.After(expected.Add(-time.Second)) && cutoff.Before(expected.Add(time.Second))
	}), 100).Return([]models.Booking{}, nil)

	svc.RunOnce()

	store.AssertExpectations(t)
}
