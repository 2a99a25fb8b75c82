package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skyvoyage/flight-booking-backend/internal/models"
	"github.com/skyvoyage/flight-booking-backend/pkg/jwt"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) CreateUser(email, passwordHash, firstName, lastName string) (*models.User, error) {
	args := m.Called(email, passwordHash, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetUserByID(userID uuid.UUID) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestJWT() *jwt.Service {
	return jwt.NewService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestRegister(t *testing.T) {
	t.Run("Success Returns Token Pair", func(t *testing.T) {
		store := new(mockUserStore)
		service := NewAuthService(store, newTestJWT(), bcrypt.MinCost, testLogger())

		user := &models.User{ID: uuid.New(), Email: "jo@example.com", FirstName: "Jo", LastName: "Shaw"}
		store.On("CreateUser", "jo@example.com", mock.AnythingOfType("string"), "Jo", "Shaw").
			Return(user, nil)

		resp, err := service.Register(models.RegisterRequest{
			Email:     "jo@example.com",
			Password:  "correct-horse",
			FirstName: "Jo",
			LastName:  "Shaw",
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)

		// the stored hash must verify against the submitted password
		storedHash := store.Calls[0].Arguments.String(1)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("correct-horse")))
		store.AssertExpectations(t)
	})

	t.Run("Email Taken", func(t *testing.T) {
		store := new(mockUserStore)
		service := NewAuthService(store, newTestJWT(), bcrypt.MinCost, testLogger())

		store.On("CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, models.NewConflictError("auth.errors.email_taken", nil))

		_, err := service.Register(models.RegisterRequest{
			Email: "jo@example.com", Password: "correct-horse", FirstName: "Jo", LastName: "Shaw",
		})
		assert.True(t, models.IsKind(err, models.ErrKindConflict))
	})
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	user := &models.User{ID: uuid.New(), Email: "jo@example.com", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		store := new(mockUserStore)
		service := NewAuthService(store, newTestJWT(), bcrypt.MinCost, testLogger())
		store.On("GetUserByEmail", "jo@example.com").Return(user, nil)

		resp, err := service.Login(models.LoginRequest{Email: "jo@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		store := new(mockUserStore)
		service := NewAuthService(store, newTestJWT(), bcrypt.MinCost, testLogger())
		store.On("GetUserByEmail", "jo@example.com").Return(user, nil)

		_, err := service.Login(models.LoginRequest{Email: "jo@example.com", Password: "wrong"})
		assert.True(t, models.IsKind(err, models.ErrKindValidation))
	})

	t.Run("Unknown Email Reports Same Error", func(t *testing.T) {
		store := new(mockUserStore)
		service := NewAuthService(store, newTestJWT(), bcrypt.MinCost, testLogger())
		store.On("GetUserByEmail", "nobody@example.com").
			Return(nil, models.NewNotFoundError("auth.errors.user_not_found", nil))

		_, err := service.Login(models.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
		assert.True(t, models.IsKind(err, models.ErrKindValidation))
		assert.False(t, models.IsKind(err, models.ErrKindNotFound))
	})
}

func TestRefresh(t *testing.T) {
	t.Run("Valid Refresh Token", func(t *testing.T) {
		store := new(mockUserStore)
		jwtService := newTestJWT()
		service := NewAuthService(store, jwtService, bcrypt.MinCost, testLogger())

		user := &models.User{ID: uuid.New(), Email: "jo@example.com"}
		refresh, err := jwtService.GenerateRefreshToken(user.ID, user.Email)
		require.NoError(t, err)
		store.On("GetUserByID", user.ID).Return(user, nil)

		resp, err := service.Refresh(refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("Access Token Rejected", func(t *testing.T) {
		store := new(mockUserStore)
		jwtService := newTestJWT()
		service := NewAuthService(store, jwtService, bcrypt.MinCost, testLogger())

		access, err := jwtService.GenerateAccessToken(uuid.New(), "jo@example.com")
		require.NoError(t, err)

		_, err = service.Refresh(access)
		assert.True(t, models.IsKind(err, models.ErrKindValidation))
		store.AssertNotCalled(t, "GetUserByID", mock.Anything)
	})
}

type mockTicketStore struct {
	mock.Mock
}

func (m *mockTicketStore) GetTicketByID(ticketID uuid.UUID) (*models.Ticket, error) {
	args := m.Called(ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *mockTicketStore) GetTicketByNumber(ticketNumber string) (*models.Ticket, error) {
	args := m.Called(ticketNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *mockTicketStore) GetBookingTickets(bookingID uuid.UUID) ([]models.TicketDetails, error) {
	args := m.Called(bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TicketDetails), args.Error(1)
}

type mockBookingReader struct {
	mock.Mock
}

func (m *mockBookingReader) GetBookingByID(bookingID uuid.UUID) (*models.Booking, error) {
	args := m.Called(bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func TestGetTicket(t *testing.T) {
	ownerID := uuid.New()
	bookingID := uuid.New()
	ticket := &models.Ticket{ID: uuid.New(), BookingID: bookingID, TicketNumber: "TKT-ABCDEF0123"}

	t.Run("Owner Gets Ticket", func(t *testing.T) {
		tickets := new(mockTicketStore)
		bookings := new(mockBookingReader)
		service := NewTicketService(tickets, bookings, testLogger())

		tickets.On("GetTicketByID", ticket.ID).Return(ticket, nil)
		bookings.On("GetBookingByID", bookingID).Return(&models.Booking{ID: bookingID, UserID: ownerID}, nil)

		got, err := service.GetTicket(ticket.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "TKT-ABCDEF0123", got.TicketNumber)
	})

	t.Run("Non Owner Forbidden", func(t *testing.T) {
		tickets := new(mockTicketStore)
		bookings := new(mockBookingReader)
		service := NewTicketService(tickets, bookings, testLogger())

		tickets.On("GetTicketByID", ticket.ID).Return(ticket, nil)
		bookings.On("GetBookingByID", bookingID).Return(&models.Booking{ID: bookingID, UserID: ownerID}, nil)

		_, err := service.GetTicket(ticket.ID, uuid.New())
		assert.True(t, models.IsKind(err, models.ErrKindForbidden))
	})
}

func TestGetBookingTickets(t *testing.T) {
	ownerID := uuid.New()
	bookingID := uuid.New()

	t.Run("Owner Lists Tickets", func(t *testing.T) {
		tickets := new(mockTicketStore)
		bookings := new(mockBookingReader)
		service := NewTicketService(tickets, bookings, testLogger())

		bookings.On("GetBookingByID", bookingID).Return(&models.Booking{ID: bookingID, UserID: ownerID}, nil)
		tickets.On("GetBookingTickets", bookingID).Return([]models.TicketDetails{{}, {}}, nil)

		got, err := service.GetBookingTickets(bookingID, ownerID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Non Owner Forbidden", func(t *testing.T) {
		tickets := new(mockTicketStore)
		bookings := new(mockBookingReader)
		service := NewTicketService(tickets, bookings, testLogger())

		bookings.On("GetBookingByID", bookingID).Return(&models.Booking{ID: bookingID, UserID: ownerID}, nil)

		_, err := service.GetBookingTickets(bookingID, uuid.New())
		assert.True(t, models.IsKind(err, models.ErrKindForbidden))
		tickets.AssertNotCalled(t, "GetBookingTickets", mock.Anything)
	})
}
