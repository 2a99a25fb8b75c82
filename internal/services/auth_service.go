package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/skyvoyage/flight-booking-backend/internal/models"
	"github.com/skyvoyage/flight-booking-backend/pkg/jwt"
)

// UserStore is the account persistence surface.
type UserStore interface {
	CreateUser(email, passwordHash, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(userID uuid.UUID) (*models.User, error)
}

// AuthService handles registration, login and token refresh.
type AuthService struct {
	store      UserStore
	jwtService *jwt.Service
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store UserStore, jwtService *jwt.Service, bcryptCost int, logger *logrus.Logger) *AuthService {
	return &AuthService{
		store:      store,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account and returns a token pair.
func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(req.Email, string(hash), req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return s.tokenResponse(user)
}

// Login verifies credentials and returns a token pair. Both unknown email
// and wrong password report the same error.
func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		if models.IsKind(err, models.ErrKindNotFound) {
			return nil, models.NewValidationError("auth.errors.invalid_credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.NewValidationError("auth.errors.invalid_credentials", nil)
	}

	s.logger.WithField("user_id", user.ID).Info("User logged in")
	return s.tokenResponse(user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, models.NewValidationError("auth.errors.invalid_credentials", nil)
	}

	user, err := s.store.GetUserByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.tokenResponse(user)
}

// GetUser loads the authenticated account's profile.
func (s *AuthService) GetUser(userID uuid.UUID) (*models.User, error) {
	return s.store.GetUserByID(userID)
}

func (s *AuthService) tokenResponse(user *models.User) (*models.AuthResponse, error) {
	access, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		User:         *user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
