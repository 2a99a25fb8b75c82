package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/database"
	"github.com/skyvoyage/flight-booking-backend/internal/i18n"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// PassengerHandler manages the passenger directory. Passengers are profiles
// referenced by bookings, distinct from the account that pays.
type PassengerHandler struct {
	passengerRepo *database.PassengerRepository
	catalog       *i18n.Catalog
	logger        *logrus.Logger
}

// NewPassengerHandler creates a new PassengerHandler
func NewPassengerHandler(passengerRepo *database.PassengerRepository, catalog *i18n.Catalog, logger *logrus.Logger) *PassengerHandler {
	return &PassengerHandler{
		passengerRepo: passengerRepo,
		catalog:       catalog,
		logger:        logger,
	}
}

type createPassengerRequest struct {
	Email          string     `json:"email" binding:"required,email"`
	FirstName      string     `json:"first_name" binding:"required"`
	LastName       string     `json:"last_name" binding:"required"`
	PassportNumber string     `json:"passport_number" binding:"required"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Nationality    string     `json:"nationality"`
}

// CreatePassenger registers a passenger profile
// @Summary Create a passenger profile
// @Tags Passengers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body createPassengerRequest true "Passenger details"
// @Success 201 {object} models.Passenger
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /passengers [post]
func (h *PassengerHandler) CreatePassenger(c *gin.Context) {
	var req createPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	passenger, err := h.passengerRepo.CreatePassenger(&models.Passenger{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PassportNumber: req.PassportNumber,
		DateOfBirth:    req.DateOfBirth,
		Nationality:    req.Nationality,
	})
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, passenger)
}

// UpdatePassenger edits a passenger profile
// @Summary Update a passenger profile
// @Tags Passengers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Passenger ID"
// @Param request body models.UpdatePassengerRequest true "Fields to change"
// @Success 200 {object} models.Passenger
// @Failure 404 {object} map[string]interface{}
// @Router /passengers/{id} [patch]
func (h *PassengerHandler) UpdatePassenger(c *gin.Context) {
	passengerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger id"})
		return
	}

	var req models.UpdatePassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	passenger, err := h.passengerRepo.UpdatePassenger(passengerID, req)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, passenger)
}

// GetPassenger fetches a passenger profile by ID
// @Summary Get a passenger profile
// @Tags Passengers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Passenger ID"
// @Success 200 {object} models.Passenger
// @Failure 404 {object} map[string]interface{}
// @Router /passengers/{id} [get]
func (h *PassengerHandler) GetPassenger(c *gin.Context) {
	passengerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger id"})
		return
	}

	passenger, err := h.passengerRepo.GetPassengerByID(passengerID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, passenger)
}
