package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/i18n"
	"github.com/skyvoyage/flight-booking-backend/internal/middleware"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
	"github.com/skyvoyage/flight-booking-backend/internal/services"
	"github.com/skyvoyage/flight-booking-backend/internal/utils"
)

// PurchaseHandler exposes the reservation-to-payment pipeline.
type PurchaseHandler struct {
	purchaseService *services.PurchaseService
	catalog         *i18n.Catalog
	logger          *logrus.Logger
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *services.PurchaseService, catalog *i18n.Catalog, logger *logrus.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		catalog:         catalog,
		logger:          logger,
	}
}

// ReserveFlight holds seats and opens a pending booking
// @Summary Reserve seats on a flight
// @Description Atomically holds the requested seats and creates a PENDING booking with a 10-minute expiry
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body models.ReserveFlightRequest true "Flight and seat selection"
// @Success 201 {object} models.ReservationResponse
// @Failure 400 {object} map[string]interface{} "Seats unavailable or too many seats"
// @Failure 404 {object} map[string]interface{} "Flight not found"
// @Router /bookings/reserve [post]
func (h *PurchaseHandler) ReserveFlight(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.ReserveFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	deviceInfo := utils.CaptureDeviceInfo(c)
	resp, err := h.purchaseService.ReserveFlight(c.Request.Context(), userCtx.UserID, req, deviceInfo)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AddPassengers links passengers to a pending booking
// @Summary Add passengers to a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Booking ID"
// @Param request body models.AddPassengersRequest true "Passengers, optionally with inline seat ids"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 403 {object} map[string]interface{} "Not the booking owner"
// @Router /bookings/{id}/passengers [post]
func (h *PurchaseHandler) AddPassengers(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req models.AddPassengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	added, err := h.purchaseService.AddPassengers(c.Request.Context(), bookingID, userCtx.UserID, req)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": bookingID, "passengers_added": added})
}

// AssignSeats binds linked passengers to reserved seats
// @Summary Assign reserved seats to passengers
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Booking ID"
// @Param request body models.AssignSeatsRequest true "Email to seat-number assignments"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Seat already assigned or not reserved"
// @Router /bookings/{id}/seats [post]
func (h *PurchaseHandler) AssignSeats(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req models.AssignSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	assigned, err := h.purchaseService.AssignSeats(c.Request.Context(), bookingID, userCtx.UserID, req)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": bookingID, "seats_assigned": assigned})
}

// ConfirmBooking transitions a pending booking to CONFIRMED
// @Summary Confirm a booking
// @Description Requires accepted terms, at least one passenger and every reserved seat assigned
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Booking ID"
// @Param request body models.ConfirmBookingRequest true "Terms acceptance"
// @Success 200 {object} models.Booking
// @Failure 409 {object} map[string]interface{} "Wrong lifecycle state or unassigned seats"
// @Router /bookings/{id}/confirm [post]
func (h *PurchaseHandler) ConfirmBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req models.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := h.purchaseService.ConfirmBooking(c.Request.Context(), bookingID, userCtx.UserID, req)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// MakePayment captures payment and issues tickets
// @Summary Pay for a confirmed booking
// @Description Simulated capture: records a COMPLETED payment, issues one ticket per seat and completes the booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Booking ID"
// @Param request body models.MakePaymentRequest true "Payment method"
// @Success 200 {object} models.PaymentResult
// @Failure 409 {object} map[string]interface{} "Booking not confirmed"
// @Router /bookings/{id}/payment [post]
func (h *PurchaseHandler) MakePayment(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req models.MakePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.purchaseService.MakePayment(c.Request.Context(), bookingID, userCtx.UserID, req)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookingDetails returns the aggregate booking view
// @Summary Get booking details
// @Tags Bookings
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Booking ID"
// @Success 200 {object} models.BookingDetails
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Router /bookings/{id} [get]
func (h *PurchaseHandler) GetBookingDetails(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	details, err := h.purchaseService.GetBookingDetails(bookingID, userCtx.UserID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetUserBookings lists the caller's bookings
// @Summary List my bookings
// @Tags Bookings
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]interface{}
// @Router /bookings [get]
func (h *PurchaseHandler) GetUserBookings(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookings, err := h.purchaseService.GetUserBookings(userCtx.UserID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GetBookingPassengers lists a booking's passengers
// @Summary List booking passengers
// @Tags Bookings
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]interface{}
// @Router /bookings/{id}/passengers [get]
func (h *PurchaseHandler) GetBookingPassengers(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	passengers, err := h.purchaseService.GetBookingPassengers(bookingID, userCtx.UserID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": bookingID, "passengers": passengers})
}
