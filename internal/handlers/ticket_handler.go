package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/i18n"
	"github.com/skyvoyage/flight-booking-backend/internal/middleware"
	"github.com/skyvoyage/flight-booking-backend/internal/services"
)

// TicketHandler serves ticket lookups.
type TicketHandler struct {
	ticketService *services.TicketService
	catalog       *i18n.Catalog
	logger        *logrus.Logger
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService *services.TicketService, catalog *i18n.Catalog, logger *logrus.Logger) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		catalog:       catalog,
		logger:        logger,
	}
}

// GetBookingTickets lists a booking's tickets
// @Summary List tickets for a booking
// @Tags Tickets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{} "Not the booking owner"
// @Router /bookings/{id}/tickets [get]
func (h *TicketHandler) GetBookingTickets(c *gin.Context) {
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

	tickets, err := h.ticketService.GetBookingTickets(bookingID, userCtx.UserID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": bookingID, "tickets": tickets, "count": len(tickets)})
}

// GetTicket returns one ticket
// @Summary Get ticket by id
// @Tags Tickets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Ticket ID"
// @Success 200 {object} models.Ticket
// @Failure 404 {object} map[string]interface{} "Ticket not found"
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	ticket, err := h.ticketService.GetTicket(ticketID, userCtx.UserID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
