package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/i18n"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
	"github.com/skyvoyage/flight-booking-backend/internal/services"
)

// FlightHandler serves flight search and seat availability.
type FlightHandler struct {
	flightService *services.FlightService
	catalog       *i18n.Catalog
	logger        *logrus.Logger
}

// NewFlightHandler creates a new FlightHandler
func NewFlightHandler(flightService *services.FlightService, catalog *i18n.Catalog, logger *logrus.Logger) *FlightHandler {
	return &FlightHandler{
		flightService: flightService,
		catalog:       catalog,
		logger:        logger,
	}
}

// SearchFlights lists flights matching query filters
// @Summary Search flights
// @Tags Flights
// @Produce json
// @Param from query string false "Departure airport code"
// @Param to query string false "Arrival airport code"
// @Param date query string false "Departure date (YYYY-MM-DD)"
// @Param airline query string false "Airline code"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.FlightSearchResult
// @Router /flights [get]
func (h *FlightHandler) SearchFlights(c *gin.Context) {
	params := models.FlightSearchParams{
		DepartureAirportCode: c.Query("from"),
		ArrivalAirportCode:   c.Query("to"),
		AirlineCode:          c.Query("airline"),
	}

	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		params.DepartureDate = &date
	}
	if raw := c.Query("min_fare_cents"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_fare_cents"})
			return
		}
		fare := models.Cents(v)
		params.MinFareCents = &fare
	}
	if raw := c.Query("max_fare_cents"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_fare_cents"})
			return
		}
		fare := models.Cents(v)
		params.MaxFareCents = &fare
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.flightService.SearchFlights(c.Request.Context(), params)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetFlight returns one flight
// @Summary Get flight by id
// @Tags Flights
// @Produce json
// @Param id path string true "Flight ID"
// @Success 200 {object} models.Flight
// @Failure 404 {object} map[string]interface{} "Flight not found"
// @Router /flights/{id} [get]
func (h *FlightHandler) GetFlight(c *gin.Context) {
	flightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	flight, err := h.flightService.GetFlight(flightID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

// GetAvailableSeats lists seats currently open for reservation
// @Summary List available seats on a flight
// @Tags Flights
// @Produce json
// @Param id path string true "Flight ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Flight not found"
// @Router /flights/{id}/seats [get]
func (h *FlightHandler) GetAvailableSeats(c *gin.Context) {
	flightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	seats, err := h.flightService.GetAvailableSeats(flightID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight_id": flightID, "seats": seats, "count": len(seats)})
}
