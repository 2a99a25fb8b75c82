package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/i18n"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
	"github.com/skyvoyage/flight-booking-backend/internal/services"
)

// RefundHandler exposes the refund lifecycle.
type RefundHandler struct {
	refundService *services.RefundService
	catalog       *i18n.Catalog
	logger        *logrus.Logger
}

// NewRefundHandler creates a new RefundHandler
func NewRefundHandler(refundService *services.RefundService, catalog *i18n.Catalog, logger *logrus.Logger) *RefundHandler {
	return &RefundHandler{
		refundService: refundService,
		catalog:       catalog,
		logger:        logger,
	}
}

// CreateRefund opens a refund against a ticket
// @Summary Request a refund
// @Description Opens a PENDING refund for an issued ticket and marks the ticket CANCELLED
// @Tags Refunds
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body models.CreateRefundRequest true "Ticket and amount"
// @Success 201 {object} models.Refund
// @Failure 409 {object} map[string]interface{} "Refund already exists or ticket already refunded"
// @Router /refunds [post]
func (h *RefundHandler) CreateRefund(c *gin.Context) {
	var req models.CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	refund, err := h.refundService.CreateRefund(req)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, refund)
}

// UpdateRefund changes a refund's status or reason
// @Summary Update a refund
// @Description Transitioning into PROCESSED reverses the owning booking's payments
// @Tags Refunds
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Refund ID"
// @Param request body models.UpdateRefundRequest true "New status and/or reason"
// @Success 200 {object} models.Refund
// @Failure 404 {object} map[string]interface{} "Refund not found"
// @Router /refunds/{id} [patch]
func (h *RefundHandler) UpdateRefund(c *gin.Context) {
	refundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid refund id"})
		return
	}

	var req models.UpdateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	refund, err := h.refundService.UpdateRefund(c.Request.Context(), refundID, req)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, refund)
}

// DeleteRefund removes a pending refund
// @Summary Delete a refund
// @Tags Refunds
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Refund ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]interface{} "Refund is not pending"
// @Router /refunds/{id} [delete]
func (h *RefundHandler) DeleteRefund(c *gin.Context) {
	refundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid refund id"})
		return
	}

	if err := h.refundService.DeleteRefund(refundID); err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetRefund returns one refund
// @Summary Get refund by id
// @Tags Refunds
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Refund ID"
// @Success 200 {object} models.Refund
// @Router /refunds/{id} [get]
func (h *RefundHandler) GetRefund(c *gin.Context) {
	refundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid refund id"})
		return
	}

	refund, err := h.refundService.GetRefund(refundID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, refund)
}

// GetTicketRefund fetches the refund opened against a ticket
// @Summary Get a ticket's refund
// @Tags Refunds
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Ticket ID"
// @Success 200 {object} models.Refund
// @Failure 404 {object} map[string]interface{}
// @Router /tickets/{id}/refund [get]
func (h *RefundHandler) GetTicketRefund(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	refund, err := h.refundService.GetRefundByTicket(ticketID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, refund)
}

// ListRefunds lists refunds with optional filters
// @Summary List refunds
// @Tags Refunds
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param status query string false "Refund status filter"
// @Param ticket_id query string false "Ticket id filter"
// @Success 200 {object} map[string]interface{}
// @Router /refunds [get]
func (h *RefundHandler) ListRefunds(c *gin.Context) {
	var filter models.RefundFilter

	if raw := c.Query("status"); raw != "" {
		status := models.RefundStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("ticket_id"); raw != "" {
		ticketID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket_id"})
			return
		}
		filter.TicketID = &ticketID
	}

	refunds, err := h.refundService.ListRefunds(filter)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refunds": refunds, "count": len(refunds)})
}
