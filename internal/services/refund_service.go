package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/events"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// RefundStore is the persistence surface of the refund lifecycle.
type RefundStore interface {
	CreateRefund(req models.CreateRefundRequest) (*models.Refund, error)
	UpdateRefund(refundID uuid.UUID, req models.UpdateRefundRequest) (*models.Refund, error)
	DeleteRefund(refundID uuid.UUID) error
	GetRefundByID(refundID uuid.UUID) (*models.Refund, error)
	GetRefundByTicket(ticketID uuid.UUID) (*models.Refund, error)
	ListRefunds(filter models.RefundFilter) ([]models.Refund, error)
}

// RefundService manages refunds against issued tickets, independent of the
// purchase pipeline.
type RefundService struct {
	store     RefundStore
	publisher EventPublisher
	logger    *logrus.Logger
}

// NewRefundService creates a new refund service.
func NewRefundService(store RefundStore, publisher EventPublisher, logger *logrus.Logger) *RefundService {
	return &RefundService{store: store, publisher: publisher, logger: logger}
}

// CreateRefund opens a PENDING refund and marks the ticket CANCELLED.
func (s *RefundService) CreateRefund(req models.CreateRefundRequest) (*models.Refund, error) {
	if req.AmountCents <= 0 {
		return nil, models.NewValidationError("refund.errors.invalid_amount", nil)
	}

	refund, err := s.store.CreateRefund(req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"refund_id": refund.ID,
		"ticket_id": refund.TicketID,
		"amount":    refund.AmountCents.String(),
	}).Info("Refund requested")
	return refund, nil
}

// UpdateRefund changes status and/or reason. The first transition into
// PROCESSED reverses the owning booking's payments and emits an event.
func (s *RefundService) UpdateRefund(ctx context.Context, refundID uuid.UUID, req models.UpdateRefundRequest) (*models.Refund, error) {
	before, err := s.store.GetRefundByID(refundID)
	if err != nil {
		return nil, err
	}
	wasProcessed := before.ProcessedDate != nil

	refund, err := s.store.UpdateRefund(refundID, req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"refund_id": refund.ID,
		"status":    refund.Status,
	}).Info("Refund updated")

	if refund.Status == models.RefundStatusProcessed && !wasProcessed && s.publisher != nil {
		event := events.BookingEvent{
			Type:     events.TypeRefundProcessed,
			TicketID: refund.TicketID,
			Status:   string(refund.Status),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).WithField("refund_id", refund.ID).Warn("Failed to publish refund event")
		}
	}
	return refund, nil
}

// DeleteRefund removes a PENDING refund.
func (s *RefundService) DeleteRefund(refundID uuid.UUID) error {
	if err := s.store.DeleteRefund(refundID); err != nil {
		return err
	}
	s.logger.WithField("refund_id", refundID).Info("Refund deleted")
	return nil
}

// GetRefund loads one refund.
func (s *RefundService) GetRefund(refundID uuid.UUID) (*models.Refund, error) {
	return s.store.GetRefundByID(refundID)
}

// GetRefundByTicket loads the refund opened against a ticket.
func (s *RefundService) GetRefundByTicket(ticketID uuid.UUID) (*models.Refund, error) {
	return s.store.GetRefundByTicket(ticketID)
}

// ListRefunds lists refunds matching the filter.
func (s *RefundService) ListRefunds(filter models.RefundFilter) ([]models.Refund, error) {
	return s.store.ListRefunds(filter)
}
