package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// RefundRepository owns the refund lifecycle and its side effects on tickets
// and payments. A refund is 1:1 with a ticket; opening one marks the ticket
// CANCELLED, processing one marks it REFUNDED and flips the booking's
// COMPLETED payments to REFUNDED.
type RefundRepository struct {
	db *sqlx.DB
}

// NewRefundRepository creates a new RefundRepository
func NewRefundRepository(db *sqlx.DB) *RefundRepository {
	return &RefundRepository{db: db}
}

// CreateRefund opens a PENDING refund against a ticket.
func (r *RefundRepository) CreateRefund(req models.CreateRefundRequest) (*models.Refund, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ticket models.Ticket
	err = tx.Get(&ticket, `
		SELECT id, ticket_number, booking_id, passenger_id, flight_seat_id, status, issue_date
		FROM tickets
		WHERE id = $1
		FOR UPDATE`, req.TicketID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("refund.errors.ticket_not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}

	if ticket.Status == models.TicketStatusRefunded {
		return nil, models.NewConflictError("refund.errors.ticket_already_refunded", nil)
	}

	var existing int
	if err := tx.Get(&existing, `SELECT COUNT(*) FROM refunds WHERE ticket_id = $1`, req.TicketID); err != nil {
		return nil, fmt.Errorf("failed to check existing refund: %w", err)
	}
	if existing > 0 {
		return nil, models.NewConflictError("refund.errors.refund_exists", nil)
	}

	if !ticket.Status.Refundable() {
		return nil, models.NewValidationError("refund.errors.ticket_not_refundable", map[string]string{"status": string(ticket.Status)})
	}

	var completedPayments int
	if err := tx.Get(&completedPayments, `
		SELECT COUNT(*) FROM payments
		WHERE booking_id = $1 AND status = $2`, ticket.BookingID, models.PaymentStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}
	if completedPayments == 0 {
		return nil, models.NewValidationError("refund.errors.no_payment", nil)
	}

	refund := &models.Refund{
		ID:          uuid.New(),
		TicketID:    req.TicketID,
		AmountCents: req.AmountCents,
		Reason:      req.Reason,
		Status:      models.RefundStatusPending,
		RequestDate: time.Now(),
	}
	if _, err := tx.Exec(`
		INSERT INTO refunds (id, ticket_id, amount_cents, reason, status, request_date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		refund.ID, refund.TicketID, refund.AmountCents, refund.Reason,
		refund.Status, refund.RequestDate,
	); err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE tickets SET status = $1 WHERE id = $2`,
		models.TicketStatusCancelled, req.TicketID,
	); err != nil {
		return nil, fmt.Errorf("failed to mark ticket cancelled: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return refund, nil
}

// UpdateRefund changes a refund's status and/or reason. The first transition
// into PROCESSED sets processed_date, marks the ticket REFUNDED and flips
// the owning booking's COMPLETED payments to REFUNDED; repeating a PROCESSED
// update leaves processed_date and the payments untouched.
func (r *RefundRepository) UpdateRefund(refundID uuid.UUID, req models.UpdateRefundRequest) (*models.Refund, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var refund models.Refund
	err = tx.Get(&refund, `
		SELECT id, ticket_id, amount_cents, reason, status, request_date, processed_date
		FROM refunds
		WHERE id = $1
		FOR UPDATE`, refundID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("refund.errors.not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load refund: %w", err)
	}

	if req.Reason != nil {
		refund.Reason = req.Reason
	}

	if req.Status != nil && *req.Status != refund.Status {
		newStatus := *req.Status
		if newStatus == models.RefundStatusProcessed && refund.ProcessedDate == nil {
			now := time.Now()
			refund.ProcessedDate = &now

			var bookingID uuid.UUID
			if err := tx.Get(&bookingID, `SELECT booking_id FROM tickets WHERE id = $1`, refund.TicketID); err != nil {
				return nil, fmt.Errorf("failed to load ticket booking: %w", err)
			}
			if _, err := tx.Exec(`
				UPDATE payments SET status = $1
				WHERE booking_id = $2 AND status = $3`,
				models.PaymentStatusRefunded, bookingID, models.PaymentStatusCompleted,
			); err != nil {
				return nil, fmt.Errorf("failed to flip payments: %w", err)
			}
			if _, err := tx.Exec(`
				UPDATE tickets SET status = $1 WHERE id = $2`,
				models.TicketStatusRefunded, refund.TicketID,
			); err != nil {
				return nil, fmt.Errorf("failed to mark ticket refunded: %w", err)
			}
		}
		refund.Status = newStatus
	}

	if _, err := tx.Exec(`
		UPDATE refunds SET status = $1, reason = $2, processed_date = $3
		WHERE id = $4`,
		refund.Status, refund.Reason, refund.ProcessedDate, refund.ID,
	); err != nil {
		return nil, fmt.Errorf("failed to update refund: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &refund, nil
}

// DeleteRefund hard-deletes a refund. Only PENDING refunds may be removed.
func (r *RefundRepository) DeleteRefund(refundID uuid.UUID) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.RefundStatus
	err = tx.Get(&status, `SELECT status FROM refunds WHERE id = $1 FOR UPDATE`, refundID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewNotFoundError("refund.errors.not_found", nil)
	}
	if err != nil {
		return fmt.Errorf("failed to load refund: %w", err)
	}
	if status != models.RefundStatusPending {
		return models.NewStateError("refund.errors.not_pending", map[string]string{"status": string(status)})
	}

	if _, err := tx.Exec(`DELETE FROM refunds WHERE id = $1`, refundID); err != nil {
		return fmt.Errorf("failed to delete refund: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRefundByID loads a single refund.
func (r *RefundRepository) GetRefundByID(refundID uuid.UUID) (*models.Refund, error) {
	var refund models.Refund
	err := r.db.Get(&refund, `
		SELECT id, ticket_id, amount_cents, reason, status, request_date, processed_date
		FROM refunds
		WHERE id = $1`, refundID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("refund.errors.not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load refund: %w", err)
	}
	return &refund, nil
}

// GetRefundByTicket loads the refund opened against a ticket. At most one
// exists per ticket.
func (r *RefundRepository) GetRefundByTicket(ticketID uuid.UUID) (*models.Refund, error) {
	var refund models.Refund
	err := r.db.Get(&refund, `
		SELECT id, ticket_id, amount_cents, reason, status, request_date, processed_date
		FROM refunds
		WHERE ticket_id = $1`, ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("refund.errors.not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load refund: %w", err)
	}
	return &refund, nil
}

// ListRefunds returns refunds matching the optional filters, newest first.
func (r *RefundRepository) ListRefunds(filter models.RefundFilter) ([]models.Refund, error) {
	query := `
		SELECT id, ticket_id, amount_cents, reason, status, request_date, processed_date
		FROM refunds
		WHERE 1=1`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.TicketID != nil {
		args = append(args, *filter.TicketID)
		query += fmt.Sprintf(" AND ticket_id = $%d", len(args))
	}
	query += " ORDER BY request_date DESC"

	var refunds []models.Refund
	if err := r.db.Select(&refunds, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list refunds: %w", err)
	}
	return refunds, nil
}
