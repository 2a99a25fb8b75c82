package models

import (
	"time"

	"github.com/google/uuid"
)

// RefundStatus matches the refunds.status column.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "PENDING"
	RefundStatusApproved  RefundStatus = "APPROVED"
	RefundStatusProcessed RefundStatus = "PROCESSED"
	RefundStatusRejected  RefundStatus = "REJECTED"
)

// Refund is opened against exactly one ticket (ticket_id is unique).
// ProcessedDate is set only on the first transition into PROCESSED.
type Refund struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	TicketID      uuid.UUID    `db:"ticket_id" json:"ticket_id"`
	AmountCents   Cents        `db:"amount_cents" json:"amount_cents"`
	Reason        *string      `db:"reason" json:"reason,omitempty"`
	Status        RefundStatus `db:"status" json:"status"`
	RequestDate   time.Time    `db:"request_date" json:"request_date"`
	ProcessedDate *time.Time   `db:"processed_date" json:"processed_date,omitempty"`
}

// CreateRefundRequest opens a refund against an issued or cancelled ticket.
type CreateRefundRequest struct {
	TicketID    uuid.UUID `json:"ticket_id" binding:"required"`
	AmountCents Cents     `json:"amount_cents" binding:"required"`
	Reason      *string   `json:"reason,omitempty"`
}

// UpdateRefundRequest mutates status and/or reason. A transition into
// PROCESSED flips the owning booking's COMPLETED payments to REFUNDED.
type UpdateRefundRequest struct {
	Status *RefundStatus `json:"status,omitempty"`
	Reason *string       `json:"reason,omitempty"`
}

// RefundFilter narrows the refund listing.
type RefundFilter struct {
	Status   *RefundStatus
	TicketID *uuid.UUID
}
