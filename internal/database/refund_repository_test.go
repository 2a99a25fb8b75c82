package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

func newMockRefundRepo(t *testing.T) (*RefundRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewRefundRepository(sqlxDB), mock, func() { db.Close() }
}

func ticketRows(ticket models.Ticket) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "ticket_number", "booking_id", "passenger_id", "flight_seat_id", "status", "issue_date",
	}).AddRow(
		ticket.ID, ticket.TicketNumber, ticket.BookingID, ticket.PassengerID,
		ticket.FlightSeatID, string(ticket.Status), ticket.IssueDate,
	)
}

func refundRows(refund models.Refund) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "ticket_id", "amount_cents", "reason", "status", "request_date", "processed_date",
	}).AddRow(
		refund.ID, refund.TicketID, int64(refund.AmountCents), refund.Reason,
		string(refund.Status), refund.RequestDate, refund.ProcessedDate,
	)
}

func TestCreateRefund(t *testing.T) {
	repo, mock, closeDB := newMockRefundRepo(t)
	defer closeDB()

	ticket := models.Ticket{
		ID:           uuid.New(),
		TicketNumber: "TKT-AB12CD34",
		BookingID:    uuid.New(),
		PassengerID:  uuid.New(),
		FlightSeatID: uuid.New(),
		Status:       models.TicketStatusIssued,
		IssueDate:    time.Now(),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM tickets`).
			WithArgs(ticket.ID).
			WillReturnRows(ticketRows(ticket))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM refunds`).
			WithArgs(ticket.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(`INSERT INTO refunds`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE tickets SET status`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		refund, err := repo.CreateRefund(models.CreateRefundRequest{
			TicketID:    ticket.ID,
			AmountCents: 12000,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RefundStatusPending, refund.Status)
		assert.Nil(t, refund.ProcessedDate)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ticket Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM tickets`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := repo.CreateRefund(models.CreateRefundRequest{TicketID: uuid.New(), AmountCents: 5000})
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.ErrKindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ticket Already Refunded", func(t *testing.T) {
		refunded := ticket
		refunded.Status = models.TicketStatusRefunded

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM tickets`).
			WillReturnRows(ticketRows(refunded))
		mock.ExpectRollback()

		_, err := repo.CreateRefund(models.CreateRefundRequest{TicketID: ticket.ID, AmountCents: 5000})
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.ErrKindConflict))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Refund Already Exists", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM tickets`).
			WillReturnRows(ticketRows(ticket))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM refunds`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		_, err := repo.CreateRefund(models.CreateRefundRequest{TicketID: ticket.ID, AmountCents: 5000})
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.ErrKindConflict))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Completed Payment", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM tickets`).
			WillReturnRows(ticketRows(ticket))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM refunds`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectRollback()

		_, err := repo.CreateRefund(models.CreateRefundRequest{TicketID: ticket.ID, AmountCents: 5000})
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.ErrKindValidation))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateRefund(t *testing.T) {
	repo, mock, closeDB := newMockRefundRepo(t)
	defer closeDB()

	refund := models.Refund{
		ID:          uuid.New(),
		TicketID:    uuid.New(),
		AmountCents: 12000,
		Status:      models.RefundStatusApproved,
		RequestDate: time.Now().Add(-time.Hour),
	}
	bookingID := uuid.New()

	t.Run("Process Flips Payments", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM refunds`).
			WithArgs(refund.ID).
			WillReturnRows(refundRows(refund))
		mock.ExpectQuery(`SELECT booking_id FROM tickets`).
			WithArgs(refund.TicketID).
			WillReturnRows(sqlmock.NewRows([]string{"booking_id"}).AddRow(bookingID))
		mock.ExpectExec(`UPDATE payments SET status`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE tickets SET status`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE refunds SET status`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		status := models.RefundStatusProcessed
		updated, err := repo.UpdateRefund(refund.ID, models.UpdateRefundRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, models.RefundStatusProcessed, updated.Status)
		require.NotNil(t, updated.ProcessedDate)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Repeated Process Keeps First Date", func(t *testing.T) {
		firstProcessed := time.Now().Add(-30 * time.Minute)
		processed := refund
		processed.Status = models.RefundStatusApproved
		processed.ProcessedDate = &firstProcessed

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM refunds`).
			WithArgs(refund.ID).
			WillReturnRows(refundRows(processed))
		mock.ExpectExec(`UPDATE refunds SET status`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		status := models.RefundStatusProcessed
		updated, err := repo.UpdateRefund(refund.ID, models.UpdateRefundRequest{Status: &status})
		require.NoError(t, err)
		require.NotNil(t, updated.ProcessedDate)
		assert.WithinDuration(t, firstProcessed, *updated.ProcessedDate, time.Second)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reason Only", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM refunds`).
			WithArgs(refund.ID).
			WillReturnRows(refundRows(refund))
		mock.ExpectExec(`UPDATE refunds SET status`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		reason := "schedule change"
		updated, err := repo.UpdateRefund(refund.ID, models.UpdateRefundRequest{Reason: &reason})
		require.NoError(t, err)
		assert.Equal(t, models.RefundStatusApproved, updated.Status)
		require.NotNil(t, updated.Reason)
		assert.Equal(t, reason, *updated.Reason)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM refunds`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		status := models.RefundStatusApproved
		_, err := repo.UpdateRefund(uuid.New(), models.UpdateRefundRequest{Status: &status})
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.ErrKindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteRefund(t *testing.T) {
	repo, mock, closeDB := newMockRefundRepo(t)
	defer closeDB()

	refundID := uuid.New()

	t.Run("Pending Deleted", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM refunds`).
			WithArgs(refundID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING"))
		mock.ExpectExec(`DELETE FROM refunds`).
			WithArgs(refundID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteRefund(refundID)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Non Pending Rejected", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM refunds`).
			WithArgs(refundID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PROCESSED"))
		mock.ExpectRollback()

		err := repo.DeleteRefund(refundID)
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.ErrKindState))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetRefundByTicket(t *testing.T) {
	repo, mock, closeDB := newMockRefundRepo(t)
	defer closeDB()

	refund := models.Refund{
		ID:          uuid.New(),
		TicketID:    uuid.New(),
		AmountCents: 12000,
		Status:      models.RefundStatusPending,
		RequestDate: time.Now(),
	}

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM refunds`).
			WithArgs(refund.TicketID).
			WillReturnRows(refundRows(refund))

		got, err := repo.GetRefundByTicket(refund.TicketID)
		require.NoError(t, err)
		assert.Equal(t, refund.ID, got.ID)
	})

	t.Run("No Refund For Ticket", func(t *testing.T) {
		unknownID := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM refunds`).
			WithArgs(unknownID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetRefundByTicket(unknownID)
		assert.True(t, models.IsKind(err, models.ErrKindNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRefunds(t *testing.T) {
	repo, mock, closeDB := newMockRefundRepo(t)
	defer closeDB()

	refund := models.Refund{
		ID:          uuid.New(),
		TicketID:    uuid.New(),
		AmountCents: 12000,
		Status:      models.RefundStatusPending,
		RequestDate: time.Now(),
	}

	status := models.RefundStatusPending
	mock.ExpectQuery(`SELECT (.+) FROM refunds`).
		WithArgs(string(status)).
		WillReturnRows(refundRows(refund))

	refunds, err := repo.ListRefunds(models.RefundFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	assert.Equal(t, refund.ID, refunds[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
