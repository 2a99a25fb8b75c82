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

func newMockPassengerRepo(t *testing.T) (*PassengerRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewPassengerRepository(sqlxDB), mock, func() { db.Close() }
}

func passengerRow(p models.Passenger) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "passport_number",
		"date_of_birth", "nationality", "created_at",
	}).AddRow(
		p.ID, p.Email, p.FirstName, p.LastName, p.PassportNumber,
		p.DateOfBirth, p.Nationality, p.CreatedAt,
	)
}

func TestCreatePassenger(t *testing.T) {
	repo, mock, closeDB := newMockPassengerRepo(t)
	defer closeDB()

	t.Run("Success Normalizes Email", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM passengers`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO passengers`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		created, err := repo.CreatePassenger(&models.Passenger{
			Email:     " Alice@Example.com ",
			FirstName: "Alice",
			LastName:  "Moran",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", created.Email)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Email Taken", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM passengers`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		_, err := repo.CreatePassenger(&models.Passenger{Email: "alice@example.com"})
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.ErrKindConflict))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdatePassenger(t *testing.T) {
	repo, mock, closeDB := newMockPassengerRepo(t)
	defer closeDB()

	passenger := models.Passenger{
		ID:             uuid.New(),
		Email:          "alice@example.com",
		FirstName:      "Alice",
		LastName:       "Shaw",
		PassportNumber: "N1234567",
		Nationality:    "IE",
		CreatedAt:      time.Now(),
	}

	t.Run("Partial Update", func(t *testing.T) {
		lastName := "Shaw"
		mock.ExpectQuery(`UPDATE passengers SET`).
			WithArgs(nil, "Shaw", nil, nil, nil, passenger.ID).
			WillReturnRows(passengerRow(passenger))

		updated, err := repo.UpdatePassenger(passenger.ID, models.UpdatePassengerRequest{
			LastName: &lastName,
		})
		require.NoError(t, err)
		assert.Equal(t, "Shaw", updated.LastName)
		assert.Equal(t, "alice@example.com", updated.Email)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		unknownID := uuid.New()
		mock.ExpectQuery(`UPDATE passengers SET`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdatePassenger(unknownID, models.UpdatePassengerRequest{})
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.ErrKindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
