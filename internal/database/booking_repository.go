package database

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// BookingRepository handles the purchase-flow tables: bookings,
// seat_reservations, booking_passengers, plus the availability flag on
// flight_seats. Every multi-step mutation runs in a single transaction so a
// partial hold, partial passenger link or partial ticket batch is never
// externally observable.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// randomToken returns n/2 random bytes as n uppercase hex characters.
func randomToken(n int) (string, error) {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf))[:n], nil
}

// generateBookingReference generates a unique booking reference.
// Format: REF-XXXXXXXX (8 uppercase hex chars), checked against the bookings
// table inside the reservation transaction; the unique constraint is the
// final guard.
func generateBookingReference(tx *sqlx.Tx) (string, error) {
	for attempts := 0; attempts < 10; attempts++ {
		token, err := randomToken(8)
		if err != nil {
			return "", err
		}
		ref := "REF-" + token

		var count int
		if err := tx.Get(&count, `SELECT COUNT(*) FROM bookings WHERE booking_reference = $1`, ref); err != nil {
			return "", fmt.Errorf("failed to check reference uniqueness: %w", err)
		}
		if count == 0 {
			return ref, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique booking reference after 10 attempts")
}

// generateTicketNumber generates a unique ticket number (TKT-XXXXXXXX).
func generateTicketNumber(tx *sqlx.Tx) (string, error) {
	for attempts := 0; attempts < 10; attempts++ {
		token, err := randomToken(8)
		if err != nil {
			return "", err
		}
		num := "TKT-" + token

		var count int
		if err := tx.Get(&count, `SELECT COUNT(*) FROM tickets WHERE ticket_number = $1`, num); err != nil {
			return "", fmt.Errorf("failed to check ticket number uniqueness: %w", err)
		}
		if count == 0 {
			return num, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique ticket number after 10 attempts")
}

// getBookingForUpdate loads a booking with a row lock and applies the
// ownership guard shared by every purchase operation.
func getBookingForUpdate(tx *sqlx.Tx, bookingID, userID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := tx.Get(&booking, `
		SELECT id, booking_reference, flight_id, user_id, total_amount_cents,
		       status, booking_date, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("purchase.errors.booking_not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.UserID != userID {
		return nil, models.NewForbiddenError("purchase.errors.access_denied")
	}
	return &booking, nil
}

// ReserveFlight holds the requested seats against a new PENDING booking.
// The availability filter and the flip to unavailable happen in the same
// transaction, so overlapping reservations for the same seats cannot both
// succeed.
func (r *BookingRepository) ReserveFlight(
	userID, flightID uuid.UUID,
	seatIDs []uuid.UUID,
	deviceInfo []byte,
) (*models.Booking, []models.ReservedSeat, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var flightCount int
	if err := tx.Get(&flightCount, `SELECT COUNT(*) FROM flights WHERE id = $1`, flightID); err != nil {
		return nil, nil, fmt.Errorf("failed to check flight: %w", err)
	}
	if flightCount == 0 {
		return nil, nil, models.NewNotFoundError("purchase.errors.flight_not_found", nil)
	}

	query, args, err := sqlx.In(`
		SELECT id, flight_id, seat_number, seat_class, price_cents, is_available
		FROM flight_seats
		WHERE flight_id = ? AND id IN (?) AND is_available = true
		FOR UPDATE`, flightID, seatIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build seat query: %w", err)
	}
	var seats []models.FlightSeat
	if err := tx.Select(&seats, tx.Rebind(query), args...); err != nil {
		return nil, nil, fmt.Errorf("failed to load seats: %w", err)
	}

	// Covers both non-existent and already-held seats; there are no partial
	// holds.
	if len(seats) != len(seatIDs) {
		return nil, nil, models.NewValidationError("purchase.errors.seats_unavailable", nil)
	}

	heldIDs := make([]uuid.UUID, len(seats))
	var totalCents models.Cents
	for i, seat := range seats {
		heldIDs[i] = seat.ID
		totalCents += seat.PriceCents
	}

	query, args, err = sqlx.In(`UPDATE flight_seats SET is_available = false WHERE id IN (?)`, heldIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build seat update: %w", err)
	}
	if _, err := tx.Exec(tx.Rebind(query), args...); err != nil {
		return nil, nil, fmt.Errorf("failed to hold seats: %w", err)
	}

	ref, err := generateBookingReference(tx)
	if err != nil {
		return nil, nil, err
	}

	booking := &models.Booking{
		ID:               uuid.New(),
		BookingReference: ref,
		FlightID:         flightID,
		UserID:           userID,
		TotalAmountCents: totalCents,
		Status:           models.BookingStatusPending,
		BookingDate:      time.Now(),
	}

	err = tx.QueryRowx(`
		INSERT INTO bookings (
			id, booking_reference, flight_id, user_id,
			total_amount_cents, status, booking_date, device_info
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		booking.ID, booking.BookingReference, booking.FlightID, booking.UserID,
		booking.TotalAmountCents, booking.Status, booking.BookingDate, deviceInfo,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create booking: %w", err)
	}

	reserved := make([]models.ReservedSeat, 0, len(seats))
	for _, seat := range seats {
		if _, err := tx.Exec(`
			INSERT INTO seat_reservations (id, booking_id, flight_seat_id)
			VALUES ($1, $2, $3)`,
			uuid.New(), booking.ID, seat.ID,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to create seat reservation for seat %s: %w", seat.SeatNumber, err)
		}
		reserved = append(reserved, models.ReservedSeat{
			ID:         seat.ID,
			SeatNumber: seat.SeatNumber,
			SeatClass:  seat.SeatClass,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return booking, reserved, nil
}

// AddPassengers links pre-existing passengers (matched by email) to a
// PENDING booking, optionally assigning reserved seats inline. Any failure
// aborts the whole batch.
func (r *BookingRepository) AddPassengers(
	bookingID, userID uuid.UUID,
	passengers []models.PassengerInput,
) (int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := getBookingForUpdate(tx, bookingID, userID)
	if err != nil {
		return 0, err
	}
	if booking.Status != models.BookingStatusPending {
		return 0, models.NewStateError("purchase.errors.invalid_state", map[string]string{"status": string(booking.Status)})
	}

	var reservations []models.SeatReservation
	if err := tx.Select(&reservations, `
		SELECT id, booking_id, flight_seat_id, passenger_id, created_at
		FROM seat_reservations
		WHERE booking_id = $1
		ORDER BY created_at`, bookingID); err != nil {
		return 0, fmt.Errorf("failed to load seat reservations: %w", err)
	}
	if len(reservations) < len(passengers) {
		return 0, models.NewValidationError("purchase.errors.not_enough_seats", nil)
	}

	usedSeatIDs := make(map[uuid.UUID]bool)
	added := 0

	for i, p := range passengers {
		var passenger models.Passenger
		err := tx.Get(&passenger, `
			SELECT id, email, first_name, last_name, passport_number, date_of_birth, nationality, created_at
			FROM passengers
			WHERE email = $1`, p.Email)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.NewValidationError("purchase.errors.passenger_not_found", map[string]string{"email": p.Email})
		}
		if err != nil {
			return 0, fmt.Errorf("failed to load passenger %s: %w", p.Email, err)
		}

		var linked int
		if err := tx.Get(&linked, `
			SELECT COUNT(*) FROM booking_passengers
			WHERE booking_id = $1 AND passenger_id = $2`, bookingID, passenger.ID); err != nil {
			return 0, fmt.Errorf("failed to check passenger link: %w", err)
		}
		if linked > 0 {
			return 0, models.NewValidationError("purchase.errors.already_linked", map[string]string{"email": p.Email})
		}

		if _, err := tx.Exec(`
			INSERT INTO booking_passengers (id, booking_id, passenger_id, is_main_contact)
			VALUES ($1, $2, $3, $4)`,
			uuid.New(), bookingID, passenger.ID, i == 0,
		); err != nil {
			return 0, fmt.Errorf("failed to link passenger %s: %w", p.Email, err)
		}
		added++

		if p.SeatID == nil {
			continue
		}

		seatID := *p.SeatID
		if usedSeatIDs[seatID] {
			return 0, models.NewValidationError("purchase.errors.seat_already_assigned", map[string]string{"seat_id": seatID.String()})
		}

		var reservation *models.SeatReservation
		for idx := range reservations {
			if reservations[idx].FlightSeatID == seatID {
				reservation = &reservations[idx]
				break
			}
		}
		if reservation == nil {
			return 0, models.NewValidationError("purchase.errors.seat_not_reserved", map[string]string{"seat_id": seatID.String()})
		}
		if reservation.PassengerID != nil {
			return 0, models.NewValidationError("purchase.errors.seat_already_assigned", map[string]string{"seat_id": seatID.String()})
		}

		if _, err := tx.Exec(`
			UPDATE seat_reservations SET passenger_id = $1 WHERE id = $2`,
			passenger.ID, reservation.ID,
		); err != nil {
			return 0, fmt.Errorf("failed to assign seat %s: %w", seatID, err)
		}

		pid := passenger.ID
		reservation.PassengerID = &pid
		usedSeatIDs[seatID] = true
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return added, nil
}

// AssignSeats binds already-linked booking passengers (matched by email) to
// reserved seats (matched by seat number). Independent of the inline path in
// AddPassengers; both reject seat double-assignment.
func (r *BookingRepository) AssignSeats(
	bookingID, userID uuid.UUID,
	assignments []models.SeatAssignment,
) (int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := getBookingForUpdate(tx, bookingID, userID)
	if err != nil {
		return 0, err
	}
	if booking.Status != models.BookingStatusPending {
		return 0, models.NewStateError("purchase.errors.invalid_state", map[string]string{"status": string(booking.Status)})
	}

	var linked []models.BookingPassenger
	if err := tx.Select(&linked, `
		SELECT bp.id, bp.booking_id, bp.passenger_id, bp.is_main_contact, bp.created_at, p.email
		FROM booking_passengers bp
		JOIN passengers p ON p.id = bp.passenger_id
		WHERE bp.booking_id = $1`, bookingID); err != nil {
		return 0, fmt.Errorf("failed to load booking passengers: %w", err)
	}

	var reservations []models.SeatReservation
	if err := tx.Select(&reservations, `
		SELECT sr.id, sr.booking_id, sr.flight_seat_id, sr.passenger_id, sr.created_at, fs.seat_number
		FROM seat_reservations sr
		JOIN flight_seats fs ON fs.id = sr.flight_seat_id
		WHERE sr.booking_id = $1`, bookingID); err != nil {
		return 0, fmt.Errorf("failed to load seat reservations: %w", err)
	}

	usedSeats := make(map[string]bool)
	completed := 0

	for _, a := range assignments {
		var passengerID *uuid.UUID
		for _, bp := range linked {
			if strings.EqualFold(bp.Email, a.PassengerEmail) {
				pid := bp.PassengerID
				passengerID = &pid
				break
			}
		}
		if passengerID == nil {
			return 0, models.NewValidationError("purchase.errors.passenger_not_in_booking", map[string]string{"email": a.PassengerEmail})
		}

		if usedSeats[a.SeatNumber] {
			return 0, models.NewValidationError("purchase.errors.seat_already_assigned", map[string]string{"seat_number": a.SeatNumber})
		}

		var reservation *models.SeatReservation
		for idx := range reservations {
			if reservations[idx].SeatNumber == a.SeatNumber {
				reservation = &reservations[idx]
				break
			}
		}
		if reservation == nil {
			return 0, models.NewValidationError("purchase.errors.seat_not_reserved", map[string]string{"seat_number": a.SeatNumber})
		}
		if reservation.PassengerID != nil {
			return 0, models.NewValidationError("purchase.errors.seat_already_assigned", map[string]string{"seat_number": a.SeatNumber})
		}

		if _, err := tx.Exec(`
			UPDATE seat_reservations SET passenger_id = $1 WHERE id = $2`,
			*passengerID, reservation.ID,
		); err != nil {
			return 0, fmt.Errorf("failed to assign seat %s: %w", a.SeatNumber, err)
		}

		reservation.PassengerID = passengerID
		usedSeats[a.SeatNumber] = true
		completed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return completed, nil
}

// ConfirmBooking transitions PENDING -> CONFIRMED once at least one
// passenger is linked and every seat reservation is assigned. Ticket
// issuance happens at payment, not here.
func (r *BookingRepository) ConfirmBooking(bookingID, userID uuid.UUID) (*models.Booking, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := getBookingForUpdate(tx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, models.NewStateError("purchase.errors.invalid_state", map[string]string{"status": string(booking.Status)})
	}

	var passengerCount int
	if err := tx.Get(&passengerCount, `
		SELECT COUNT(*) FROM booking_passengers WHERE booking_id = $1`, bookingID); err != nil {
		return nil, fmt.Errorf("failed to count passengers: %w", err)
	}
	if passengerCount == 0 {
		return nil, models.NewValidationError("purchase.errors.no_passengers", nil)
	}

	var unassigned int
	if err := tx.Get(&unassigned, `
		SELECT COUNT(*) FROM seat_reservations
		WHERE booking_id = $1 AND passenger_id IS NULL`, bookingID); err != nil {
		return nil, fmt.Errorf("failed to count unassigned seats: %w", err)
	}
	if unassigned > 0 {
		return nil, models.NewStateError("purchase.errors.unassigned_seats", nil)
	}

	if _, err := tx.Exec(`
		UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2`,
		models.BookingStatusConfirmed, bookingID,
	); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	booking.Status = models.BookingStatusConfirmed

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return booking, nil
}

// MakePayment records a simulated COMPLETED payment, issues one ISSUED
// ticket per seat reservation and transitions the booking to COMPLETED.
// Reservations that still lack a passenger are paired greedily with linked
// passengers that have no seat yet; remaining gaps abort the payment.
func (r *BookingRepository) MakePayment(
	bookingID, userID uuid.UUID,
	paymentMethod string,
) (*models.PaymentResult, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	booking, err := getBookingForUpdate(tx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, models.NewStateError("purchase.errors.booking_not_confirmed", map[string]string{"status": string(booking.Status)})
	}

	token, err := randomToken(8)
	if err != nil {
		return nil, err
	}
	transactionID := "TXN-" + token

	paymentID := uuid.New()
	if _, err := tx.Exec(`
		INSERT INTO payments (id, booking_id, amount_cents, payment_method, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		paymentID, bookingID, booking.TotalAmountCents, paymentMethod,
		models.PaymentStatusCompleted, transactionID,
	); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	var reservations []models.SeatReservation
	if err := tx.Select(&reservations, `
		SELECT id, booking_id, flight_seat_id, passenger_id, created_at
		FROM seat_reservations
		WHERE booking_id = $1
		ORDER BY created_at`, bookingID); err != nil {
		return nil, fmt.Errorf("failed to load seat reservations: %w", err)
	}

	if err := autoAssignRemaining(tx, bookingID, reservations); err != nil {
		return nil, err
	}

	result := &models.PaymentResult{
		BookingID:     bookingID,
		TransactionID: transactionID,
		AmountCents:   booking.TotalAmountCents,
		Amount:        booking.TotalAmountCents.String(),
	}

	for _, reservation := range reservations {
		ticketNumber, err := generateTicketNumber(tx)
		if err != nil {
			return nil, err
		}

		ticket := models.Ticket{
			ID:           uuid.New(),
			TicketNumber: ticketNumber,
			BookingID:    bookingID,
			PassengerID:  *reservation.PassengerID,
			FlightSeatID: reservation.FlightSeatID,
			Status:       models.TicketStatusIssued,
			IssueDate:    time.Now(),
		}
		if _, err := tx.Exec(`
			INSERT INTO tickets (id, ticket_number, booking_id, passenger_id, flight_seat_id, status, issue_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			ticket.ID, ticket.TicketNumber, ticket.BookingID, ticket.PassengerID,
			ticket.FlightSeatID, ticket.Status, ticket.IssueDate,
		); err != nil {
			return nil, fmt.Errorf("failed to issue ticket %s: %w", ticketNumber, err)
		}
		result.Tickets = append(result.Tickets, ticket)
	}

	if _, err := tx.Exec(`
		UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2`,
		models.BookingStatusCompleted, bookingID,
	); err != nil {
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// autoAssignRemaining pairs unassigned reservations with linked passengers
// that hold no seat yet, in stable creation order. Mutates reservations in
// place.
func autoAssignRemaining(tx *sqlx.Tx, bookingID uuid.UUID, reservations []models.SeatReservation) error {
	var unassigned []*models.SeatReservation
	assignedPassengers := make(map[uuid.UUID]bool)
	for idx := range reservations {
		if reservations[idx].PassengerID == nil {
			unassigned = append(unassigned, &reservations[idx])
		} else {
			assignedPassengers[*reservations[idx].PassengerID] = true
		}
	}
	if len(unassigned) == 0 {
		return nil
	}

	var linked []models.BookingPassenger
	if err := tx.Select(&linked, `
		SELECT id, booking_id, passenger_id, is_main_contact, created_at
		FROM booking_passengers
		WHERE booking_id = $1
		ORDER BY created_at`, bookingID); err != nil {
		return fmt.Errorf("failed to load booking passengers: %w", err)
	}

	var free []uuid.UUID
	for _, bp := range linked {
		if !assignedPassengers[bp.PassengerID] {
			free = append(free, bp.PassengerID)
		}
	}

	for i := 0; i < len(unassigned) && i < len(free); i++ {
		if _, err := tx.Exec(`
			UPDATE seat_reservations SET passenger_id = $1 WHERE id = $2`,
			free[i], unassigned[i].ID,
		); err != nil {
			return fmt.Errorf("failed to auto-assign seat: %w", err)
		}
		pid := free[i]
		unassigned[i].PassengerID = &pid
	}

	if len(unassigned) > len(free) {
		return models.NewStateError("purchase.errors.unassigned_seats", nil)
	}
	return nil
}

// FindStaleBookings lists PENDING/CONFIRMED bookings whose hold window has
// lapsed. Cleanup happens per booking in ExpireBooking so one failure does
// not block the rest of the sweep.
func (r *BookingRepository) FindStaleBookings(cutoff time.Time, limit int) ([]models.Booking, error) {
	var stale []models.Booking
	err := r.db.Select(&stale, `
		SELECT id, booking_reference, flight_id, user_id, total_amount_cents,
		       status, booking_date, created_at, updated_at
		FROM bookings
		WHERE status IN ($1, $2) AND booking_date < $3
		ORDER BY booking_date
		LIMIT $4`,
		models.BookingStatusPending, models.BookingStatusConfirmed, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find stale bookings: %w", err)
	}
	return stale, nil
}

// ExpireBooking cancels one stale booking: seats go back to available, its
// seat reservations and passenger links are deleted and the status becomes
// CANCELLED, all in one transaction. Returns false when the booking moved on
// (paid or already cancelled) between the sweep listing and this call.
func (r *BookingRepository) ExpireBooking(bookingID uuid.UUID, cutoff time.Time) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE bookings SET status = $1, updated_at = now()
		WHERE id = $2 AND status IN ($3, $4) AND booking_date < $5`,
		models.BookingStatusCancelled, bookingID,
		models.BookingStatusPending, models.BookingStatusConfirmed, cutoff)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read cancel result: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`
		UPDATE flight_seats SET is_available = true
		WHERE id IN (SELECT flight_seat_id FROM seat_reservations WHERE booking_id = $1)`,
		bookingID); err != nil {
		return false, fmt.Errorf("failed to release seats: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM seat_reservations WHERE booking_id = $1`, bookingID); err != nil {
		return false, fmt.Errorf("failed to delete seat reservations: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM booking_passengers WHERE booking_id = $1`, bookingID); err != nil {
		return false, fmt.Errorf("failed to delete booking passengers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// GetBookingByID loads a single booking without locking.
func (r *BookingRepository) GetBookingByID(bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Get(&booking, `
		SELECT id, booking_reference, flight_id, user_id, total_amount_cents,
		       status, booking_date, created_at, updated_at
		FROM bookings
		WHERE id = $1`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("purchase.errors.booking_not_found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &booking, nil
}

// GetBookingDetails aggregates a booking with its reservations, passengers,
// payments and tickets.
func (r *BookingRepository) GetBookingDetails(bookingID uuid.UUID) (*models.BookingDetails, error) {
	booking, err := r.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	details := &models.BookingDetails{Booking: *booking}

	var flight models.Flight
	err = r.db.Get(&flight, `
		SELECT id, flight_number, airline_id, departure_airport_id, arrival_airport_id,
		       departure_time, arrival_time, base_fare_cents
		FROM flights
		WHERE id = $1`, booking.FlightID)
	if err == nil {
		details.Flight = &flight
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load flight: %w", err)
	}

	if err := r.db.Select(&details.SeatReservations, `
		SELECT sr.id, sr.booking_id, sr.flight_seat_id, sr.passenger_id, sr.created_at,
		       fs.seat_number, fs.seat_class
		FROM seat_reservations sr
		JOIN flight_seats fs ON fs.id = sr.flight_seat_id
		WHERE sr.booking_id = $1
		ORDER BY fs.seat_number`, bookingID); err != nil {
		return nil, fmt.Errorf("failed to load seat reservations: %w", err)
	}

	passengers, err := r.GetBookingPassengers(bookingID)
	if err != nil {
		return nil, err
	}
	details.Passengers = passengers

	if err := r.db.Select(&details.Payments, `
		SELECT id, booking_id, amount_cents, payment_method, status, transaction_id, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at`, bookingID); err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	if err := r.db.Select(&details.Tickets, `
		SELECT id, ticket_number, booking_id, passenger_id, flight_seat_id, status, issue_date
		FROM tickets
		WHERE booking_id = $1
		ORDER BY ticket_number`, bookingID); err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}

	return details, nil
}

// GetUserBookings lists a user's bookings, newest first.
func (r *BookingRepository) GetUserBookings(userID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Select(&bookings, `
		SELECT id, booking_reference, flight_id, user_id, total_amount_cents,
		       status, booking_date, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user bookings: %w", err)
	}
	return bookings, nil
}

// GetBookingPassengers lists a booking's passenger links with identity
// context.
func (r *BookingRepository) GetBookingPassengers(bookingID uuid.UUID) ([]models.BookingPassenger, error) {
	var passengers []models.BookingPassenger
	err := r.db.Select(&passengers, `
		SELECT bp.id, bp.booking_id, bp.passenger_id, bp.is_main_contact, bp.created_at,
		       p.email, p.first_name, p.last_name
		FROM booking_passengers bp
		JOIN passengers p ON p.id = bp.passenger_id
		WHERE bp.booking_id = $1
		ORDER BY bp.created_at`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking passengers: %w", err)
	}
	return passengers, nil
}
