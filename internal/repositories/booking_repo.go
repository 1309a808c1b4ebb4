package repositories

import (
	"database/sql"
	"errors"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `b.id, b.trip_id, b.user_id, b.seats_booked, b.total_price_cents,
	       b.status, b.booking_date, b.created_at, b.updated_at`

func scanBooking(scan func(...any) error) (models.TripBooking, error) {
	var b models.TripBooking
	err := scan(
		&b.ID, &b.TripID, &b.UserID, &b.SeatsBooked, &b.TotalPriceCents,
		&b.Status, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r BookingRepo) GetByID(id int64) (models.TripBooking, error) {
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM trip_bookings b WHERE b.id=?`, id)
	b, err := scanBooking(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return b, err
}

// GetForUpdateTx locks the booking row for a cancellation.
func (r BookingRepo) GetForUpdateTx(tx *sql.Tx, id int64) (models.TripBooking, error) {
	row := tx.QueryRow(`SELECT `+bookingColumns+` FROM trip_bookings b WHERE b.id=? FOR UPDATE`, id)
	b, err := scanBooking(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return b, err
}

// HasConfirmedTx reports whether the user already holds a Confirmed booking
// on the trip. The unique key on (trip_id, active_user_id) backs this check
// up at the storage level.
func (r BookingRepo) HasConfirmedTx(tx *sql.Tx, tripID, userID int64) (bool, error) {
	var n int
	err := tx.QueryRow(`
		SELECT COUNT(*) FROM trip_bookings
		WHERE trip_id=? AND user_id=? AND status=?
	`, tripID, userID, models.BookingConfirmed).Scan(&n)
	return n > 0, err
}

func (r BookingRepo) InsertTx(tx *sql.Tx, b models.TripBooking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO trip_bookings (trip_id, user_id, seats_booked, total_price_cents, status)
		VALUES (?, ?, ?, ?, ?)
	`, b.TripID, b.UserID, b.SeatsBooked, b.TotalPriceCents, b.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepo) UpdateStatusTx(tx *sql.Tx, id int64, status string) error {
	_, err := tx.Exec(`UPDATE trip_bookings SET status=? WHERE id=?`, status, id)
	return err
}

// CompleteConfirmedByTripTx cascades trip completion: every Confirmed
// booking becomes Completed.
func (r BookingRepo) CompleteConfirmedByTripTx(tx *sql.Tx, tripID int64) error {
	_, err := tx.Exec(`
		UPDATE trip_bookings SET status=? WHERE trip_id=? AND status=?
	`, models.BookingCompleted, tripID, models.BookingConfirmed)
	return err
}

// CancelAllByTripTx cascades trip cancellation to every booking of the
// trip, whatever its prior status.
func (r BookingRepo) CancelAllByTripTx(tx *sql.Tx, tripID int64) error {
	_, err := tx.Exec(`UPDATE trip_bookings SET status=? WHERE trip_id=?`, models.BookingCancelled, tripID)
	return err
}

// ListByUser returns the passenger's bookings newest-first with trip context
// joined in, optionally filtered by booking status.
func (r BookingRepo) ListByUser(userID int64, status string) ([]models.TripBooking, error) {
	query := `
		SELECT ` + bookingColumns + `,
		       t.trip_name, t.start_location, t.end_location, t.departure_time, t.status
		FROM trip_bookings b
		JOIN trips t ON t.id = b.trip_id
		WHERE b.user_id = ?`
	args := []any{userID}
	if status != "" {
		query += ` AND b.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY b.created_at DESC, b.id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TripBooking
	for rows.Next() {
		var b models.TripBooking
		if err := rows.Scan(
			&b.ID, &b.TripID, &b.UserID, &b.SeatsBooked, &b.TotalPriceCents,
			&b.Status, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt,
			&b.TripName, &b.StartLocation, &b.EndLocation, &b.DepartureTime, &b.TripStatus,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ManifestEntry is one Confirmed booking on a trip, for the driver's
// passenger list.
type ManifestEntry struct {
	BookingID   int64  `json:"booking_id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	SeatsBooked int    `json:"seats_booked"`
}

func (r BookingRepo) ManifestByTrip(tripID int64) ([]ManifestEntry, error) {
	rows, err := r.db().Query(`
		SELECT b.id, b.user_id, u.name, COALESCE(u.phone,''), b.seats_booked
		FROM trip_bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.trip_id = ? AND b.status = ?
		ORDER BY b.id ASC
	`, tripID, models.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ManifestEntry
	for rows.Next() {
		var m ManifestEntry
		if err := rows.Scan(&m.BookingID, &m.UserID, &m.Name, &m.Phone, &m.SeatsBooked); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Recent returns the newest bookings for the admin dashboard.
func (r BookingRepo) Recent(limit int) ([]models.TripBooking, error) {
	rows, err := r.db().Query(`
		SELECT `+bookingColumns+`, t.trip_name
		FROM trip_bookings b
		JOIN trips t ON t.id = b.trip_id
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TripBooking
	for rows.Next() {
		var b models.TripBooking
		if err := rows.Scan(
			&b.ID, &b.TripID, &b.UserID, &b.SeatsBooked, &b.TotalPriceCents,
			&b.Status, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt, &b.TripName,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepo) CountByUserAndStatus(userID int64, status string) (int, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM trip_bookings WHERE user_id=? AND status=?
	`, userID, status).Scan(&n)
	return n, err
}
