package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

type TripRepo struct {
	DB *sql.DB
}

func (r TripRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanTrip(scan func(...any) error) (models.Trip, error) {
	var t models.Trip
	var driverID, vehicleID sql.NullInt64
	var cancelledBy, reason sql.NullString
	err := scan(
		&t.ID, &driverID, &vehicleID, &t.TripName, &t.StartLocation, &t.EndLocation,
		&t.DepartureTime, &t.ArrivalTime, &t.PriceCents, &t.AvailableSeats, &t.Status,
		&cancelledBy, &reason, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	if driverID.Valid {
		t.DriverID = &driverID.Int64
	}
	if vehicleID.Valid {
		t.VehicleID = &vehicleID.Int64
	}
	t.CancelledBy = cancelledBy.String
	t.CancellationReason = reason.String
	return t, nil
}

const tripColumns = `id, driver_id, vehicle_id, trip_name, start_location, end_location,
	       departure_time, arrival_time, price_cents, available_seats, status,
	       cancelled_by, cancellation_reason, created_at, updated_at`

func (r TripRepo) GetByID(id int64) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id=?`, id)
	t, err := scanTrip(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.NotFoundError{Resource: "trip", Err: err}
	}
	return t, err
}

// GetForUpdateTx loads the trip under a row lock. Every path that mutates
// available_seats or status must go through this inside its transaction so
// concurrent bookings on the same trip serialize.
func (r TripRepo) GetForUpdateTx(tx *sql.Tx, id int64) (models.Trip, error) {
	row := tx.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id=? FOR UPDATE`, id)
	t, err := scanTrip(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.NotFoundError{Resource: "trip", Err: err}
	}
	return t, err
}

func (r TripRepo) Create(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (driver_id, vehicle_id, trip_name, start_location, end_location,
		                   departure_time, arrival_time, price_cents, available_seats, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullableID(t.DriverID), nullableID(t.VehicleID), t.TripName, t.StartLocation, t.EndLocation,
		t.DepartureTime, t.ArrivalTime, t.PriceCents, t.AvailableSeats, models.TripUpcoming)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepo) Update(id int64, t models.Trip) error {
	_, err := r.db().Exec(`
		UPDATE trips
		SET driver_id=?, vehicle_id=?, trip_name=?, start_location=?, end_location=?,
		    departure_time=?, arrival_time=?, price_cents=?, available_seats=?
		WHERE id=?
	`, nullableID(t.DriverID), nullableID(t.VehicleID), t.TripName, t.StartLocation, t.EndLocation,
		t.DepartureTime, t.ArrivalTime, t.PriceCents, t.AvailableSeats, id)
	return err
}

// TransitionTx moves the trip from one status to another. The WHERE clause
// re-checks the source status so a stale caller loses the race instead of
// overwriting a concurrent transition.
func (r TripRepo) TransitionTx(tx *sql.Tx, id int64, from, to string) (bool, error) {
	res, err := tx.Exec(`UPDATE trips SET status=? WHERE id=? AND status=?`, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CancelTx marks the trip Cancelled and records who and why.
func (r TripRepo) CancelTx(tx *sql.Tx, id int64, cancelledBy, reason string) error {
	_, err := tx.Exec(`
		UPDATE trips SET status=?, cancelled_by=?, cancellation_reason=? WHERE id=?
	`, models.TripCancelled, cancelledBy, reason, id)
	return err
}

// AdjustSeatsTx changes available_seats by delta (negative when booking).
// The guard keeps the counter from ever going below zero even if a caller
// slips past the bookability check.
func (r TripRepo) AdjustSeatsTx(tx *sql.Tx, id int64, delta int) error {
	res, err := tx.Exec(`
		UPDATE trips SET available_seats = available_seats + ?
		WHERE id=? AND available_seats + ? >= 0
	`, delta, id, delta)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "trip", Msg: "insufficient seats"}
	}
	return nil
}

// Search lists bookable trips matching optional origin/destination substrings
// and a departure date.
func (r TripRepo) Search(from, to string, date *time.Time, now time.Time) ([]models.Trip, error) {
	where := []string{"status = ?", "available_seats > 0", "departure_time > ?"}
	args := []any{models.TripUpcoming, now}
	if s := strings.TrimSpace(from); s != "" {
		where = append(where, "start_location LIKE ?")
		args = append(args, "%"+s+"%")
	}
	if s := strings.TrimSpace(to); s != "" {
		where = append(where, "end_location LIKE ?")
		args = append(args, "%"+s+"%")
	}
	if date != nil {
		where = append(where, "DATE(departure_time) = DATE(?)")
		args = append(args, *date)
	}
	return r.list(`WHERE `+strings.Join(where, " AND ")+` ORDER BY departure_time ASC`, args...)
}

// ListAll is the admin listing with optional text query and status filter.
func (r TripRepo) ListAll(query, status string) ([]models.Trip, error) {
	where := []string{"1=1"}
	args := []any{}
	if q := strings.TrimSpace(query); q != "" {
		where = append(where, "(trip_name LIKE ? OR start_location LIKE ? OR end_location LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}
	return r.list(`WHERE `+strings.Join(where, " AND ")+` ORDER BY departure_time DESC, id DESC`, args...)
}

func (r TripRepo) ListByDriver(driverID int64, status string) ([]models.Trip, error) {
	where := []string{"driver_id = ?"}
	args := []any{driverID}
	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}
	return r.list(`WHERE `+strings.Join(where, " AND ")+` ORDER BY departure_time DESC, id DESC`, args...)
}

func (r TripRepo) list(tail string, args ...any) ([]models.Trip, error) {
	rows, err := r.db().Query(`SELECT `+tripColumns+` FROM trips `+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepo) Count() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM trips`).Scan(&n)
	return n, err
}

func (r TripRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM trips WHERE status=?`, status).Scan(&n)
	return n, err
}
