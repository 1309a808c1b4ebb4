package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transport/internal/config"
	intdb "transport/internal/db"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

type DriverRepo struct {
	DB *sql.DB
}

func (r DriverRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanDriver(scan func(...any) error) (models.Driver, error) {
	var d models.Driver
	var vehicleID sql.NullInt64
	var expiry sql.NullTime
	err := scan(
		&d.ID, &d.UserID, &vehicleID, &d.LicenseNumber, &d.LicenseType, &expiry,
		&d.AverageRating, &d.TotalTrips, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.Name, &d.Phone,
	)
	if err != nil {
		return d, err
	}
	if vehicleID.Valid {
		d.VehicleID = &vehicleID.Int64
	}
	if expiry.Valid {
		d.LicenseExpiry = &expiry.Time
	}
	return d, nil
}

const driverSelect = `
	SELECT d.id, d.user_id, d.vehicle_id, d.license_number, d.license_type, d.license_expiry,
	       d.average_rating, d.total_trips, d.status, d.created_at, d.updated_at,
	       COALESCE(u.name,''), COALESCE(u.phone,'')
	FROM drivers d
	JOIN users u ON u.id = d.user_id`

func (r DriverRepo) GetByID(id int64) (models.Driver, error) {
	row := r.db().QueryRow(driverSelect+` WHERE d.id=?`, id)
	d, err := scanDriver(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return d, domain.NotFoundError{Resource: "driver", Err: err}
	}
	return d, err
}

// GetByUserID resolves the driver profile of an authenticated user.
func (r DriverRepo) GetByUserID(userID int64) (models.Driver, error) {
	row := r.db().QueryRow(driverSelect+` WHERE d.user_id=?`, userID)
	d, err := scanDriver(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return d, domain.NotFoundError{Resource: "driver profile", Err: err}
	}
	return d, err
}

func (r DriverRepo) Create(d models.Driver) (int64, error) {
	var expiry any
	if d.LicenseExpiry != nil {
		expiry = *d.LicenseExpiry
	}
	res, err := r.db().Exec(`
		INSERT INTO drivers (user_id, vehicle_id, license_number, license_type, license_expiry, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.UserID, nullableID(d.VehicleID), d.LicenseNumber, d.LicenseType, expiry, d.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepo) Update(id int64, d models.Driver) error {
	var expiry any
	if d.LicenseExpiry != nil {
		expiry = *d.LicenseExpiry
	}
	res, err := r.db().Exec(`
		UPDATE drivers
		SET vehicle_id=?, license_number=?, license_type=?, license_expiry=?, status=?
		WHERE id=?
	`, nullableID(d.VehicleID), d.LicenseNumber, d.LicenseType, expiry, d.Status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

func (r DriverRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

func (r DriverRepo) List(query, status string) ([]models.Driver, error) {
	where := []string{"1=1"}
	args := []any{}
	if q := strings.TrimSpace(query); q != "" {
		where = append(where, "(u.username LIKE ? OR u.name LIKE ? OR d.license_number LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	if status != "" {
		where = append(where, "d.status = ?")
		args = append(args, status)
	}

	rows, err := r.db().Query(driverSelect+`
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY d.created_at DESC, d.id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Driver
	for rows.Next() {
		d, err := scanDriver(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepo) Count() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM drivers`).Scan(&n)
	return n, err
}

// AssignVehicle sets or clears (vehicleID 0) the driver's vehicle.
func (r DriverRepo) AssignVehicle(driverID, vehicleID int64) error {
	res, err := r.db().Exec(`UPDATE drivers SET vehicle_id=? WHERE id=?`, intdb.NullIfZero(vehicleID), driverID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(driverID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatusTx flips driver availability inside a lifecycle transaction.
func (r DriverRepo) UpdateStatusTx(tx *sql.Tx, driverID int64, status string) error {
	_, err := tx.Exec(`UPDATE drivers SET status=? WHERE id=?`, status, driverID)
	return err
}

// IncrementTotalTripsTx bumps the completed-trip counter inside a
// lifecycle transaction.
func (r DriverRepo) IncrementTotalTripsTx(tx *sql.Tx, driverID int64) error {
	_, err := tx.Exec(`UPDATE drivers SET total_trips = total_trips + 1 WHERE id=?`, driverID)
	return err
}

func (r DriverRepo) UpdateAverageRating(id int64, avg float64) error {
	_, err := r.db().Exec(`UPDATE drivers SET average_rating=? WHERE id=?`, avg, id)
	return err
}

func nullableID(id *int64) any {
	if id == nil || *id == 0 {
		return nil
	}
	return *id
}
