package repositories

import (
	"database/sql"

	intconfig "transport/internal/config"
	"transport/internal/domain/models"
)

type RatingRepo struct {
	DB *sql.DB
}

func (r RatingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ExistsForTripUser enforces one rating per completed trip per passenger;
// the unique key on (trip_id, user_id) is the storage-level backstop.
func (r RatingRepo) ExistsForTripUser(tripID, userID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM ratings WHERE trip_id=? AND user_id=?
	`, tripID, userID).Scan(&n)
	return n > 0, err
}

func (r RatingRepo) Insert(rt models.Rating) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO ratings (trip_id, user_id, driver_id, vehicle_id, driver_rating, vehicle_rating, driver_comment)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rt.TripID, rt.UserID, nullableID(rt.DriverID), nullableID(rt.VehicleID),
		rt.DriverRating, rt.VehicleRating, rt.DriverComment)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AvgForDriver recomputes the mean driver rating over every rating that
// references the driver. Invalid means no ratings exist yet.
func (r RatingRepo) AvgForDriver(driverID int64) (sql.NullFloat64, error) {
	var avg sql.NullFloat64
	err := r.db().QueryRow(`
		SELECT AVG(driver_rating) FROM ratings WHERE driver_id=?
	`, driverID).Scan(&avg)
	return avg, err
}

func (r RatingRepo) AvgForVehicle(vehicleID int64) (sql.NullFloat64, error) {
	var avg sql.NullFloat64
	err := r.db().QueryRow(`
		SELECT AVG(vehicle_rating) FROM ratings WHERE vehicle_id=?
	`, vehicleID).Scan(&avg)
	return avg, err
}
