package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

type VehicleRepo struct {
	DB *sql.DB
}

func (r VehicleRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleColumns = `id, plate_number, vehicle_type, brand, model, year, capacity, color, average_rating, status, created_at, updated_at`

func (r VehicleRepo) GetByID(id int64) (models.Vehicle, error) {
	var v models.Vehicle
	err := r.db().QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id=?`, id).Scan(
		&v.ID, &v.PlateNumber, &v.VehicleType, &v.Brand, &v.Model, &v.Year,
		&v.Capacity, &v.Color, &v.AverageRating, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "vehicle", Err: err}
	}
	return v, err
}

func (r VehicleRepo) Create(v models.Vehicle) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO vehicles (plate_number, vehicle_type, brand, model, year, capacity, color, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, v.PlateNumber, v.VehicleType, v.Brand, v.Model, v.Year, v.Capacity, v.Color, v.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepo) Update(id int64, v models.Vehicle) error {
	res, err := r.db().Exec(`
		UPDATE vehicles
		SET plate_number=?, vehicle_type=?, brand=?, model=?, year=?, capacity=?, color=?, status=?
		WHERE id=?
	`, v.PlateNumber, v.VehicleType, v.Brand, v.Model, v.Year, v.Capacity, v.Color, v.Status, id)
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

// Delete removes the vehicle; trips and drivers keep a NULL reference
// through ON DELETE SET NULL, preserving historical records.
func (r VehicleRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

func (r VehicleRepo) List(query, status string) ([]models.Vehicle, error) {
	where := []string{"1=1"}
	args := []any{}
	if q := strings.TrimSpace(query); q != "" {
		where = append(where, "(plate_number LIKE ? OR brand LIKE ? OR model LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}

	rows, err := r.db().Query(`
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_at DESC, id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(
			&v.ID, &v.PlateNumber, &v.VehicleType, &v.Brand, &v.Model, &v.Year,
			&v.Capacity, &v.Color, &v.AverageRating, &v.Status, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VehicleRepo) Count() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM vehicles`).Scan(&n)
	return n, err
}

// UpdateAverageRating stores the recomputed rolling average.
func (r VehicleRepo) UpdateAverageRating(id int64, avg float64) error {
	_, err := r.db().Exec(`UPDATE vehicles SET average_rating=? WHERE id=?`, avg, id)
	return err
}
