package repositories

import (
	"database/sql"

	intconfig "transport/internal/config"
	"transport/internal/domain/models"
)

type AdminLogRepo struct {
	DB *sql.DB
}

func (r AdminLogRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AdminLogRepo) Insert(l models.AdminLog) error {
	_, err := r.db().Exec(`
		INSERT INTO admin_logs (admin_id, action_type, entity_type, entity_id, description)
		VALUES (?, ?, ?, ?, ?)
	`, l.AdminID, l.ActionType, l.EntityType, l.EntityID, l.Description)
	return err
}

func (r AdminLogRepo) List(limit int) ([]models.AdminLog, error) {
	rows, err := r.db().Query(`
		SELECT l.id, l.admin_id, l.action_type, l.entity_type, l.entity_id,
		       COALESCE(l.description,''), l.created_at, COALESCE(u.name,'')
		FROM admin_logs l
		JOIN users u ON u.id = l.admin_id
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AdminLog
	for rows.Next() {
		var l models.AdminLog
		if err := rows.Scan(&l.ID, &l.AdminID, &l.ActionType, &l.EntityType, &l.EntityID, &l.Description, &l.CreatedAt, &l.AdminName); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
