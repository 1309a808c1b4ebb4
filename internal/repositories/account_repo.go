package repositories

import (
	"database/sql"
	"errors"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

type AccountRepo struct {
	DB *sql.DB
}

func (r AccountRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CreateFor opens an Active account for a new user.
func (r AccountRepo) CreateFor(userID int64) error {
	_, err := r.db().Exec(`
		INSERT INTO accounts (user_id, status) VALUES (?, 'Active')
		ON DUPLICATE KEY UPDATE user_id = user_id
	`, userID)
	return err
}

func (r AccountRepo) GetByUserID(userID int64) (models.Account, error) {
	var a models.Account
	var lastLogin, pwChanged sql.NullTime
	err := r.db().QueryRow(`
		SELECT id, user_id, status, last_login, password_changed_at
		FROM accounts WHERE user_id = ?
	`, userID).Scan(&a.ID, &a.UserID, &a.Status, &lastLogin, &pwChanged)
	if errors.Is(err, sql.ErrNoRows) {
		return a, domain.NotFoundError{Resource: "account", Err: err}
	}
	if lastLogin.Valid {
		a.LastLogin = &lastLogin.Time
	}
	if pwChanged.Valid {
		a.PasswordChangedAt = &pwChanged.Time
	}
	return a, err
}

func (r AccountRepo) UpdateStatus(userID int64, status string) error {
	res, err := r.db().Exec(`UPDATE accounts SET status=? WHERE user_id=?`, status, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Account rows are created lazily for legacy users.
		return r.createWithStatus(userID, status)
	}
	return nil
}

func (r AccountRepo) createWithStatus(userID int64, status string) error {
	_, err := r.db().Exec(`
		INSERT INTO accounts (user_id, status) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE status = VALUES(status)
	`, userID, status)
	return err
}

func (r AccountRepo) TouchLastLogin(userID int64) error {
	_, err := r.db().Exec(`UPDATE accounts SET last_login=NOW() WHERE user_id=?`, userID)
	return err
}

func (r AccountRepo) TouchPasswordChanged(userID int64) error {
	_, err := r.db().Exec(`UPDATE accounts SET password_changed_at=NOW() WHERE user_id=?`, userID)
	return err
}
