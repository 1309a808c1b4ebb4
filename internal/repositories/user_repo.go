package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, name, username, email, COALESCE(phone,''), role, created_at, updated_at`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	return scanUser(r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id=?`, id))
}

// GetCredentials loads the user plus password hash and account status by
// email or username, for login.
func (r UserRepo) GetCredentials(login string) (models.User, string, string, error) {
	var (
		u             models.User
		hash          string
		accountStatus string
	)
	err := r.db().QueryRow(`
		SELECT u.id, u.name, u.username, u.email, COALESCE(u.phone,''), u.role,
		       u.created_at, u.updated_at,
		       u.password_hash, COALESCE(a.status, 'Active')
		FROM users u
		LEFT JOIN accounts a ON a.user_id = u.id
		WHERE u.email = ? OR u.username = ?
	`, login, login).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
		&hash, &accountStatus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return u, "", "", domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, hash, accountStatus, err
}

func (r UserRepo) ExistsByEmailOrUsername(email, username string) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE email = ? OR username = ?
	`, email, username).Scan(&n)
	return n > 0, err
}

func (r UserRepo) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.Name, u.Username, u.Email, u.Phone, passwordHash, u.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update changes profile fields; a non-empty passwordHash replaces the
// stored credential.
func (r UserRepo) Update(id int64, u models.User, passwordHash string) error {
	sets := []string{"name=?", "username=?", "email=?", "phone=?", "role=?"}
	args := []any{u.Name, u.Username, u.Email, u.Phone, u.Role}
	if passwordHash != "" {
		sets = append(sets, "password_hash=?")
		args = append(args, passwordHash)
	}
	args = append(args, id)
	res, err := r.db().Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
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

func (r UserRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// List returns users filtered by a free-text query (name/username/email/phone)
// and an optional role.
func (r UserRepo) List(query, role string) ([]models.User, error) {
	where := []string{"1=1"}
	args := []any{}
	if q := strings.TrimSpace(query); q != "" {
		where = append(where, "(username LIKE ? OR email LIKE ? OR name LIKE ? OR phone LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like, like)
	}
	if role != "" {
		where = append(where, "role = ?")
		args = append(args, role)
	}

	rows, err := r.db().Query(`
		SELECT `+userColumns+`
		FROM users
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_at DESC, id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepo) Count() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r UserRepo) Recent(limit int) ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
