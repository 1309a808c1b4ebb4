package models

import "time"

const (
	RoleAdministrator = "Administrator"
	RoleDriver        = "Driver"
	RolePassenger     = "Passenger"
)

const (
	AccountActive   = "Active"
	AccountDisabled = "Disabled"
	AccountDeleted  = "Deleted"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Account carries login status separate from the user's credentials. A
// Disabled or Deleted account blocks login even with a valid password.
type Account struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	Status            string     `json:"status"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty"`
}

func (a Account) IsActive() bool { return a.Status == AccountActive }

func ValidRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleDriver, RolePassenger:
		return true
	}
	return false
}

func ValidAccountStatus(status string) bool {
	switch status {
	case AccountActive, AccountDisabled, AccountDeleted:
		return true
	}
	return false
}
