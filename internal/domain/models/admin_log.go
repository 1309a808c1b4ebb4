package models

import "time"

// AdminLog is the audit trail row for administrator actions.
type AdminLog struct {
	ID          int64     `json:"id"`
	AdminID     int64     `json:"admin_id"`
	ActionType  string    `json:"action_type"`
	EntityType  string    `json:"entity_type"`
	EntityID    int64     `json:"entity_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	AdminName string `json:"admin_name,omitempty"`
}
