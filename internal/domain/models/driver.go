package models

import "time"

const (
	DriverAvailable = "Available"
	DriverOnTrip    = "On Trip"
	DriverOffDuty   = "Off Duty"
	DriverSuspended = "Suspended"
)

type Driver struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	VehicleID     *int64     `json:"vehicle_id,omitempty"`
	LicenseNumber string     `json:"license_number"`
	LicenseType   string     `json:"license_type"`
	LicenseExpiry *time.Time `json:"license_expiry,omitempty"`
	AverageRating float64    `json:"average_rating"`
	TotalTrips    int        `json:"total_trips"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Denormalized for listings; populated by joins, never persisted.
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func ValidDriverStatus(status string) bool {
	switch status {
	case DriverAvailable, DriverOnTrip, DriverOffDuty, DriverSuspended:
		return true
	}
	return false
}
