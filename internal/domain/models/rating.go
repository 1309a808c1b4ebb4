package models

import "time"

// Rating is one passenger's verdict on a completed trip. Driver and vehicle
// references are snapshots of the trip's assignment at rating time.
type Rating struct {
	ID            int64     `json:"id"`
	TripID        int64     `json:"trip_id"`
	UserID        int64     `json:"user_id"`
	DriverID      *int64    `json:"driver_id,omitempty"`
	VehicleID     *int64    `json:"vehicle_id,omitempty"`
	DriverRating  int       `json:"driver_rating"`
	VehicleRating int       `json:"vehicle_rating"`
	DriverComment string    `json:"driver_comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func ValidStars(n int) bool { return n >= 1 && n <= 5 }
