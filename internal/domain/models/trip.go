package models

import "time"

const (
	TripUpcoming  = "Upcoming"
	TripOngoing   = "Ongoing"
	TripCompleted = "Completed"
	TripCancelled = "Cancelled"
)

// CancelledByAdmin tags who cancelled a trip; drivers cannot cancel.
const CancelledByAdmin = "Administrator"

type Trip struct {
	ID                 int64     `json:"id"`
	DriverID           *int64    `json:"driver_id,omitempty"`
	VehicleID          *int64    `json:"vehicle_id,omitempty"`
	TripName           string    `json:"trip_name"`
	StartLocation      string    `json:"start_location"`
	EndLocation        string    `json:"end_location"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	PriceCents         int64     `json:"price_cents"`
	AvailableSeats     int       `json:"available_seats"`
	Status             string    `json:"status"`
	CancelledBy        string    `json:"cancelled_by,omitempty"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Denormalized for listings.
	DriverName  string `json:"driver_name,omitempty"`
	VehicleName string `json:"vehicle_name,omitempty"`
}

// Bookable reports whether the trip accepts new bookings right now. The
// departure check is strict: a trip departing exactly at now is closed.
func (t Trip) Bookable(now time.Time) bool {
	return t.Status == TripUpcoming &&
		t.AvailableSeats > 0 &&
		t.DepartureTime.After(now)
}

// Terminal reports whether no further status transition is allowed.
func (t Trip) Terminal() bool {
	return t.Status == TripCompleted || t.Status == TripCancelled
}
