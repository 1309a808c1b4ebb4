package models

import "time"

const (
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
	BookingCompleted = "Completed"
)

// TripBooking holds a passenger's seats against a trip's inventory. The
// total price is a snapshot taken at booking time; later trip price changes
// never touch it.
type TripBooking struct {
	ID              int64     `json:"id"`
	TripID          int64     `json:"trip_id"`
	UserID          int64     `json:"user_id"`
	SeatsBooked     int       `json:"seats_booked"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	BookingDate     time.Time `json:"booking_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Denormalized trip fields for listings.
	TripName      string    `json:"trip_name,omitempty"`
	StartLocation string    `json:"start_location,omitempty"`
	EndLocation   string    `json:"end_location,omitempty"`
	DepartureTime time.Time `json:"departure_time,omitempty"`
	TripStatus    string    `json:"trip_status,omitempty"`
}
