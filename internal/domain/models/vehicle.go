package models

import "time"

const (
	VehicleAvailable   = "Available"
	VehicleInUse       = "In Use"
	VehicleMaintenance = "Maintenance"
	VehicleRetired     = "Retired"
)

const (
	VehicleTypeBus     = "Bus"
	VehicleTypeMinibus = "Minibus"
	VehicleTypeVan     = "Van"
	VehicleTypeCar     = "Car"
)

type Vehicle struct {
	ID            int64     `json:"id"`
	PlateNumber   string    `json:"plate_number"`
	VehicleType   string    `json:"vehicle_type"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	Year          int       `json:"year"`
	Capacity      int       `json:"capacity"`
	Color         string    `json:"color"`
	AverageRating float64   `json:"average_rating"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ValidVehicleStatus(status string) bool {
	switch status {
	case VehicleAvailable, VehicleInUse, VehicleMaintenance, VehicleRetired:
		return true
	}
	return false
}

func ValidVehicleType(t string) bool {
	switch t {
	case VehicleTypeBus, VehicleTypeMinibus, VehicleTypeVan, VehicleTypeCar:
		return true
	}
	return false
}
