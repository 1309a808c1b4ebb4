package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport/internal/http/middleware"
	"transport/internal/repositories"
	"transport/internal/services"
)

type vehicleRequest struct {
	PlateNumber string `json:"plate_number"`
	VehicleType string `json:"vehicle_type"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Capacity    int    `json:"capacity"`
	Color       string `json:"color"`
	Status      string `json:"status"`
}

func (r vehicleRequest) input() services.VehicleInput {
	return services.VehicleInput{
		PlateNumber: r.PlateNumber,
		VehicleType: r.VehicleType,
		Brand:       r.Brand,
		Model:       r.Model,
		Year:        r.Year,
		Capacity:    r.Capacity,
		Color:       r.Color,
		Status:      r.Status,
	}
}

// GET /api/vehicles?q=&status=
func GetVehicles(c *gin.Context) {
	vehicles, err := (repositories.VehicleRepo{}).List(c.Query("q"), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// GET /api/vehicles/:id
func GetVehicleByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	vehicle, err := (repositories.VehicleRepo{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var req vehicleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	vehicle, err := directorySvc(c).CreateVehicle(middleware.UserID(c), req.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req vehicleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	vehicle, err := directorySvc(c).UpdateVehicle(middleware.UserID(c), id, req.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := directorySvc(c).DeleteVehicle(middleware.UserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
