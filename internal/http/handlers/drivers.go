package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"transport/internal/http/middleware"
	"transport/internal/repositories"
	"transport/internal/services"
	"transport/internal/utils"
)

type driverRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`

	VehicleID     *int64 `json:"vehicle_id"`
	LicenseNumber string `json:"license_number"`
	LicenseType   string `json:"license_type"`
	LicenseExpiry string `json:"license_expiry"`
	Status        string `json:"status"`
}

func (r driverRequest) input(c *gin.Context) (services.DriverInput, bool) {
	in := services.DriverInput{
		Name:          r.Name,
		Username:      r.Username,
		Email:         r.Email,
		Phone:         r.Phone,
		Password:      r.Password,
		VehicleID:     r.VehicleID,
		LicenseNumber: r.LicenseNumber,
		LicenseType:   r.LicenseType,
		Status:        r.Status,
	}
	if strings.TrimSpace(r.LicenseExpiry) != "" {
		expiry, err := utils.ParseDate(r.LicenseExpiry)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid license_expiry")
			return in, false
		}
		in.LicenseExpiry = &expiry
	}
	return in, true
}

// GET /api/drivers?q=&status=
func GetDrivers(c *gin.Context) {
	drivers, err := (repositories.DriverRepo{}).List(c.Query("q"), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// GET /api/drivers/:id
func GetDriverByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	driver, err := (repositories.DriverRepo{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// POST /api/drivers — provisions the user, account and driver profile.
func CreateDriver(c *gin.Context) {
	var req driverRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	driver, err := directorySvc(c).CreateDriver(middleware.UserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req driverRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	driver, err := directorySvc(c).UpdateDriver(middleware.UserID(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := directorySvc(c).DeleteDriver(middleware.UserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}

type assignVehicleRequest struct {
	VehicleID int64 `json:"vehicle_id"`
}

// PUT /api/drivers/:id/vehicle — vehicle_id 0 clears the assignment.
func AssignDriverVehicle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req assignVehicleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	driver, err := directorySvc(c).AssignVehicle(middleware.UserID(c), id, req.VehicleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}
