package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport/internal/domain/models"
	"transport/internal/http/middleware"
	"transport/internal/repositories"
	"transport/internal/services"
)

// currentDriver resolves the driver profile behind the authenticated user.
func currentDriver(c *gin.Context) (models.Driver, bool) {
	driver, err := (repositories.DriverRepo{}).GetByUserID(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return driver, false
	}
	return driver, true
}

// GET /api/driver/trips?status=
func GetDriverTrips(c *gin.Context) {
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	trips, err := (repositories.TripRepo{}).ListByDriver(driver.ID, c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/driver/trips/:id — trip detail with passenger manifest.
func GetDriverTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	trip, err := (repositories.TripRepo{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	manifest, err := svc.Manifest(id, driver.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip, "passengers": manifest})
}

// POST /api/driver/trips/:id/start
func StartTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	if err := tripSvc(c).Start(id, driver.ID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip started"})
}

// POST /api/driver/trips/:id/complete
func CompleteTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	if err := tripSvc(c).Complete(id, driver.ID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip completed"})
}
