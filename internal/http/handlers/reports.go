package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"transport/internal/http/middleware"
	"transport/internal/repositories"
	"transport/internal/services"
)

// GET /api/admin/dashboard
func AdminDashboard(c *gin.Context) {
	dashboard, err := (services.ReportService{}).AdminDashboard()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GET /api/driver/dashboard
func DriverDashboard(c *gin.Context) {
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	dashboard, err := (services.ReportService{}).DriverDashboard(driver.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GET /api/passenger/dashboard
func PassengerDashboard(c *gin.Context) {
	dashboard, err := (services.ReportService{}).PassengerDashboard(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GET /api/admin/logs?limit=
func GetAdminLogs(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	logs, err := (repositories.AdminLogRepo{}).List(limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
