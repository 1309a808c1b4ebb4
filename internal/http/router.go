package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "transport/internal/config"
	"transport/internal/domain/models"
	h "transport/internal/http/handlers"
	"transport/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Trip browsing is open to every authenticated role.
		trips := api.Group("/trips", middleware.Auth())
		trips.GET("/search", h.SearchTrips)
		trips.GET("/:id", h.GetTripByID)

		admin := api.Group("", middleware.Auth(), middleware.RequireRoles(models.RoleAdministrator))
		{
			admin.GET("/users", h.GetUsers)
			admin.GET("/users/:id", h.GetUserByID)
			admin.POST("/users", h.CreateUser)
			admin.PUT("/users/:id", h.UpdateUser)
			admin.DELETE("/users/:id", h.DeleteUser)
			admin.PUT("/users/:id/status", h.SetAccountStatus)

			admin.GET("/vehicles", h.GetVehicles)
			admin.GET("/vehicles/:id", h.GetVehicleByID)
			admin.POST("/vehicles", h.CreateVehicle)
			admin.PUT("/vehicles/:id", h.UpdateVehicle)
			admin.DELETE("/vehicles/:id", h.DeleteVehicle)

			admin.GET("/drivers", h.GetDrivers)
			admin.GET("/drivers/:id", h.GetDriverByID)
			admin.POST("/drivers", h.CreateDriver)
			admin.PUT("/drivers/:id", h.UpdateDriver)
			admin.DELETE("/drivers/:id", h.DeleteDriver)
			admin.PUT("/drivers/:id/vehicle", h.AssignDriverVehicle)

			admin.GET("/trips", h.GetTrips)
			admin.POST("/trips", h.CreateTrip)
			admin.PUT("/trips/:id", h.UpdateTrip)
			admin.POST("/trips/:id/cancel", h.CancelTrip)

			admin.GET("/admin/logs", h.GetAdminLogs)
			admin.GET("/admin/dashboard", h.AdminDashboard)
		}

		driver := api.Group("/driver", middleware.Auth(), middleware.RequireRoles(models.RoleDriver))
		{
			driver.GET("/trips", h.GetDriverTrips)
			driver.GET("/trips/:id", h.GetDriverTrip)
			driver.POST("/trips/:id/start", h.StartTrip)
			driver.POST("/trips/:id/complete", h.CompleteTrip)
			driver.GET("/dashboard", h.DriverDashboard)
		}

		passenger := api.Group("", middleware.Auth(), middleware.RequireRoles(models.RolePassenger))
		{
			passenger.POST("/bookings", h.CreateBooking)
			passenger.GET("/bookings", h.GetBookings)
			passenger.GET("/bookings/:id", h.GetBookingByID)
			passenger.POST("/bookings/:id/cancel", h.CancelBooking)
			passenger.POST("/bookings/:id/rate", h.RateBooking)
			passenger.GET("/bookings/:id/e-ticket", h.DownloadETicket)
			passenger.GET("/bookings/:id/receipt", h.DownloadReceipt)
			passenger.GET("/passenger/dashboard", h.PassengerDashboard)
		}
	}

	return r
}
