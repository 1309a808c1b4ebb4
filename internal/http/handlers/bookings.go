package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"transport/internal/http/middleware"
	"transport/internal/services"
	"transport/internal/utils"
)

func bookingSvc(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

type bookRequest struct {
	TripID int64 `json:"trip_id"`
	Seats  int   `json:"seats"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req bookRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.TripID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid trip_id")
		return
	}
	booking, err := bookingSvc(c).Book(req.TripID, middleware.UserID(c), req.Seats)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"booking":     booking,
		"total_price": utils.FormatMoney(booking.TotalPriceCents),
	})
}

// GET /api/bookings?status=
func GetBookings(c *gin.Context) {
	bookings, err := bookingSvc(c).ListByUser(middleware.UserID(c), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bookingSvc(c).GetForUser(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":     booking,
		"total_price": utils.FormatMoney(booking.TotalPriceCents),
	})
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := bookingSvc(c).CancelBooking(id, middleware.UserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

type rateRequest struct {
	DriverRating  int    `json:"driver_rating"`
	VehicleRating int    `json:"vehicle_rating"`
	Comment       string `json:"comment"`
}

// POST /api/bookings/:id/rate
func RateBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req rateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.RatingService{RequestID: middleware.GetRequestID(c)}
	rating, err := svc.Rate(id, middleware.UserID(c), req.DriverRating, req.VehicleRating, req.Comment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}

// GET /api/bookings/:id/e-ticket
func DownloadETicket(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.ETicket(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdf, filename)
}

// GET /api/bookings/:id/receipt
func DownloadReceipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.Receipt(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdf, filename)
}

func servePDF(c *gin.Context, pdf []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
