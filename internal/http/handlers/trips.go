package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"transport/internal/http/middleware"
	"transport/internal/repositories"
	"transport/internal/services"
	"transport/internal/utils"
)

type tripRequest struct {
	DriverID       *int64 `json:"driver_id"`
	VehicleID      *int64 `json:"vehicle_id"`
	TripName       string `json:"trip_name"`
	StartLocation  string `json:"start_location"`
	EndLocation    string `json:"end_location"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Price          string `json:"price"`
	AvailableSeats int    `json:"available_seats"`
}

func (r tripRequest) input(c *gin.Context) (services.TripInput, bool) {
	var in services.TripInput
	departure, err := utils.ParseTime(r.DepartureTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid departure_time")
		return in, false
	}
	arrival, err := utils.ParseTime(r.ArrivalTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid arrival_time")
		return in, false
	}
	priceCents, err := utils.ParseMoney(r.Price)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid price")
		return in, false
	}
	return services.TripInput{
		DriverID:       r.DriverID,
		VehicleID:      r.VehicleID,
		TripName:       r.TripName,
		StartLocation:  r.StartLocation,
		EndLocation:    r.EndLocation,
		DepartureTime:  departure,
		ArrivalTime:    arrival,
		PriceCents:     priceCents,
		AvailableSeats: r.AvailableSeats,
	}, true
}

func tripSvc(c *gin.Context) services.TripService {
	return services.TripService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/trips?q=&status= (admin)
func GetTrips(c *gin.Context) {
	trips, err := (repositories.TripRepo{}).ListAll(c.Query("q"), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	trip, err := (repositories.TripRepo{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip, "price": utils.FormatMoney(trip.PriceCents)})
}

// GET /api/trips/search?from=&to=&date=
func SearchTrips(c *gin.Context) {
	var date *time.Time
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid date")
			return
		}
		date = &d
	}
	trips, err := (repositories.TripRepo{}).Search(c.Query("from"), c.Query("to"), date, time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// POST /api/trips (admin)
func CreateTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	trip, err := tripSvc(c).Create(middleware.UserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// PUT /api/trips/:id (admin, Upcoming only)
func UpdateTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	trip, err := tripSvc(c).Update(middleware.UserID(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

type cancelTripRequest struct {
	Reason string `json:"reason"`
}

// POST /api/trips/:id/cancel (admin)
func CancelTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req cancelTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := tripSvc(c).Cancel(id, middleware.UserID(c), req.Reason); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip cancelled"})
}
