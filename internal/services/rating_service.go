package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
	"transport/internal/utils"
)

type RatingService struct {
	RatingRepo  repositories.RatingRepo
	BookingRepo repositories.BookingRepo
	TripRepo    repositories.TripRepo
	DriverRepo  repositories.DriverRepo
	VehicleRepo repositories.VehicleRepo
	DB          *sql.DB
	RequestID   string
}

func (s RatingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RatingService) ratings() repositories.RatingRepo {
	if s.RatingRepo.DB != nil {
		return s.RatingRepo
	}
	return repositories.RatingRepo{DB: s.db()}
}

func (s RatingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s RatingService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s RatingService) drivers() repositories.DriverRepo {
	if s.DriverRepo.DB != nil {
		return s.DriverRepo
	}
	return repositories.DriverRepo{DB: s.db()}
}

func (s RatingService) vehicles() repositories.VehicleRepo {
	if s.VehicleRepo.DB != nil {
		return s.VehicleRepo
	}
	return repositories.VehicleRepo{DB: s.db()}
}

// Rate records a passenger's verdict on a completed trip, then refreshes the
// rolling averages for the trip's driver and vehicle.
func (s RatingService) Rate(bookingID, userID int64, driverStars, vehicleStars int, comment string) (models.Rating, error) {
	var out models.Rating
	if !models.ValidStars(driverStars) {
		return out, domain.ValidationError{Field: "driver_rating", Msg: "must be between 1 and 5"}
	}
	if !models.ValidStars(vehicleStars) {
		return out, domain.ValidationError{Field: "vehicle_rating", Msg: "must be between 1 and 5"}
	}

	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return out, err
	}
	if booking.UserID != userID {
		return out, domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	trip, err := s.trips().GetByID(booking.TripID)
	if err != nil {
		return out, err
	}
	if trip.Status != models.TripCompleted {
		return out, domain.ConflictError{Resource: "trip", Msg: "only completed trips can be rated"}
	}
	exists, err := s.ratings().ExistsForTripUser(trip.ID, userID)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if exists {
		return out, domain.ConflictError{Resource: "rating", Msg: "trip already rated"}
	}

	rating := models.Rating{
		TripID:        trip.ID,
		UserID:        userID,
		DriverID:      trip.DriverID,
		VehicleID:     trip.VehicleID,
		DriverRating:  driverStars,
		VehicleRating: vehicleStars,
		DriverComment: strings.TrimSpace(comment),
	}
	id, err := s.ratings().Insert(rating)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	rating.ID = id

	if err := s.refreshAverages(trip.DriverID, trip.VehicleID); err != nil {
		return out, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "ratings", "rate",
		fmt.Sprintf("rating_id=%d trip_id=%d user_id=%d", id, trip.ID, userID))
	return rating, nil
}

// refreshAverages recomputes the full mean from the ratings table. A NULL
// aggregate (no rows) leaves the stored value untouched.
func (s RatingService) refreshAverages(driverID, vehicleID *int64) error {
	if driverID != nil {
		avg, err := s.ratings().AvgForDriver(*driverID)
		if err != nil {
			return err
		}
		if avg.Valid {
			if err := s.drivers().UpdateAverageRating(*driverID, avg.Float64); err != nil {
				return err
			}
		}
	}
	if vehicleID != nil {
		avg, err := s.ratings().AvgForVehicle(*vehicleID)
		if err != nil {
			return err
		}
		if avg.Valid {
			if err := s.vehicles().UpdateAverageRating(*vehicleID, avg.Float64); err != nil {
				return err
			}
		}
	}
	return nil
}
