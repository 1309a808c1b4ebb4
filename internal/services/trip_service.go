package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
	"transport/internal/utils"
)

type TripService struct {
	TripRepo    repositories.TripRepo
	DriverRepo  repositories.DriverRepo
	VehicleRepo repositories.VehicleRepo
	BookingRepo repositories.BookingRepo
	LogRepo     repositories.AdminLogRepo
	DB          *sql.DB
	RequestID   string
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TripService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s TripService) drivers() repositories.DriverRepo {
	if s.DriverRepo.DB != nil {
		return s.DriverRepo
	}
	return repositories.DriverRepo{DB: s.db()}
}

func (s TripService) vehicles() repositories.VehicleRepo {
	if s.VehicleRepo.DB != nil {
		return s.VehicleRepo
	}
	return repositories.VehicleRepo{DB: s.db()}
}

func (s TripService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s TripService) logs() repositories.AdminLogRepo {
	if s.LogRepo.DB != nil {
		return s.LogRepo
	}
	return repositories.AdminLogRepo{DB: s.db()}
}

// TripInput carries the admin-editable trip fields.
type TripInput struct {
	DriverID       *int64
	VehicleID      *int64
	TripName       string
	StartLocation  string
	EndLocation    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	PriceCents     int64
	AvailableSeats int
}

func (s TripService) validate(in TripInput) error {
	if strings.TrimSpace(in.TripName) == "" {
		return domain.ValidationError{Field: "trip_name", Msg: "required"}
	}
	if strings.TrimSpace(in.StartLocation) == "" {
		return domain.ValidationError{Field: "start_location", Msg: "required"}
	}
	if strings.TrimSpace(in.EndLocation) == "" {
		return domain.ValidationError{Field: "end_location", Msg: "required"}
	}
	if !in.ArrivalTime.After(in.DepartureTime) {
		return domain.ValidationError{Field: "arrival_time", Msg: "must be after departure time"}
	}
	if in.PriceCents < 0 {
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if in.AvailableSeats < 1 {
		return domain.ValidationError{Field: "available_seats", Msg: "must be at least 1"}
	}
	if in.DriverID != nil {
		if _, err := s.drivers().GetByID(*in.DriverID); err != nil {
			return err
		}
	}
	if in.VehicleID != nil {
		v, err := s.vehicles().GetByID(*in.VehicleID)
		if err != nil {
			return err
		}
		if in.AvailableSeats > v.Capacity {
			return domain.ValidationError{Field: "available_seats", Msg: "exceeds vehicle capacity"}
		}
	}
	return nil
}

func (s TripService) Create(adminID int64, in TripInput) (models.Trip, error) {
	if err := s.validate(in); err != nil {
		return models.Trip{}, err
	}
	id, err := s.trips().Create(models.Trip{
		DriverID:       in.DriverID,
		VehicleID:      in.VehicleID,
		TripName:       strings.TrimSpace(in.TripName),
		StartLocation:  strings.TrimSpace(in.StartLocation),
		EndLocation:    strings.TrimSpace(in.EndLocation),
		DepartureTime:  in.DepartureTime,
		ArrivalTime:    in.ArrivalTime,
		PriceCents:     in.PriceCents,
		AvailableSeats: in.AvailableSeats,
	})
	if err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	s.audit(adminID, "create", id, fmt.Sprintf("created trip %q", in.TripName))
	utils.LogEvent(s.RequestID, "trips", "create", fmt.Sprintf("trip_id=%d", id))
	return s.trips().GetByID(id)
}

// Update rewrites the editable fields of an Upcoming trip.
func (s TripService) Update(adminID, id int64, in TripInput) (models.Trip, error) {
	trip, err := s.trips().GetByID(id)
	if err != nil {
		return models.Trip{}, err
	}
	if trip.Status != models.TripUpcoming {
		return models.Trip{}, domain.ConflictError{Resource: "trip", Msg: "only upcoming trips can be edited"}
	}
	if err := s.validate(in); err != nil {
		return models.Trip{}, err
	}
	if err := s.trips().Update(id, models.Trip{
		DriverID:       in.DriverID,
		VehicleID:      in.VehicleID,
		TripName:       strings.TrimSpace(in.TripName),
		StartLocation:  strings.TrimSpace(in.StartLocation),
		EndLocation:    strings.TrimSpace(in.EndLocation),
		DepartureTime:  in.DepartureTime,
		ArrivalTime:    in.ArrivalTime,
		PriceCents:     in.PriceCents,
		AvailableSeats: in.AvailableSeats,
	}); err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	s.audit(adminID, "update", id, fmt.Sprintf("updated trip %q", in.TripName))
	return s.trips().GetByID(id)
}

// Start moves the trip to Ongoing on behalf of its assigned driver. Driver
// availability flips in the same transaction.
func (s TripService) Start(tripID, driverID int64) error {
	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	trip, err := s.trips().GetForUpdateTx(tx, tripID)
	if err != nil {
		return err
	}
	if trip.DriverID == nil || *trip.DriverID != driverID {
		return domain.ForbiddenError{Msg: "trip is not assigned to this driver"}
	}
	ok, err := s.trips().TransitionTx(tx, tripID, models.TripUpcoming, models.TripOngoing)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.ConflictError{Resource: "trip", Msg: "only upcoming trips can be started"}
	}
	if err := s.drivers().UpdateStatusTx(tx, driverID, models.DriverOnTrip); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "trips", "start", fmt.Sprintf("trip_id=%d driver_id=%d", tripID, driverID))
	return nil
}

// Complete closes out an Ongoing trip: Confirmed bookings become Completed,
// the driver goes back to Available with the trip counted.
func (s TripService) Complete(tripID, driverID int64) error {
	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	trip, err := s.trips().GetForUpdateTx(tx, tripID)
	if err != nil {
		return err
	}
	if trip.DriverID == nil || *trip.DriverID != driverID {
		return domain.ForbiddenError{Msg: "trip is not assigned to this driver"}
	}
	ok, err := s.trips().TransitionTx(tx, tripID, models.TripOngoing, models.TripCompleted)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.ConflictError{Resource: "trip", Msg: "only ongoing trips can be completed"}
	}
	if err := s.bookings().CompleteConfirmedByTripTx(tx, tripID); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.drivers().UpdateStatusTx(tx, driverID, models.DriverAvailable); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.drivers().IncrementTotalTripsTx(tx, driverID); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "trips", "complete", fmt.Sprintf("trip_id=%d driver_id=%d", tripID, driverID))
	return nil
}

// Cancel tears a trip down administratively. Every booking on the trip is
// cancelled regardless of its status; re-cancelling is rejected.
func (s TripService) Cancel(tripID, adminID int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return domain.ValidationError{Field: "reason", Msg: "required"}
	}
	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	trip, err := s.trips().GetForUpdateTx(tx, tripID)
	if err != nil {
		return err
	}
	if trip.Status == models.TripCancelled {
		return domain.ConflictError{Resource: "trip", Msg: "already cancelled"}
	}
	if err := s.trips().CancelTx(tx, tripID, models.CancelledByAdmin, strings.TrimSpace(reason)); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.bookings().CancelAllByTripTx(tx, tripID); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	s.audit(adminID, "cancel", tripID, "cancelled trip: "+strings.TrimSpace(reason))
	utils.LogEvent(s.RequestID, "trips", "cancel", fmt.Sprintf("trip_id=%d admin_id=%d", tripID, adminID))
	return nil
}

// audit writes the admin trail best-effort; a logging failure never fails
// the operation it describes.
func (s TripService) audit(adminID int64, action string, tripID int64, desc string) {
	_ = s.logs().Insert(models.AdminLog{
		AdminID:     adminID,
		ActionType:  action,
		EntityType:  "trip",
		EntityID:    tripID,
		Description: desc,
	})
}
