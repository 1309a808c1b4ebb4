package services

import (
	"database/sql"
	"time"

	intconfig "transport/internal/config"
	"transport/internal/domain/models"
	"transport/internal/repositories"
)

type ReportService struct {
	UserRepo    repositories.UserRepo
	DriverRepo  repositories.DriverRepo
	VehicleRepo repositories.VehicleRepo
	TripRepo    repositories.TripRepo
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
}

func (s ReportService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReportService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

func (s ReportService) drivers() repositories.DriverRepo {
	if s.DriverRepo.DB != nil {
		return s.DriverRepo
	}
	return repositories.DriverRepo{DB: s.db()}
}

func (s ReportService) vehicles() repositories.VehicleRepo {
	if s.VehicleRepo.DB != nil {
		return s.VehicleRepo
	}
	return repositories.VehicleRepo{DB: s.db()}
}

func (s ReportService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s ReportService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

type AdminDashboard struct {
	TotalUsers     int                  `json:"total_users"`
	TotalDrivers   int                  `json:"total_drivers"`
	TotalVehicles  int                  `json:"total_vehicles"`
	TotalTrips     int                  `json:"total_trips"`
	UpcomingTrips  int                  `json:"upcoming_trips"`
	OngoingTrips   int                  `json:"ongoing_trips"`
	RecentBookings []models.TripBooking `json:"recent_bookings"`
	RecentUsers    []models.User        `json:"recent_users"`
}

func (s ReportService) AdminDashboard() (AdminDashboard, error) {
	var d AdminDashboard
	var err error
	if d.TotalUsers, err = s.users().Count(); err != nil {
		return d, err
	}
	if d.TotalDrivers, err = s.drivers().Count(); err != nil {
		return d, err
	}
	if d.TotalVehicles, err = s.vehicles().Count(); err != nil {
		return d, err
	}
	if d.TotalTrips, err = s.trips().Count(); err != nil {
		return d, err
	}
	if d.UpcomingTrips, err = s.trips().CountByStatus(models.TripUpcoming); err != nil {
		return d, err
	}
	if d.OngoingTrips, err = s.trips().CountByStatus(models.TripOngoing); err != nil {
		return d, err
	}
	if d.RecentBookings, err = s.bookings().Recent(10); err != nil {
		return d, err
	}
	if d.RecentUsers, err = s.users().Recent(10); err != nil {
		return d, err
	}
	return d, nil
}

type DriverDashboard struct {
	Driver         models.Driver `json:"driver"`
	UpcomingTrips  []models.Trip `json:"upcoming_trips"`
	OngoingTrip    *models.Trip  `json:"ongoing_trip,omitempty"`
	CompletedTrips int           `json:"completed_trips"`
}

func (s ReportService) DriverDashboard(driverID int64) (DriverDashboard, error) {
	var d DriverDashboard
	driver, err := s.drivers().GetByID(driverID)
	if err != nil {
		return d, err
	}
	d.Driver = driver
	if d.UpcomingTrips, err = s.trips().ListByDriver(driverID, models.TripUpcoming); err != nil {
		return d, err
	}
	ongoing, err := s.trips().ListByDriver(driverID, models.TripOngoing)
	if err != nil {
		return d, err
	}
	if len(ongoing) > 0 {
		d.OngoingTrip = &ongoing[0]
	}
	completed, err := s.trips().ListByDriver(driverID, models.TripCompleted)
	if err != nil {
		return d, err
	}
	d.CompletedTrips = len(completed)
	return d, nil
}

type PassengerDashboard struct {
	UpcomingBookings  []models.TripBooking `json:"upcoming_bookings"`
	CompletedBookings int                  `json:"completed_bookings"`
	NextTrips         []models.Trip        `json:"next_trips"`
}

func (s ReportService) PassengerDashboard(userID int64) (PassengerDashboard, error) {
	var d PassengerDashboard
	var err error
	if d.UpcomingBookings, err = s.bookings().ListByUser(userID, models.BookingConfirmed); err != nil {
		return d, err
	}
	if d.CompletedBookings, err = s.bookings().CountByUserAndStatus(userID, models.BookingCompleted); err != nil {
		return d, err
	}
	trips, err := s.trips().Search("", "", nil, time.Now())
	if err != nil {
		return d, err
	}
	if len(trips) > 5 {
		trips = trips[:5]
	}
	d.NextTrips = trips
	return d, nil
}
