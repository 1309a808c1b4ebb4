package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
)

func newRatingService(t *testing.T) (RatingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := RatingService{
		RatingRepo:  repositories.RatingRepo{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
		TripRepo:    repositories.TripRepo{DB: db},
		DriverRepo:  repositories.DriverRepo{DB: db},
		VehicleRepo: repositories.VehicleRepo{DB: db},
		DB:          db,
	}
	return svc, mock, func() { db.Close() }
}

func ratedTripRow(driverID, vehicleID int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(tripCols).AddRow(
		1, driverID, vehicleID, "City Express", "Springfield", "Shelbyville",
		now.Add(-3*time.Hour), now.Add(-time.Hour), 1000, 5, models.TripCompleted,
		nil, nil, now, now,
	)
}

func expectBookingLookup(mock sqlmock.Sqlmock, status string) {
	now := time.Now()
	mock.ExpectQuery("FROM trip_bookings b WHERE b.id=\\?").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(5, 1, 7, 2, 2000, status, now, now, now))
}

func TestRateRecomputesAverages(t *testing.T) {
	svc, mock, done := newRatingService(t)
	defer done()

	expectBookingLookup(mock, models.BookingCompleted)
	mock.ExpectQuery("FROM trips WHERE id=\\?").WithArgs(int64(1)).
		WillReturnRows(ratedTripRow(3, 4))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM ratings").WithArgs(int64(1), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(int64(1), int64(7), int64(3), int64(4), 4, 5, "smooth ride").
		WillReturnResult(sqlmock.NewResult(9, 1))

	// Ratings 4 and 5 already stored for this driver and vehicle.
	mock.ExpectQuery("SELECT AVG\\(driver_rating\\) FROM ratings").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(4.5))
	mock.ExpectExec("UPDATE drivers SET average_rating=\\?").WithArgs(4.5, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT AVG\\(vehicle_rating\\) FROM ratings").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(4.5))
	mock.ExpectExec("UPDATE vehicles SET average_rating=\\?").WithArgs(4.5, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rating, err := svc.Rate(5, 7, 4, 5, "smooth ride")
	if err != nil {
		t.Fatalf("Rate returned error: %v", err)
	}
	if rating.ID != 9 {
		t.Fatalf("rating id = %d, want 9", rating.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRateRejectsUnfinishedTrip(t *testing.T) {
	svc, mock, done := newRatingService(t)
	defer done()

	now := time.Now()
	expectBookingLookup(mock, models.BookingConfirmed)
	mock.ExpectQuery("FROM trips WHERE id=\\?").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(tripCols).AddRow(
			1, nil, nil, "City Express", "Springfield", "Shelbyville",
			now.Add(time.Hour), now.Add(3*time.Hour), 1000, 5, models.TripUpcoming,
			nil, nil, now, now,
		))

	if _, err := svc.Rate(5, 7, 4, 5, ""); !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRateRejectsDuplicate(t *testing.T) {
	svc, mock, done := newRatingService(t)
	defer done()

	expectBookingLookup(mock, models.BookingCompleted)
	mock.ExpectQuery("FROM trips WHERE id=\\?").WithArgs(int64(1)).
		WillReturnRows(ratedTripRow(3, 4))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM ratings").WithArgs(int64(1), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	if _, err := svc.Rate(5, 7, 4, 5, ""); !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRateRejectsWrongOwner(t *testing.T) {
	svc, mock, done := newRatingService(t)
	defer done()

	expectBookingLookup(mock, models.BookingCompleted)

	if _, err := svc.Rate(5, 99, 4, 5, ""); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRateRejectsBadStars(t *testing.T) {
	svc, _, done := newRatingService(t)
	defer done()

	if _, err := svc.Rate(5, 7, 0, 5, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for 0 stars, got %v", err)
	}
	if _, err := svc.Rate(5, 7, 4, 6, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for 6 stars, got %v", err)
	}
}
