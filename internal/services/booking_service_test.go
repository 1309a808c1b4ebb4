package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
)

var tripCols = []string{
	"id", "driver_id", "vehicle_id", "trip_name", "start_location", "end_location",
	"departure_time", "arrival_time", "price_cents", "available_seats", "status",
	"cancelled_by", "cancellation_reason", "created_at", "updated_at",
}

var bookingCols = []string{
	"id", "trip_id", "user_id", "seats_booked", "total_price_cents",
	"status", "booking_date", "created_at", "updated_at",
}

func tripRow(id int64, driverID any, priceCents int64, seats int, status string, departure time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(tripCols).AddRow(
		id, driverID, nil, "City Express", "Springfield", "Shelbyville",
		departure, departure.Add(2*time.Hour), priceCents, seats, status,
		nil, nil, now, now,
	)
}

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		TripRepo:    repositories.TripRepo{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
		DB:          db,
		Now:         func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) },
	}
	return svc, mock, func() { db.Close() }
}

func TestBookHappyPath(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	departure := svc.Now().Add(24 * time.Hour)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, nil, 1000, 3, models.TripUpcoming, departure))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM trip_bookings").WithArgs(int64(1), int64(7), models.BookingConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO trip_bookings").
		WithArgs(int64(1), int64(7), 2, int64(2000), models.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("UPDATE trips SET available_seats").WithArgs(-2, int64(1), -2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM trip_bookings b WHERE b.id=\\?").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(5, 1, 7, 2, 2000, models.BookingConfirmed, now, now, now))

	booking, err := svc.Book(1, 7, 2)
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if booking.TotalPriceCents != 2000 {
		t.Fatalf("total price = %d, want 2000", booking.TotalPriceCents)
	}
	if booking.Status != models.BookingConfirmed {
		t.Fatalf("status = %q, want Confirmed", booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookInsufficientSeats(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	departure := svc.Now().Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, nil, 1000, 1, models.TripUpcoming, departure))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM trip_bookings").WithArgs(int64(1), int64(7), models.BookingConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := svc.Book(1, 7, 2)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookNotBookable(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	// Departure already passed.
	departure := svc.Now().Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, nil, 1000, 3, models.TripUpcoming, departure))
	mock.ExpectRollback()

	_, err := svc.Book(1, 7, 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookDuplicate(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	departure := svc.Now().Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, nil, 1000, 3, models.TripUpcoming, departure))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM trip_bookings").WithArgs(int64(1), int64(7), models.BookingConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Book(1, 7, 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookRejectsZeroSeats(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	if _, err := svc.Book(1, 7, 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCancelBookingRestoresSeats(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	departure := svc.Now().Add(24 * time.Hour)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trip_bookings b WHERE b.id=\\? FOR UPDATE").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(5, 1, 7, 2, 2000, models.BookingConfirmed, now, now, now))
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, nil, 1000, 1, models.TripUpcoming, departure))
	mock.ExpectExec("UPDATE trip_bookings SET status=\\? WHERE id=\\?").
		WithArgs(models.BookingCancelled, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trips SET available_seats").WithArgs(2, int64(1), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.CancelBooking(5, 7); err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingWrongOwner(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trip_bookings b WHERE b.id=\\? FOR UPDATE").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(5, 1, 7, 2, 2000, models.BookingConfirmed, now, now, now))
	mock.ExpectRollback()

	if err := svc.CancelBooking(5, 99); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingAfterDeparture(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	departure := svc.Now().Add(24 * time.Hour)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trip_bookings b WHERE b.id=\\? FOR UPDATE").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(5, 1, 7, 2, 2000, models.BookingConfirmed, now, now, now))
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, nil, 1000, 1, models.TripOngoing, departure))
	mock.ExpectRollback()

	if err := svc.CancelBooking(5, 7); !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
