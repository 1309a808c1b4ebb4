package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
)

func newTripService(t *testing.T) (TripService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := TripService{
		TripRepo:    repositories.TripRepo{DB: db},
		DriverRepo:  repositories.DriverRepo{DB: db},
		VehicleRepo: repositories.VehicleRepo{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
		LogRepo:     repositories.AdminLogRepo{DB: db},
		DB:          db,
	}
	return svc, mock, func() { db.Close() }
}

func TestStartTrip(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	departure := time.Now().Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, int64(3), 1000, 5, models.TripUpcoming, departure))
	mock.ExpectExec("UPDATE trips SET status=\\? WHERE id=\\? AND status=\\?").
		WithArgs(models.TripOngoing, int64(1), models.TripUpcoming).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET status=\\?").
		WithArgs(models.DriverOnTrip, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Start(1, 3); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStartTripWrongDriver(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, int64(3), 1000, 5, models.TripUpcoming, time.Now().Add(time.Hour)))
	mock.ExpectRollback()

	if err := svc.Start(1, 9); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStartTripAlreadyOngoing(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, int64(3), 1000, 5, models.TripOngoing, time.Now().Add(time.Hour)))
	mock.ExpectExec("UPDATE trips SET status=\\? WHERE id=\\? AND status=\\?").
		WithArgs(models.TripOngoing, int64(1), models.TripUpcoming).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := svc.Start(1, 3); !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteTripCascades(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, int64(3), 1000, 5, models.TripOngoing, time.Now()))
	mock.ExpectExec("UPDATE trips SET status=\\? WHERE id=\\? AND status=\\?").
		WithArgs(models.TripCompleted, int64(1), models.TripOngoing).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_bookings SET status=\\? WHERE trip_id=\\? AND status=\\?").
		WithArgs(models.BookingCompleted, int64(1), models.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE drivers SET status=\\?").
		WithArgs(models.DriverAvailable, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET total_trips = total_trips \\+ 1").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Complete(1, 3); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTripRequiresReason(t *testing.T) {
	svc, _, done := newTripService(t)
	defer done()

	if err := svc.Cancel(1, 2, "  "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCancelTripCascadesBookings(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(tripRow(1, int64(3), 1000, 5, models.TripUpcoming, time.Now().Add(time.Hour)))
	mock.ExpectExec("UPDATE trips SET status=\\?, cancelled_by=\\?, cancellation_reason=\\?").
		WithArgs(models.TripCancelled, models.CancelledByAdmin, "vehicle breakdown", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_bookings SET status=\\? WHERE trip_id=\\?").
		WithArgs(models.BookingCancelled, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO admin_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := svc.Cancel(1, 2, "vehicle breakdown"); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTripTwiceRejected(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	row := tripRow(1, int64(3), 1000, 5, models.TripCancelled, time.Now().Add(time.Hour))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(row)
	mock.ExpectRollback()

	if err := svc.Cancel(1, 2, "again"); !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripValidation(t *testing.T) {
	svc, _, done := newTripService(t)
	defer done()

	departure := time.Now().Add(24 * time.Hour)

	cases := []struct {
		name string
		in   TripInput
	}{
		{"empty name", TripInput{StartLocation: "A", EndLocation: "B", DepartureTime: departure, ArrivalTime: departure.Add(time.Hour), AvailableSeats: 10}},
		{"arrival before departure", TripInput{TripName: "T", StartLocation: "A", EndLocation: "B", DepartureTime: departure, ArrivalTime: departure.Add(-time.Hour), AvailableSeats: 10}},
		{"arrival equals departure", TripInput{TripName: "T", StartLocation: "A", EndLocation: "B", DepartureTime: departure, ArrivalTime: departure, AvailableSeats: 10}},
		{"negative price", TripInput{TripName: "T", StartLocation: "A", EndLocation: "B", DepartureTime: departure, ArrivalTime: departure.Add(time.Hour), PriceCents: -1, AvailableSeats: 10}},
		{"zero seats", TripInput{TripName: "T", StartLocation: "A", EndLocation: "B", DepartureTime: departure, ArrivalTime: departure.Add(time.Hour)}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(1, tc.in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreateTripRejectsSeatsOverCapacity(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	now := time.Now()
	vehicleID := int64(4)

	mock.ExpectQuery("FROM vehicles WHERE id=\\?").WithArgs(vehicleID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "plate_number", "vehicle_type", "brand", "model", "year",
			"capacity", "color", "average_rating", "status", "created_at", "updated_at",
		}).AddRow(4, "AB-123", models.VehicleTypeBus, "Volvo", "9700", 2021, 12, "white", 0.0, models.VehicleAvailable, now, now))

	departure := now.Add(24 * time.Hour)
	_, err := svc.Create(1, TripInput{
		VehicleID:      &vehicleID,
		TripName:       "T",
		StartLocation:  "A",
		EndLocation:    "B",
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(time.Hour),
		AvailableSeats: 20,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
