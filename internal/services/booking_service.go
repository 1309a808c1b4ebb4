package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
	"transport/internal/utils"
)

type BookingService struct {
	TripRepo    repositories.TripRepo
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Book reserves seats on a trip for a passenger. The trip row is locked for
// the duration of the transaction so concurrent bookings serialize; the
// decrement is guarded so the seat counter can never go negative.
func (s BookingService) Book(tripID, userID int64, seats int) (models.TripBooking, error) {
	var out models.TripBooking
	if seats < 1 {
		return out, domain.ValidationError{Field: "seats", Msg: "must be at least 1"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	trip, err := s.trips().GetForUpdateTx(tx, tripID)
	if err != nil {
		return out, err
	}
	if !trip.Bookable(s.now()) {
		return out, domain.ConflictError{Resource: "trip", Msg: "not bookable"}
	}
	already, err := s.bookings().HasConfirmedTx(tx, tripID, userID)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if already {
		return out, domain.ConflictError{Resource: "booking", Msg: "already booked"}
	}
	if seats > trip.AvailableSeats {
		return out, domain.ConflictError{Resource: "trip", Msg: "insufficient seats"}
	}

	booking := models.TripBooking{
		TripID:          tripID,
		UserID:          userID,
		SeatsBooked:     seats,
		TotalPriceCents: trip.PriceCents * int64(seats),
		Status:          models.BookingConfirmed,
	}
	id, err := s.bookings().InsertTx(tx, booking)
	if err != nil {
		if isDuplicateKey(err) {
			return out, domain.ConflictError{Resource: "booking", Msg: "already booked", Err: err}
		}
		return out, domain.InternalError{Err: err}
	}
	if err := s.trips().AdjustSeatsTx(tx, tripID, -seats); err != nil {
		return out, err
	}
	if err := tx.Commit(); err != nil {
		return out, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "bookings", "book",
		fmt.Sprintf("booking_id=%d trip_id=%d user_id=%d seats=%d", id, tripID, userID, seats))
	return s.bookings().GetByID(id)
}

// CancelBooking returns the seats to the trip. Only the owner can cancel,
// only Confirmed bookings, and only while the trip is still Upcoming.
func (s BookingService) CancelBooking(bookingID, userID int64) error {
	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	booking, err := s.bookings().GetForUpdateTx(tx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	if booking.Status != models.BookingConfirmed {
		return domain.ConflictError{Resource: "booking", Msg: "only confirmed bookings can be cancelled"}
	}
	trip, err := s.trips().GetForUpdateTx(tx, booking.TripID)
	if err != nil {
		return err
	}
	if trip.Status != models.TripUpcoming {
		return domain.ConflictError{Resource: "trip", Msg: "trip already departed"}
	}
	if err := s.bookings().UpdateStatusTx(tx, bookingID, models.BookingCancelled); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.trips().AdjustSeatsTx(tx, booking.TripID, booking.SeatsBooked); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "bookings", "cancel",
		fmt.Sprintf("booking_id=%d user_id=%d", bookingID, userID))
	return nil
}

func (s BookingService) ListByUser(userID int64, status string) ([]models.TripBooking, error) {
	return s.bookings().ListByUser(userID, status)
}

// GetForUser loads a booking only when the caller owns it.
func (s BookingService) GetForUser(bookingID, userID int64) (models.TripBooking, error) {
	b, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return b, err
	}
	if b.UserID != userID {
		return models.TripBooking{}, domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	return b, nil
}

// Manifest lists Confirmed passengers of a trip for its assigned driver.
func (s BookingService) Manifest(tripID, driverID int64) ([]repositories.ManifestEntry, error) {
	trip, err := s.trips().GetByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip.DriverID == nil || *trip.DriverID != driverID {
		return nil, domain.ForbiddenError{Msg: "trip is not assigned to this driver"}
	}
	return s.bookings().ManifestByTrip(tripID)
}

// isDuplicateKey recognizes a MySQL unique key violation (error 1062), the
// storage-level backstop behind the duplicate-booking pre-check.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
