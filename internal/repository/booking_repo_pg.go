package repository

import (
	"context"
	"errors"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByRider(ctx context.Context, riderID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, reference, rider_id, train_id, journey_date, passenger_name, passenger_age, passenger_gender, seat_label, fare_charged, status, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (reference, rider_id, train_id, journey_date, passenger_name, passenger_age, passenger_gender, seat_label, fare_charged, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.RiderID, booking.TrainID, booking.JourneyDate,
		booking.PassengerName, booking.PassengerAge, booking.PassengerGender,
		booking.SeatLabel, booking.FareCharged, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListByRider(ctx context.Context, riderID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE rider_id=$1 ORDER BY created_at DESC`, riderID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// UpdateStatus flips the booking to the given status. The update is
// conditional on the status actually changing: a row already carrying the
// requested status is left untouched and reported as ErrAlreadyCancelled, so
// of two racing cancels exactly one observes the transition.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status <> $1 RETURNING `+bookingColumns, status, id)
	b, err := scanBooking(row)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyCancelled
	}
	return nil, domain.ErrBookingNotFound
}

func (r *PGBookingRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE reference=$1)`, reference).Scan(&exists)
	return exists, err
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.RiderID, &b.TrainID, &b.JourneyDate,
		&b.PassengerName, &b.PassengerAge, &b.PassengerGender, &b.SeatLabel,
		&b.FareCharged, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
