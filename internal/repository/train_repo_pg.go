package repository

import (
	"context"
	"errors"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TrainRepository interface {
	List(ctx context.Context) ([]domain.Train, error)
	GetByID(ctx context.Context, id int64) (*domain.Train, error)
	GetByNumber(ctx context.Context, number string) (*domain.Train, error)
	Search(ctx context.Context, sourceID, destinationID int64) ([]domain.Train, error)
	Create(ctx context.Context, train *domain.Train) error
	Update(ctx context.Context, train *domain.Train) error
	Delete(ctx context.Context, id int64) error
}

type PGTrainRepository struct {
	db *pgxpool.Pool
}

func NewTrainRepository(db *pgxpool.Pool) TrainRepository {
	return &PGTrainRepository{db: db}
}

const trainColumns = `id, train_number, train_name, source_id, destination_id, departure_time, arrival_time, total_seats, available_seats, fare, created_at, updated_at`

func (r *PGTrainRepository) List(ctx context.Context) ([]domain.Train, error) {
	rows, err := r.db.Query(ctx, `SELECT `+trainColumns+` FROM trains ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	return collectTrains(rows)
}

func (r *PGTrainRepository) GetByID(ctx context.Context, id int64) (*domain.Train, error) {
	row := r.db.QueryRow(ctx, `SELECT `+trainColumns+` FROM trains WHERE id=$1`, id)
	t, err := scanTrain(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTrainNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *PGTrainRepository) GetByNumber(ctx context.Context, number string) (*domain.Train, error) {
	row := r.db.QueryRow(ctx, `SELECT `+trainColumns+` FROM trains WHERE train_number=$1`, number)
	t, err := scanTrain(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTrainNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *PGTrainRepository) Search(ctx context.Context, sourceID, destinationID int64) ([]domain.Train, error) {
	query := `SELECT ` + trainColumns + ` FROM trains WHERE ($1 = 0 OR source_id = $1) AND ($2 = 0 OR destination_id = $2) ORDER BY departure_time`
	rows, err := r.db.Query(ctx, query, sourceID, destinationID)
	if err != nil {
		return nil, err
	}
	return collectTrains(rows)
}

func (r *PGTrainRepository) Create(ctx context.Context, train *domain.Train) error {
	return r.db.QueryRow(ctx, `INSERT INTO trains (train_number, train_name, source_id, destination_id, departure_time, arrival_time, total_seats, available_seats, fare)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		train.Number, train.Name, train.SourceID, train.DestinationID,
		train.DepartureTime, train.ArrivalTime, train.TotalSeats, train.AvailableSeats, train.Fare).
		Scan(&train.ID, &train.CreatedAt, &train.UpdatedAt)
}

// Update rewrites the schedule fields and recomputes available_seats in-row
// from the new total, so the booked count survives even while bookings mutate
// the counter concurrently. A total below the booked count leaves the row
// untouched and is reported as ErrInvalidTrain. train.AvailableSeats is
// refreshed from the store.
func (r *PGTrainRepository) Update(ctx context.Context, train *domain.Train) error {
	row := r.db.QueryRow(ctx, `UPDATE trains
		SET train_number=$1, train_name=$2, source_id=$3, destination_id=$4, departure_time=$5, arrival_time=$6,
			total_seats=$7, available_seats=$7 - (total_seats - available_seats), fare=$8, updated_at=now()
		WHERE id=$9 AND $7 >= total_seats - available_seats
		RETURNING available_seats, updated_at`,
		train.Number, train.Name, train.SourceID, train.DestinationID,
		train.DepartureTime, train.ArrivalTime, train.TotalSeats, train.Fare, train.ID)
	err := row.Scan(&train.AvailableSeats, &train.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM trains WHERE id=$1)`, train.ID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrInvalidTrain
	}
	return domain.ErrTrainNotFound
}

func (r *PGTrainRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM trains WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTrainNotFound
	}
	return nil
}

func scanTrain(row pgx.Row) (*domain.Train, error) {
	var t domain.Train
	if err := row.Scan(&t.ID, &t.Number, &t.Name, &t.SourceID, &t.DestinationID,
		&t.DepartureTime, &t.ArrivalTime, &t.TotalSeats, &t.AvailableSeats,
		&t.Fare, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTrains(rows pgx.Rows) ([]domain.Train, error) {
	defer rows.Close()

	trains := make([]domain.Train, 0)
	for rows.Next() {
		t, err := scanTrain(rows)
		if err != nil {
			return nil, err
		}
		trains = append(trains, *t)
	}
	return trains, rows.Err()
}

var _ TrainRepository = (*PGTrainRepository)(nil)
