package repository

import (
	"context"
	"errors"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LocationRepository interface {
	List(ctx context.Context) ([]domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error)
	Create(ctx context.Context, location *domain.Location) error
	Update(ctx context.Context, location *domain.Location) error
	Delete(ctx context.Context, id int64) error
}

type PGLocationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) LocationRepository {
	return &PGLocationRepository{db: db}
}

func (r *PGLocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code, city, state, created_at, updated_at FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Code, &l.City, &l.State, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *PGLocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	var l domain.Location
	err := r.db.QueryRow(ctx, `SELECT id, name, code, city, state, created_at, updated_at FROM locations WHERE id=$1`, id).
		Scan(&l.ID, &l.Name, &l.Code, &l.City, &l.State, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *PGLocationRepository) ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM locations WHERE name=$1 OR code=$2)`, name, code).Scan(&exists)
	return exists, err
}

func (r *PGLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	return r.db.QueryRow(ctx, `INSERT INTO locations (name, code, city, state)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		location.Name, location.Code, location.City, location.State).
		Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
}

func (r *PGLocationRepository) Update(ctx context.Context, location *domain.Location) error {
	cmd, err := r.db.Exec(ctx, `UPDATE locations SET name=$1, code=$2, city=$3, state=$4, updated_at=now() WHERE id=$5`,
		location.Name, location.Code, location.City, location.State, location.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

func (r *PGLocationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

var _ LocationRepository = (*PGLocationRepository)(nil)
