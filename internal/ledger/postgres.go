package ledger

import (
	"context"
	"errors"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGLedger implements Ledger on top of the trains table. The conditional
// UPDATE makes the read-modify-write of available_seats atomic per row, so
// concurrent reservations on the same train serialize on the row lock while
// different trains proceed independently.
type PGLedger struct {
	db *pgxpool.Pool
}

func NewPGLedger(db *pgxpool.Pool) *PGLedger {
	return &PGLedger{db: db}
}

func (l *PGLedger) Reserve(ctx context.Context, trainID int64) (SeatHandle, error) {
	var available, total int
	err := l.db.QueryRow(ctx, `
		UPDATE trains
		SET available_seats = available_seats - 1, updated_at = now()
		WHERE id = $1 AND available_seats > 0
		RETURNING available_seats, total_seats`, trainID).Scan(&available, &total)
	if err == nil {
		return SeatHandle{TrainID: trainID, Occupancy: total - available}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return SeatHandle{}, err
	}

	// The update matched nothing: either the train is gone or it is full.
	var exists bool
	if err := l.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM trains WHERE id = $1)`, trainID).Scan(&exists); err != nil {
		return SeatHandle{}, err
	}
	if !exists {
		return SeatHandle{}, domain.ErrTrainNotFound
	}
	return SeatHandle{}, domain.ErrNoSeatsAvailable
}

func (l *PGLedger) Release(ctx context.Context, trainID int64) error {
	cmd, err := l.db.Exec(ctx, `
		UPDATE trains
		SET available_seats = LEAST(available_seats + 1, total_seats), updated_at = now()
		WHERE id = $1`, trainID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTrainNotFound
	}
	return nil
}

var _ Ledger = (*PGLedger)(nil)
