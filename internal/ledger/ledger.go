// Package ledger owns the per-train seat counters. All seat accounting goes
// through a Ledger; nothing else in the system mutates available_seats.
package ledger

import "context"

// SeatHandle is returned by a successful reservation. Occupancy is the number
// of seats taken on the train after this reservation
// (total_seats - available_seats), which the booking service turns into a
// seat label.
type SeatHandle struct {
	TrainID   int64
	Occupancy int
}

// Ledger provides atomic seat accounting. Reserve and Release on the same
// train are serialized with respect to each other; operations on different
// trains do not contend.
type Ledger interface {
	// Reserve takes one seat on the train. It fails with
	// domain.ErrNoSeatsAvailable when the train is full and
	// domain.ErrTrainNotFound when the train does not exist, in both cases
	// without side effects.
	Reserve(ctx context.Context, trainID int64) (SeatHandle, error)

	// Release returns one seat to the train, never exceeding total_seats.
	// Callers release at most once per prior successful Reserve; the ledger
	// does not track outstanding handles.
	Release(ctx context.Context, trainID int64) error
}
