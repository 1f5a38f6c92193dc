package ledger

import (
	"context"
	"sync"

	"github.com/Raghu4002/railway-reservation/internal/domain"
)

type counter struct {
	mu        sync.Mutex
	total     int
	available int
}

// MemoryLedger keeps seat counters in process memory with one lock per train,
// so trains never contend with each other. It backs local runs and the
// concurrency tests; production uses the Postgres ledger.
type MemoryLedger struct {
	mu     sync.RWMutex
	trains map[int64]*counter
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{trains: make(map[int64]*counter)}
}

// AddTrain registers a train with the given capacity. Re-adding an existing
// train resets its counters.
func (l *MemoryLedger) AddTrain(trainID int64, totalSeats int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trains[trainID] = &counter{total: totalSeats, available: totalSeats}
}

// RemoveTrain drops a train's counter, as happens when the schedule
// management side deletes a train.
func (l *MemoryLedger) RemoveTrain(trainID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.trains, trainID)
}

// Available reports the current available seat count for a train.
func (l *MemoryLedger) Available(trainID int64) (int, error) {
	c, err := l.lookup(trainID)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.available, nil
}

func (l *MemoryLedger) Reserve(ctx context.Context, trainID int64) (SeatHandle, error) {
	c, err := l.lookup(trainID)
	if err != nil {
		return SeatHandle{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.available <= 0 {
		return SeatHandle{}, domain.ErrNoSeatsAvailable
	}
	c.available--
	return SeatHandle{TrainID: trainID, Occupancy: c.total - c.available}, nil
}

func (l *MemoryLedger) Release(ctx context.Context, trainID int64) error {
	c, err := l.lookup(trainID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.available < c.total {
		c.available++
	}
	return nil
}

func (l *MemoryLedger) lookup(trainID int64) (*counter, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.trains[trainID]
	if !ok {
		return nil, domain.ErrTrainNotFound
	}
	return c, nil
}

var _ Ledger = (*MemoryLedger)(nil)
