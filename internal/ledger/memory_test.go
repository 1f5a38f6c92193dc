package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMemoryLedger_Reserve_DecrementsAndLabels(t *testing.T) {
	l := NewMemoryLedger()
	l.AddTrain(1, 3)

	ctx := context.Background()

	first, err := l.Reserve(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Occupancy)

	second, err := l.Reserve(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, second.Occupancy)

	available, err := l.Available(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, available)
}

func TestMemoryLedger_Reserve_UnknownTrain(t *testing.T) {
	l := NewMemoryLedger()

	_, err := l.Reserve(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrTrainNotFound)

	err = l.Release(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrTrainNotFound)
}

func TestMemoryLedger_Reserve_SoldOut(t *testing.T) {
	l := NewMemoryLedger()
	l.AddTrain(1, 1)

	ctx := context.Background()

	_, err := l.Reserve(ctx, 1)
	assert.NoError(t, err)

	_, err = l.Reserve(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNoSeatsAvailable)
}

func TestMemoryLedger_Release_BoundedByTotal(t *testing.T) {
	l := NewMemoryLedger()
	l.AddTrain(1, 2)

	ctx := context.Background()

	assert.NoError(t, l.Release(ctx, 1))
	assert.NoError(t, l.Release(ctx, 1))

	available, err := l.Available(1)
	assert.NoError(t, err)
	assert.Equal(t, 2, available)
}

func TestMemoryLedger_RoundTrip(t *testing.T) {
	l := NewMemoryLedger()
	l.AddTrain(1, 5)

	ctx := context.Background()

	_, err := l.Reserve(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, l.Release(ctx, 1))

	available, err := l.Available(1)
	assert.NoError(t, err)
	assert.Equal(t, 5, available)
}

// One seat, many concurrent takers: exactly one wins, the rest see sold-out,
// and the counter never goes negative.
func TestMemoryLedger_ConcurrentReserve_OneSeat(t *testing.T) {
	const attempts = 64

	l := NewMemoryLedger()
	l.AddTrain(1, 1)

	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := l.Reserve(ctx, 1)
			results <- err
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	var succeeded, soldOut int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case err == domain.ErrNoSeatsAvailable:
			soldOut++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, soldOut)

	available, err := l.Available(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, available)
}

// Mixed reserve/release traffic on a larger train must end with the counter
// exactly reflecting the net reservations.
func TestMemoryLedger_ConcurrentReserveRelease(t *testing.T) {
	const seats = 20

	l := NewMemoryLedger()
	l.AddTrain(1, seats)

	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < seats; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Reserve(ctx, 1); err != nil {
				t.Errorf("reserve: %v", err)
				return
			}
			if err := l.Release(ctx, 1); err != nil {
				t.Errorf("release: %v", err)
			}
		}()
	}
	wg.Wait()

	available, err := l.Available(1)
	assert.NoError(t, err)
	assert.Equal(t, seats, available)
}

// Trains are independent: saturating one train does not affect another.
func TestMemoryLedger_TrainsDoNotInterfere(t *testing.T) {
	l := NewMemoryLedger()
	l.AddTrain(1, 1)
	l.AddTrain(2, 4)

	ctx := context.Background()

	_, err := l.Reserve(ctx, 1)
	assert.NoError(t, err)
	_, err = l.Reserve(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNoSeatsAvailable)

	handle, err := l.Reserve(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, 1, handle.Occupancy)
}
