package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentiva/slot-reservation/internal/clock"
	"github.com/rentiva/slot-reservation/internal/queue"
)

type fakeSweepStore struct {
	expiredRemoved int64
	pendingIDs     []uint64
	failIDs        map[uint64]bool // DeleteAbandonedBooking errors
	keptIDs        map[uint64]bool // confirmed mid-sweep, predicate deletes nothing

	gotCutoff time.Time
	deleted   []uint64
}

func (f *fakeSweepStore) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	return f.expiredRemoved, nil
}

func (f *fakeSweepStore) AbandonedPendingIDs(ctx context.Context, cutoff time.Time) ([]uint64, error) {
	f.gotCutoff = cutoff
	return f.pendingIDs, nil
}

func (f *fakeSweepStore) DeleteAbandonedBooking(ctx context.Context, id uint64, cutoff time.Time) (bool, error) {
	if f.failIDs[id] {
		return false, errors.New("lock wait timeout")
	}
	if f.keptIDs[id] {
		return false, nil
	}
	f.deleted = append(f.deleted, id)
	return true, nil
}

type fakePublisher struct {
	events []queue.ReservationReleasedEvent
	err    error
}

func (f *fakePublisher) PublishReservationReleased(ctx context.Context, ev queue.ReservationReleasedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

var sweepNow = time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC)

func newSweeper(store SweepStore, pub ReleasePublisher) *Sweeper {
	return NewSweeper(store, pub, clock.NewFixed(sweepNow), zap.NewNop().Sugar(), 15*time.Minute, 45*time.Minute)
}

func TestSweep(t *testing.T) {
	t.Parallel()

	store := &fakeSweepStore{expiredRemoved: 3, pendingIDs: []uint64{7, 8}}
	pub := &fakePublisher{}

	res, err := newSweeper(store, pub).Sweep(context.Background(), 45*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.RemovedHolds)
	assert.Equal(t, 2, res.RemovedPendingBookings)
	assert.Equal(t, []uint64{7, 8}, res.FreedBookingIDs)
	assert.Equal(t, sweepNow.Add(-45*time.Minute), store.gotCutoff)

	require.Len(t, pub.events, 1)
	assert.Equal(t, int64(3), pub.events[0].RemovedHolds)
	assert.Equal(t, []uint64{7, 8}, pub.events[0].FreedBookingIDs)
}

func TestSweepNothingToDo(t *testing.T) {
	t.Parallel()

	store := &fakeSweepStore{}
	pub := &fakePublisher{}

	res, err := newSweeper(store, pub).Sweep(context.Background(), 45*time.Minute)
	require.NoError(t, err)
	assert.Zero(t, res.RemovedHolds)
	assert.Zero(t, res.RemovedPendingBookings)
	assert.Empty(t, pub.events, "empty sweeps publish nothing")
}

func TestSweepRowFailureContinuesBatch(t *testing.T) {
	t.Parallel()

	store := &fakeSweepStore{
		pendingIDs: []uint64{1, 2, 3},
		failIDs:    map[uint64]bool{2: true},
	}

	res, err := newSweeper(store, nil).Sweep(context.Background(), 45*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, res.RemovedPendingBookings)
	assert.Equal(t, []uint64{1, 3}, res.FreedBookingIDs)
}

func TestSweepSkipsBookingConfirmedMidSweep(t *testing.T) {
	t.Parallel()

	// The delete predicate re-checks status, so a booking confirmed after
	// the candidate scan simply deletes zero rows.
	store := &fakeSweepStore{
		pendingIDs: []uint64{1, 2},
		keptIDs:    map[uint64]bool{1: true},
	}

	res, err := newSweeper(store, nil).Sweep(context.Background(), 45*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RemovedPendingBookings)
	assert.Equal(t, []uint64{2}, res.FreedBookingIDs)
}

func TestSweepPublishFailureNonFatal(t *testing.T) {
	t.Parallel()

	store := &fakeSweepStore{expiredRemoved: 1}
	pub := &fakePublisher{err: errors.New("broker down")}

	res, err := newSweeper(store, pub).Sweep(context.Background(), 45*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.RemovedHolds)
}

func TestSweepDefaultAbandonment(t *testing.T) {
	t.Parallel()

	store := &fakeSweepStore{pendingIDs: []uint64{1}}
	_, err := newSweeper(store, nil).Sweep(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, sweepNow.Add(-45*time.Minute), store.gotCutoff)
}
