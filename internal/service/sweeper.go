package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rentiva/slot-reservation/internal/clock"
	"github.com/rentiva/slot-reservation/internal/queue"
)

// SweepStore is the reclamation surface of the store.  Deletion predicates
// re-check state at delete time, so the sweeper can run concurrently with
// ordinary traffic and with other sweeper instances.
type SweepStore interface {
	DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error)
	AbandonedPendingIDs(ctx context.Context, cutoff time.Time) ([]uint64, error)
	DeleteAbandonedBooking(ctx context.Context, id uint64, cutoff time.Time) (bool, error)
}

// ReleasePublisher dispatches sweep results toward the notification
// collaborator.
type ReleasePublisher interface {
	PublishReservationReleased(ctx context.Context, ev queue.ReservationReleasedEvent) error
}

// SweepResult reports one sweep pass.
type SweepResult struct {
	RemovedHolds           int64
	RemovedPendingBookings int
	FreedBookingIDs        []uint64
}

// Sweeper periodically reclaims expired soft holds and abandoned pending
// bookings.  Both cleanups are idempotent; a missed or doubled tick is
// harmless because expiry is already enforced passively by every read.
type Sweeper struct {
	store       SweepStore
	pub         ReleasePublisher
	clk         clock.Clock
	log         *zap.SugaredLogger
	interval    time.Duration
	abandonment time.Duration
}

// NewSweeper wires the sweeper.  interval is the tick period; abandonment
// is how old a still-pending booking must be before it is reclaimed.
func NewSweeper(store SweepStore, pub ReleasePublisher, clk clock.Clock, log *zap.SugaredLogger, interval, abandonment time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if abandonment <= 0 {
		abandonment = 45 * time.Minute
	}
	return &Sweeper{store: store, pub: pub, clk: clk, log: log, interval: interval, abandonment: abandonment}
}

// Run ticks until the context is cancelled, sweeping once immediately.
func (s *Sweeper) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.sweepAndLog(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.sweepAndLog(ctx)
		}
	}
}

func (s *Sweeper) sweepAndLog(ctx context.Context) {
	res, err := s.Sweep(ctx, s.abandonment)
	if err != nil {
		s.log.Errorw("sweep failed", "err", err)
		return
	}
	if res.RemovedHolds > 0 || res.RemovedPendingBookings > 0 {
		s.log.Infow("sweep completed",
			"removed_holds", res.RemovedHolds,
			"removed_pending_bookings", res.RemovedPendingBookings,
			"freed_booking_ids", res.FreedBookingIDs)
	}
}

// Sweep performs one pass: delete expired holds, then reclaim pending
// bookings older than the abandonment window.  Row-level booking failures
// are logged and skipped rather than aborting the batch, and the
// status re-check inside each delete predicate guarantees a booking
// confirmed mid-sweep is never lost.  Freed booking IDs are published for
// the notification collaborator; publish failures do not fail the sweep.
func (s *Sweeper) Sweep(ctx context.Context, abandonment time.Duration) (SweepResult, error) {
	if abandonment <= 0 {
		abandonment = s.abandonment
	}
	now := s.clk.Now()
	var res SweepResult

	removed, err := s.store.DeleteExpiredHolds(ctx, now)
	if err != nil {
		return res, err
	}
	res.RemovedHolds = removed

	cutoff := now.Add(-abandonment)
	ids, err := s.store.AbandonedPendingIDs(ctx, cutoff)
	if err != nil {
		return res, err
	}
	for _, id := range ids {
		deleted, err := s.store.DeleteAbandonedBooking(ctx, id, cutoff)
		if err != nil {
			s.log.Warnw("sweep row failed", "booking_id", id, "err", err)
			continue
		}
		if deleted {
			res.RemovedPendingBookings++
			res.FreedBookingIDs = append(res.FreedBookingIDs, id)
		}
	}

	if s.pub != nil && (res.RemovedHolds > 0 || res.RemovedPendingBookings > 0) {
		ev := queue.ReservationReleasedEvent{
			RemovedHolds:           res.RemovedHolds,
			RemovedPendingBookings: res.RemovedPendingBookings,
			FreedBookingIDs:        res.FreedBookingIDs,
			SweptAt:                now.Format(time.RFC3339),
		}
		if err := s.pub.PublishReservationReleased(ctx, ev); err != nil {
			s.log.Warnw("sweep publish failed", "err", err)
		}
	}
	return res, nil
}
