package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/rentiva/slot-reservation/internal/model"
	"github.com/rentiva/slot-reservation/internal/schedule"
)

// ReservationStore composes the hold and booking repositories behind the
// interface the hold service and sweeper need.  Holds and bookings are two
// TTL tiers of the same reservation lifecycle, so conflict checks always
// consult both tables.
type ReservationStore struct {
	db       *sql.DB
	holds    *SoftHoldRepo
	bookings *BookingRepo
}

// NewReservationStore returns a ReservationStore over the shared database.
func NewReservationStore(db *sql.DB) *ReservationStore {
	return &ReservationStore{
		db:       db,
		holds:    NewSoftHoldRepo(db),
		bookings: NewBookingRepo(db),
	}
}

// WithTx runs fn inside one transaction, rolling back on error.  The
// transaction is the engine's only mutual exclusion: no in-process locks
// exist, so horizontally scaled instances coordinate purely through the
// store.
func (s *ReservationStore) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// LockUnitTx takes a row lock on the unit, serializing concurrent
// acquires for the same unit.  Two sessions racing for the last unit both
// reach this point; the second blocks until the first commits and then
// sees its conflict in the overlap re-check.
func (s *ReservationStore) LockUnitTx(ctx context.Context, tx *sql.Tx, unitID uint64) error {
	var id uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM units WHERE id = ? FOR UPDATE`, unitID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnitNotFound
		}
		return fmt.Errorf("lock unit: %w", err)
	}
	return nil
}

// LockResourcesTx takes row locks on the crew and vehicle rows backing a
// candidate.  The unit lock alone cannot serialize two acquires on
// different units that share a crew or vehicle; locking the resource rows
// too makes the conflict re-check authoritative for them as well.  IDs
// are deduplicated and locked in ascending order so concurrent acquires
// touching the same resources never deadlock.
func (s *ReservationStore) LockResourcesTx(ctx context.Context, tx *sql.Tx, ids ...uint64) error {
	uniq := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	if len(uniq) == 0 {
		return nil
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(uniq)), ",")
	q := fmt.Sprintf(`SELECT id FROM ops_resources WHERE id IN (%s) ORDER BY id FOR UPDATE`, placeholders)
	args := make([]interface{}, len(uniq))
	for i, id := range uniq {
		args[i] = id
	}

	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("lock resources: %w", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if locked != len(uniq) {
		return ErrResourceNotFound
	}
	return nil
}

// CountUnitConflictsTx sums unit conflicts across both claim tiers.
func (s *ReservationStore) CountUnitConflictsTx(ctx context.Context, tx *sql.Tx, unitID uint64, span schedule.Interval, excludeSession string, now time.Time) (int, error) {
	fromHolds, err := s.holds.CountUnitConflictsTx(ctx, tx, unitID, span.Start, span.End, excludeSession, now)
	if err != nil {
		return 0, err
	}
	fromBookings, err := s.bookings.CountUnitConflictsTx(ctx, tx, unitID, span.Start, span.End)
	if err != nil {
		return 0, err
	}
	return fromHolds + fromBookings, nil
}

// CountResourceConflictsTx sums crew/vehicle leg conflicts across both
// claim tiers.
func (s *ReservationStore) CountResourceConflictsTx(ctx context.Context, tx *sql.Tx, resourceID uint64, leg schedule.Interval, excludeSession string, now time.Time) (int, error) {
	fromHolds, err := s.holds.CountResourceConflictsTx(ctx, tx, resourceID, leg.Start, leg.End, excludeSession, now)
	if err != nil {
		return 0, err
	}
	fromBookings, err := s.bookings.CountResourceConflictsTx(ctx, tx, resourceID, leg.Start, leg.End)
	if err != nil {
		return 0, err
	}
	return fromHolds + fromBookings, nil
}

// UpsertHoldTx writes the session's hold.  A duplicate-key error other
// than the session upsert path means a competing claim won a race; it is
// surfaced as the domain conflict so callers re-resolve.
func (s *ReservationStore) UpsertHoldTx(ctx context.Context, tx *sql.Tx, h *model.SoftHold) error {
	if err := s.holds.UpsertTx(ctx, tx, h); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return model.ErrHoldConflict
		}
		return err
	}
	return nil
}

// ActiveHoldBySession exposes the session's current hold.
func (s *ReservationStore) ActiveHoldBySession(ctx context.Context, sessionID string, now time.Time) (*model.SoftHold, error) {
	return s.holds.ActiveBySession(ctx, sessionID, now)
}

// DeleteHoldBySession removes the session's hold; idempotent.
func (s *ReservationStore) DeleteHoldBySession(ctx context.Context, sessionID string) (int64, error) {
	return s.holds.DeleteBySession(ctx, sessionID)
}

// DeleteExpiredHolds removes all expired holds (sweep step one).
func (s *ReservationStore) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	return s.holds.DeleteExpired(ctx, now)
}

// AbandonedPendingIDs lists sweep candidates among pending bookings.
func (s *ReservationStore) AbandonedPendingIDs(ctx context.Context, cutoff time.Time) ([]uint64, error) {
	return s.bookings.AbandonedPendingIDs(ctx, cutoff)
}

// DeleteAbandonedBooking removes one still-pending booking past the
// cutoff; reports whether a row was actually deleted.
func (s *ReservationStore) DeleteAbandonedBooking(ctx context.Context, id uint64, cutoff time.Time) (bool, error) {
	return s.bookings.DeleteAbandoned(ctx, id, cutoff)
}
