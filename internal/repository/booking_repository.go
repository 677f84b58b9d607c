package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
)

const bookingColumns = `id, status, event_date, unit_id, delivery_crew_id, pickup_crew_id,
	delivery_vehicle_id, pickup_vehicle_id, service_start, service_end,
	delivery_leg_start, delivery_leg_end, pickup_leg_start, pickup_leg_end,
	created_at, updated_at`

// BookingRepo reads the bookings ledger and reclaims abandoned pending
// rows.  Bookings are created and confirmed by the payment collaborator;
// the engine never inserts or promotes them.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// ActiveOverlapping lists pending and confirmed bookings whose unit
// commitment intersects [from, to).  Cancelled rows never block.
func (r *BookingRepo) ActiveOverlapping(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
	      FROM bookings
	      WHERE status IN ('PENDING','CONFIRMED')
	        AND service_start < ? AND ? < pickup_leg_end`
	rows, err := r.db.QueryContext(ctx, q, to.UTC(), from.UTC())
	if err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		var status string
		if err := rows.Scan(
			&b.ID, &status, &b.EventDate, &b.UnitID, &b.DeliveryCrewID, &b.PickupCrewID,
			&b.DeliveryVehicleID, &b.PickupVehicleID, &b.ServiceStart, &b.ServiceEnd,
			&b.DeliveryLegStart, &b.DeliveryLegEnd, &b.PickupLegStart, &b.PickupLegEnd,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		b.Status = model.BookingStatus(status)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// AbandonedPendingIDs lists PENDING bookings created before the cutoff.
// This is only the sweep's scan phase; the status is re-checked inside the
// per-row delete so a concurrent confirmation is never lost.
func (r *BookingRepo) AbandonedPendingIDs(ctx context.Context, cutoff time.Time) ([]uint64, error) {
	const q = `SELECT id FROM bookings WHERE status = 'PENDING' AND created_at < ?`
	rows, err := r.db.QueryContext(ctx, q, cutoff.UTC())
	if err != nil {
		return nil, fmt.Errorf("list abandoned bookings: %w", err)
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteAbandoned removes one pending booking.  The status and age checks
// are part of the delete predicate itself, not a prior read: a booking
// confirmed between the scan and this call simply matches zero rows.
func (r *BookingRepo) DeleteAbandoned(ctx context.Context, id uint64, cutoff time.Time) (bool, error) {
	const q = `DELETE FROM bookings WHERE id = ? AND status = 'PENDING' AND created_at < ?`
	res, err := r.db.ExecContext(ctx, q, id, cutoff.UTC())
	if err != nil {
		return false, fmt.Errorf("delete abandoned booking %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountUnitConflictsTx counts blocking bookings committing the unit for
// an interval overlapping [start, end).
func (r *BookingRepo) CountUnitConflictsTx(ctx context.Context, tx *sql.Tx, unitID uint64, start, end time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings
	           WHERE unit_id = ? AND status IN ('PENDING','CONFIRMED')
	             AND service_start < ? AND ? < pickup_leg_end`
	var n int
	if err := tx.QueryRowContext(ctx, q, unitID, end.UTC(), start.UTC()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count booking unit conflicts: %w", err)
	}
	return n, nil
}

// CountResourceConflictsTx counts blocking bookings that assign the
// crew/vehicle to a leg overlapping [start, end).
func (r *BookingRepo) CountResourceConflictsTx(ctx context.Context, tx *sql.Tx, resourceID uint64, start, end time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings
	           WHERE status IN ('PENDING','CONFIRMED') AND (
	                ((delivery_crew_id = ? OR delivery_vehicle_id = ?)
	                   AND delivery_leg_start < ? AND ? < delivery_leg_end)
	             OR ((pickup_crew_id = ? OR pickup_vehicle_id = ?)
	                   AND pickup_leg_start < ? AND ? < pickup_leg_end))`
	var n int
	err := tx.QueryRowContext(ctx, q,
		resourceID, resourceID, end.UTC(), start.UTC(),
		resourceID, resourceID, end.UTC(), start.UTC(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count booking resource conflicts: %w", err)
	}
	return n, nil
}
