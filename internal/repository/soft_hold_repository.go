package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
)

const softHoldColumns = `id, session_id, unit_id, delivery_crew_id, pickup_crew_id,
	delivery_vehicle_id, pickup_vehicle_id, service_start, service_end,
	delivery_leg_start, delivery_leg_end, pickup_leg_start, pickup_leg_end,
	expires_at, created_at`

// SoftHoldRepo provides data access to the soft_holds table.  Expiry is
// passive everywhere: every read takes an explicit now parameter and
// filters on expires_at, so an expired hold stops blocking the instant it
// expires regardless of sweeper timing.
type SoftHoldRepo struct {
	db *sql.DB
}

// NewSoftHoldRepo returns a SoftHoldRepo bound to the given database.
func NewSoftHoldRepo(db *sql.DB) *SoftHoldRepo { return &SoftHoldRepo{db: db} }

// ActiveBySession returns the session's non-expired hold, or nil when the
// session holds nothing.
func (r *SoftHoldRepo) ActiveBySession(ctx context.Context, sessionID string, now time.Time) (*model.SoftHold, error) {
	q := `SELECT ` + softHoldColumns + ` FROM soft_holds WHERE session_id = ? AND expires_at > ?`
	var h model.SoftHold
	err := r.db.QueryRowContext(ctx, q, sessionID, now.UTC()).Scan(
		&h.ID, &h.SessionID, &h.UnitID, &h.DeliveryCrewID, &h.PickupCrewID,
		&h.DeliveryVehicleID, &h.PickupVehicleID, &h.ServiceStart, &h.ServiceEnd,
		&h.DeliveryLegStart, &h.DeliveryLegEnd, &h.PickupLegStart, &h.PickupLegEnd,
		&h.ExpiresAt, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hold by session: %w", err)
	}
	return &h, nil
}

// ActiveOverlapping lists non-expired holds whose unit commitment
// intersects [from, to).  Used to assemble resolver snapshots.
func (r *SoftHoldRepo) ActiveOverlapping(ctx context.Context, from, to, now time.Time) ([]model.SoftHold, error) {
	q := `SELECT ` + softHoldColumns + `
	      FROM soft_holds
	      WHERE expires_at > ? AND service_start < ? AND ? < pickup_leg_end`
	rows, err := r.db.QueryContext(ctx, q, now.UTC(), to.UTC(), from.UTC())
	if err != nil {
		return nil, fmt.Errorf("list active holds: %w", err)
	}
	defer rows.Close()

	var holds []model.SoftHold
	for rows.Next() {
		var h model.SoftHold
		if err := rows.Scan(
			&h.ID, &h.SessionID, &h.UnitID, &h.DeliveryCrewID, &h.PickupCrewID,
			&h.DeliveryVehicleID, &h.PickupVehicleID, &h.ServiceStart, &h.ServiceEnd,
			&h.DeliveryLegStart, &h.DeliveryLegEnd, &h.PickupLegStart, &h.PickupLegEnd,
			&h.ExpiresAt, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holds, nil
}

// UpsertTx inserts the session's hold or, when the session already holds
// something, replaces it in place.  The unique key on session_id makes
// "one active hold per session" a store-level guarantee: repeating a claim
// refreshes expires_at instead of inserting a duplicate.  The update list
// includes id so the row adopts the freshly issued hold ID and the stored
// row always matches what the caller was told.
func (r *SoftHoldRepo) UpsertTx(ctx context.Context, tx *sql.Tx, h *model.SoftHold) error {
	const q = `INSERT INTO soft_holds
		(id, session_id, unit_id, delivery_crew_id, pickup_crew_id,
		 delivery_vehicle_id, pickup_vehicle_id, service_start, service_end,
		 delivery_leg_start, delivery_leg_end, pickup_leg_start, pickup_leg_end, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		 id = VALUES(id),
		 unit_id = VALUES(unit_id),
		 delivery_crew_id = VALUES(delivery_crew_id),
		 pickup_crew_id = VALUES(pickup_crew_id),
		 delivery_vehicle_id = VALUES(delivery_vehicle_id),
		 pickup_vehicle_id = VALUES(pickup_vehicle_id),
		 service_start = VALUES(service_start),
		 service_end = VALUES(service_end),
		 delivery_leg_start = VALUES(delivery_leg_start),
		 delivery_leg_end = VALUES(delivery_leg_end),
		 pickup_leg_start = VALUES(pickup_leg_start),
		 pickup_leg_end = VALUES(pickup_leg_end),
		 expires_at = VALUES(expires_at)`
	_, err := tx.ExecContext(ctx, q,
		h.ID, h.SessionID, h.UnitID, h.DeliveryCrewID, h.PickupCrewID,
		h.DeliveryVehicleID, h.PickupVehicleID, h.ServiceStart.UTC(), h.ServiceEnd.UTC(),
		h.DeliveryLegStart.UTC(), h.DeliveryLegEnd.UTC(), h.PickupLegStart.UTC(), h.PickupLegEnd.UTC(),
		h.ExpiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert hold: %w", err)
	}
	return nil
}

// DeleteBySession removes the session's hold, active or expired.  It
// returns the number of rows removed; deleting a non-existent hold is not
// an error.
func (r *SoftHoldRepo) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM soft_holds WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("delete hold by session: %w", err)
	}
	return res.RowsAffected()
}

// DeleteExpired removes every hold whose expires_at has passed and
// returns the count.  Expired holds are already inert for conflict
// purposes; this is pure housekeeping.
func (r *SoftHoldRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM soft_holds WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired holds: %w", err)
	}
	return res.RowsAffected()
}

// CountUnitConflictsTx counts non-expired foreign holds committing the
// unit for an interval overlapping [start, end).  Runs inside the acquire
// transaction after the unit row is locked.
func (r *SoftHoldRepo) CountUnitConflictsTx(ctx context.Context, tx *sql.Tx, unitID uint64, start, end time.Time, excludeSession string, now time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM soft_holds
	           WHERE unit_id = ? AND session_id <> ? AND expires_at > ?
	             AND service_start < ? AND ? < pickup_leg_end`
	var n int
	err := tx.QueryRowContext(ctx, q, unitID, excludeSession, now.UTC(), end.UTC(), start.UTC()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count hold unit conflicts: %w", err)
	}
	return n, nil
}

// CountResourceConflictsTx counts non-expired foreign holds that assign
// the crew/vehicle to a leg overlapping [start, end).  The resource may
// appear in any of the four role columns.
func (r *SoftHoldRepo) CountResourceConflictsTx(ctx context.Context, tx *sql.Tx, resourceID uint64, start, end time.Time, excludeSession string, now time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM soft_holds
	           WHERE session_id <> ? AND expires_at > ? AND (
	                ((delivery_crew_id = ? OR delivery_vehicle_id = ?)
	                   AND delivery_leg_start < ? AND ? < delivery_leg_end)
	             OR ((pickup_crew_id = ? OR pickup_vehicle_id = ?)
	                   AND pickup_leg_start < ? AND ? < pickup_leg_end))`
	var n int
	err := tx.QueryRowContext(ctx, q,
		excludeSession, now.UTC(),
		resourceID, resourceID, end.UTC(), start.UTC(),
		resourceID, resourceID, end.UTC(), start.UTC(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count hold resource conflicts: %w", err)
	}
	return n, nil
}
