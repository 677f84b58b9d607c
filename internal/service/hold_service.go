package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentiva/slot-reservation/internal/clock"
	"github.com/rentiva/slot-reservation/internal/model"
	"github.com/rentiva/slot-reservation/internal/schedule"
)

// HoldStore is the transactional surface the hold service needs.  The
// store's transaction is the source of mutual exclusion: the service
// itself takes no locks and may run in any number of processes.
type HoldStore interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
	LockUnitTx(ctx context.Context, tx *sql.Tx, unitID uint64) error
	LockResourcesTx(ctx context.Context, tx *sql.Tx, ids ...uint64) error
	CountUnitConflictsTx(ctx context.Context, tx *sql.Tx, unitID uint64, span schedule.Interval, excludeSession string, now time.Time) (int, error)
	CountResourceConflictsTx(ctx context.Context, tx *sql.Tx, resourceID uint64, leg schedule.Interval, excludeSession string, now time.Time) (int, error)
	UpsertHoldTx(ctx context.Context, tx *sql.Tx, h *model.SoftHold) error
	ActiveHoldBySession(ctx context.Context, sessionID string, now time.Time) (*model.SoftHold, error)
	DeleteHoldBySession(ctx context.Context, sessionID string) (int64, error)
}

// HoldService turns resolved candidates into exclusive soft holds.
type HoldService struct {
	store   HoldStore
	clk     clock.Clock
	log     *zap.SugaredLogger
	holdTTL time.Duration
}

// NewHoldService wires the service with the configured hold TTL.
func NewHoldService(store HoldStore, clk clock.Clock, log *zap.SugaredLogger, ttl time.Duration) *HoldService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &HoldService{store: store, clk: clk, log: log, holdTTL: ttl}
}

// Acquire claims the candidate for the session.  The conflict check and
// the upsert run in one transaction behind row locks on the unit and on
// every crew/vehicle the candidate assigns, so of two sessions racing for
// any contested resource exactly one wins — even when their candidates
// name different units or different products.  The loser gets
// model.ErrHoldConflict and must re-run availability.  Re-acquiring
// with the same session refreshes the hold's expiry instead of
// duplicating it, and the session's own hold never conflicts with itself.
func (s *HoldService) Acquire(ctx context.Context, sessionID string, cand model.ReservationCandidate) (*model.SoftHold, error) {
	if err := validateCandidate(sessionID, cand); err != nil {
		return nil, err
	}
	now := s.clk.Now()

	hold := &model.SoftHold{
		ID:                uuid.NewString(),
		SessionID:         sessionID,
		UnitID:            cand.UnitID,
		DeliveryCrewID:    cand.DeliveryCrewID,
		PickupCrewID:      cand.PickupCrewID,
		DeliveryVehicleID: cand.DeliveryVehicleID,
		PickupVehicleID:   cand.PickupVehicleID,
		ServiceStart:      cand.ServiceStart,
		ServiceEnd:        cand.ServiceEnd,
		DeliveryLegStart:  cand.DeliveryLegStart,
		DeliveryLegEnd:    cand.DeliveryLegEnd,
		PickupLegStart:    cand.PickupLegStart,
		PickupLegEnd:      cand.PickupLegEnd,
		ExpiresAt:         now.Add(s.holdTTL),
		CreatedAt:         now,
	}

	span := schedule.Interval{Start: cand.ServiceStart, End: cand.PickupLegEnd}
	deliveryLeg := schedule.Interval{Start: cand.DeliveryLegStart, End: cand.DeliveryLegEnd}
	pickupLeg := schedule.Interval{Start: cand.PickupLegStart, End: cand.PickupLegEnd}

	err := withRetry(ctx, func() error {
		return s.store.WithTx(ctx, func(tx *sql.Tx) error {
			if err := s.store.LockUnitTx(ctx, tx, cand.UnitID); err != nil {
				return err
			}
			if err := s.store.LockResourcesTx(ctx, tx,
				cand.DeliveryCrewID, cand.PickupCrewID,
				cand.DeliveryVehicleID, cand.PickupVehicleID); err != nil {
				return err
			}
			n, err := s.store.CountUnitConflictsTx(ctx, tx, cand.UnitID, span, sessionID, now)
			if err != nil {
				return err
			}
			if n > 0 {
				return model.ErrHoldConflict
			}
			legs := []struct {
				resourceID uint64
				leg        schedule.Interval
			}{
				{cand.DeliveryCrewID, deliveryLeg},
				{cand.PickupCrewID, pickupLeg},
				{cand.DeliveryVehicleID, deliveryLeg},
				{cand.PickupVehicleID, pickupLeg},
			}
			for _, l := range legs {
				n, err := s.store.CountResourceConflictsTx(ctx, tx, l.resourceID, l.leg, sessionID, now)
				if err != nil {
					return err
				}
				if n > 0 {
					return model.ErrHoldConflict
				}
			}
			return s.store.UpsertHoldTx(ctx, tx, hold)
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("hold acquired",
		"session", sessionID, "unit", cand.UnitID, "expires_at", hold.ExpiresAt)
	return hold, nil
}

// Release drops the session's hold.  Releasing a session that holds
// nothing is not an error; the returned flag reports whether a hold
// actually existed.
func (s *HoldService) Release(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, &model.ValidationError{Field: "session_id", Message: "required"}
	}
	var n int64
	err := withRetry(ctx, func() error {
		var delErr error
		n, delErr = s.store.DeleteHoldBySession(ctx, sessionID)
		return delErr
	})
	if err != nil {
		return false, err
	}
	if n > 0 {
		s.log.Infow("hold released", "session", sessionID)
	}
	return n > 0, nil
}

// Current returns the session's active hold, nil when none exists.
func (s *HoldService) Current(ctx context.Context, sessionID string) (*model.SoftHold, error) {
	return s.store.ActiveHoldBySession(ctx, sessionID, s.clk.Now())
}

func validateCandidate(sessionID string, c model.ReservationCandidate) error {
	if sessionID == "" {
		return &model.ValidationError{Field: "session_id", Message: "required"}
	}
	if c.UnitID == 0 {
		return &model.ValidationError{Field: "unit_id", Message: "must be a positive id"}
	}
	if c.DeliveryCrewID == 0 || c.PickupCrewID == 0 {
		return &model.ValidationError{Field: "crew_ids", Message: "both legs need a crew"}
	}
	if c.DeliveryVehicleID == 0 || c.PickupVehicleID == 0 {
		return &model.ValidationError{Field: "vehicle_ids", Message: "both legs need a vehicle"}
	}
	if !c.ServiceStart.Before(c.ServiceEnd) {
		return &model.ValidationError{Field: "service_window", Message: "service end must follow service start"}
	}
	if !c.PickupLegStart.Before(c.PickupLegEnd) || !c.DeliveryLegStart.Before(c.DeliveryLegEnd) {
		return &model.ValidationError{Field: "legs", Message: "leg end must follow leg start"}
	}
	return nil
}
