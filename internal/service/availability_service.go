// Package service contains the engine's use cases: availability checks,
// hold acquisition/release and the expiry sweeper.  Services are stateless;
// every piece of coordination state lives in the store.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rentiva/slot-reservation/internal/clock"
	"github.com/rentiva/slot-reservation/internal/model"
	"github.com/rentiva/slot-reservation/internal/schedule"
)

const dateLayout = "2006-01-02"

// SnapshotLoader loads the resolver's input for one product and time range.
type SnapshotLoader interface {
	Load(ctx context.Context, productID uint64, from, to, now time.Time) (*schedule.Snapshot, error)
}

// AvailabilityService answers availability queries.  It validates input,
// loads a snapshot and delegates to the pure resolver; the service retains
// no state between calls and any number of checks may run concurrently.
type AvailabilityService struct {
	snapshots SnapshotLoader
	clk       clock.Clock
	log       *zap.SugaredLogger
}

// NewAvailabilityService wires the service.
func NewAvailabilityService(snapshots SnapshotLoader, clk clock.Clock, log *zap.SugaredLogger) *AvailabilityService {
	return &AvailabilityService{snapshots: snapshots, clk: clk, log: log}
}

// CheckInput carries one availability query as received from transport.
type CheckInput struct {
	ProductID      uint64
	DeliveryDate   string // "2006-01-02"
	PickupDate     string
	DeliveryWindow string
	PickupWindow   string
	LeadTimeHours  int
	SessionID      string
}

// Check validates the query, loads a snapshot and resolves a candidate.
// It returns *model.ValidationError for malformed input,
// *model.UnavailableError when no conflict-free combination exists, and a
// fully populated candidate otherwise.
func (s *AvailabilityService) Check(ctx context.Context, in CheckInput) (*model.ReservationCandidate, error) {
	req, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()

	// The snapshot range must cover the whole unit commitment, including
	// the pickup leg that extends past the pickup window.
	from := req.DeliveryDate
	to := req.PickupDate.AddDate(0, 0, 2)

	var snap *schedule.Snapshot
	err = withRetry(ctx, func() error {
		var loadErr error
		snap, loadErr = s.snapshots.Load(ctx, in.ProductID, from, to, now)
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	if !snap.Product.Active {
		return nil, &model.ValidationError{Field: "product_id", Message: "product is not active"}
	}

	cand, err := schedule.Resolve(snap, req, now)
	if err != nil {
		if ue, ok := model.AsUnavailable(err); ok {
			s.log.Debugw("availability negative",
				"product_id", in.ProductID, "session", in.SessionID, "reason", ue.Reason)
		}
		return nil, err
	}
	return cand, nil
}

// validate rejects malformed input before any store access.
func (s *AvailabilityService) validate(in CheckInput) (schedule.Request, error) {
	if in.ProductID == 0 {
		return schedule.Request{}, &model.ValidationError{Field: "product_id", Message: "must be a positive id"}
	}
	if in.SessionID == "" {
		return schedule.Request{}, &model.ValidationError{Field: "session_id", Message: "required"}
	}
	if in.LeadTimeHours < 0 {
		return schedule.Request{}, &model.ValidationError{Field: "lead_time_hours", Message: "must not be negative"}
	}
	deliveryDate, err := time.ParseInLocation(dateLayout, in.DeliveryDate, time.UTC)
	if err != nil {
		return schedule.Request{}, &model.ValidationError{Field: "delivery_date", Message: "expected YYYY-MM-DD"}
	}
	pickupDate, err := time.ParseInLocation(dateLayout, in.PickupDate, time.UTC)
	if err != nil {
		return schedule.Request{}, &model.ValidationError{Field: "pickup_date", Message: "expected YYYY-MM-DD"}
	}
	if pickupDate.Before(deliveryDate) {
		return schedule.Request{}, &model.ValidationError{Field: "pickup_date", Message: "must not precede delivery date"}
	}
	if _, ok := model.LookupWindow(in.DeliveryWindow); !ok {
		return schedule.Request{}, &model.ValidationError{Field: "delivery_window", Message: fmt.Sprintf("unknown label %q", in.DeliveryWindow)}
	}
	if _, ok := model.LookupWindow(in.PickupWindow); !ok {
		return schedule.Request{}, &model.ValidationError{Field: "pickup_window", Message: fmt.Sprintf("unknown label %q", in.PickupWindow)}
	}
	return schedule.Request{
		DeliveryDate:   deliveryDate,
		PickupDate:     pickupDate,
		DeliveryWindow: in.DeliveryWindow,
		PickupWindow:   in.PickupWindow,
		LeadTime:       time.Duration(in.LeadTimeHours) * time.Hour,
		SessionID:      in.SessionID,
	}, nil
}
