package schedule

import (
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
)

// Claim is the unified conflict view of anything occupying resources: soft
// holds and pending/confirmed bookings are two TTL tiers of the same
// reservation lifecycle, so they share one overlap representation instead
// of duplicating interval math per table.
type Claim struct {
	// SessionID is set for soft holds only; a session's own claim is
	// never counted as a conflict against itself.
	SessionID string
	// ExpiresAt is set for soft holds; the zero value means the claim
	// never expires on its own (bookings).
	ExpiresAt time.Time

	UnitID            uint64
	DeliveryCrewID    uint64
	PickupCrewID      uint64
	DeliveryVehicleID uint64
	PickupVehicleID   uint64

	DeliveryLeg Interval
	PickupLeg   Interval
	// Service spans from delivery leg start to pickup leg end; it is the
	// interval for which the unit is committed.
	Service Interval
}

// ActiveAt reports whether the claim still blocks resources at the given
// instant.  Expired holds are inert immediately, independent of when the
// sweeper physically removes them.
func (c Claim) ActiveAt(now time.Time) bool {
	return c.ExpiresAt.IsZero() || now.Before(c.ExpiresAt)
}

// ClaimFromHold converts a stored soft hold into its conflict view.
func ClaimFromHold(h model.SoftHold) Claim {
	return Claim{
		SessionID:         h.SessionID,
		ExpiresAt:         h.ExpiresAt,
		UnitID:            h.UnitID,
		DeliveryCrewID:    h.DeliveryCrewID,
		PickupCrewID:      h.PickupCrewID,
		DeliveryVehicleID: h.DeliveryVehicleID,
		PickupVehicleID:   h.PickupVehicleID,
		DeliveryLeg:       Interval{Start: h.DeliveryLegStart, End: h.DeliveryLegEnd},
		PickupLeg:         Interval{Start: h.PickupLegStart, End: h.PickupLegEnd},
		Service:           Interval{Start: h.ServiceStart, End: h.PickupLegEnd},
	}
}

// ClaimFromBooking converts a booking row into its conflict view.  The
// caller is expected to filter out rows that do not block (cancelled).
func ClaimFromBooking(b model.Booking) Claim {
	return Claim{
		UnitID:            b.UnitID,
		DeliveryCrewID:    b.DeliveryCrewID,
		PickupCrewID:      b.PickupCrewID,
		DeliveryVehicleID: b.DeliveryVehicleID,
		PickupVehicleID:   b.PickupVehicleID,
		DeliveryLeg:       Interval{Start: b.DeliveryLegStart, End: b.DeliveryLegEnd},
		PickupLeg:         Interval{Start: b.PickupLegStart, End: b.PickupLegEnd},
		Service:           Interval{Start: b.ServiceStart, End: b.PickupLegEnd},
	}
}

// Snapshot is the explicit in-memory state the resolver works over: every
// row that could influence availability for the queried product and time
// range.  Claims must include holds and bookings across all products,
// because crews and vehicles conflict regardless of product.
type Snapshot struct {
	Product   model.Product
	Units     []model.Unit
	Crews     []model.OpsResource
	Vehicles  []model.OpsResource
	Templates map[uint64][]model.TemplateSlot
	Blackouts []model.BlackoutWindow
	Claims    []Claim
}
