package model

import "time"

// SoftHold is a short-lived exclusive claim on a reservation candidate,
// taken when a session enters checkout so a competing session cannot grab
// the same resources mid-purchase.  A session has at most one active hold;
// repeating the claim refreshes ExpiresAt instead of inserting a duplicate.
//
// Expiry is passive: once now passes ExpiresAt the hold stops counting as
// a conflict everywhere, whether or not the sweeper has physically deleted
// the row yet.
type SoftHold struct {
	ID                string    // soft_holds.id (uuid)
	SessionID         string    // soft_holds.session_id (unique)
	UnitID            uint64    // soft_holds.unit_id
	DeliveryCrewID    uint64    // soft_holds.delivery_crew_id
	PickupCrewID      uint64    // soft_holds.pickup_crew_id
	DeliveryVehicleID uint64    // soft_holds.delivery_vehicle_id
	PickupVehicleID   uint64    // soft_holds.pickup_vehicle_id
	ServiceStart      time.Time // soft_holds.service_start
	ServiceEnd        time.Time // soft_holds.service_end
	DeliveryLegStart  time.Time // soft_holds.delivery_leg_start
	DeliveryLegEnd    time.Time // soft_holds.delivery_leg_end
	PickupLegStart    time.Time // soft_holds.pickup_leg_start
	PickupLegEnd      time.Time // soft_holds.pickup_leg_end
	ExpiresAt         time.Time // soft_holds.expires_at
	CreatedAt         time.Time // soft_holds.created_at
}

// ActiveAt reports whether the hold still blocks other sessions at the
// given instant.
func (h SoftHold) ActiveAt(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}
