package model

import "time"

// ReservationCandidate is the resolver's answer to an availability query:
// a concrete, conflict-free assignment of a unit, crews and vehicles to the
// requested windows.  Candidates are computed, never persisted; claiming
// one creates a SoftHold with the same times and resource IDs.
//
// ServiceStart equals DeliveryLegStart and ServiceEnd equals
// PickupLegStart.  PickupLegEnd extends past the service window by the
// product's breakdown plus travel buffer.  The unit is committed for
// [ServiceStart, PickupLegEnd); each crew/vehicle is committed only for
// its own leg.
type ReservationCandidate struct {
	ProductID         uint64
	UnitID            uint64
	DeliveryCrewID    uint64
	PickupCrewID      uint64
	DeliveryVehicleID uint64
	PickupVehicleID   uint64
	ServiceStart      time.Time
	ServiceEnd        time.Time
	DeliveryLegStart  time.Time
	DeliveryLegEnd    time.Time
	PickupLegStart    time.Time
	PickupLegEnd      time.Time
}
