package model

import "time"

// BookingStatus is the lifecycle state of a booking row.  PENDING bookings
// are the second, longer TTL tier of the reservation lifecycle: they block
// resources like a hold does, but survive until the payment collaborator
// confirms them or the sweeper reclaims them as abandoned.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking mirrors the bookings ledger consumed by the resolver.  Rows are
// created when a payment session starts and promoted to CONFIRMED by the
// payment collaborator; the engine itself only reads them for conflict
// checks and deletes abandoned PENDING rows during sweeps.
type Booking struct {
	ID                uint64        // bookings.id
	Status            BookingStatus // bookings.status
	EventDate         time.Time     // bookings.event_date (date only, UTC)
	UnitID            uint64        // bookings.unit_id
	DeliveryCrewID    uint64        // bookings.delivery_crew_id
	PickupCrewID      uint64        // bookings.pickup_crew_id
	DeliveryVehicleID uint64        // bookings.delivery_vehicle_id
	PickupVehicleID   uint64        // bookings.pickup_vehicle_id
	ServiceStart      time.Time     // bookings.service_start
	ServiceEnd        time.Time     // bookings.service_end
	DeliveryLegStart  time.Time     // bookings.delivery_leg_start
	DeliveryLegEnd    time.Time     // bookings.delivery_leg_end
	PickupLegStart    time.Time     // bookings.pickup_leg_start
	PickupLegEnd      time.Time     // bookings.pickup_leg_end
	CreatedAt         time.Time     // bookings.created_at
	UpdatedAt         time.Time     // bookings.updated_at
}

// Blocks reports whether the booking participates in conflict checks.
// Cancelled rows are inert; pending and confirmed rows both block.
func (b Booking) Blocks() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
