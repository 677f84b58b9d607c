package model

import "time"

// ResourceKind distinguishes the two interchangeable operational resource
// pools.  Delivery crews and vehicles follow the same matching rules; the
// kind only decides which pool a leg draws from.
type ResourceKind string

const (
	ResourceKindDeliveryCrew ResourceKind = "delivery_crew"
	ResourceKindVehicle      ResourceKind = "vehicle"
)

// OpsResource is a delivery crew or a vehicle.  Resources within one kind
// are interchangeable: the resolver assigns whichever member of the pool is
// free for a leg.
//
// Fields:
//  ID     – primary key identifier (shared ID space across kinds).
//  Name   – human readable label ("Crew A", "Box truck 2").
//  Kind   – delivery_crew or vehicle.
//  Active – inactive resources never receive assignments.
type OpsResource struct {
	ID        uint64       // ops_resources.id
	Name      string       // ops_resources.name
	Kind      ResourceKind // ops_resources.kind
	Active    bool         // ops_resources.is_active
	CreatedAt time.Time    // ops_resources.created_at
}

// TemplateSlot is one row of a resource's weekly shift template.  A leg can
// only be assigned to a resource when an available slot for the leg's
// day of week fully covers the leg's clock range.
//
// Fields:
//  ResourceID – resource the slot belongs to.
//  DayOfWeek  – day the slot applies to (time.Weekday, Sunday = 0).
//  StartClock – shift start as "HH:MM".
//  EndClock   – shift end as "HH:MM".
//  Available  – unavailable slots behave as if absent.
type TemplateSlot struct {
	ResourceID uint64       // ops_resource_availability.resource_id
	DayOfWeek  time.Weekday // ops_resource_availability.day_of_week
	StartClock string       // ops_resource_availability.start_clock
	EndClock   string       // ops_resource_availability.end_clock
	Available  bool         // ops_resource_availability.is_available
}
