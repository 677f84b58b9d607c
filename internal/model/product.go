package model

import "time"

// Default service durations applied when a product does not override them.
// Breakdown covers dismantling the unit at pickup time; the travel buffer
// pads the pickup leg so the crew can reach the next stop.
const (
	DefaultBreakdownMinutes    = 45
	DefaultTravelBufferMinutes = 30
)

// Product describes one bookable rental product (e.g. a tent model or an
// inflatable).  Physical copies of a product are tracked as Units.
//
// Fields:
//  ID                  – primary key identifier.
//  Name                – display name of the product.
//  BreakdownMinutes    – minutes needed to dismantle the unit at pickup.
//  TravelBufferMinutes – minutes of travel padding added to the pickup leg.
//  Active              – whether the product can currently be booked.
type Product struct {
	ID                  uint64    // products.id
	Name                string    // products.name
	BreakdownMinutes    uint32    // products.breakdown_minutes
	TravelBufferMinutes uint32    // products.travel_buffer_minutes
	Active              bool      // products.is_active
	CreatedAt           time.Time // products.created_at
	UpdatedAt           time.Time // products.updated_at
}

// Breakdown returns the breakdown duration, falling back to the default
// when the product has no explicit value.
func (p Product) Breakdown() time.Duration {
	m := p.BreakdownMinutes
	if m == 0 {
		m = DefaultBreakdownMinutes
	}
	return time.Duration(m) * time.Minute
}

// TravelBuffer returns the travel buffer duration, falling back to the
// default when the product has no explicit value.
func (p Product) TravelBuffer() time.Duration {
	m := p.TravelBufferMinutes
	if m == 0 {
		m = DefaultTravelBufferMinutes
	}
	return time.Duration(m) * time.Minute
}

// PickupLegDuration is breakdown plus travel buffer; it determines how long
// a crew and vehicle stay committed after the service window ends.
func (p Product) PickupLegDuration() time.Duration {
	return p.Breakdown() + p.TravelBuffer()
}
