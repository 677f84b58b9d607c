package model

import "time"

// Unit is one physical copy of a product.  Availability is always resolved
// per unit: two bookings may share a product but never a unit for
// overlapping time.
//
// Fields:
//  ID         – primary key identifier.
//  ProductID  – product this unit belongs to.
//  UnitNumber – stable ordinal used to enumerate units deterministically.
//  Active     – inactive units are skipped by the resolver entirely.
type Unit struct {
	ID         uint64    // units.id
	ProductID  uint64    // units.product_id
	UnitNumber uint32    // units.unit_number
	Active     bool      // units.is_active
	CreatedAt  time.Time // units.created_at
}
