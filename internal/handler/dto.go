// Package handler implements the HTTP layer of the reservation engine.
// Handlers bind and translate; every decision belongs to the services.
package handler

import (
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
)

// CandidateDTO is the wire form of a reservation candidate.  The same
// shape comes back on POST /v1/holds, so a client can echo a candidate
// verbatim when claiming it.
type CandidateDTO struct {
	ProductID         uint64 `json:"product_id"`
	UnitID            uint64 `json:"unit_id"`
	DeliveryCrewID    uint64 `json:"delivery_crew_id"`
	PickupCrewID      uint64 `json:"pickup_crew_id"`
	DeliveryVehicleID uint64 `json:"delivery_vehicle_id"`
	PickupVehicleID   uint64 `json:"pickup_vehicle_id"`
	ServiceStart      string `json:"service_start"`
	ServiceEnd        string `json:"service_end"`
	DeliveryLegStart  string `json:"delivery_leg_start"`
	DeliveryLegEnd    string `json:"delivery_leg_end"`
	PickupLegStart    string `json:"pickup_leg_start"`
	PickupLegEnd      string `json:"pickup_leg_end"`
}

func candidateToDTO(c *model.ReservationCandidate) CandidateDTO {
	return CandidateDTO{
		ProductID:         c.ProductID,
		UnitID:            c.UnitID,
		DeliveryCrewID:    c.DeliveryCrewID,
		PickupCrewID:      c.PickupCrewID,
		DeliveryVehicleID: c.DeliveryVehicleID,
		PickupVehicleID:   c.PickupVehicleID,
		ServiceStart:      c.ServiceStart.UTC().Format(time.RFC3339),
		ServiceEnd:        c.ServiceEnd.UTC().Format(time.RFC3339),
		DeliveryLegStart:  c.DeliveryLegStart.UTC().Format(time.RFC3339),
		DeliveryLegEnd:    c.DeliveryLegEnd.UTC().Format(time.RFC3339),
		PickupLegStart:    c.PickupLegStart.UTC().Format(time.RFC3339),
		PickupLegEnd:      c.PickupLegEnd.UTC().Format(time.RFC3339),
	}
}

// candidateFromDTO parses the wire form back into the domain type.  Bad
// timestamps surface as validation errors from the hold service, so a
// zero time on parse failure is acceptable here.
func candidateFromDTO(d CandidateDTO) model.ReservationCandidate {
	parse := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}
		}
		return t.UTC()
	}
	return model.ReservationCandidate{
		ProductID:         d.ProductID,
		UnitID:            d.UnitID,
		DeliveryCrewID:    d.DeliveryCrewID,
		PickupCrewID:      d.PickupCrewID,
		DeliveryVehicleID: d.DeliveryVehicleID,
		PickupVehicleID:   d.PickupVehicleID,
		ServiceStart:      parse(d.ServiceStart),
		ServiceEnd:        parse(d.ServiceEnd),
		DeliveryLegStart:  parse(d.DeliveryLegStart),
		DeliveryLegEnd:    parse(d.DeliveryLegEnd),
		PickupLegStart:    parse(d.PickupLegStart),
		PickupLegEnd:      parse(d.PickupLegEnd),
	}
}
