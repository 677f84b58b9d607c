package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
)

// Request carries the inputs of one availability query.  Dates are
// calendar dates (clock ignored); windows are WindowCatalog label names.
// SessionID identifies the caller so its own active hold is excluded from
// conflict checks.
type Request struct {
	DeliveryDate   time.Time
	PickupDate     time.Time
	DeliveryWindow string
	PickupWindow   string
	LeadTime       time.Duration
	SessionID      string
}

// Resolve answers "is this product free for these windows" against a
// snapshot and an explicit now().  It is a pure function: two calls with
// the same snapshot and now return the identical candidate, and no state
// is retained between calls.
//
// On failure it returns a *model.UnavailableError carrying the specific
// exhausted resource, or a *model.ValidationError for malformed windows.
func Resolve(snap *Snapshot, req Request, now time.Time) (*model.ReservationCandidate, error) {
	deliveryLeg, pickupLeg, err := resolveLegs(snap.Product, req)
	if err != nil {
		return nil, err
	}
	serviceStart := deliveryLeg.Start
	serviceEnd := pickupLeg.Start
	unitSpan := Interval{Start: serviceStart, End: pickupLeg.End}

	// Lead time gate: the delivery leg must start far enough in the future.
	if deliveryLeg.Start.Before(now.Add(req.LeadTime)) {
		return nil, model.Unavailable(model.ReasonLeadTime,
			fmt.Sprintf("delivery must start after %s", now.Add(req.LeadTime).Format(time.RFC3339)))
	}

	// Global and product scoped blackouts kill the whole query; unit
	// scoped windows are evaluated per unit below.
	if w, hit := BlackoutInRange(snap.Blackouts, snap.Product.ID, 0, req.DeliveryDate, req.PickupDate); hit {
		return nil, model.Unavailable(model.ReasonBlackout, w.Reason)
	}

	unit, ok := pickUnit(snap, req, unitSpan, now)
	if !ok {
		return nil, model.Unavailable(model.ReasonUnitsExhausted, "no unit free for the requested span")
	}

	deliveryCrew, pickupCrew, ok := pickPair(snap, model.ResourceKindDeliveryCrew, req.SessionID, deliveryLeg, pickupLeg, now)
	if !ok {
		return nil, model.Unavailable(model.ReasonCrewExhausted, "no delivery crew free for one of the legs")
	}
	deliveryVehicle, pickupVehicle, ok := pickPair(snap, model.ResourceKindVehicle, req.SessionID, deliveryLeg, pickupLeg, now)
	if !ok {
		return nil, model.Unavailable(model.ReasonVehicleExhausted, "no vehicle free for one of the legs")
	}

	return &model.ReservationCandidate{
		ProductID:         snap.Product.ID,
		UnitID:            unit.ID,
		DeliveryCrewID:    deliveryCrew,
		PickupCrewID:      pickupCrew,
		DeliveryVehicleID: deliveryVehicle,
		PickupVehicleID:   pickupVehicle,
		ServiceStart:      serviceStart,
		ServiceEnd:        serviceEnd,
		DeliveryLegStart:  deliveryLeg.Start,
		DeliveryLegEnd:    deliveryLeg.End,
		PickupLegStart:    pickupLeg.Start,
		PickupLegEnd:      pickupLeg.End,
	}, nil
}

// resolveLegs anchors the window labels to their dates and derives the two
// legs.  The delivery crew owns the whole delivery window; the pickup leg
// runs from the pickup window start for breakdown plus travel buffer.
func resolveLegs(product model.Product, req Request) (Interval, Interval, error) {
	dw, ok := model.LookupWindow(req.DeliveryWindow)
	if !ok {
		return Interval{}, Interval{}, &model.ValidationError{Field: "delivery_window", Message: "unknown window label"}
	}
	pw, ok := model.LookupWindow(req.PickupWindow)
	if !ok {
		return Interval{}, Interval{}, &model.ValidationError{Field: "pickup_window", Message: "unknown window label"}
	}

	dStart, err := atClock(req.DeliveryDate, dw.StartClock)
	if err != nil {
		return Interval{}, Interval{}, err
	}
	dEnd, err := atClock(req.DeliveryDate, dw.EndClock)
	if err != nil {
		return Interval{}, Interval{}, err
	}
	pStart, err := atClock(req.PickupDate, pw.StartClock)
	if err != nil {
		return Interval{}, Interval{}, err
	}

	deliveryLeg := Interval{Start: dStart, End: dEnd}
	pickupLeg := Interval{Start: pStart, End: pStart.Add(product.PickupLegDuration())}
	if !pStart.After(dStart) {
		return Interval{}, Interval{}, &model.ValidationError{Field: "pickup_window", Message: "pickup must start after delivery"}
	}
	return deliveryLeg, pickupLeg, nil
}

// pickUnit enumerates active units in ascending unit number (ties broken
// by ID) for determinism and returns the first one with no unit-scoped
// blackout and no overlapping active claim.
func pickUnit(snap *Snapshot, req Request, span Interval, now time.Time) (model.Unit, bool) {
	units := make([]model.Unit, 0, len(snap.Units))
	for _, u := range snap.Units {
		if u.Active && u.ProductID == snap.Product.ID {
			units = append(units, u)
		}
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].UnitNumber != units[j].UnitNumber {
			return units[i].UnitNumber < units[j].UnitNumber
		}
		return units[i].ID < units[j].ID
	})

	for _, u := range units {
		if _, hit := BlackoutInRange(snap.Blackouts, snap.Product.ID, u.ID, req.DeliveryDate, req.PickupDate); hit {
			continue
		}
		if unitBusy(snap.Claims, req.SessionID, u.ID, span, now) {
			continue
		}
		return u, true
	}
	return model.Unit{}, false
}

// unitBusy reports whether any active foreign claim commits the unit for
// an interval overlapping span.
func unitBusy(claims []Claim, session string, unitID uint64, span Interval, now time.Time) bool {
	for _, c := range claims {
		if c.UnitID != unitID || !c.ActiveAt(now) {
			continue
		}
		if c.SessionID != "" && c.SessionID == session {
			continue
		}
		if c.Service.Overlaps(span) {
			return true
		}
	}
	return false
}

// pickPair assigns one resource of the given kind to each leg.  Reusing
// the same resource for both legs is a preference, not a constraint: the
// first resource free for both wins, otherwise each leg takes the first
// resource free for it alone.
func pickPair(snap *Snapshot, kind model.ResourceKind, session string, deliveryLeg, pickupLeg Interval, now time.Time) (uint64, uint64, bool) {
	pool := snap.Crews
	if kind == model.ResourceKindVehicle {
		pool = snap.Vehicles
	}
	sorted := make([]model.OpsResource, 0, len(pool))
	for _, r := range pool {
		if r.Active && r.Kind == kind {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	free := func(r model.OpsResource, leg Interval) bool {
		return templateCovers(snap.Templates[r.ID], leg) &&
			!resourceBusy(snap.Claims, session, r.ID, leg, now)
	}

	for _, r := range sorted {
		if free(r, deliveryLeg) && free(r, pickupLeg) {
			return r.ID, r.ID, true
		}
	}

	var deliveryID, pickupID uint64
	for _, r := range sorted {
		if deliveryID == 0 && free(r, deliveryLeg) {
			deliveryID = r.ID
		}
	}
	for _, r := range sorted {
		if pickupID == 0 && r.ID != deliveryID && free(r, pickupLeg) {
			pickupID = r.ID
		}
	}
	if deliveryID == 0 || pickupID == 0 {
		return 0, 0, false
	}
	return deliveryID, pickupID, true
}

// templateCovers reports whether an available weekly slot for the leg's
// day fully contains the leg's clock range.  Legs that cross midnight are
// never covered; windows and pickup durations keep legs within one day.
func templateCovers(slots []model.TemplateSlot, leg Interval) bool {
	day := leg.Start.Weekday()
	legStart := minutesOfDay(leg.Start)
	legEnd := legStart + int(leg.Duration()/time.Minute)
	if legEnd > 24*60 {
		return false
	}
	for _, s := range slots {
		if !s.Available || s.DayOfWeek != day {
			continue
		}
		slotStart, err := parseClock(s.StartClock)
		if err != nil {
			continue
		}
		slotEnd, err := parseClock(s.EndClock)
		if err != nil {
			continue
		}
		if slotStart <= legStart && legEnd <= slotEnd {
			return true
		}
	}
	return false
}

// resourceBusy reports whether any active foreign claim assigns the
// resource to a leg overlapping the requested leg.  Crews and vehicles
// share one ID space, so both role fields are checked; conflicts apply
// across all products.
func resourceBusy(claims []Claim, session string, resourceID uint64, leg Interval, now time.Time) bool {
	for _, c := range claims {
		if !c.ActiveAt(now) {
			continue
		}
		if c.SessionID != "" && c.SessionID == session {
			continue
		}
		if (c.DeliveryCrewID == resourceID || c.DeliveryVehicleID == resourceID) && c.DeliveryLeg.Overlaps(leg) {
			return true
		}
		if (c.PickupCrewID == resourceID || c.PickupVehicleID == resourceID) && c.PickupLeg.Overlaps(leg) {
			return true
		}
	}
	return false
}
