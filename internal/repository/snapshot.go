package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
	"github.com/rentiva/slot-reservation/internal/schedule"
)

// SnapshotLoader assembles the resolver's input: one consistent read of
// every row that can influence availability for a product and time range.
// The resolver itself stays a pure function over the result.
type SnapshotLoader struct {
	products  *ProductRepo
	resources *OpsResourceRepo
	blackouts *BlackoutRepo
	holds     *SoftHoldRepo
	bookings  *BookingRepo
}

// NewSnapshotLoader wires the loader over the shared database.
func NewSnapshotLoader(db *sql.DB) *SnapshotLoader {
	return &SnapshotLoader{
		products:  NewProductRepo(db),
		resources: NewOpsResourceRepo(db),
		blackouts: NewBlackoutRepo(db),
		holds:     NewSoftHoldRepo(db),
		bookings:  NewBookingRepo(db),
	}
}

// Load builds a snapshot for the product covering [from, to).  Holds and
// bookings are loaded across all products: units only conflict within a
// product, but crews and vehicles conflict globally.
func (l *SnapshotLoader) Load(ctx context.Context, productID uint64, from, to, now time.Time) (*schedule.Snapshot, error) {
	product, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	units, err := l.products.ActiveUnits(ctx, productID)
	if err != nil {
		return nil, err
	}
	crews, err := l.resources.ActiveByKind(ctx, model.ResourceKindDeliveryCrew)
	if err != nil {
		return nil, err
	}
	vehicles, err := l.resources.ActiveByKind(ctx, model.ResourceKindVehicle)
	if err != nil {
		return nil, err
	}
	templates, err := l.resources.ActiveTemplates(ctx)
	if err != nil {
		return nil, err
	}
	windows, err := l.blackouts.Relevant(ctx, from, to)
	if err != nil {
		return nil, err
	}
	holds, err := l.holds.ActiveOverlapping(ctx, from, to, now)
	if err != nil {
		return nil, err
	}
	bookings, err := l.bookings.ActiveOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}

	claims := make([]schedule.Claim, 0, len(holds)+len(bookings))
	for _, h := range holds {
		claims = append(claims, schedule.ClaimFromHold(h))
	}
	for _, b := range bookings {
		if b.Blocks() {
			claims = append(claims, schedule.ClaimFromBooking(b))
		}
	}

	return &schedule.Snapshot{
		Product:   *product,
		Units:     units,
		Crews:     crews,
		Vehicles:  vehicles,
		Templates: templates,
		Blackouts: windows,
		Claims:    claims,
	}, nil
}
