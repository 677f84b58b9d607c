package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentiva/slot-reservation/internal/clock"
	"github.com/rentiva/slot-reservation/internal/model"
	"github.com/rentiva/slot-reservation/internal/schedule"
)

type fakeSnapshotLoader struct {
	snap    *schedule.Snapshot
	err     error
	gotFrom time.Time
	gotTo   time.Time
	calls   int
}

func (f *fakeSnapshotLoader) Load(ctx context.Context, productID uint64, from, to, now time.Time) (*schedule.Snapshot, error) {
	f.calls++
	f.gotFrom, f.gotTo = from, to
	return f.snap, f.err
}

// availabilitySnapshot mirrors the resolver fixture: one product, one unit,
// one crew, one vehicle, shifts all week.
func availabilitySnapshot() *schedule.Snapshot {
	week := func(id uint64) []model.TemplateSlot {
		slots := make([]model.TemplateSlot, 0, 7)
		for d := time.Sunday; d <= time.Saturday; d++ {
			slots = append(slots, model.TemplateSlot{ResourceID: id, DayOfWeek: d, StartClock: "07:00", EndClock: "23:00", Available: true})
		}
		return slots
	}
	return &schedule.Snapshot{
		Product:  model.Product{ID: 5, BreakdownMinutes: 120, TravelBufferMinutes: 30, Active: true},
		Units:    []model.Unit{{ID: 11, ProductID: 5, UnitNumber: 1, Active: true}},
		Crews:    []model.OpsResource{{ID: 21, Kind: model.ResourceKindDeliveryCrew, Active: true}},
		Vehicles: []model.OpsResource{{ID: 31, Kind: model.ResourceKindVehicle, Active: true}},
		Templates: map[uint64][]model.TemplateSlot{
			21: week(21), 31: week(31),
		},
	}
}

func checkInput() CheckInput {
	return CheckInput{
		ProductID:      5,
		DeliveryDate:   "2025-07-10",
		PickupDate:     "2025-07-10",
		DeliveryWindow: "afternoon",
		PickupWindow:   "evening",
		LeadTimeHours:  18,
		SessionID:      "S1",
	}
}

func newAvailability(loader SnapshotLoader) *AvailabilityService {
	return NewAvailabilityService(loader, clock.NewFixed(holdNow), zap.NewNop().Sugar())
}

func TestAvailabilityCheck(t *testing.T) {
	t.Parallel()

	loader := &fakeSnapshotLoader{snap: availabilitySnapshot()}
	cand, err := newAvailability(loader).Check(context.Background(), checkInput())
	require.NoError(t, err)

	assert.Equal(t, uint64(11), cand.UnitID)
	assert.Equal(t, ts(16, 0), cand.PickupLegStart)
	assert.Equal(t, ts(18, 30), cand.PickupLegEnd, "pickup leg is breakdown plus travel buffer")
	assert.Equal(t, 1, loader.calls)

	// The snapshot range extends past the pickup date to cover the leg.
	assert.Equal(t, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), loader.gotFrom)
	assert.Equal(t, time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC), loader.gotTo)
}

func TestAvailabilityCheckValidation(t *testing.T) {
	t.Parallel()

	loader := &fakeSnapshotLoader{snap: availabilitySnapshot()}
	svc := newAvailability(loader)

	tests := []struct {
		name   string
		mutate func(*CheckInput)
		field  string
	}{
		{"missing product", func(in *CheckInput) { in.ProductID = 0 }, "product_id"},
		{"missing session", func(in *CheckInput) { in.SessionID = "" }, "session_id"},
		{"negative lead time", func(in *CheckInput) { in.LeadTimeHours = -1 }, "lead_time_hours"},
		{"bad delivery date", func(in *CheckInput) { in.DeliveryDate = "10.07.2025" }, "delivery_date"},
		{"bad pickup date", func(in *CheckInput) { in.PickupDate = "not-a-date" }, "pickup_date"},
		{"pickup before delivery", func(in *CheckInput) { in.PickupDate = "2025-07-09" }, "pickup_date"},
		{"unknown delivery window", func(in *CheckInput) { in.DeliveryWindow = "dawn" }, "delivery_window"},
		{"unknown pickup window", func(in *CheckInput) { in.PickupWindow = "dusk" }, "pickup_window"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := checkInput()
			tc.mutate(&in)
			_, err := svc.Check(context.Background(), in)
			ve, ok := model.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
	assert.Zero(t, loader.calls, "validation failures never reach the store")
}

func TestAvailabilityCheckInactiveProduct(t *testing.T) {
	t.Parallel()

	snap := availabilitySnapshot()
	snap.Product.Active = false
	loader := &fakeSnapshotLoader{snap: snap}

	_, err := newAvailability(loader).Check(context.Background(), checkInput())
	ve, ok := model.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "product_id", ve.Field)
}

func TestAvailabilityCheckUnavailablePassesThrough(t *testing.T) {
	t.Parallel()

	snap := availabilitySnapshot()
	snap.Units[0].Active = false
	loader := &fakeSnapshotLoader{snap: snap}

	_, err := newAvailability(loader).Check(context.Background(), checkInput())
	ue, ok := model.AsUnavailable(err)
	require.True(t, ok)
	assert.Equal(t, model.ReasonUnitsExhausted, ue.Reason)
}
