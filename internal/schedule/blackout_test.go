package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rentiva/slot-reservation/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBlackoutScopes(t *testing.T) {
	t.Parallel()

	windows := []model.BlackoutWindow{
		{ID: 1, Scope: model.BlackoutScopeUnit, ScopeID: 11, StartDate: date(2025, 7, 10), EndDate: date(2025, 7, 10), Reason: "unit repair"},
		{ID: 2, Scope: model.BlackoutScopeProduct, ScopeID: 5, StartDate: date(2025, 7, 10), EndDate: date(2025, 7, 10), Reason: "product recall"},
		{ID: 3, Scope: model.BlackoutScopeGlobal, StartDate: date(2025, 7, 10), EndDate: date(2025, 7, 10), Reason: "company holiday"},
	}

	// Global wins over narrower scopes covering the same day.
	w, hit := Blackout(windows, 5, 11, date(2025, 7, 10))
	assert.True(t, hit)
	assert.Equal(t, "company holiday", w.Reason)

	// Product scope only applies to its product.
	w, hit = Blackout(windows[:2], 5, 0, date(2025, 7, 10))
	assert.True(t, hit)
	assert.Equal(t, "product recall", w.Reason)
	_, hit = Blackout(windows[:2], 6, 0, date(2025, 7, 10))
	assert.False(t, hit)

	// Unit scope is skipped entirely when unitID is 0.
	_, hit = Blackout(windows[:1], 5, 0, date(2025, 7, 10))
	assert.False(t, hit)
	w, hit = Blackout(windows[:1], 5, 11, date(2025, 7, 10))
	assert.True(t, hit)
	assert.Equal(t, "unit repair", w.Reason)
}

func TestBlackoutDateRangeInclusive(t *testing.T) {
	t.Parallel()

	windows := []model.BlackoutWindow{
		{Scope: model.BlackoutScopeGlobal, StartDate: date(2025, 8, 1), EndDate: date(2025, 8, 3)},
	}

	for _, d := range []time.Time{date(2025, 8, 1), date(2025, 8, 2), date(2025, 8, 3)} {
		_, hit := Blackout(windows, 1, 0, d)
		assert.True(t, hit, d)
	}
	_, hit := Blackout(windows, 1, 0, date(2025, 7, 31))
	assert.False(t, hit)
	_, hit = Blackout(windows, 1, 0, date(2025, 8, 4))
	assert.False(t, hit)
}

func TestBlackoutRecurringYearly(t *testing.T) {
	t.Parallel()

	windows := []model.BlackoutWindow{
		{Scope: model.BlackoutScopeGlobal, StartDate: date(2020, 12, 24), EndDate: date(2020, 12, 26), RecurringYearly: true},
	}

	_, hit := Blackout(windows, 1, 0, date(2025, 12, 25))
	assert.True(t, hit, "recurring window must match any year")
	_, hit = Blackout(windows, 1, 0, date(2031, 12, 24))
	assert.True(t, hit)
	_, hit = Blackout(windows, 1, 0, date(2025, 12, 27))
	assert.False(t, hit)
}

func TestBlackoutRecurringYearBoundaryWrap(t *testing.T) {
	t.Parallel()

	windows := []model.BlackoutWindow{
		{Scope: model.BlackoutScopeGlobal, StartDate: date(2020, 12, 28), EndDate: date(2021, 1, 3), RecurringYearly: true},
	}

	for _, d := range []time.Time{date(2025, 12, 28), date(2025, 12, 31), date(2026, 1, 1), date(2026, 1, 3)} {
		_, hit := Blackout(windows, 1, 0, d)
		assert.True(t, hit, d)
	}
	_, hit := Blackout(windows, 1, 0, date(2025, 12, 27))
	assert.False(t, hit)
	_, hit = Blackout(windows, 1, 0, date(2026, 1, 4))
	assert.False(t, hit)
}

func TestBlackoutInRange(t *testing.T) {
	t.Parallel()

	windows := []model.BlackoutWindow{
		{Scope: model.BlackoutScopeGlobal, StartDate: date(2025, 7, 12), EndDate: date(2025, 7, 12), Reason: "maintenance"},
	}

	w, hit := BlackoutInRange(windows, 1, 0, date(2025, 7, 10), date(2025, 7, 14))
	assert.True(t, hit)
	assert.Equal(t, "maintenance", w.Reason)

	_, hit = BlackoutInRange(windows, 1, 0, date(2025, 7, 13), date(2025, 7, 14))
	assert.False(t, hit)
}
