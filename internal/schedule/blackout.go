package schedule

import (
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
)

// Blackout checks whether any window blocks the given calendar date for
// the product/unit pair.  Scopes are evaluated global first, then product,
// then unit, and the first matching window wins.  Pass unitID 0 to skip
// unit-scope windows (the resolver does this for its range pre-check and
// evaluates unit scope per unit).
func Blackout(windows []model.BlackoutWindow, productID, unitID uint64, date time.Time) (model.BlackoutWindow, bool) {
	scopes := []model.BlackoutScope{
		model.BlackoutScopeGlobal,
		model.BlackoutScopeProduct,
		model.BlackoutScopeUnit,
	}
	for _, scope := range scopes {
		for _, w := range windows {
			if w.Scope != scope {
				continue
			}
			switch scope {
			case model.BlackoutScopeProduct:
				if w.ScopeID != productID {
					continue
				}
			case model.BlackoutScopeUnit:
				if unitID == 0 || w.ScopeID != unitID {
					continue
				}
			}
			if blackoutCovers(w, date) {
				return w, true
			}
		}
	}
	return model.BlackoutWindow{}, false
}

// BlackoutInRange applies Blackout to every calendar day from `from` to
// `to` inclusive and returns the first hit.  Both bounds are treated as
// dates; their clock components are ignored.
func BlackoutInRange(windows []model.BlackoutWindow, productID, unitID uint64, from, to time.Time) (model.BlackoutWindow, bool) {
	day := dateOnly(from)
	last := dateOnly(to)
	for !day.After(last) {
		if w, hit := Blackout(windows, productID, unitID, day); hit {
			return w, true
		}
		day = day.AddDate(0, 0, 1)
	}
	return model.BlackoutWindow{}, false
}

// blackoutCovers reports whether one window blocks one calendar date.
func blackoutCovers(w model.BlackoutWindow, date time.Time) bool {
	if w.RecurringYearly {
		// Recurring windows compare (month, day) only.  When the end
		// precedes the start the range wraps across the year boundary,
		// e.g. Dec 28 – Jan 3 covers both late December and early January.
		md := monthDay(date)
		start := monthDay(w.StartDate)
		end := monthDay(w.EndDate)
		if start <= end {
			return md >= start && md <= end
		}
		return md >= start || md <= end
	}
	d := dateOnly(date)
	return !d.Before(dateOnly(w.StartDate)) && !d.After(dateOnly(w.EndDate))
}

// monthDay encodes a date's month and day as an ordered integer (MMDD).
func monthDay(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}

// dateOnly truncates t to midnight UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
