package model

import "time"

// BlackoutScope narrows which bookings a blackout window applies to.
type BlackoutScope string

const (
	BlackoutScopeGlobal  BlackoutScope = "global"
	BlackoutScopeProduct BlackoutScope = "product"
	BlackoutScopeUnit    BlackoutScope = "unit"
)

// BlackoutWindow is a date range in which bookings are disallowed.  The
// scope decides what ScopeID must match: nothing for global, a product ID
// for product scope, a unit ID for unit scope.  Recurring windows repeat
// every year and are matched by month and day only; a recurring range whose
// end precedes its start wraps across the year boundary (Dec 28 – Jan 3).
// Non-recurring windows match the full calendar date range, inclusive.
type BlackoutWindow struct {
	ID              uint64        // blackout_windows.id
	Scope           BlackoutScope // blackout_windows.scope
	ScopeID         uint64        // blackout_windows.scope_id (0 for global)
	StartDate       time.Time     // blackout_windows.start_date (date only, UTC)
	EndDate         time.Time     // blackout_windows.end_date (date only, UTC)
	RecurringYearly bool          // blackout_windows.recurring_yearly
	Reason          string        // blackout_windows.reason
}
