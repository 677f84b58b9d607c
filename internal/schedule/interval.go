// Package schedule holds the pure availability logic: interval math, the
// blackout evaluator and the resolver.  Nothing in this package touches a
// store; callers assemble a Snapshot of the relevant rows and the resolver
// answers from that snapshot and an explicit now().
package schedule

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End).  Back-to-back intervals
// (one ending exactly when the next starts) do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two half-open intervals share any instant:
// a.Start < b.End && b.Start < a.End.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Duration returns End minus Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Valid reports whether the interval is non-empty.
func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// parseClock converts an "HH:MM" string into minutes from midnight.
func parseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// atClock anchors an "HH:MM" clock string to a calendar date in UTC.
func atClock(date time.Time, clock string) (time.Time, error) {
	mins, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, mins, 0, 0, time.UTC), nil
}

// minutesOfDay returns the minutes elapsed since the UTC midnight of t's day.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
