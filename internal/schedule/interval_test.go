package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2025, 7, 10, h, m, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{at(8, 0), at(10, 0)}, Interval{at(12, 0), at(14, 0)}, false},
		{"contained", Interval{at(8, 0), at(18, 0)}, Interval{at(10, 0), at(12, 0)}, true},
		{"partial", Interval{at(8, 0), at(12, 0)}, Interval{at(11, 0), at(14, 0)}, true},
		{"identical", Interval{at(8, 0), at(12, 0)}, Interval{at(8, 0), at(12, 0)}, true},
		{"back to back", Interval{at(8, 0), at(12, 0)}, Interval{at(12, 0), at(16, 0)}, false},
		{"back to back reversed", Interval{at(12, 0), at(16, 0)}, Interval{at(8, 0), at(12, 0)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestAtClock(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	got, err := atClock(date, "16:30")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 10, 16, 30, 0, 0, time.UTC), got)

	_, err = atClock(date, "25:00")
	assert.Error(t, err)
}
