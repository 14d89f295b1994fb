package schedule

import (
	"fmt"
	"time"
)

// Minute is a wall-clock instant expressed as minutes since midnight.
type Minute int

// ParseClock parses a "15:04" wall-clock string.
func ParseClock(hm string) (Minute, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("bad clock %q: %w", hm, err)
	}
	return Minute(t.Hour()*60 + t.Minute()), nil
}

func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Interval is a half-open [Start, End) wall-clock window on one date.
// Both Booking and BookingRequest reduce to this value type, so the
// conflict check operates uniformly over either.
type Interval struct {
	Start Minute
	End   Minute
}

// NewInterval parses and validates a wall-clock window.
func NewInterval(startHM, endHM string) (Interval, error) {
	start, err := ParseClock(startHM)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(endHM)
	if err != nil {
		return Interval{}, err
	}
	if end <= start {
		return Interval{}, fmt.Errorf("end %s not after start %s", endHM, startHM)
	}
	return Interval{Start: start, End: end}, nil
}

func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

func (iv Interval) Contains(o Interval) bool {
	return iv.Start <= o.Start && o.End <= iv.End
}

// Duration in whole minutes.
func (iv Interval) Duration() int {
	return int(iv.End - iv.Start)
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}
