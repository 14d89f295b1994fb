package schedule

import "sort"

// DefaultGranularityMin is the slot size advertised when the caller
// does not ask for one.
const DefaultGranularityMin = 60

// DeriveOpenSlots quantizes each availability window into contiguous
// candidate slots of granularity minutes aligned to the window start,
// drops the trailing remainder (never advertise an un-bookable slot),
// and removes every candidate that overlaps a busy interval. A busy
// interval strictly inside a candidate drops the whole candidate
// rather than splitting it: every advertised slot keeps the full
// granularity, so sub-granularity fragments are never offered. The
// result is chronological and non-overlapping. No windows means no
// slots, not an error.
func DeriveOpenSlots(windows, busy []Interval, granularityMin int) []Interval {
	if granularityMin <= 0 {
		granularityMin = DefaultGranularityMin
	}
	step := Minute(granularityMin)

	windows = append([]Interval(nil), windows...)
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start < windows[j].Start
	})

	busy = append([]Interval(nil), busy...)
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start < busy[j].Start
	})

	slots := []Interval{}
	bi := 0

	for _, w := range windows {
		for cur := w.Start; cur+step <= w.End; cur += step {
			slot := Interval{Start: cur, End: cur + step}

			// Busy intervals already behind this slot stay behind
			// every later slot too.
			for bi < len(busy) && busy[bi].End <= slot.Start {
				bi++
			}

			conflict := false
			for j := bi; j < len(busy) && busy[j].Start < slot.End; j++ {
				if slot.Overlaps(busy[j]) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, slot)
			}
		}
	}

	return slots
}
