package schedule

import (
	"fmt"
	"sort"

	"github.com/amizade-app/companion-api/internal/models"
)

// ruleWindow is the parsed form shared by weekly rules and overrides.
type ruleWindow struct {
	key      int // weekday for rules, 0 for a single-date override set
	interval Interval
}

// ValidateWeeklyRules rejects the whole batch when any rule is
// malformed or any two active rules overlap on the same weekday. There
// is no partial application: the caller replaces the full pattern or
// nothing.
func ValidateWeeklyRules(rules []models.AvailabilityRule) error {
	windows := make([]ruleWindow, 0, len(rules))

	for i, r := range rules {
		if r.Weekday < 0 || r.Weekday > 6 {
			return ErrValidation("invalid_weekday",
				fmt.Sprintf("rule %d: weekday %d out of range", i, r.Weekday))
		}
		if !r.Active {
			continue
		}
		iv, err := NewInterval(r.StartTime, r.EndTime)
		if err != nil {
			return ErrValidation("invalid_window",
				fmt.Sprintf("rule %d: %v", i, err))
		}
		windows = append(windows, ruleWindow{key: r.Weekday, interval: iv})
	}

	return assertNoOverlap(windows)
}

// ValidateOverrides applies the same window rules to a single-date
// override set.
func ValidateOverrides(overrides []models.AvailabilityOverride) error {
	windows := make([]ruleWindow, 0, len(overrides))

	for i, o := range overrides {
		if !o.Active {
			// Inactive override rows block a day without a window.
			continue
		}
		iv, err := NewInterval(o.StartTime, o.EndTime)
		if err != nil {
			return ErrValidation("invalid_window",
				fmt.Sprintf("override %d: %v", i, err))
		}
		windows = append(windows, ruleWindow{interval: iv})
	}

	return assertNoOverlap(windows)
}

func assertNoOverlap(windows []ruleWindow) error {
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].key != windows[j].key {
			return windows[i].key < windows[j].key
		}
		return windows[i].interval.Start < windows[j].interval.Start
	})

	for i := 1; i < len(windows); i++ {
		prev, cur := windows[i-1], windows[i]
		if prev.key == cur.key && prev.interval.Overlaps(cur.interval) {
			return ErrValidation("overlapping_rules",
				fmt.Sprintf("%s overlaps %s", prev.interval, cur.interval))
		}
	}
	return nil
}
