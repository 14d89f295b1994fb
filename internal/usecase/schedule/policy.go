package schedule

import "github.com/amizade-app/companion-api/internal/config"

// Policy carries the reservation limits enforced before any conflict
// query runs.
type Policy struct {
	MinDurationMin int
	MaxDurationMin int
	MinAdvanceMin  int
}

func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		MinDurationMin: cfg.MinBookingMinutes,
		MaxDurationMin: cfg.MaxBookingMinutes,
		MinAdvanceMin:  cfg.MinAdvanceMinutes,
	}
}
