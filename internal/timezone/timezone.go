package timezone

import "time"

// The deployment runs in one canonical zone; every wall-clock value in
// the system is interpreted here. Set once at startup from config.

const DefaultTimezone = "America/Sao_Paulo"

var deployment = mustLoad(DefaultTimezone)

func mustLoad(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Configure sets the deployment zone. Invalid names keep the default.
func Configure(tz string) {
	if IsValid(tz) {
		deployment = mustLoad(tz)
	}
}

func Location() *time.Location {
	return deployment
}

func Now() time.Time {
	return time.Now().In(deployment)
}

// ParseDate parses a "2006-01-02" calendar date at midnight in the
// deployment zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, deployment)
}

// Midnight truncates t to its date in the deployment zone.
func Midnight(t time.Time) time.Time {
	t = t.In(deployment)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, deployment)
}
