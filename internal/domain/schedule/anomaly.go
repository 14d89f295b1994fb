package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/amizade-app/companion-api/internal/models"
)

// ===============================
// Integrity anomalies
// ===============================

type AnomalyKind string

const (
	AnomalyMissingDate   AnomalyKind = "missing-date"
	AnomalyOverlap       AnomalyKind = "overlap"
	AnomalyMalformedTime AnomalyKind = "malformed-time"
)

type Anomaly struct {
	BookingID uint        `json:"booking_id"`
	Kind      AnomalyKind `json:"kind"`
	Detail    string      `json:"detail"`
}

// dateSane bounds "plausible" booking dates. Historical data predates
// the conflict guard and contains epoch-zero and far-future garbage.
func dateSane(d time.Time, now time.Time) bool {
	if d.IsZero() {
		return false
	}
	if d.Before(now.AddDate(-10, 0, 0)) || d.After(now.AddDate(2, 0, 0)) {
		return false
	}
	return true
}

// FindAnomalies scans the full booking set and reports every violation
// instead of failing fast, so operators see the whole scope before
// deciding remediation. Nothing is repaired here.
func FindAnomalies(now time.Time, bookings []models.Booking) []Anomaly {
	anomalies := []Anomaly{}

	type placed struct {
		id       uint
		interval Interval
	}
	// (companion, date) -> well-formed non-terminal intervals
	buckets := map[string][]placed{}

	for _, b := range bookings {
		if !dateSane(b.Date, now) {
			anomalies = append(anomalies, Anomaly{
				BookingID: b.ID,
				Kind:      AnomalyMissingDate,
				Detail:    fmt.Sprintf("date %q out of range", b.Date.Format("2006-01-02")),
			})
			continue
		}

		iv, err := NewInterval(b.StartTime, b.EndTime)
		if err != nil {
			anomalies = append(anomalies, Anomaly{
				BookingID: b.ID,
				Kind:      AnomalyMalformedTime,
				Detail:    err.Error(),
			})
			continue
		}

		if Status(b.Status) == StatusCancelled || Status(b.Status) == StatusNoShow {
			continue
		}

		key := fmt.Sprintf("%d|%s", b.CompanionID, b.Date.Format("2006-01-02"))
		buckets[key] = append(buckets[key], placed{id: b.ID, interval: iv})
	}

	// Overlaps between blocking bookings should be impossible if the
	// guard holds; checked defensively for pre-guard history.
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		group := buckets[k]
		sort.Slice(group, func(i, j int) bool {
			if group[i].interval.Start != group[j].interval.Start {
				return group[i].interval.Start < group[j].interval.Start
			}
			return group[i].id < group[j].id
		})
		// lead is the booking with the furthest end seen so far; with the
		// group sorted by start, a booking overlaps some earlier one iff
		// it starts before lead ends.
		lead := group[0]
		for i := 1; i < len(group); i++ {
			if group[i].interval.Start < lead.interval.End {
				anomalies = append(anomalies, Anomaly{
					BookingID: group[i].id,
					Kind:      AnomalyOverlap,
					Detail: fmt.Sprintf(
						"interval %s overlaps booking %d (%s)",
						group[i].interval, lead.id, lead.interval,
					),
				})
			}
			if group[i].interval.End > lead.interval.End {
				lead = group[i]
			}
		}
	}

	return anomalies
}
