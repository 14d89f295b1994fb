package schedule

import (
	"context"
	"time"

	"github.com/amizade-app/companion-api/internal/audit"
	"github.com/amizade-app/companion-api/internal/config"
	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
)

// RepairPolicy is deliberately configuration, not code: the backfill
// heuristic exists for specific historical bad data and needs product
// sign-off before it can be treated as a general rule.
type RepairPolicy struct {
	BackfillDays int
	WindowStart  string
	WindowEnd    string
}

func RepairPolicyFromConfig(cfg *config.Config) RepairPolicy {
	return RepairPolicy{
		BackfillDays: cfg.CleanupBackfillDays,
		WindowStart:  cfg.RepairWindowStart,
		WindowEnd:    cfg.RepairWindowEnd,
	}
}

type Repair struct {
	BookingID uint               `json:"booking_id"`
	Kind      domain.AnomalyKind `json:"kind"`
	Action    string             `json:"action"`
}

type RepairReport struct {
	Scanned  int      `json:"scanned"`
	Repaired []Repair `json:"repaired"`
	Skipped  []uint   `json:"skipped"`
}

type Cleanup struct {
	repo   domain.Repository
	policy RepairPolicy
}

func NewCleanup(repo domain.Repository, policy RepairPolicy) *Cleanup {
	return &Cleanup{repo: repo, policy: policy}
}

// Execute applies the documented repair per anomaly kind. With an empty
// id list every current anomaly is repaired; otherwise only the named
// bookings are touched. Every repair is audited with a nil actor.
func (uc *Cleanup) Execute(
	ctx context.Context,
	bookingIDs []uint,
) (*RepairReport, error) {

	bookings, err := uc.repo.ListAllBookings(ctx)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	anomalies := domain.FindAnomalies(now, bookings)

	wanted := map[uint]bool{}
	for _, id := range bookingIDs {
		wanted[id] = true
	}

	byID := map[uint]*models.Booking{}
	for i := range bookings {
		byID[bookings[i].ID] = &bookings[i]
	}

	report := &RepairReport{Scanned: len(bookings), Repaired: []Repair{}, Skipped: []uint{}}

	for _, a := range anomalies {
		if len(wanted) > 0 && !wanted[a.BookingID] {
			report.Skipped = append(report.Skipped, a.BookingID)
			continue
		}

		b, ok := byID[a.BookingID]
		if !ok {
			continue
		}

		before := *b
		action := uc.repair(now, b, a.Kind)

		if err := uc.repo.UpdateBooking(ctx, b); err != nil {
			return nil, err
		}

		entry := audit.Entry(
			b.CompanionID,
			nil, // system
			"integrity_repair",
			"booking",
			&b.ID,
			before,
			b,
		)
		if err := uc.repo.AppendAudit(ctx, entry); err != nil {
			return nil, err
		}

		report.Repaired = append(report.Repaired, Repair{
			BookingID: b.ID,
			Kind:      a.Kind,
			Action:    action,
		})
	}

	return report, nil
}

func (uc *Cleanup) repair(
	now time.Time,
	b *models.Booking,
	kind domain.AnomalyKind,
) string {
	switch kind {
	case domain.AnomalyMissingDate:
		// Backfill from the creation timestamp; rows old enough to
		// predate created_at fall back to a configured distance.
		if !b.CreatedAt.IsZero() {
			b.Date = timezone.Midnight(b.CreatedAt)
			return "date backfilled from creation timestamp"
		}
		b.Date = timezone.Midnight(now.AddDate(0, 0, -uc.policy.BackfillDays))
		return "date backfilled from configured fallback"

	case domain.AnomalyMalformedTime:
		iv, err := domain.NewInterval(uc.policy.WindowStart, uc.policy.WindowEnd)
		if err != nil {
			iv, _ = domain.NewInterval("09:00", "10:00")
		}
		b.StartTime = iv.Start.String()
		b.EndTime = iv.End.String()
		b.DurationMin = iv.Duration()
		return "times replaced with configured default window"

	case domain.AnomalyOverlap:
		// The anomaly names the later-starting booking of the pair;
		// cancelling it keeps the earlier reservation intact.
		b.Status = string(domain.StatusCancelled)
		b.CancelledAt = &now
		return "overlapping booking cancelled"
	}
	return "no-op"
}
