package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amizade-app/companion-api/internal/cache"
	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/events"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ReserveInput struct {
	ClientID    uint
	CompanionID uint
	OfferingID  *uint

	Date      string // "2006-01-02"
	StartTime string // "15:04"
	EndTime   string // optional; derived from the offering when empty

	MeetingType string
	Location    string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type Reserve struct {
	repo   domain.Repository
	events *events.Dispatcher
	cache  *cache.SlotCache
	policy Policy
}

func NewReserve(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	slotCache *cache.SlotCache,
	policy Policy,
) *Reserve {
	return &Reserve{
		repo:   repo,
		events: dispatcher,
		cache:  slotCache,
		policy: policy,
	}
}

// Execute books a published open slot directly. Interval validation
// happens before any query; the conflict check and the insert commit in
// one transaction inside the repository, so a concurrent loser gets a
// SlotConflictError and never a silent duplicate.
func (uc *Reserve) Execute(
	ctx context.Context,
	in ReserveInput,
) (*models.Booking, error) {

	now := timezone.Now()

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrValidation("invalid_date", "expected YYYY-MM-DD")
	}

	companion, err := uc.repo.GetCompanion(ctx, in.CompanionID)
	if err != nil {
		return nil, domain.ErrValidation("companion_not_found", "")
	}
	if companion.Role != models.RoleCompanion || !companion.Active {
		return nil, domain.ErrValidation("companion_not_bookable", "")
	}

	var offering *models.ServiceOffering
	if in.OfferingID != nil {
		offering, err = uc.repo.GetOffering(ctx, in.CompanionID, *in.OfferingID)
		if err != nil {
			return nil, domain.ErrValidation("offering_not_found", "")
		}
	}

	iv, err := uc.resolveInterval(in, offering)
	if err != nil {
		return nil, err
	}

	if err := uc.validateInterval(now, date, iv); err != nil {
		return nil, err
	}

	if err := uc.assertWithinAvailability(ctx, in.CompanionID, date, iv); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Reference:   uuid.NewString(),
		ClientID:    in.ClientID,
		CompanionID: in.CompanionID,
		OfferingID:  in.OfferingID,

		Date:        date,
		StartTime:   iv.Start.String(),
		EndTime:     iv.End.String(),
		DurationMin: iv.Duration(),

		Status: string(domain.StatusPending),

		PriceCents:    uc.price(companion, offering, iv),
		PaymentStatus: models.PaymentUnpaid,

		MeetingType: uc.meetingType(in, offering),
		Location:    in.Location,
		Notes:       in.Notes,
	}

	if err := uc.repo.TryReserve(ctx, booking); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDate(ctx, in.CompanionID, in.Date)

	uc.events.Dispatch(events.Event{
		Kind:      events.BookingCreated,
		BookingID: &booking.ID,
		Payload:   booking,
	})

	return booking, nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *Reserve) resolveInterval(
	in ReserveInput,
	offering *models.ServiceOffering,
) (domain.Interval, error) {

	endHM := in.EndTime
	if endHM == "" {
		if offering == nil || offering.DurationMin <= 0 {
			return domain.Interval{}, domain.ErrValidation(
				"invalid_interval", "end time or offering required")
		}
		start, err := domain.ParseClock(in.StartTime)
		if err != nil {
			return domain.Interval{}, domain.ErrValidation("invalid_interval", err.Error())
		}
		end := start + domain.Minute(offering.DurationMin)
		if end > 24*60 {
			return domain.Interval{}, domain.ErrValidation(
				"invalid_interval", "offering does not fit in the day")
		}
		endHM = end.String()
	}

	iv, err := domain.NewInterval(in.StartTime, endHM)
	if err != nil {
		return domain.Interval{}, domain.ErrValidation("invalid_interval", err.Error())
	}
	return iv, nil
}

func (uc *Reserve) validateInterval(
	now time.Time,
	date time.Time,
	iv domain.Interval,
) error {

	start := date.Add(time.Duration(iv.Start) * time.Minute)
	minAllowed := now.Add(time.Duration(uc.policy.MinAdvanceMin) * time.Minute)
	if start.Before(minAllowed) {
		return domain.ErrValidation("invalid_interval", "too soon or in the past")
	}

	if d := iv.Duration(); d < uc.policy.MinDurationMin || d > uc.policy.MaxDurationMin {
		return domain.ErrValidation("invalid_interval", "duration outside allowed bounds")
	}

	return nil
}

// assertWithinAvailability requires direct reservations to land inside
// a published window. Booking requests skip this: a negotiated time may
// fall outside the published pattern because the companion accepts it
// explicitly.
func (uc *Reserve) assertWithinAvailability(
	ctx context.Context,
	companionID uint,
	date time.Time,
	iv domain.Interval,
) error {

	overrides, err := uc.repo.OverridesForDate(ctx, companionID, date.Format("2006-01-02"))
	if err != nil {
		return err
	}

	var windows []domain.Interval
	if len(overrides) > 0 {
		for _, o := range overrides {
			if !o.Active {
				continue
			}
			if w, err := domain.NewInterval(o.StartTime, o.EndTime); err == nil {
				windows = append(windows, w)
			}
		}
	} else {
		rules, err := uc.repo.ListWeeklyRules(ctx, companionID)
		if err != nil {
			return err
		}
		weekday := int(date.Weekday())
		for _, r := range rules {
			if !r.Active || r.Weekday != weekday {
				continue
			}
			if w, err := domain.NewInterval(r.StartTime, r.EndTime); err == nil {
				windows = append(windows, w)
			}
		}
	}

	for _, w := range windows {
		if w.Contains(iv) {
			return nil
		}
	}
	return domain.ErrValidation("outside_availability",
		"requested interval is not inside a published window")
}

func (uc *Reserve) price(
	companion *models.User,
	offering *models.ServiceOffering,
	iv domain.Interval,
) int64 {
	if offering != nil {
		return offering.PriceCents
	}
	return companion.HourlyRateCents * int64(iv.Duration()) / 60
}

func (uc *Reserve) meetingType(in ReserveInput, offering *models.ServiceOffering) string {
	if in.MeetingType != "" {
		return in.MeetingType
	}
	if offering != nil {
		return offering.MeetingType
	}
	return models.MeetingInPerson
}
