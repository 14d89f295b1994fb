package schedule

import (
	"context"
	"time"

	"github.com/amizade-app/companion-api/internal/cache"
	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
)

type GetOpenSlots struct {
	repo  domain.Repository
	cache *cache.SlotCache
}

func NewGetOpenSlots(repo domain.Repository, slotCache *cache.SlotCache) *GetOpenSlots {
	return &GetOpenSlots{repo: repo, cache: slotCache}
}

// Execute derives the bookable intervals for one date. Read-only; the
// cache only shortens the happy path and is invalidated by every
// availability or booking mutation.
func (uc *GetOpenSlots) Execute(
	ctx context.Context,
	companionID uint,
	date time.Time,
	granularityMin int,
) ([]domain.Interval, error) {

	if granularityMin <= 0 {
		granularityMin = domain.DefaultGranularityMin
	}
	dateStr := date.Format("2006-01-02")

	if slots, ok := uc.cache.Get(ctx, companionID, dateStr, granularityMin); ok {
		return slots, nil
	}

	windows, err := uc.effectiveWindows(ctx, companionID, date)
	if err != nil {
		return nil, err
	}

	// A date with no rule and no override has no slots; that is an
	// empty answer, not an error.
	if len(windows) == 0 {
		return []domain.Interval{}, nil
	}

	busy, err := uc.busyIntervals(ctx, companionID, date)
	if err != nil {
		return nil, err
	}

	slots := domain.DeriveOpenSlots(windows, busy, granularityMin)
	uc.cache.Set(ctx, companionID, dateStr, granularityMin, slots)

	return slots, nil
}

// effectiveWindows resolves the availability for a date: an override
// set for that exact date fully replaces the weekly pattern, otherwise
// the weekday's rules apply.
func (uc *GetOpenSlots) effectiveWindows(
	ctx context.Context,
	companionID uint,
	date time.Time,
) ([]domain.Interval, error) {

	overrides, err := uc.repo.OverridesForDate(ctx, companionID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	windows := []domain.Interval{}

	if len(overrides) > 0 {
		for _, o := range overrides {
			if !o.Active {
				continue
			}
			iv, err := domain.NewInterval(o.StartTime, o.EndTime)
			if err != nil {
				continue
			}
			windows = append(windows, iv)
		}
		return windows, nil
	}

	rules, err := uc.repo.ListWeeklyRules(ctx, companionID)
	if err != nil {
		return nil, err
	}

	weekday := int(date.Weekday())
	for _, r := range rules {
		if !r.Active || r.Weekday != weekday {
			continue
		}
		iv, err := domain.NewInterval(r.StartTime, r.EndTime)
		if err != nil {
			continue
		}
		windows = append(windows, iv)
	}

	return windows, nil
}

func (uc *GetOpenSlots) busyIntervals(
	ctx context.Context,
	companionID uint,
	date time.Time,
) ([]domain.Interval, error) {

	bookings, err := uc.repo.ListBookingsForDay(
		ctx,
		companionID,
		date,
		domain.BlockingStatuses(),
	)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		iv, err := domain.NewInterval(b.StartTime, b.EndTime)
		if err != nil {
			// Malformed rows belong to the integrity checker, not
			// here; skipping keeps the read path total.
			continue
		}
		busy = append(busy, iv)
	}

	return busy, nil
}
