package schedule

import (
	"context"

	"github.com/amizade-app/companion-api/internal/cache"
	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
)

type SetOverride struct {
	repo  domain.Repository
	cache *cache.SlotCache
}

func NewSetOverride(repo domain.Repository, slotCache *cache.SlotCache) *SetOverride {
	return &SetOverride{repo: repo, cache: slotCache}
}

// Execute replaces the override set for one calendar date. An empty or
// all-inactive set marks the date unavailable; the weekly pattern for
// that date stops applying either way.
func (uc *SetOverride) Execute(
	ctx context.Context,
	actorID uint,
	companionID uint,
	date string,
	overrides []models.AvailabilityOverride,
) ([]models.AvailabilityOverride, error) {

	if _, err := timezone.ParseDate(date); err != nil {
		return nil, domain.ErrValidation("invalid_date", "expected YYYY-MM-DD")
	}

	if err := domain.ValidateOverrides(overrides); err != nil {
		return nil, err
	}

	for i := range overrides {
		overrides[i].ID = 0
		overrides[i].CompanionID = companionID
		overrides[i].Date = date
	}

	if _, err := uc.repo.ReplaceOverrides(ctx, companionID, date, &actorID, overrides); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDate(ctx, companionID, date)

	return overrides, nil
}
