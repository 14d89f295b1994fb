package schedule

import (
	"context"

	"github.com/amizade-app/companion-api/internal/cache"
	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/models"
)

type SetWeeklyAvailability struct {
	repo  domain.Repository
	cache *cache.SlotCache
}

func NewSetWeeklyAvailability(repo domain.Repository, slotCache *cache.SlotCache) *SetWeeklyAvailability {
	return &SetWeeklyAvailability{repo: repo, cache: slotCache}
}

// Execute replaces the companion's full weekly pattern in one atomic
// operation. The batch is rejected whole when any rule is malformed or
// two active rules overlap on the same weekday; there are no
// field-level partial updates.
func (uc *SetWeeklyAvailability) Execute(
	ctx context.Context,
	actorID uint,
	companionID uint,
	rules []models.AvailabilityRule,
) ([]models.AvailabilityRule, error) {

	if err := domain.ValidateWeeklyRules(rules); err != nil {
		return nil, err
	}

	for i := range rules {
		rules[i].ID = 0
		rules[i].CompanionID = companionID
	}

	if _, err := uc.repo.ReplaceWeeklyRules(ctx, companionID, &actorID, rules); err != nil {
		return nil, err
	}

	// The weekly pattern touches every future date.
	uc.cache.InvalidateCompanion(ctx, companionID)

	return rules, nil
}
