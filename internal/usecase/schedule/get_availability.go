package schedule

import (
	"context"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/models"
)

type Availability struct {
	Weekly    []models.AvailabilityRule     `json:"weekly"`
	Overrides []models.AvailabilityOverride `json:"overrides"`
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	companionID uint,
) (*Availability, error) {

	weekly, err := uc.repo.ListWeeklyRules(ctx, companionID)
	if err != nil {
		return nil, err
	}

	overrides, err := uc.repo.ListOverrides(ctx, companionID)
	if err != nil {
		return nil, err
	}

	return &Availability{Weekly: weekly, Overrides: overrides}, nil
}
