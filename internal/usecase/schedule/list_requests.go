package schedule

import (
	"context"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
)

type ListRequests struct {
	repo domain.Repository
}

func NewListRequests(repo domain.Repository) *ListRequests {
	return &ListRequests{repo: repo}
}

// Expiry is evaluated lazily on every read: the rows are returned with
// their effective status without writing anything back.

func (uc *ListRequests) ForCompanion(
	ctx context.Context,
	companionID uint,
) ([]models.BookingRequest, error) {

	reqs, err := uc.repo.ListRequestsForCompanion(ctx, companionID)
	if err != nil {
		return nil, err
	}
	return normalizeExpiry(reqs), nil
}

func (uc *ListRequests) ForClient(
	ctx context.Context,
	clientID uint,
) ([]models.BookingRequest, error) {

	reqs, err := uc.repo.ListRequestsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return normalizeExpiry(reqs), nil
}

func normalizeExpiry(reqs []models.BookingRequest) []models.BookingRequest {
	now := timezone.Now()
	for i := range reqs {
		reqs[i].Status = string(domain.EffectiveRequestStatus(now, &reqs[i]))
	}
	return reqs
}
