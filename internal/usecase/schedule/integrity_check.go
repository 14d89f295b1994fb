package schedule

import (
	"context"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/timezone"
)

type RunIntegrityCheck struct {
	repo domain.Repository
}

func NewRunIntegrityCheck(repo domain.Repository) *RunIntegrityCheck {
	return &RunIntegrityCheck{repo: repo}
}

// Execute scans every booking and reports violations without touching
// anything. Repairs only happen through the explicit cleanup call.
func (uc *RunIntegrityCheck) Execute(ctx context.Context) ([]domain.Anomaly, error) {
	bookings, err := uc.repo.ListAllBookings(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FindAnomalies(timezone.Now(), bookings), nil
}
