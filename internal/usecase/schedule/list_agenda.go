package schedule

import (
	"context"
	"time"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/dto"
	"github.com/amizade-app/companion-api/internal/timezone"
)

type ListAgenda struct {
	repo domain.Repository
}

func NewListAgenda(repo domain.Repository) *ListAgenda {
	return &ListAgenda{repo: repo}
}

// ByDate returns the companion's bookings for one day, all statuses.
func (uc *ListAgenda) ByDate(
	ctx context.Context,
	companionID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	start := timezone.Midnight(date)
	return uc.list(ctx, companionID, start, start.Add(24*time.Hour))
}

// ByMonth returns the companion's bookings for a calendar month.
func (uc *ListAgenda) ByMonth(
	ctx context.Context,
	companionID uint,
	year int,
	month time.Month,
) ([]dto.BookingListDTO, error) {

	start := time.Date(year, month, 1, 0, 0, 0, 0, timezone.Location())
	return uc.list(ctx, companionID, start, start.AddDate(0, 1, 0))
}

func (uc *ListAgenda) list(
	ctx context.Context,
	companionID uint,
	from time.Time,
	to time.Time,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, companionID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		item := dto.BookingListDTO{
			ID:            b.ID,
			Reference:     b.Reference,
			Date:          b.Date,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			Status:        b.Status,
			MeetingType:   b.MeetingType,
			Location:      b.Location,
			PriceCents:    b.PriceCents,
			PaymentStatus: b.PaymentStatus,
		}
		if b.Client != nil {
			item.ClientName = b.Client.Name
		}
		if b.Offering != nil {
			item.OfferingName = b.Offering.Name
		}
		out = append(out, item)
	}

	return out, nil
}
