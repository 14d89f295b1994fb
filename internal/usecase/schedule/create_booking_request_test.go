package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
)

func TestCreateBookingRequestNeverReserves(t *testing.T) {
	repo := newFakeRepo()
	repo.companions[7] = &models.User{
		ID: 7, Role: models.RoleCompanion, Active: true, HourlyRateCents: 10000,
	}
	target := timezone.Midnight(timezone.Now().AddDate(0, 0, 10))

	// an existing booking on the same interval is no obstacle
	repo.bookings = []models.Booking{
		{ID: 1, CompanionID: 7, Date: target, StartTime: "10:00", EndTime: "11:00", Status: "confirmed"},
	}

	uc := NewCreateBookingRequest(repo, nil, testPolicy())
	req, err := uc.Execute(context.Background(), CreateBookingRequestInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "12:00",
		Message:     "dinner downtown?",
	})
	require.NoError(t, err)

	require.Equal(t, "pending", req.Status)
	require.Equal(t, int64(20000), req.PriceCents) // 2h at the hourly rate
	require.NotEmpty(t, req.Reference)
	require.Empty(t, repo.reserved)
}

func TestCreateBookingRequestExpiryDefaultTTL(t *testing.T) {
	repo := newFakeRepo()
	repo.companions[7] = &models.User{ID: 7, Role: models.RoleCompanion, Active: true}
	target := timezone.Midnight(timezone.Now().AddDate(0, 0, 10))

	uc := NewCreateBookingRequest(repo, nil, testPolicy())
	req, err := uc.Execute(context.Background(), CreateBookingRequestInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.NoError(t, err)

	// start is 10 days out, so the plain TTL applies
	require.WithinDuration(t, timezone.Now().Add(DefaultRequestTTL), req.ExpiresAt, time.Minute)
}

func TestCreateBookingRequestExpiryCappedAtStart(t *testing.T) {
	repo := newFakeRepo()
	repo.companions[7] = &models.User{ID: 7, Role: models.RoleCompanion, Active: true}
	target := timezone.Midnight(timezone.Now().AddDate(0, 0, 1))

	uc := NewCreateBookingRequest(repo, nil, testPolicy())
	req, err := uc.Execute(context.Background(), CreateBookingRequestInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "23:00",
		EndTime:     "23:45",
	})
	require.NoError(t, err)

	// the proposed start arrives before the TTL would
	require.Equal(t, target.Add(23*time.Hour), req.ExpiresAt)
}

func TestCreateBookingRequestRejectsPast(t *testing.T) {
	repo := newFakeRepo()
	repo.companions[7] = &models.User{ID: 7, Role: models.RoleCompanion, Active: true}

	uc := NewCreateBookingRequest(repo, nil, testPolicy())
	_, err := uc.Execute(context.Background(), CreateBookingRequestInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        timezone.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.Equal(t, "invalid_interval", validationCode(t, err))
}
