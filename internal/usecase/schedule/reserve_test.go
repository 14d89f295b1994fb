package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
)

func testPolicy() Policy {
	return Policy{MinDurationMin: 30, MaxDurationMin: 480, MinAdvanceMin: 120}
}

func validationCode(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Code
}

// reserveFixture builds a bookable companion with a weekly window on
// the target date's weekday, one week out.
func reserveFixture() (*fakeRepo, time.Time) {
	repo := newFakeRepo()
	repo.companions[7] = &models.User{
		ID: 7, Role: models.RoleCompanion, Active: true, HourlyRateCents: 12000,
	}

	target := timezone.Midnight(timezone.Now().AddDate(0, 0, 7))
	repo.rules = []models.AvailabilityRule{
		{CompanionID: 7, Weekday: int(target.Weekday()), StartTime: "09:00", EndTime: "18:00", Active: true},
	}
	return repo, target
}

func TestReserveCreatesPendingBooking(t *testing.T) {
	repo, target := reserveFixture()
	uc := NewReserve(repo, nil, nil, testPolicy())

	booking, err := uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.NoError(t, err)

	require.Equal(t, "pending", booking.Status)
	require.Equal(t, uint(3), booking.ClientID)
	require.Equal(t, uint(7), booking.CompanionID)
	require.Equal(t, "10:00", booking.StartTime)
	require.Equal(t, "11:00", booking.EndTime)
	require.Equal(t, 60, booking.DurationMin)
	require.Equal(t, int64(12000), booking.PriceCents)
	require.Equal(t, models.PaymentUnpaid, booking.PaymentStatus)
	require.NotEmpty(t, booking.Reference)
	require.Len(t, repo.reserved, 1)
}

func TestReserveDerivesEndFromOffering(t *testing.T) {
	repo, target := reserveFixture()
	offeringID := uint(4)
	repo.offerings[4] = &models.ServiceOffering{
		ID: 4, CompanionID: 7, DurationMin: 90, PriceCents: 20000,
		MeetingType: models.MeetingVirtual,
	}
	uc := NewReserve(repo, nil, nil, testPolicy())

	booking, err := uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 7,
		OfferingID:  &offeringID,
		Date:        target.Format("2006-01-02"),
		StartTime:   "10:00",
	})
	require.NoError(t, err)
	require.Equal(t, "11:30", booking.EndTime)
	require.Equal(t, 90, booking.DurationMin)
	require.Equal(t, int64(20000), booking.PriceCents)
	require.Equal(t, models.MeetingVirtual, booking.MeetingType)
}

func TestReserveRejectsPastInterval(t *testing.T) {
	repo, _ := reserveFixture()
	uc := NewReserve(repo, nil, nil, testPolicy())

	past := timezone.Now().AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        past.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.Equal(t, "invalid_interval", validationCode(t, err))
	require.Empty(t, repo.reserved)
}

func TestReserveRejectsDurationOutsideBounds(t *testing.T) {
	repo, target := reserveFixture()
	uc := NewReserve(repo, nil, nil, testPolicy())

	_, err := uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "10:15",
	})
	require.Equal(t, "invalid_interval", validationCode(t, err))
}

func TestReserveRequiresPublishedWindow(t *testing.T) {
	repo, target := reserveFixture()
	uc := NewReserve(repo, nil, nil, testPolicy())

	_, err := uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "19:00",
		EndTime:     "20:00",
	})
	require.Equal(t, "outside_availability", validationCode(t, err))
}

func TestReserveOverrideReplacesWeeklyPattern(t *testing.T) {
	repo, target := reserveFixture()
	repo.overrides = []models.AvailabilityOverride{
		{CompanionID: 7, Date: target.Format("2006-01-02"), StartTime: "14:00", EndTime: "16:00", Active: true},
	}
	uc := NewReserve(repo, nil, nil, testPolicy())

	// inside the weekly window, but the override owns this date
	_, err := uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.Equal(t, "outside_availability", validationCode(t, err))

	_, err = uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "14:00",
		EndTime:     "15:00",
	})
	require.NoError(t, err)
}

func TestReservePropagatesSlotConflict(t *testing.T) {
	repo, target := reserveFixture()
	repo.reserveErr = &domain.SlotConflictError{CompanionID: 7, BookingID: 55}
	uc := NewReserve(repo, nil, nil, testPolicy())

	_, err := uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.True(t, domain.IsSlotConflict(err))
}

func TestReserveRejectsNonBookableCompanion(t *testing.T) {
	repo, target := reserveFixture()
	repo.companions[7].Active = false
	uc := NewReserve(repo, nil, nil, testPolicy())

	_, err := uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 7,
		Date:        target.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.Equal(t, "companion_not_bookable", validationCode(t, err))

	_, err = uc.Execute(context.Background(), ReserveInput{
		ClientID:    3,
		CompanionID: 99,
		Date:        target.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.Equal(t, "companion_not_found", validationCode(t, err))
}
