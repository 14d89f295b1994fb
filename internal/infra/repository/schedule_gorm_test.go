package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/models"
)

// openTestDB gives each test its own in-memory database. The guard's
// FOR UPDATE lock is postgres-only, so these tests cover the overlap
// predicate sequentially; the concurrent race needs postgres.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ServiceOffering{},
		&models.AvailabilityRule{},
		&models.AvailabilityOverride{},
		&models.Booking{},
		&models.BookingRequest{},
		&models.AuditLog{},
	))
	return db
}

func TestGetCompanionFiltersRole(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)

	require.NoError(t, db.Create(&models.User{
		ID: 1, Name: "Ana", Email: "ana@example.com",
		Role: models.RoleCompanion, Active: true,
	}).Error)
	require.NoError(t, db.Create(&models.User{
		ID: 2, Name: "Bruno", Email: "bruno@example.com",
		Role: models.RoleClient, Active: true,
	}).Error)

	u, err := repo.GetCompanion(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Ana", u.Name)

	_, err = repo.GetCompanion(context.Background(), 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReplaceWeeklyRulesSwapsAndAudits(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.AvailabilityRule{
		CompanionID: 7, Weekday: 1, StartTime: "08:00", EndTime: "12:00", Active: true,
	}).Error)

	actor := uint(7)
	_, err := repo.ReplaceWeeklyRules(ctx, 7, &actor, []models.AvailabilityRule{
		{CompanionID: 7, Weekday: 1, StartTime: "09:00", EndTime: "13:00", Active: true},
		{CompanionID: 7, Weekday: 3, StartTime: "14:00", EndTime: "18:00", Active: true},
	})
	require.NoError(t, err)

	rules, err := repo.ListWeeklyRules(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	require.Equal(t, "09:00", rules[0].StartTime)

	// the swap and the audit entry commit together
	var entries []models.AuditLog
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, "availability_replaced", entries[0].Action)
	require.Equal(t, uint(7), entries[0].CompanionID)
	require.Contains(t, entries[0].Before, "08:00")
	require.Contains(t, entries[0].After, "09:00")
}

func TestReplaceWeeklyRulesEmptySetClears(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.AvailabilityRule{
		CompanionID: 7, Weekday: 1, StartTime: "08:00", EndTime: "12:00", Active: true,
	}).Error)

	actor := uint(7)
	_, err := repo.ReplaceWeeklyRules(ctx, 7, &actor, nil)
	require.NoError(t, err)

	rules, err := repo.ListWeeklyRules(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, rules)
}

func TestReplaceOverridesScopedToDate(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.AvailabilityOverride{
		CompanionID: 7, Date: "2026-04-01", StartTime: "08:00", EndTime: "10:00", Active: true,
	}).Error)
	require.NoError(t, db.Create(&models.AvailabilityOverride{
		CompanionID: 7, Date: "2026-04-02", StartTime: "08:00", EndTime: "10:00", Active: true,
	}).Error)

	actor := uint(7)
	_, err := repo.ReplaceOverrides(ctx, 7, "2026-04-01", &actor, []models.AvailabilityOverride{
		{CompanionID: 7, Date: "2026-04-01", StartTime: "14:00", EndTime: "16:00", Active: true},
	})
	require.NoError(t, err)

	day1, err := repo.OverridesForDate(ctx, 7, "2026-04-01")
	require.NoError(t, err)
	require.Len(t, day1, 1)
	require.Equal(t, "14:00", day1[0].StartTime)

	// the other date is untouched
	day2, err := repo.OverridesForDate(ctx, 7, "2026-04-02")
	require.NoError(t, err)
	require.Len(t, day2, 1)
	require.Equal(t, "08:00", day2[0].StartTime)
}

func TestTryReserveRejectsOverlap(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	first := &models.Booking{
		Reference: "a", CompanionID: 7, ClientID: 1, Date: date,
		StartTime: "10:00", EndTime: "12:00", DurationMin: 120, Status: "confirmed",
	}
	require.NoError(t, repo.TryReserve(ctx, first))
	require.NotZero(t, first.ID)

	second := &models.Booking{
		Reference: "b", CompanionID: 7, ClientID: 2, Date: date,
		StartTime: "11:00", EndTime: "13:00", DurationMin: 120, Status: "pending",
	}
	err := repo.TryReserve(ctx, second)

	var ce *domain.SlotConflictError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, first.ID, ce.BookingID)

	// the losing write left no row behind
	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestTryReserveIgnoresNonBlockingRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TryReserve(ctx, &models.Booking{
		Reference: "a", CompanionID: 7, ClientID: 1, Date: date,
		StartTime: "10:00", EndTime: "12:00", DurationMin: 120, Status: "cancelled",
	}))

	// cancelled never blocks; back-to-back intervals never touch
	require.NoError(t, repo.TryReserve(ctx, &models.Booking{
		Reference: "b", CompanionID: 7, ClientID: 2, Date: date,
		StartTime: "10:00", EndTime: "11:00", DurationMin: 60, Status: "confirmed",
	}))
	require.NoError(t, repo.TryReserve(ctx, &models.Booking{
		Reference: "c", CompanionID: 7, ClientID: 3, Date: date,
		StartTime: "11:00", EndTime: "12:00", DurationMin: 60, Status: "confirmed",
	}))

	// same interval, other companion
	require.NoError(t, repo.TryReserve(ctx, &models.Booking{
		Reference: "d", CompanionID: 8, ClientID: 2, Date: date,
		StartTime: "10:00", EndTime: "11:00", DurationMin: 60, Status: "confirmed",
	}))
}

func TestAcceptRequestWithBookingConflictRollsBack(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TryReserve(ctx, &models.Booking{
		Reference: "a", CompanionID: 7, ClientID: 1, Date: date,
		StartTime: "10:00", EndTime: "11:00", DurationMin: 60, Status: "confirmed",
	}))

	req := &models.BookingRequest{
		Reference: "r1", ClientID: 3, CompanionID: 7, Date: date,
		StartTime: "10:30", EndTime: "11:30", DurationMin: 60,
		Status: "pending", ExpiresAt: time.Date(2026, 3, 30, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateRequest(ctx, req))

	promoted := &models.Booking{
		Reference: "b", CompanionID: 7, ClientID: 3, Date: date,
		StartTime: "10:30", EndTime: "11:30", DurationMin: 60, Status: "confirmed",
	}
	err := repo.AcceptRequestWithBooking(ctx, req, promoted)
	require.True(t, domain.IsSlotConflict(err))

	// neither the booking nor the request link committed
	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	stored, err := repo.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Nil(t, stored.BookingID)
}

func TestListBookingsForDayFiltersStatuses(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	seed := []models.Booking{
		{Reference: "a", CompanionID: 7, ClientID: 1, Date: date, StartTime: "09:00", EndTime: "10:00", Status: "confirmed"},
		{Reference: "b", CompanionID: 7, ClientID: 1, Date: date, StartTime: "10:00", EndTime: "11:00", Status: "cancelled"},
		{Reference: "c", CompanionID: 8, ClientID: 1, Date: date, StartTime: "09:00", EndTime: "10:00", Status: "confirmed"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	got, err := repo.ListBookingsForDay(ctx, 7, date, []string{"pending", "confirmed"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].Reference)
}

func TestRequestLifecyclePersistence(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	req := &models.BookingRequest{
		Reference:   "r1",
		ClientID:    3,
		CompanionID: 7,
		Date:        time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      "pending",
		ExpiresAt:   time.Date(2026, 3, 30, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateRequest(ctx, req))
	require.NotZero(t, req.ID)

	got, err := repo.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, "pending", got.Status)

	got.Status = "rejected"
	got.Response = "busy"
	require.NoError(t, repo.UpdateRequest(ctx, got))

	again, err := repo.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, "rejected", again.Status)
	require.Equal(t, "busy", again.Response)

	mine, err := repo.ListRequestsForClient(ctx, 3)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestAuditEntriesForRange(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	old := models.AuditLog{CompanionID: 7, Action: "availability_replaced", Entity: "availability_rule"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Model(&old).
		Update("created_at", time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)).Error)

	recent := models.AuditLog{CompanionID: 7, Action: "integrity_repair", Entity: "booking"}
	require.NoError(t, db.Create(&recent).Error)

	all, err := repo.AuditEntriesFor(ctx, 7, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	filtered, err := repo.AuditEntriesFor(ctx, 7, from, time.Time{})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "integrity_repair", filtered[0].Action)
}
