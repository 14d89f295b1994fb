package schedule

import (
	"context"
	"time"

	"github.com/amizade-app/companion-api/internal/models"
)

// Repository is the persistence port of the scheduling core. The gorm
// implementation owns the atomicity contract: TryReserve performs the
// conflict check and the write in one transaction scoped to
// (companion, date).
type Repository interface {
	// -------- Actors --------
	GetCompanion(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetOffering(
		ctx context.Context,
		companionID uint,
		offeringID uint,
	) (*models.ServiceOffering, error)

	// -------- Availability --------
	ListWeeklyRules(
		ctx context.Context,
		companionID uint,
	) ([]models.AvailabilityRule, error)

	ListOverrides(
		ctx context.Context,
		companionID uint,
	) ([]models.AvailabilityOverride, error)

	OverridesForDate(
		ctx context.Context,
		companionID uint,
		date string,
	) ([]models.AvailabilityOverride, error)

	// ReplaceWeeklyRules swaps the full weekly pattern in one
	// transaction and appends the coarse before/after audit entry
	// inside the same transaction. Returns the previous rule set.
	ReplaceWeeklyRules(
		ctx context.Context,
		companionID uint,
		actorID *uint,
		rules []models.AvailabilityRule,
	) ([]models.AvailabilityRule, error)

	ReplaceOverrides(
		ctx context.Context,
		companionID uint,
		date string,
		actorID *uint,
		overrides []models.AvailabilityOverride,
	) ([]models.AvailabilityOverride, error)

	// -------- Booking (conflict guard) --------

	// TryReserve creates the booking if and only if its interval does
	// not overlap any blocking booking for (companion, date). A loser
	// gets *SlotConflictError, never a silent duplicate.
	TryReserve(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForDay(
		ctx context.Context,
		companionID uint,
		date time.Time,
		statuses []string,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		companionID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	ListBookingsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Booking, error)

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking requests --------
	CreateRequest(
		ctx context.Context,
		r *models.BookingRequest,
	) error

	GetRequest(
		ctx context.Context,
		id uint,
	) (*models.BookingRequest, error)

	UpdateRequest(
		ctx context.Context,
		r *models.BookingRequest,
	) error

	// AcceptRequestWithBooking persists the accepted request and its
	// promoted booking atomically, running the booking through the
	// same conflict guard as TryReserve.
	AcceptRequestWithBooking(
		ctx context.Context,
		r *models.BookingRequest,
		b *models.Booking,
	) error

	ListRequestsForCompanion(
		ctx context.Context,
		companionID uint,
	) ([]models.BookingRequest, error)

	ListRequestsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.BookingRequest, error)

	// -------- Audit / integrity --------
	AppendAudit(
		ctx context.Context,
		entry *models.AuditLog,
	) error

	AuditEntriesFor(
		ctx context.Context,
		companionID uint,
		from time.Time,
		to time.Time,
	) ([]models.AuditLog, error)

	ListAllBookings(
		ctx context.Context,
	) ([]models.Booking, error)
}
