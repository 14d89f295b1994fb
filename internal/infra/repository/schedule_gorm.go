package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amizade-app/companion-api/internal/audit"
	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Actors
// --------------------------------------------------

func (r *ScheduleGormRepository) GetCompanion(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleCompanion).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *ScheduleGormRepository) GetOffering(
	ctx context.Context,
	companionID uint,
	offeringID uint,
) (*models.ServiceOffering, error) {

	var offering models.ServiceOffering
	if err := r.db.WithContext(ctx).
		Where("id = ? AND companion_id = ?", offeringID, companionID).
		First(&offering).Error; err != nil {
		return nil, err
	}
	return &offering, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ScheduleGormRepository) ListWeeklyRules(
	ctx context.Context,
	companionID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("companion_id = ?", companionID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ScheduleGormRepository) ListOverrides(
	ctx context.Context,
	companionID uint,
) ([]models.AvailabilityOverride, error) {

	var overrides []models.AvailabilityOverride
	if err := r.db.WithContext(ctx).
		Where("companion_id = ?", companionID).
		Order("date ASC, start_time ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *ScheduleGormRepository) OverridesForDate(
	ctx context.Context,
	companionID uint,
	date string,
) ([]models.AvailabilityOverride, error) {

	var overrides []models.AvailabilityOverride
	if err := r.db.WithContext(ctx).
		Where("companion_id = ? AND date = ?", companionID, date).
		Order("start_time ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *ScheduleGormRepository) ReplaceWeeklyRules(
	ctx context.Context,
	companionID uint,
	actorID *uint,
	rules []models.AvailabilityRule,
) ([]models.AvailabilityRule, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var before []models.AvailabilityRule
		if err := tx.
			Where("companion_id = ?", companionID).
			Find(&before).Error; err != nil {
			return err
		}

		if err := tx.
			Where("companion_id = ?", companionID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}

		if len(rules) > 0 {
			if err := tx.Create(&rules).Error; err != nil {
				return err
			}
		}

		// One coarse entry per mutation: the full rule set before and
		// after, so "what changed and when" never needs guessing.
		return audit.WithTx(tx, audit.Entry(
			companionID,
			actorID,
			"availability_replaced",
			"availability_rule",
			nil,
			before,
			rules,
		))
	})
	if err != nil {
		return nil, domain.ErrPersistence("replace weekly rules", err)
	}
	return rules, nil
}

func (r *ScheduleGormRepository) ReplaceOverrides(
	ctx context.Context,
	companionID uint,
	date string,
	actorID *uint,
	overrides []models.AvailabilityOverride,
) ([]models.AvailabilityOverride, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var before []models.AvailabilityOverride
		if err := tx.
			Where("companion_id = ? AND date = ?", companionID, date).
			Find(&before).Error; err != nil {
			return err
		}

		if err := tx.
			Where("companion_id = ? AND date = ?", companionID, date).
			Delete(&models.AvailabilityOverride{}).Error; err != nil {
			return err
		}

		if len(overrides) > 0 {
			if err := tx.Create(&overrides).Error; err != nil {
				return err
			}
		}

		return audit.WithTx(tx, audit.Entry(
			companionID,
			actorID,
			"override_replaced",
			"availability_override",
			nil,
			before,
			overrides,
		))
	})
	if err != nil {
		return nil, domain.ErrPersistence("replace overrides", err)
	}
	return overrides, nil
}

// --------------------------------------------------
// Conflict guard
// --------------------------------------------------

// lockForUpdate adds FOR UPDATE on postgres. sqlite has no row locks
// and rejects the syntax; there the enclosing transaction is the only
// guard.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// assertNoOverlap locks every blocking booking that would overlap the
// candidate and fails with the overlapping id. Wall-clock strings are
// zero-padded, so lexicographic comparison matches minute order.
func assertNoOverlap(tx *gorm.DB, b *models.Booking) error {
	var existing models.Booking
	err := lockForUpdate(tx).
		Where("companion_id = ? AND date = ?", b.CompanionID, b.Date).
		Where("status IN ?", domain.BlockingStatuses()).
		Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
		Take(&existing).Error

	if err == nil {
		iv, _ := domain.NewInterval(b.StartTime, b.EndTime)
		return &domain.SlotConflictError{
			CompanionID: b.CompanionID,
			BookingID:   existing.ID,
			Interval:    iv,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// mapWriteError turns a constraint-level loss (unique or exclusion
// violation) into a SlotConflict so a racing writer fails as a
// conflict, never as a silent duplicate.
func mapWriteError(b *models.Booking, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" || pgErr.Code == "23P01" {
			iv, _ := domain.NewInterval(b.StartTime, b.EndTime)
			return &domain.SlotConflictError{
				CompanionID: b.CompanionID,
				Interval:    iv,
			}
		}
	}
	return err
}

func (r *ScheduleGormRepository) TryReserve(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoOverlap(tx, b); err != nil {
			return err
		}
		if err := tx.Create(b).Error; err != nil {
			return mapWriteError(b, err)
		}
		return nil
	})

	if err != nil && !domain.IsSlotConflict(err) {
		return domain.ErrPersistence("reserve", err)
	}
	return err
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBookingsForDay(
	ctx context.Context,
	companionID uint,
	date time.Time,
	statuses []string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	q := r.db.WithContext(ctx).
		Where("companion_id = ? AND date = ?", companionID, date)

	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ScheduleGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	companionID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Offering").
		Where(
			"companion_id = ? AND date >= ? AND date < ?",
			companionID, from, to,
		).
		Order("date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ScheduleGormRepository) ListBookingsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Companion").
		Preload("Offering").
		Where("client_id = ?", clientID).
		Order("date DESC, start_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ScheduleGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ScheduleGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Booking requests
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateRequest(
	ctx context.Context,
	req *models.BookingRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ScheduleGormRepository) GetRequest(
	ctx context.Context,
	id uint,
) (*models.BookingRequest, error) {

	var req models.BookingRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ScheduleGormRepository) UpdateRequest(
	ctx context.Context,
	req *models.BookingRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// AcceptRequestWithBooking promotes a request into a booking through
// the same guard as TryReserve, in one transaction: either both rows
// commit or neither does.
func (r *ScheduleGormRepository) AcceptRequestWithBooking(
	ctx context.Context,
	req *models.BookingRequest,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoOverlap(tx, b); err != nil {
			return err
		}
		if err := tx.Create(b).Error; err != nil {
			return mapWriteError(b, err)
		}

		req.BookingID = &b.ID
		return tx.Save(req).Error
	})

	if err != nil && !domain.IsSlotConflict(err) {
		return domain.ErrPersistence("accept request", err)
	}
	return err
}

func (r *ScheduleGormRepository) ListRequestsForCompanion(
	ctx context.Context,
	companionID uint,
) ([]models.BookingRequest, error) {

	var reqs []models.BookingRequest
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("companion_id = ?", companionID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *ScheduleGormRepository) ListRequestsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.BookingRequest, error) {

	var reqs []models.BookingRequest
	if err := r.db.WithContext(ctx).
		Preload("Companion").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// --------------------------------------------------
// Audit / integrity
// --------------------------------------------------

func (r *ScheduleGormRepository) AppendAudit(
	ctx context.Context,
	entry *models.AuditLog,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ScheduleGormRepository) AuditEntriesFor(
	ctx context.Context,
	companionID uint,
	from time.Time,
	to time.Time,
) ([]models.AuditLog, error) {

	var entries []models.AuditLog
	q := r.db.WithContext(ctx).
		Where("companion_id = ?", companionID)

	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}

	if err := q.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ScheduleGormRepository) ListAllBookings(
	ctx context.Context,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
