package schedule

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/models"
)

var _ domain.Repository = (*fakeRepo)(nil)

// fakeRepo is an in-memory Repository for use case tests. Overlap
// checking lives in the real gorm implementation; tests that need a
// conflict inject reserveErr / acceptErr instead.
type fakeRepo struct {
	companions map[uint]*models.User
	offerings  map[uint]*models.ServiceOffering
	rules      []models.AvailabilityRule
	overrides  []models.AvailabilityOverride
	bookings   []models.Booking
	requests   map[uint]*models.BookingRequest
	audits     []models.AuditLog

	reserveErr error
	acceptErr  error

	nextID          uint
	reserved        []*models.Booking
	updatedBookings []models.Booking
	updatedRequests []models.BookingRequest
	replacedRules   []models.AvailabilityRule
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		companions: map[uint]*models.User{},
		offerings:  map[uint]*models.ServiceOffering{},
		requests:   map[uint]*models.BookingRequest{},
		nextID:     100,
	}
}

func (f *fakeRepo) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) GetCompanion(ctx context.Context, id uint) (*models.User, error) {
	u, ok := f.companions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetOffering(ctx context.Context, companionID, offeringID uint) (*models.ServiceOffering, error) {
	o, ok := f.offerings[offeringID]
	if !ok || o.CompanionID != companionID {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeRepo) ListWeeklyRules(ctx context.Context, companionID uint) ([]models.AvailabilityRule, error) {
	out := []models.AvailabilityRule{}
	for _, r := range f.rules {
		if r.CompanionID == companionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListOverrides(ctx context.Context, companionID uint) ([]models.AvailabilityOverride, error) {
	out := []models.AvailabilityOverride{}
	for _, o := range f.overrides {
		if o.CompanionID == companionID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeRepo) OverridesForDate(ctx context.Context, companionID uint, date string) ([]models.AvailabilityOverride, error) {
	out := []models.AvailabilityOverride{}
	for _, o := range f.overrides {
		if o.CompanionID == companionID && o.Date == date {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeRepo) ReplaceWeeklyRules(ctx context.Context, companionID uint, actorID *uint, rules []models.AvailabilityRule) ([]models.AvailabilityRule, error) {
	prev, _ := f.ListWeeklyRules(ctx, companionID)

	kept := f.rules[:0]
	for _, r := range f.rules {
		if r.CompanionID != companionID {
			kept = append(kept, r)
		}
	}
	f.rules = append(kept, rules...)
	f.replacedRules = rules
	return prev, nil
}

func (f *fakeRepo) ReplaceOverrides(ctx context.Context, companionID uint, date string, actorID *uint, overrides []models.AvailabilityOverride) ([]models.AvailabilityOverride, error) {
	prev, _ := f.OverridesForDate(ctx, companionID, date)

	kept := f.overrides[:0]
	for _, o := range f.overrides {
		if o.CompanionID != companionID || o.Date != date {
			kept = append(kept, o)
		}
	}
	f.overrides = append(kept, overrides...)
	return prev, nil
}

func (f *fakeRepo) TryReserve(ctx context.Context, b *models.Booking) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	b.ID = f.id()
	f.bookings = append(f.bookings, *b)
	f.reserved = append(f.reserved, b)
	return nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (f *fakeRepo) ListBookingsForDay(ctx context.Context, companionID uint, date time.Time, statuses []string) ([]models.Booking, error) {
	allowed := map[string]bool{}
	for _, s := range statuses {
		allowed[s] = true
	}
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.CompanionID == companionID && sameDate(b.Date, date) && allowed[b.Status] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBookingsForPeriod(ctx context.Context, companionID uint, from, to time.Time) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.CompanionID == companionID && !b.Date.Before(from) && b.Date.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBookingsForClient(ctx context.Context, clientID uint) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	for i := range f.bookings {
		if f.bookings[i].ID == b.ID {
			f.bookings[i] = *b
		}
	}
	f.updatedBookings = append(f.updatedBookings, *b)
	return nil
}

func (f *fakeRepo) CreateRequest(ctx context.Context, r *models.BookingRequest) error {
	r.ID = f.id()
	f.requests[r.ID] = r
	return nil
}

func (f *fakeRepo) GetRequest(ctx context.Context, id uint) (*models.BookingRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeRepo) UpdateRequest(ctx context.Context, r *models.BookingRequest) error {
	f.requests[r.ID] = r
	f.updatedRequests = append(f.updatedRequests, *r)
	return nil
}

func (f *fakeRepo) AcceptRequestWithBooking(ctx context.Context, r *models.BookingRequest, b *models.Booking) error {
	if f.acceptErr != nil {
		return f.acceptErr
	}
	b.ID = f.id()
	f.bookings = append(f.bookings, *b)
	f.reserved = append(f.reserved, b)

	r.BookingID = &b.ID
	f.requests[r.ID] = r
	f.updatedRequests = append(f.updatedRequests, *r)
	return nil
}

func (f *fakeRepo) ListRequestsForCompanion(ctx context.Context, companionID uint) ([]models.BookingRequest, error) {
	out := []models.BookingRequest{}
	for _, r := range f.requests {
		if r.CompanionID == companionID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRequestsForClient(ctx context.Context, clientID uint) ([]models.BookingRequest, error) {
	out := []models.BookingRequest{}
	for _, r := range f.requests {
		if r.ClientID == clientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) AppendAudit(ctx context.Context, entry *models.AuditLog) error {
	f.audits = append(f.audits, *entry)
	return nil
}

func (f *fakeRepo) AuditEntriesFor(ctx context.Context, companionID uint, from, to time.Time) ([]models.AuditLog, error) {
	out := []models.AuditLog{}
	for _, a := range f.audits {
		if a.CompanionID == companionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	return f.bookings, nil
}
