package schedule

import (
	"context"

	"github.com/amizade-app/companion-api/internal/cache"
	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/events"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
)

type TransitionInput struct {
	BookingID uint
	ActorID   uint
	ActorRole string // "client" | "companion" | "admin"
	NewStatus string
}

type TransitionBooking struct {
	repo   domain.Repository
	events *events.Dispatcher
	cache  *cache.SlotCache
}

func NewTransitionBooking(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	slotCache *cache.SlotCache,
) *TransitionBooking {
	return &TransitionBooking{
		repo:   repo,
		events: dispatcher,
		cache:  slotCache,
	}
}

// Execute drives the booking state machine. Permission, edge validity
// and the "end time has passed" gate for completed/no_show all live in
// the domain table; this usecase only resolves who the actor is.
func (uc *TransitionBooking) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Booking, error) {

	booking, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, domain.ErrValidation("booking_not_found", "")
	}

	actor, err := uc.resolveActor(booking, in)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	if err := domain.Transition(now, booking, actor, domain.Status(in.NewStatus)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	// Cancelling frees the interval for other clients.
	if domain.Status(booking.Status) == domain.StatusCancelled {
		uc.cache.InvalidateDate(ctx, booking.CompanionID, booking.Date.Format("2006-01-02"))
	}

	uc.events.Dispatch(events.Event{
		Kind:      eventKindFor(domain.Status(booking.Status)),
		BookingID: &booking.ID,
		Payload:   booking,
	})

	return booking, nil
}

func (uc *TransitionBooking) resolveActor(
	booking *models.Booking,
	in TransitionInput,
) (domain.Actor, error) {

	switch in.ActorRole {
	case models.RoleAdmin:
		return domain.ActorSystem, nil
	case models.RoleCompanion:
		if booking.CompanionID != in.ActorID {
			return "", domain.ErrValidation("booking_not_found", "")
		}
		return domain.ActorCompanion, nil
	case models.RoleClient:
		if booking.ClientID != in.ActorID {
			return "", domain.ErrValidation("booking_not_found", "")
		}
		return domain.ActorClient, nil
	}
	return "", domain.ErrValidation("unknown_role", in.ActorRole)
}

func eventKindFor(s domain.Status) string {
	switch s {
	case domain.StatusConfirmed:
		return events.BookingConfirmed
	case domain.StatusCancelled:
		return events.BookingCancelled
	case domain.StatusCompleted:
		return events.BookingCompleted
	case domain.StatusNoShow:
		return events.BookingNoShow
	}
	return "booking.updated"
}
