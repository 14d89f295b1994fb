package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/amizade-app/companion-api/internal/cache"
	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/events"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
)

type RespondInput struct {
	RequestID   uint
	CompanionID uint
	Accept      bool
	Response    string

	// Optional countered time; when set, acceptance reserves this
	// instead of the originally requested interval.
	SuggestedDate  string
	SuggestedStart string
	SuggestedEnd   string
}

type RespondToBookingRequest struct {
	repo   domain.Repository
	events *events.Dispatcher
	cache  *cache.SlotCache
}

func NewRespondToBookingRequest(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	slotCache *cache.SlotCache,
) *RespondToBookingRequest {
	return &RespondToBookingRequest{
		repo:   repo,
		events: dispatcher,
		cache:  slotCache,
	}
}

// Execute applies the companion's answer. Acceptance runs the chosen
// interval through the conflict guard exactly like a direct booking; a
// conflict leaves the request pending so the companion can counter with
// another time instead of silently rejecting the client.
func (uc *RespondToBookingRequest) Execute(
	ctx context.Context,
	in RespondInput,
) (*models.BookingRequest, error) {

	now := timezone.Now()

	req, err := uc.repo.GetRequest(ctx, in.RequestID)
	if err != nil {
		return nil, domain.ErrValidation("request_not_found", "")
	}
	if req.CompanionID != in.CompanionID {
		return nil, domain.ErrValidation("request_not_found", "")
	}

	if err := domain.CanRespond(now, req); err != nil {
		// Persist the lazy expiry when we notice it; reads elsewhere
		// do not need the write to see "expired".
		if domain.EffectiveRequestStatus(now, req) == domain.RequestExpired &&
			req.Status == string(domain.RequestPending) {
			req.Status = string(domain.RequestExpired)
			_ = uc.repo.UpdateRequest(ctx, req)
		}
		return nil, err
	}

	if err := uc.applySuggestion(req, in); err != nil {
		return nil, err
	}
	req.Response = in.Response

	if !in.Accept {
		req.Status = string(domain.RequestRejected)
		if err := uc.repo.UpdateRequest(ctx, req); err != nil {
			return nil, err
		}
		uc.events.Dispatch(events.Event{
			Kind:      events.RequestRejected,
			RequestID: &req.ID,
			Payload:   req,
		})
		return req, nil
	}

	date, iv, err := domain.RequestedInterval(req)
	if err != nil {
		return nil, err
	}

	start := date.Add(time.Duration(iv.Start) * time.Minute)
	if start.Before(now) {
		return nil, domain.ErrValidation("invalid_interval", "accepted time is in the past")
	}

	booking := &models.Booking{
		Reference:   uuid.NewString(),
		ClientID:    req.ClientID,
		CompanionID: req.CompanionID,
		OfferingID:  req.OfferingID,

		Date:        date,
		StartTime:   iv.Start.String(),
		EndTime:     iv.End.String(),
		DurationMin: iv.Duration(),

		// Acceptance is the companion's explicit yes.
		Status: string(domain.StatusConfirmed),

		PriceCents:    req.PriceCents,
		PaymentStatus: models.PaymentUnpaid,

		MeetingType: req.MeetingType,
		Location:    req.Location,
		Notes:       req.Message,
	}

	req.Status = string(domain.RequestAccepted)

	if err := uc.repo.AcceptRequestWithBooking(ctx, req, booking); err != nil {
		// On conflict the request stays pending; the companion must
		// pick another time.
		var conflict *domain.SlotConflictError
		if errors.As(err, &conflict) {
			req.Status = string(domain.RequestPending)
		}
		return nil, err
	}

	uc.cache.InvalidateDate(ctx, req.CompanionID, date.Format("2006-01-02"))

	uc.events.Dispatch(events.Event{
		Kind:      events.RequestAccepted,
		RequestID: &req.ID,
		BookingID: &booking.ID,
		Payload:   req,
	})
	uc.events.Dispatch(events.Event{
		Kind:      events.BookingConfirmed,
		BookingID: &booking.ID,
		Payload:   booking,
	})

	return req, nil
}

func (uc *RespondToBookingRequest) applySuggestion(
	req *models.BookingRequest,
	in RespondInput,
) error {

	if in.SuggestedStart == "" && in.SuggestedEnd == "" && in.SuggestedDate == "" {
		return nil
	}
	if in.SuggestedStart == "" || in.SuggestedEnd == "" {
		return domain.ErrValidation("invalid_interval", "suggestion needs start and end")
	}

	if _, err := domain.NewInterval(in.SuggestedStart, in.SuggestedEnd); err != nil {
		return domain.ErrValidation("invalid_interval", err.Error())
	}

	if in.SuggestedDate != "" {
		d, err := timezone.ParseDate(in.SuggestedDate)
		if err != nil {
			return domain.ErrValidation("invalid_date", "expected YYYY-MM-DD")
		}
		req.SuggestedDate = &d
	}

	req.SuggestedStart = in.SuggestedStart
	req.SuggestedEnd = in.SuggestedEnd
	return nil
}
