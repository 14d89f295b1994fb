package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/events"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
)

// DefaultRequestTTL bounds how long a companion has to answer before
// the request reads as expired.
const DefaultRequestTTL = 48 * time.Hour

type CreateBookingRequestInput struct {
	ClientID    uint
	CompanionID uint
	OfferingID  *uint

	Date      string
	StartTime string
	EndTime   string

	MeetingType string
	Location    string
	Message     string
}

type CreateBookingRequest struct {
	repo   domain.Repository
	events *events.Dispatcher
	policy Policy
}

func NewCreateBookingRequest(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	policy Policy,
) *CreateBookingRequest {
	return &CreateBookingRequest{
		repo:   repo,
		events: dispatcher,
		policy: policy,
	}
}

// Execute records a negotiable proposal. Nothing is reserved: the
// proposed time may even overlap existing bookings, and the conflict is
// only resolved when the companion accepts.
func (uc *CreateBookingRequest) Execute(
	ctx context.Context,
	in CreateBookingRequestInput,
) (*models.BookingRequest, error) {

	now := timezone.Now()

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrValidation("invalid_date", "expected YYYY-MM-DD")
	}

	companion, err := uc.repo.GetCompanion(ctx, in.CompanionID)
	if err != nil {
		return nil, domain.ErrValidation("companion_not_found", "")
	}
	if companion.Role != models.RoleCompanion || !companion.Active {
		return nil, domain.ErrValidation("companion_not_bookable", "")
	}

	iv, err := domain.NewInterval(in.StartTime, in.EndTime)
	if err != nil {
		return nil, domain.ErrValidation("invalid_interval", err.Error())
	}

	start := date.Add(time.Duration(iv.Start) * time.Minute)
	if start.Before(now) {
		return nil, domain.ErrValidation("invalid_interval", "date in the past")
	}
	if d := iv.Duration(); d < uc.policy.MinDurationMin || d > uc.policy.MaxDurationMin {
		return nil, domain.ErrValidation("invalid_interval", "duration outside allowed bounds")
	}

	var price int64
	if in.OfferingID != nil {
		offering, err := uc.repo.GetOffering(ctx, in.CompanionID, *in.OfferingID)
		if err != nil {
			return nil, domain.ErrValidation("offering_not_found", "")
		}
		price = offering.PriceCents
	} else {
		price = companion.HourlyRateCents * int64(iv.Duration()) / 60
	}

	// Expiry never outlives the proposed start: an unanswered request
	// for a time already gone is worthless.
	expires := now.Add(DefaultRequestTTL)
	if start.Before(expires) {
		expires = start
	}

	req := &models.BookingRequest{
		Reference:   uuid.NewString(),
		ClientID:    in.ClientID,
		CompanionID: in.CompanionID,
		OfferingID:  in.OfferingID,

		Date:        date,
		StartTime:   iv.Start.String(),
		EndTime:     iv.End.String(),
		DurationMin: iv.Duration(),

		MeetingType: in.MeetingType,
		Location:    in.Location,
		Message:     in.Message,
		PriceCents:  price,

		Status:    string(domain.RequestPending),
		ExpiresAt: expires,
	}

	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Kind:      events.RequestCreated,
		RequestID: &req.ID,
		Payload:   req,
	})

	return req, nil
}
