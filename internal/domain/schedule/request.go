package schedule

import (
	"time"

	"github.com/amizade-app/companion-api/internal/models"
)

// ===============================
// BookingRequest status
// ===============================

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
	RequestExpired  RequestStatus = "expired"
)

func (s RequestStatus) Terminal() bool {
	return s != RequestPending
}

// EffectiveRequestStatus evaluates expiry lazily: a pending request
// whose expiry has passed reads as expired even though no write
// occurred at the expiry instant. There is no background timer.
func EffectiveRequestStatus(now time.Time, r *models.BookingRequest) RequestStatus {
	s := RequestStatus(r.Status)
	if s == RequestPending && !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt) {
		return RequestExpired
	}
	return s
}

// CanRespond gates a companion response. Only an unexpired pending
// request can be accepted or rejected.
func CanRespond(now time.Time, r *models.BookingRequest) error {
	switch EffectiveRequestStatus(now, r) {
	case RequestPending:
		return nil
	case RequestExpired:
		return &InvalidTransitionError{From: string(RequestExpired), To: "responded"}
	default:
		return &InvalidTransitionError{From: r.Status, To: "responded"}
	}
}

// RequestedInterval resolves the interval acceptance would reserve: the
// companion-suggested alternate when present, otherwise the original.
func RequestedInterval(r *models.BookingRequest) (date time.Time, iv Interval, err error) {
	date = r.Date
	startHM, endHM := r.StartTime, r.EndTime

	if r.SuggestedStart != "" && r.SuggestedEnd != "" {
		startHM, endHM = r.SuggestedStart, r.SuggestedEnd
		if r.SuggestedDate != nil {
			date = *r.SuggestedDate
		}
	}

	iv, err = NewInterval(startHM, endHM)
	if err != nil {
		return time.Time{}, Interval{}, ErrValidation("invalid_interval", err.Error())
	}
	return date, iv, nil
}
