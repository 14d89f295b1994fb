package schedule

import (
	"time"

	"github.com/amizade-app/companion-api/internal/models"
)

// ===============================
// Booking status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

type Actor string

const (
	ActorClient    Actor = "client"
	ActorCompanion Actor = "companion"
	ActorSystem    Actor = "system"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// transitions maps current status to the actors allowed to request each
// next status. ActorSystem (admin, cleanup) is always allowed where the
// edge exists.
var transitions = map[Status]map[Status][]Actor{
	StatusPending: {
		StatusConfirmed: {ActorCompanion},
		StatusCancelled: {ActorClient, ActorCompanion},
	},
	StatusConfirmed: {
		StatusCompleted: {ActorCompanion},
		StatusCancelled: {ActorClient, ActorCompanion},
		StatusNoShow:    {ActorCompanion},
	},
}

// CanTransition checks the edge, the actor, and, for completed/no_show,
// that the booking's scheduled end has passed. It is a pure function of
// (now, booking) so the answer never drifts from the clock.
func CanTransition(now time.Time, b *models.Booking, actor Actor, to Status) error {
	from := Status(b.Status)

	allowed, ok := transitions[from][to]
	if !ok {
		return &InvalidTransitionError{From: b.Status, To: string(to)}
	}

	if actor != ActorSystem {
		permitted := false
		for _, a := range allowed {
			if a == actor {
				permitted = true
				break
			}
		}
		if !permitted {
			return &InvalidTransitionError{From: b.Status, To: string(to)}
		}
	}

	if to == StatusCompleted || to == StatusNoShow {
		end, err := BookingEnd(b)
		if err != nil {
			return err
		}
		if now.Before(end) {
			return ErrValidation("booking_not_finished",
				"cannot mark "+string(to)+" before the scheduled end")
		}
	}

	return nil
}

// Transition applies a validated transition, stamping the side-effect
// timestamps the way billing expects them.
func Transition(now time.Time, b *models.Booking, actor Actor, to Status) error {
	if err := CanTransition(now, b, actor, to); err != nil {
		return err
	}

	b.Status = string(to)
	switch to {
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusCompleted, StatusNoShow:
		b.CompletedAt = &now
	}
	return nil
}

// BookingEnd resolves the booking's scheduled end as an instant in the
// deployment timezone carried by b.Date.
func BookingEnd(b *models.Booking) (time.Time, error) {
	end, err := ParseClock(b.EndTime)
	if err != nil {
		return time.Time{}, ErrValidation("malformed_time", err.Error())
	}
	d := b.Date
	return time.Date(
		d.Year(), d.Month(), d.Day(),
		int(end)/60, int(end)%60, 0, 0,
		d.Location(),
	), nil
}

// BlockingStatuses are the statuses that reserve time: any booking in
// one of these blocks overlapping reservations. Completed bookings keep
// blocking so history never shows two people in the same hour.
func BlockingStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusConfirmed),
		string(StatusCompleted),
	}
}
