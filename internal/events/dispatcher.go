package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amizade-app/companion-api/internal/models"
)

const (
	BookingCreated   = "booking.created"
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"
	BookingNoShow    = "booking.no_show"
	RequestCreated   = "request.created"
	RequestAccepted  = "request.accepted"
	RequestRejected  = "request.rejected"
)

type Event struct {
	Kind      string
	BookingID *uint
	RequestID *uint
	Payload   any
}

// Dispatcher persists BookingEvent outbox rows and, when AMQP is
// configured, publishes them. Work happens off the request path; a full
// queue drops the event rather than blocking the API.
type Dispatcher struct {
	db    *gorm.DB
	pub   *Publisher
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(db *gorm.DB, pub *Publisher, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		db:    db,
		pub:   pub,
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		payload, err := json.Marshal(ev.Payload)
		if err != nil {
			d.log.Warn("event payload marshal failed", zap.Error(err))
			continue
		}

		rec := models.BookingEvent{
			UUID:      uuid.NewString(),
			Kind:      ev.Kind,
			BookingID: ev.BookingID,
			RequestID: ev.RequestID,
			Payload:   string(payload),
		}
		if err := d.db.Create(&rec).Error; err != nil {
			d.log.Error("booking event insert failed",
				zap.String("kind", ev.Kind), zap.Error(err))
			continue
		}

		if err := d.pub.Publish(context.Background(), ev.Kind, payload); err != nil {
			// The outbox row survives; the notifier can replay.
			d.log.Warn("booking event publish failed",
				zap.String("kind", ev.Kind), zap.Error(err))
		}
	}
}

// Dispatch enqueues without blocking. A nil Dispatcher is a no-op.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("event queue full, dropping", zap.String("kind", ev.Kind))
	}
}
