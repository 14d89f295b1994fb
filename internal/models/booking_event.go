package models

import "time"

// BookingEvent is an outbox record consumed by the external notifier.
// The scheduling core only produces these; delivery is not its job.
type BookingEvent struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	UUID string `gorm:"size:36;uniqueIndex" json:"uuid"`

	Kind string `gorm:"size:50;not null" json:"kind"`

	BookingID *uint `json:"booking_id"`
	RequestID *uint `json:"request_id"`

	Payload string `gorm:"type:text" json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}
