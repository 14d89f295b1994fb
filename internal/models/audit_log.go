package models

import "time"

// AuditLog is append-only. ActorID nil means the system itself
// (integrity cleanup, lazy expiry).
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanionID uint   `gorm:"index" json:"companion_id"`
	ActorID     *uint  `json:"actor_id"`
	Action      string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`

	Before string `gorm:"type:text" json:"before"`
	After  string `gorm:"type:text" json:"after"`

	CreatedAt time.Time `json:"created_at"`
}
