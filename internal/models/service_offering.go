package models

import "time"

const (
	MeetingInPerson = "in_person"
	MeetingVirtual  = "virtual"
)

// ServiceOffering is a bookable service published by a companion
// (dinner company, event company, city tour, online chat, ...).
type ServiceOffering struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CompanionID uint `gorm:"index" json:"companion_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	Category    string `gorm:"size:50" json:"category"`
	MeetingType string `gorm:"size:20;default:'in_person'" json:"meeting_type"`

	DurationMin int   `json:"duration_min"`
	PriceCents  int64 `json:"price_cents"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
