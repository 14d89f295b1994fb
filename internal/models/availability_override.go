package models

import "time"

// AvailabilityOverride replaces the weekly pattern for one calendar
// date. A date that has overrides uses only those windows; an override
// set consisting of inactive rows marks the whole day unavailable.
type AvailabilityOverride struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CompanionID uint `gorm:"index:idx_override_companion_date" json:"companion_id"`

	Date string `gorm:"size:10;index:idx_override_companion_date" json:"date"` // "2006-01-02"

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
