package models

import "time"

// AvailabilityRule is one recurring weekly window during which a
// companion accepts bookings. Times are wall-clock "15:04" strings in
// the deployment timezone, inclusive start / exclusive end.
type AvailabilityRule struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CompanionID uint `gorm:"index:idx_rule_companion_weekday" json:"companion_id"`

	Weekday int `gorm:"index:idx_rule_companion_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	// Optional service-category tag; empty means all offerings apply.
	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
