package models

import "time"

// BookingRequest is a negotiable proposal for a reservation. It never
// reserves time by itself; acceptance creates a Booking through the
// same conflict check as a direct reservation.
type BookingRequest struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ClientID    uint  `gorm:"index" json:"client_id"`
	Client      *User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`
	CompanionID uint  `gorm:"index" json:"companion_id"`
	Companion   *User `gorm:"foreignKey:CompanionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"companion,omitempty"`

	OfferingID *uint            `json:"offering_id"`
	Offering   *ServiceOffering `gorm:"foreignKey:OfferingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"offering,omitempty"`

	Date        time.Time `json:"date"`
	StartTime   string    `gorm:"size:5" json:"start_time"`
	EndTime     string    `gorm:"size:5" json:"end_time"`
	DurationMin int       `json:"duration_min"`

	MeetingType string `gorm:"size:20;default:'in_person'" json:"meeting_type"`
	Location    string `gorm:"size:255" json:"location"`
	Message     string `gorm:"size:500" json:"message"`
	PriceCents  int64  `json:"price_cents"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// Companion side of the negotiation.
	Response       string     `gorm:"size:500" json:"response"`
	SuggestedDate  *time.Time `json:"suggested_date"`
	SuggestedStart string     `gorm:"size:5" json:"suggested_start"`
	SuggestedEnd   string     `gorm:"size:5" json:"suggested_end"`

	ExpiresAt time.Time `json:"expires_at"`

	// Set when acceptance promoted the request into a booking.
	BookingID *uint `json:"booking_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
