package models

import "time"

const (
	PaymentUnpaid   = "unpaid"
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Booking is a reservation of a companion's time by a client. Rows are
// never deleted; terminal statuses preserve audit and billing history.
type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ClientID    uint  `gorm:"index" json:"client_id"`
	Client      *User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`
	CompanionID uint  `gorm:"index:idx_booking_companion_date" json:"companion_id"`
	Companion   *User `gorm:"foreignKey:CompanionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"companion,omitempty"`

	OfferingID *uint            `json:"offering_id"`
	Offering   *ServiceOffering `gorm:"foreignKey:OfferingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"offering,omitempty"`

	// Date is midnight in the deployment timezone. StartTime/EndTime
	// are wall-clock "15:04" strings; DurationMin must equal end-start.
	Date        time.Time `gorm:"index:idx_booking_companion_date" json:"date"`
	StartTime   string    `gorm:"size:5" json:"start_time"`
	EndTime     string    `gorm:"size:5" json:"end_time"`
	DurationMin int       `json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	PriceCents    int64  `json:"price_cents"`
	PaymentStatus string `gorm:"size:20;default:'unpaid'" json:"payment_status"`
	PaymentRef    string `gorm:"size:100" json:"payment_ref,omitempty"`

	MeetingType string `gorm:"size:20;default:'in_person'" json:"meeting_type"`
	Location    string `gorm:"size:255" json:"location"`
	Notes       string `gorm:"size:500" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
