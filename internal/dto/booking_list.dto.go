package dto

import "time"

type BookingListDTO struct {
	ID            uint      `json:"id"`
	Reference     string    `json:"reference"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	ClientName    string    `json:"client_name"`
	OfferingName  string    `json:"offering_name"`
	MeetingType   string    `json:"meeting_type"`
	Location      string    `json:"location"`
	PriceCents    int64     `json:"price_cents"`
	PaymentStatus string    `json:"payment_status"`
}
