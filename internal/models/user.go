package models

import "time"

const (
	RoleClient    = "client"
	RoleCompanion = "companion"
	RoleAdmin     = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	// Companion profile fields (empty for clients).
	Headline        string `gorm:"size:150" json:"headline"`
	Bio             string `gorm:"size:2000" json:"bio"`
	City            string `gorm:"size:100" json:"city"`
	HourlyRateCents int64  `json:"hourly_rate_cents"`
	PhotoURL        string `gorm:"size:500" json:"photo_url"`
	Verified        bool   `gorm:"default:false" json:"verified"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
