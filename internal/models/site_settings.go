package models

import "time"

// SiteSettings is a singleton row.
type SiteSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SiteName     string `gorm:"size:100;default:'EliteHands'" json:"site_name"`
	ContactEmail string `gorm:"size:100" json:"contact_email"`
	ContactPhone string `gorm:"size:20" json:"contact_phone"`
	Address      string `gorm:"size:255" json:"address"`

	MaintenanceMode bool `gorm:"default:false" json:"maintenance_mode"`

	UpdatedAt time.Time `json:"updated_at"`
}
