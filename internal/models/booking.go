package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Stable external identifier, distinct from the row id.
	BookingID string `gorm:"size:36;uniqueIndex;not null" json:"booking_id"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	ProviderID *uint `json:"provider_id"`
	Provider   *User `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"provider,omitempty"`

	ScheduledDate string `gorm:"size:10" json:"scheduled_date"`
	ScheduledTime string `gorm:"size:5" json:"scheduled_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// Snapshot of the service price at creation time.
	TotalAmount float64 `gorm:"type:decimal(10,2)" json:"total_amount"`

	SpecialInstructions string `gorm:"type:text" json:"special_instructions"`
	Address             string `gorm:"size:255" json:"address"`
	City                string `gorm:"size:100" json:"city"`
	Province            string `gorm:"size:100" json:"province"`
	PostalCode          string `gorm:"size:10" json:"postal_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
