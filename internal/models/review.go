package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"uniqueIndex;not null" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	ProviderID uint `json:"provider_id"`
	Provider   User `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"provider"`

	Rating  int    `json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	Published bool `gorm:"default:true" json:"published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
