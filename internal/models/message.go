package models

import "time"

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	StaffID uint `json:"staff_id"`
	Staff   User `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	BookingID *uint    `json:"booking_id"`
	Booking   *Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Subject string `gorm:"size:200" json:"subject"`
	Body    string `gorm:"type:text" json:"message"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
