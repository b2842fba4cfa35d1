package models

import "time"

type BookingAssignment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"uniqueIndex:idx_booking_staff" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StaffID uint `gorm:"uniqueIndex:idx_booking_staff" json:"staff_id"`
	Staff   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	Role string `gorm:"size:50" json:"role"`

	AssignedAt   time.Time  `json:"assigned_at"`
	UnassignedAt *time.Time `json:"unassigned_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
