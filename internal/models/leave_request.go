package models

import "time"

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type LeaveRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID uint `json:"staff_id"`
	Staff   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	StartDate string `gorm:"size:10" json:"start_date"`
	EndDate   string `gorm:"size:10" json:"end_date"`
	Reason    string `gorm:"type:text" json:"reason"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	DecidedBy *uint      `json:"decided_by"`
	DecidedAt *time.Time `json:"decided_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
