package models

import "time"

const (
	NotificationBookingConfirmed = "booking_confirmed"
	NotificationBookingCancelled = "booking_cancelled"
	NotificationBookingReminder  = "booking_reminder"
	NotificationReviewReceived   = "review_received"
	NotificationMessageReceived  = "message_received"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Type    string `gorm:"size:50" json:"notification_type"`
	Title   string `gorm:"size:200" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
