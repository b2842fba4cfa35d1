package models

import "time"

// OTP is a single-use six digit code issued for password reset.
type OTP struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Code string `gorm:"size:6;not null" json:"-"`

	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`

	CreatedAt time.Time `json:"created_at"`
}

func (o *OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
