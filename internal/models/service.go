package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CategoryID uint            `json:"category_id"`
	Category   ServiceCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"category"`

	Name          string  `gorm:"size:200;not null" json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	Price         float64 `gorm:"type:decimal(10,2)" json:"price"`
	DurationHours int     `gorm:"default:1" json:"duration_hours"`
	Active        bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
