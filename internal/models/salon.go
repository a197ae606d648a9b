package models

import "time"

type Salon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:200;not null" json:"name"`
	OwnerID uint   `json:"owner_id"`
	Owner   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"owner"`

	Phone   string `gorm:"size:15" json:"phone"`
	Address string `gorm:"type:text" json:"address"`

	// Working hours, HH:MM.
	OpeningTime string `gorm:"size:5;default:'09:00'" json:"opening_time"`
	ClosingTime string `gorm:"size:5;default:'21:00'" json:"closing_time"`

	// Comma-separated weekday names, e.g. "friday" or "friday,saturday".
	ClosedDays string `gorm:"size:100;default:'friday'" json:"closed_days"`

	Timezone string `gorm:"size:40" json:"timezone"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
