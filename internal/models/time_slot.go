package models

import "time"

// TimeSlot is a salon-managed capacity hint. Conflict checking is
// derived from appointments only; this table is not consulted by the
// availability path.
type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint `gorm:"uniqueIndex:idx_time_slot" json:"salon_id"`
	StaffID uint `gorm:"uniqueIndex:idx_time_slot" json:"staff_id"`

	Date      string `gorm:"size:10;uniqueIndex:idx_time_slot" json:"date"`
	StartTime string `gorm:"size:5;uniqueIndex:idx_time_slot" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	IsAvailable bool `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
