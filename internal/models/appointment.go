package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `gorm:"index" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"salon"`

	// Nullable: walk-in bookings attach a guest customer later or none.
	CustomerID *uint `json:"customer_id"`
	Customer   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	StaffID uint  `json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	AppointmentDate string `gorm:"size:10;index" json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string `gorm:"size:5" json:"appointment_time"`        // HH:MM

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	TotalPrice    int    `json:"total_price"`
	IsPaid        bool   `gorm:"default:false" json:"is_paid"`
	PaymentMethod string `gorm:"size:20" json:"payment_method"` // cash, card, online

	// Out-of-band notification flags; delivery happens elsewhere.
	SMSSent      bool `gorm:"column:sms_sent;default:false" json:"sms_sent"`
	ReminderSent bool `gorm:"column:reminder_sent;default:false" json:"reminder_sent"`

	// Public handle for guest lookups.
	ReferenceCode string `gorm:"size:36;uniqueIndex" json:"reference_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
