package models

import "time"

const (
	RoleSalonOwner = "salon_owner"
	RoleStaff      = "staff"
	RoleCustomer   = "customer"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Guest customers have a phone but no email or password.
	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        *string `gorm:"size:100;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"size:255" json:"-"`
	Phone        *string `gorm:"size:15;uniqueIndex" json:"phone"`
	Role         string  `gorm:"size:20;default:'customer'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
