package models

import "time"

// Roles a user account can hold.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents an account in the canteen system. Passwords are stored
// and compared as-is; there is no hashing in this system.
type User struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email         string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password      string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role          string    `json:"role" gorm:"type:varchar(16)" validate:"required,oneof=student admin"`
	FullName      string    `json:"full_name" validate:"required,min=2,max=100"`
	StudentID     *string   `json:"student_id,omitempty" gorm:"uniqueIndex;type:varchar(32)"`
	Phone         string    `json:"phone,omitempty" gorm:"type:varchar(20)" validate:"omitempty,min=7,max=20"`
	WalletBalance float64   `json:"wallet_balance" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
}
