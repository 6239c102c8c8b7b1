package models

import (
	"time"
)

// User represents a registered account (customer or admin)
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"is_admin"`
	ResetToken     *string   `gorm:"uniqueIndex" json:"-"` // single-use password reset token, nil when none pending
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
