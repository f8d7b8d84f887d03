package models

import (
	"time"
)

// User owns zero or more Models. The password hash is write-only: it is set
// through utils.HashPassword and never serialized, there is no getter path.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null;size:80" json:"username"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Models       []Model   `gorm:"foreignKey:UserID" json:"models,omitempty"`
}
