package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`           // Nullable for failed login attempts
	Action    string    `gorm:"size:50;not null" json:"action"` // e.g. "SIGNUP", "LOGIN", "SAVE_MODEL"
	EntityID  string    `gorm:"size:50" json:"entity_id"`       // ID of the object affected (username or model id)
	Details   string    `gorm:"type:text" json:"details"`       // JSON or text description
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"` // Raw header, parsed by the audit worker
	Browser   string    `gorm:"size:100" json:"browser"`
	OS        string    `gorm:"size:100" json:"os"`
	RequestID string    `gorm:"size:36" json:"request_id"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
