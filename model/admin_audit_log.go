package model

import (
	"time"
)

// AdminAuditLog records mutating admin actions for later review
type AdminAuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	AdminID     uint      `gorm:"index;not null" json:"admin_id"`
	Action      string    `gorm:"type:varchar(50);not null" json:"action"`   // company_approve, user_delete, ...
	Resource    string    `gorm:"type:varchar(50);not null" json:"resource"` // companies, users, jobs
	ResourceID  uint      `gorm:"index" json:"resource_id"`
	OldValue    string    `gorm:"type:text" json:"old_value,omitempty"`
	NewValue    string    `gorm:"type:text" json:"new_value,omitempty"`
	IPAddress   string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent   string    `gorm:"type:text" json:"user_agent"`
	Description string    `gorm:"type:text" json:"description"`

	// Relationships
	Admin User `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
}
