package model

import (
	"time"

	"gorm.io/gorm"
)

// CompanyStatus represents the admin-approval state of a company
type CompanyStatus string

const (
	CompanyStatusPending  CompanyStatus = "pending"
	CompanyStatusApproved CompanyStatus = "approved"
	CompanyStatusRejected CompanyStatus = "rejected"
)

// Company represents a recruiting organisation registered on the portal.
// A company starts in pending status and must be approved by an admin
// before it can post jobs.
type Company struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name        string         `gorm:"not null" json:"name"`
	Website     string         `gorm:"type:varchar(255)" json:"website"`
	Industry    string         `gorm:"type:varchar(100)" json:"industry"`
	Description string         `gorm:"type:text" json:"description"`
	Status      CompanyStatus  `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	// Admin who approved or rejected the company, if any
	ReviewedByID *uint      `json:"reviewed_by_id,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`

	// Relationships
	User       User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ReviewedBy *User `gorm:"foreignKey:ReviewedByID;constraint:OnDelete:SET NULL" json:"-"`
	Jobs       []Job `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"jobs,omitempty"`
}
