package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// JobStatus represents whether a job is open for applications
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// Job types
const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeInternship = "internship"
)

// Job represents a job posting owned by a company.
// EligibleBranches empty means every branch is eligible; MinCGPA zero
// means no CGPA floor; Deadline nil means no application deadline.
type Job struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	CompanyID        uint           `gorm:"not null;index" json:"company_id"`
	Title            string         `gorm:"not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	Location         string         `gorm:"type:varchar(255)" json:"location"`
	Salary           string         `gorm:"type:varchar(100)" json:"salary"`
	JobType          string         `gorm:"type:varchar(20);default:'full_time'" json:"job_type"`
	EligibleBranches pq.StringArray `gorm:"type:text[]" json:"eligible_branches"`
	MinCGPA          float64        `gorm:"default:0" json:"min_cgpa"`
	Deadline         *time.Time     `json:"deadline,omitempty"`
	Status           JobStatus      `gorm:"type:varchar(20);default:'active';index" json:"status"`

	// Relationships
	Company      Company       `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}

// AcceptsApplications reports whether the job is still open at the given
// instant. Deadline enforcement is a policy decision made by the caller;
// this only answers the raw question.
func (j *Job) AcceptsApplications(now time.Time) bool {
	if j.Status != JobStatusActive {
		return false
	}
	if j.Deadline != nil && now.After(*j.Deadline) {
		return false
	}
	return true
}
