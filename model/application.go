package model

import (
	"time"

	"gorm.io/gorm"
)

// ApplicationStatus represents the lifecycle state of an application
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusInterview   ApplicationStatus = "interview"
	StatusSelected    ApplicationStatus = "selected"
	StatusRejected    ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusSelected || s == StatusRejected
}

// IsValid reports whether s is one of the known statuses.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusInterview, StatusSelected, StatusRejected:
		return true
	}
	return false
}

// Application is the join entity between a student and a job. It is the
// single source of truth for application state; per-student status views
// are projections built from this table. The composite unique index backs
// the at-most-one-application-per-pair guarantee even under concurrent
// apply attempts.
type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	StudentID uint `gorm:"not null;uniqueIndex:idx_applications_student_job" json:"student_id"`
	JobID     uint `gorm:"not null;uniqueIndex:idx_applications_student_job" json:"job_id"`

	AppliedDate time.Time         `gorm:"not null" json:"applied_date"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'applied';index" json:"status"`

	// Resume snapshot taken from the student profile at apply time
	ResumeFilename   string     `gorm:"type:varchar(255)" json:"resume_filename,omitempty"`
	ResumeURL        string     `gorm:"type:text" json:"resume_url,omitempty"`
	ResumeSize       int64      `gorm:"default:0" json:"resume_size,omitempty"`
	ResumeUploadedAt *time.Time `json:"resume_uploaded_at,omitempty"`

	CoverLetter string `gorm:"type:text" json:"cover_letter,omitempty"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Student StudentProfile `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Job     Job            `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
}
