package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// StudentProfile holds the placement-relevant data for a student account
type StudentProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Branch    string         `gorm:"type:varchar(50);not null" json:"branch"` // e.g. "CS", "IT", "ME"
	CGPA      float64        `gorm:"default:0" json:"cgpa"`
	Backlogs  int            `gorm:"default:0" json:"backlogs"`
	Skills    pq.StringArray `gorm:"type:text[]" json:"skills"`
	RollNo    string         `gorm:"type:varchar(50)" json:"roll_no"`
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`

	// Current resume on file. Applications snapshot these at apply time.
	ResumeFilename   string     `gorm:"type:varchar(255)" json:"resume_filename,omitempty"`
	ResumeURL        string     `gorm:"type:text" json:"resume_url,omitempty"`
	ResumeKey        string     `gorm:"type:varchar(500)" json:"-"` // S3-style object key
	ResumeSize       int64      `gorm:"default:0" json:"resume_size,omitempty"`
	ResumeUploadedAt *time.Time `json:"resume_uploaded_at,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Applications []Application `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}
