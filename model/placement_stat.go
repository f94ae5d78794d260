package model

import (
	"time"
)

// PlacementStat is a daily aggregate snapshot of the application funnel,
// computed by a scheduled job and served by the admin reports endpoints.
type PlacementStat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Date      time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`

	TotalStudents     int64 `gorm:"default:0" json:"total_students"`
	TotalCompanies    int64 `gorm:"default:0" json:"total_companies"`
	ActiveJobs        int64 `gorm:"default:0" json:"active_jobs"`
	TotalApplications int64 `gorm:"default:0" json:"total_applications"`
	Shortlisted       int64 `gorm:"default:0" json:"shortlisted"`
	Interviewing      int64 `gorm:"default:0" json:"interviewing"`
	Selected          int64 `gorm:"default:0" json:"selected"`
	Rejected          int64 `gorm:"default:0" json:"rejected"`
}
