package services

import (
	"context"
	"fmt"
	"time"

	"github.com/campushire/placement-api/model"
	"gorm.io/gorm"
)

// ReportService computes admin-facing placement statistics. All numbers
// are derived from the applications table and its neighbours at read
// time; the daily snapshots in placement_stats exist for trend charts.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// FunnelReport is the portal-wide application funnel
type FunnelReport struct {
	TotalStudents     int64 `json:"total_students"`
	TotalCompanies    int64 `json:"total_companies"`
	PendingCompanies  int64 `json:"pending_companies"`
	ActiveJobs        int64 `json:"active_jobs"`
	TotalApplications int64 `json:"total_applications"`
	Applied           int64 `json:"applied"`
	Shortlisted       int64 `json:"shortlisted"`
	Interviewing      int64 `json:"interviewing"`
	Selected          int64 `json:"selected"`
	Rejected          int64 `json:"rejected"`
}

// BranchPlacement is the selected-count per branch
type BranchPlacement struct {
	Branch   string `json:"branch"`
	Students int64  `json:"students"`
	Selected int64  `json:"selected"`
}

// CompanyHiring is the per-company hiring summary
type CompanyHiring struct {
	CompanyID    uint   `json:"company_id"`
	CompanyName  string `json:"company_name"`
	JobsPosted   int64  `json:"jobs_posted"`
	Applications int64  `json:"applications"`
	Selected     int64  `json:"selected"`
}

// Funnel computes the portal-wide funnel report
func (s *ReportService) Funnel(ctx context.Context) (*FunnelReport, error) {
	report := &FunnelReport{}
	db := s.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&report.TotalStudents, db.Model(&model.StudentProfile{})},
		{&report.TotalCompanies, db.Model(&model.Company{}).Where("status = ?", model.CompanyStatusApproved)},
		{&report.PendingCompanies, db.Model(&model.Company{}).Where("status = ?", model.CompanyStatusPending)},
		{&report.ActiveJobs, db.Model(&model.Job{}).Where("status = ?", model.JobStatusActive)},
		{&report.TotalApplications, db.Model(&model.Application{})},
		{&report.Applied, db.Model(&model.Application{}).Where("status = ?", model.StatusApplied)},
		{&report.Shortlisted, db.Model(&model.Application{}).Where("status = ?", model.StatusShortlisted)},
		{&report.Interviewing, db.Model(&model.Application{}).Where("status = ?", model.StatusInterview)},
		{&report.Selected, db.Model(&model.Application{}).Where("status = ?", model.StatusSelected)},
		{&report.Rejected, db.Model(&model.Application{}).Where("status = ?", model.StatusRejected)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute funnel report: %w", err)
		}
	}

	return report, nil
}

// ByBranch computes placement counts per branch
func (s *ReportService) ByBranch(ctx context.Context) ([]BranchPlacement, error) {
	var rows []BranchPlacement
	err := s.db.WithContext(ctx).Model(&model.StudentProfile{}).
		Select(`student_profiles.branch AS branch,
			COUNT(DISTINCT student_profiles.id) AS students,
			COUNT(DISTINCT applications.student_id) FILTER (WHERE applications.status = ?) AS selected`,
			model.StatusSelected).
		Joins("LEFT JOIN applications ON applications.student_id = student_profiles.id AND applications.deleted_at IS NULL").
		Group("student_profiles.branch").
		Order("student_profiles.branch ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute branch report: %w", err)
	}
	return rows, nil
}

// ByCompany computes the per-company hiring summary
func (s *ReportService) ByCompany(ctx context.Context) ([]CompanyHiring, error) {
	var rows []CompanyHiring
	err := s.db.WithContext(ctx).Model(&model.Company{}).
		Select(`companies.id AS company_id,
			companies.name AS company_name,
			COUNT(DISTINCT jobs.id) AS jobs_posted,
			COUNT(applications.id) AS applications,
			COUNT(applications.id) FILTER (WHERE applications.status = ?) AS selected`,
			model.StatusSelected).
		Joins("LEFT JOIN jobs ON jobs.company_id = companies.id AND jobs.deleted_at IS NULL").
		Joins("LEFT JOIN applications ON applications.job_id = jobs.id AND applications.deleted_at IS NULL").
		Where("companies.status = ?", model.CompanyStatusApproved).
		Group("companies.id, companies.name").
		Order("selected DESC, applications DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute company report: %w", err)
	}
	return rows, nil
}

// SnapshotDaily upserts today's placement stat row, called by cron
func (s *ReportService) SnapshotDaily(ctx context.Context) error {
	funnel, err := s.Funnel(ctx)
	if err != nil {
		return err
	}

	today := time.Now().Truncate(24 * time.Hour)
	stat := model.PlacementStat{
		Date:              today,
		TotalStudents:     funnel.TotalStudents,
		TotalCompanies:    funnel.TotalCompanies,
		ActiveJobs:        funnel.ActiveJobs,
		TotalApplications: funnel.TotalApplications,
		Shortlisted:       funnel.Shortlisted,
		Interviewing:      funnel.Interviewing,
		Selected:          funnel.Selected,
		Rejected:          funnel.Rejected,
	}

	var existing model.PlacementStat
	err = s.db.WithContext(ctx).Where("date = ?", today).First(&existing).Error
	if err == nil {
		stat.ID = existing.ID
		return s.db.WithContext(ctx).Save(&stat).Error
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to look up placement stat: %w", err)
	}
	return s.db.WithContext(ctx).Create(&stat).Error
}

// Trend returns the daily snapshots for the last n days, oldest first
func (s *ReportService) Trend(ctx context.Context, days int) ([]model.PlacementStat, error) {
	since := time.Now().AddDate(0, 0, -days)
	var stats []model.PlacementStat
	err := s.db.WithContext(ctx).
		Where("date >= ?", since).
		Order("date ASC").
		Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch placement trend: %w", err)
	}
	return stats, nil
}
