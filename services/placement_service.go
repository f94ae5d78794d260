package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushire/placement-api/model"
	"gorm.io/gorm"
)

// PlacementService implements the application lifecycle: eligibility-gated
// apply, the status state machine, and the per-student application
// projection. The applications table is the single source of truth;
// everything a job or student "has" is derived from it through foreign
// keys, so there is no second status field to keep in sync.
type PlacementService struct {
	db               *gorm.DB
	notifications    *NotificationService
	enforceDeadlines bool
}

// NewPlacementService creates a new placement service. When
// enforceDeadlines is false, jobs past their deadline still accept
// applications as long as they are active.
func NewPlacementService(db *gorm.DB, notifications *NotificationService, enforceDeadlines bool) *PlacementService {
	return &PlacementService{
		db:               db,
		notifications:    notifications,
		enforceDeadlines: enforceDeadlines,
	}
}

// ApplyInput carries the optional fields of an apply request.
type ApplyInput struct {
	CoverLetter string
}

// JobAcceptsApplications reports whether the job can take a new
// application right now under the service's deadline policy. With
// enforcement off only the status counts; the deadline is advisory.
func (s *PlacementService) JobAcceptsApplications(job *model.Job, now time.Time) bool {
	if s.enforceDeadlines {
		return job.AcceptsApplications(now)
	}
	return job.Status == model.JobStatusActive
}

// Apply records a new application for the (student, job) pair. The
// preconditions are checked in order, short-circuiting on the first
// failure: job exists and is open, student exists, student is eligible,
// no prior application. Exactly one of any number of concurrent calls
// for the same pair succeeds; the losers get ErrAlreadyApplied from the
// unique index on (student_id, job_id), indistinguishable from the
// pre-check result.
func (s *PlacementService) Apply(ctx context.Context, studentUserID, jobID uint, input ApplyInput) (*model.Application, error) {
	var job model.Job
	if err := s.db.WithContext(ctx).Preload("Company").First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}

	now := time.Now()
	if job.Status != model.JobStatusActive {
		return nil, ErrJobClosed
	}
	if !s.JobAcceptsApplications(&job, now) {
		return nil, &IneligibleError{Reason: ReasonDeadline}
	}

	var student model.StudentProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", studentUserID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to fetch student profile: %w", err)
	}

	if ok, reason := CheckEligibility(&student, &job); !ok {
		return nil, &IneligibleError{Reason: reason}
	}

	// Pre-check for a friendlier fast path; the unique index is what
	// actually guarantees at-most-one under concurrency.
	var existing int64
	if err := s.db.WithContext(ctx).Model(&model.Application{}).
		Where("student_id = ? AND job_id = ?", student.ID, jobID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyApplied
	}

	application := model.Application{
		StudentID:        student.ID,
		JobID:            job.ID,
		AppliedDate:      now,
		Status:           model.StatusApplied,
		ResumeFilename:   student.ResumeFilename,
		ResumeURL:        student.ResumeURL,
		ResumeSize:       student.ResumeSize,
		ResumeUploadedAt: student.ResumeUploadedAt,
		CoverLetter:      input.CoverLetter,
	}

	if err := s.db.WithContext(ctx).Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	if s.notifications != nil {
		s.notifications.NotifyNewApplication(ctx, &job, &student, &application)
	}

	return &application, nil
}

// TransitionStatus moves an application to a new status on behalf of the
// owning company or an admin. Transitions outside the state machine fail
// with InvalidTransitionError; actors outside the ownership chain fail
// with ErrForbidden.
func (s *PlacementService) TransitionStatus(ctx context.Context, applicationID uint, actor *model.User, newStatus model.ApplicationStatus) (*model.Application, error) {
	var application model.Application
	if err := s.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company").
		Preload("Student").
		First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}

	if !CanManageApplication(actor, application.Job.Company.UserID) {
		return nil, ErrForbidden
	}

	if !newStatus.IsValid() || !CanTransition(application.Status, newStatus) {
		return nil, &InvalidTransitionError{From: application.Status, To: newStatus}
	}

	if err := s.db.WithContext(ctx).Model(&application).
		Update("status", newStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	application.Status = newStatus

	if s.notifications != nil {
		s.notifications.NotifyStatusChange(ctx, &application)
	}

	return &application, nil
}

// StudentApplicationView is one row of the per-student projection:
// which jobs the student applied to and where each application stands.
type StudentApplicationView struct {
	ApplicationID uint                    `json:"application_id"`
	JobID         uint                    `json:"job_id"`
	JobTitle      string                  `json:"job_title"`
	CompanyName   string                  `json:"company_name"`
	Status        model.ApplicationStatus `json:"status"`
	AppliedDate   time.Time               `json:"applied_date"`
}

// StudentApplications returns the student's applications in application
// order. This is the computed replacement for a persisted per-student
// status map: it is rebuilt from the applications table on every read,
// so it can never drift from the source of truth.
func (s *PlacementService) StudentApplications(ctx context.Context, studentUserID uint) ([]StudentApplicationView, error) {
	var student model.StudentProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", studentUserID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to fetch student profile: %w", err)
	}

	var applications []model.Application
	if err := s.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company").
		Where("student_id = ?", student.ID).
		Order("applied_date ASC, id ASC").
		Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	views := make([]StudentApplicationView, 0, len(applications))
	for _, a := range applications {
		views = append(views, StudentApplicationView{
			ApplicationID: a.ID,
			JobID:         a.JobID,
			JobTitle:      a.Job.Title,
			CompanyName:   a.Job.Company.Name,
			Status:        a.Status,
			AppliedDate:   a.AppliedDate,
		})
	}
	return views, nil
}

// HasApplied reports whether the student already has an application for
// the job, reading the applications table directly.
func (s *PlacementService) HasApplied(ctx context.Context, studentID, jobID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Application{}).
		Where("student_id = ? AND job_id = ?", studentID, jobID).
		Count(&count).Error
	return count > 0, err
}
