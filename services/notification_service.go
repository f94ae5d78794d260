package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/campushire/placement-api/model"
	"gorm.io/gorm"
)

// NotificationService creates and lists in-app notifications.
// Notification writes are best-effort: a failed insert is logged, never
// surfaced to the caller of the operation that triggered it.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// ListNotificationsOptions filters a notification listing
type ListNotificationsOptions struct {
	UserID     uint
	UnreadOnly bool
	Category   string
	Limit      int
	Offset     int
}

// GetNotificationsByUser returns notifications for a user, newest first
func (s *NotificationService) GetNotificationsByUser(ctx context.Context, opts ListNotificationsOptions) ([]model.UserNotification, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.UserNotification{}).Where("user_id = ?", opts.UserID)

	if opts.UnreadOnly {
		query = query.Where("read = ?", false)
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []model.UserNotification
	if err := query.Order("created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, total, nil
}

// GetUnreadCount returns the number of unread notifications for a user
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserNotification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead marks a single notification as read
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uint) error {
	result := s.db.WithContext(ctx).Model(&model.UserNotification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllAsRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&model.UserNotification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// NotifyNewApplication notifies the job's company about a fresh application
func (s *NotificationService) NotifyNewApplication(ctx context.Context, job *model.Job, student *model.StudentProfile, application *model.Application) {
	metadata, _ := json.Marshal(map[string]interface{}{
		"application_id": application.ID,
		"job_id":         job.ID,
		"student_id":     student.ID,
	})

	s.create(ctx, model.UserNotification{
		UserID:   job.Company.UserID,
		Type:     model.NotificationTypeInfo,
		Category: model.NotificationCategoryApplication,
		Title:    "New application received",
		Message:  fmt.Sprintf("A new candidate applied for %q", job.Title),
		Metadata: metadata,
	})
}

// NotifyStatusChange notifies the student that their application moved
func (s *NotificationService) NotifyStatusChange(ctx context.Context, application *model.Application) {
	metadata, _ := json.Marshal(map[string]interface{}{
		"application_id": application.ID,
		"job_id":         application.JobID,
		"status":         application.Status,
	})

	notifType := model.NotificationTypeInfo
	if application.Status == model.StatusSelected {
		notifType = model.NotificationTypeSuccess
	}
	if application.Status == model.StatusRejected {
		notifType = model.NotificationTypeWarning
	}

	s.create(ctx, model.UserNotification{
		UserID:   application.Student.UserID,
		Type:     notifType,
		Category: model.NotificationCategoryApplication,
		Title:    "Application status updated",
		Message:  fmt.Sprintf("Your application for %q is now %s", application.Job.Title, application.Status),
		Metadata: metadata,
	})
}

// NotifyCompanyReviewed notifies a company user about the admin decision
func (s *NotificationService) NotifyCompanyReviewed(ctx context.Context, company *model.Company) {
	title := "Company approved"
	message := fmt.Sprintf("%s has been approved. You can now post jobs.", company.Name)
	notifType := model.NotificationTypeSuccess
	if company.Status == model.CompanyStatusRejected {
		title = "Company registration rejected"
		message = fmt.Sprintf("%s was not approved. Contact the placement cell for details.", company.Name)
		notifType = model.NotificationTypeWarning
	}

	s.create(ctx, model.UserNotification{
		UserID:   company.UserID,
		Type:     notifType,
		Category: model.NotificationCategoryCompanyApproval,
		Title:    title,
		Message:  message,
	})
}

func (s *NotificationService) create(ctx context.Context, notification model.UserNotification) {
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create notification for user %d: %v", notification.UserID, err)
	}
}
