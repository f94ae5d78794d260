package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/services/storage"
	"github.com/campushire/placement-api/utils/resume"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoResume is returned when a student has no resume on file.
var ErrNoResume = errors.New("student has no resume on file")

// ResumeLinkTTL is how long a presigned resume download link stays valid.
const ResumeLinkTTL = 15 * time.Minute

// ErrInvalidResume wraps a validation failure with the user-facing reason
type ErrInvalidResume struct {
	Reason string
}

func (e *ErrInvalidResume) Error() string {
	return fmt.Sprintf("invalid resume: %s", e.Reason)
}

// ResumeService validates uploaded resumes and stores them in object
// storage, recording the metadata on the student profile. When no
// storage client is configured (local development) uploads are rejected.
type ResumeService struct {
	db    *gorm.DB
	store *storage.Client
}

// NewResumeService creates a new resume service
func NewResumeService(db *gorm.DB, store *storage.Client) *ResumeService {
	return &ResumeService{
		db:    db,
		store: store,
	}
}

// Enabled reports whether object storage is configured
func (s *ResumeService) Enabled() bool {
	return s.store != nil
}

// Upload validates and stores a resume for the student, replacing any
// previous one. The old object is deleted best-effort after the profile
// row points at the new one.
func (s *ResumeService) Upload(ctx context.Context, studentUserID uint, file *multipart.FileHeader) (*model.StudentProfile, error) {
	if s.store == nil {
		return nil, errors.New("resume storage is not configured")
	}

	var student model.StudentProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", studentUserID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to fetch student profile: %w", err)
	}

	result, content, err := resume.ValidateFile(file, resume.DefaultLimits)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	if !result.Valid {
		return nil, &ErrInvalidResume{Reason: result.Error}
	}

	key := fmt.Sprintf("resumes/%d/%s%s", student.ID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.store.Upload(ctx, key, content, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	oldKey := student.ResumeKey
	now := time.Now()

	updates := map[string]interface{}{
		"resume_filename":    file.Filename,
		"resume_url":         url,
		"resume_key":         key,
		"resume_size":        result.FileSize,
		"resume_uploaded_at": now,
	}
	if err := s.db.WithContext(ctx).Model(&student).Updates(updates).Error; err != nil {
		// The new object is orphaned; remove it rather than the profile's.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("Warning: failed to clean up orphaned resume %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to save resume metadata: %w", err)
	}

	student.ResumeFilename = file.Filename
	student.ResumeURL = url
	student.ResumeKey = key
	student.ResumeSize = result.FileSize
	student.ResumeUploadedAt = &now

	if oldKey != "" && oldKey != key {
		if err := s.store.Delete(ctx, oldKey); err != nil {
			log.Printf("Warning: failed to delete previous resume %s: %v", oldKey, err)
		}
	}

	return &student, nil
}

// DownloadURL returns a short-lived link to the student's resume
func (s *ResumeService) DownloadURL(ctx context.Context, studentID uint) (string, error) {
	if s.store == nil {
		return "", errors.New("resume storage is not configured")
	}

	var student model.StudentProfile
	if err := s.db.WithContext(ctx).First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrStudentNotFound
		}
		return "", fmt.Errorf("failed to fetch student profile: %w", err)
	}

	if student.ResumeKey == "" {
		return "", ErrNoResume
	}

	return s.store.PresignedURL(student.ResumeKey, ResumeLinkTTL)
}
