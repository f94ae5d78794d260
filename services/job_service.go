package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/utils/cache"
	"gorm.io/gorm"
)

const (
	activeJobsCacheKey = "jobs:active"
	activeJobsCacheTTL = 5 * time.Minute
)

// JobService handles job browsing and lifecycle concerns that sit outside
// the placement engine: filtered listings, the cached active-jobs feed,
// and deadline-driven closing.
type JobService struct {
	db    *gorm.DB
	cache *cache.RedisCache // nil when Redis is unavailable
}

// NewJobService creates a new job service
func NewJobService(db *gorm.DB, redisCache *cache.RedisCache) *JobService {
	return &JobService{
		db:    db,
		cache: redisCache,
	}
}

// ListJobsOptions filters a job listing
type ListJobsOptions struct {
	Search    string
	Location  string
	JobType   string
	CompanyID uint
	Status    string
	Page      int
	Limit     int
}

// ListJobs returns jobs matching the filters with a total count
func (s *JobService) ListJobs(ctx context.Context, opts ListJobsOptions) ([]model.Job, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Job{})

	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if opts.Location != "" {
		query = query.Where("location ILIKE ?", "%"+opts.Location+"%")
	}
	if opts.JobType != "" {
		query = query.Where("job_type = ?", opts.JobType)
	}
	if opts.CompanyID != 0 {
		query = query.Where("company_id = ?", opts.CompanyID)
	}
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	offset := (opts.Page - 1) * opts.Limit
	var jobs []model.Job
	if err := query.Preload("Company").
		Order("created_at DESC").
		Limit(opts.Limit).
		Offset(offset).
		Find(&jobs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch jobs: %w", err)
	}

	return jobs, total, nil
}

// ActiveJobs returns the open-job feed, served from Redis when warm.
// The cache is invalidated on any job mutation and refreshed by a cron
// job, so a stale window is bounded by the TTL.
func (s *JobService) ActiveJobs(ctx context.Context) ([]model.Job, error) {
	if s.cache != nil {
		var cached []model.Job
		if err := s.cache.GetJSON(ctx, activeJobsCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	jobs, err := s.loadActiveJobs(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, activeJobsCacheKey, jobs, activeJobsCacheTTL); err != nil {
			log.Printf("Warning: failed to cache active jobs: %v", err)
		}
	}

	return jobs, nil
}

// InvalidateActiveJobs drops the cached feed after a job mutation
func (s *JobService) InvalidateActiveJobs(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, activeJobsCacheKey); err != nil {
		log.Printf("Warning: failed to invalidate active jobs cache: %v", err)
	}
}

// WarmActiveJobsCache refreshes the cached feed, used by the cron job
func (s *JobService) WarmActiveJobsCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	jobs, err := s.loadActiveJobs(ctx)
	if err != nil {
		return err
	}
	return s.cache.SetJSON(ctx, activeJobsCacheKey, jobs, activeJobsCacheTTL)
}

// CloseExpiredJobs marks active jobs past their deadline as closed and
// returns how many were closed.
func (s *JobService) CloseExpiredJobs(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Job{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", model.JobStatusActive, time.Now()).
		Update("status", model.JobStatusClosed)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to close expired jobs: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.InvalidateActiveJobs(ctx)
	}
	return result.RowsAffected, nil
}

func (s *JobService) loadActiveJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := s.db.WithContext(ctx).
		Preload("Company").
		Where("status = ?", model.JobStatusActive).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active jobs: %w", err)
	}
	return jobs, nil
}
