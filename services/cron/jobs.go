package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/campushire/placement-api/model"
)

// CloseExpiredJobs marks active jobs past their deadline as closed.
// Runs every 15 minutes so a closed deadline is visible quickly even
// when deadline enforcement at apply-time is disabled.
func (m *CronManager) CloseExpiredJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	jobName := "close_expired_jobs"

	closed, err := m.jobs.CloseExpiredJobs(ctx)
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Closed %d expired jobs", closed))
}

// WarmJobsCache refreshes the Redis feed of active jobs
func (m *CronManager) WarmJobsCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	jobName := "warm_jobs_cache"

	if err := m.jobs.WarmActiveJobsCache(ctx); err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, "Active jobs cache refreshed")
}

// SnapshotPlacementStats stores today's aggregate funnel numbers
func (m *CronManager) SnapshotPlacementStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "snapshot_placement_stats"

	if err := m.reports.SnapshotDaily(ctx); err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, "Placement statistics snapshot saved")
}

// CleanupTokenBlacklist removes blacklist entries whose tokens have
// expired anyway.
func (m *CronManager) CleanupTokenBlacklist() {
	jobName := "cleanup_token_blacklist"

	result := m.db.Where("expires_at < ?", time.Now()).Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired blacklist entries", result.RowsAffected))
}
