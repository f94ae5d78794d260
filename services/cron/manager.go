package cron

import (
	"log"
	"time"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/services"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager manages all scheduled jobs for the portal
type CronManager struct {
	cron    *cron.Cron
	db      *gorm.DB
	jobs    *services.JobService
	reports *services.ReportService
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, jobs *services.JobService, reports *services.ReportService) *CronManager {
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:    c,
		db:      db,
		jobs:    jobs,
		reports: reports,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 15 minutes: close jobs whose deadline has passed
	_, err := m.cron.AddFunc("0 */15 * * * *", func() {
		m.logJobStart("close_expired_jobs")
		m.CloseExpiredJobs()
	})
	if err != nil {
		return err
	}

	// Every 5 minutes: keep the active-jobs cache warm
	_, err = m.cron.AddFunc("0 */5 * * * *", func() {
		m.logJobStart("warm_jobs_cache")
		m.WarmJobsCache()
	})
	if err != nil {
		return err
	}

	// Daily at 1 AM: snapshot placement statistics
	_, err = m.cron.AddFunc("0 0 1 * * *", func() {
		m.logJobStart("snapshot_placement_stats")
		m.SnapshotPlacementStats()
	})
	if err != nil {
		return err
	}

	// Daily at 3 AM: purge expired blacklist tokens
	_, err = m.cron.AddFunc("0 0 3 * * *", func() {
		m.logJobStart("cleanup_token_blacklist")
		m.CleanupTokenBlacklist()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))

	cronLog := model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
	}
	m.db.Create(&cronLog)
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)

	now := time.Now()
	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "completed",
			"completed_at": now,
			"message":      message,
		})
}

// logJobError logs a failed cron job run
func (m *CronManager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Job failed: %s - %v", jobName, err)

	now := time.Now()
	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "failed",
			"completed_at": now,
			"error":        err.Error(),
		})
}
