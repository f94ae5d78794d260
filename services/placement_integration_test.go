package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/services/storage"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// placementTestContext holds all resources needed for the placement
// integration test: the database plus seeded companies, students and jobs
// the subtests run against.
type placementTestContext struct {
	db *gorm.DB

	placements *PlacementService
	relaxed    *PlacementService

	companyUser      *model.User
	otherCompanyUser *model.User
	company          *model.Company

	csStudentUser  *model.User
	csStudent      *model.StudentProfile
	meStudentUser  *model.User
	lowStudentUser *model.User

	openJob     *model.Job
	closedJob   *model.Job
	expiredJob  *model.Job
	openAllJob  *model.Job
	adminUser   *model.User

	startTime time.Time
}

// setupPlacementTest connects to the integration database and seeds a
// minimal placement scenario. Emails get a unique suffix so reruns never
// collide with leftover rows.
func setupPlacementTest(t *testing.T) (*placementTestContext, error) {
	ctx := &placementTestContext{startTime: time.Now()}

	requiredEnvVars := []string{
		"DB_HOST",
		"DB_USER_NAME",
		"DB_PASSWORD",
		"DB_NAME",
		"DB_PORT",
	}

	missingVars := []string{}
	for _, v := range requiredEnvVars {
		if os.Getenv(v) == "" {
			missingVars = append(missingVars, v)
		}
	}
	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER_NAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		getEnvOrDefault("DB_SSL_MODE", "disable"),
	)

	// TranslateError must match the production connection: the duplicate
	// apply path depends on unique violations surfacing as
	// gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	ctx.db = db
	log.Println("✓ Database connection established")

	if err := db.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.Company{},
		&model.Job{},
		&model.Application{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	ctx.placements = NewPlacementService(db, nil, true)
	ctx.relaxed = NewPlacementService(db, nil, false)

	suffix := uuid.New().String()[:8]

	newUser := func(role, label string) (*model.User, error) {
		user := &model.User{
			Email:        fmt.Sprintf("%s_%s@placement-test.edu", label, suffix),
			PasswordHash: "integration-test-hash",
			Name:         fmt.Sprintf("Test %s %s", label, suffix),
			Role:         role,
		}
		if err := db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to create %s user: %w", label, err)
		}
		return user, nil
	}

	if ctx.companyUser, err = newUser(model.RoleCompany, "company"); err != nil {
		return nil, err
	}
	if ctx.otherCompanyUser, err = newUser(model.RoleCompany, "rival"); err != nil {
		return nil, err
	}
	if ctx.adminUser, err = newUser(model.RoleAdmin, "admin"); err != nil {
		return nil, err
	}
	if ctx.csStudentUser, err = newUser(model.RoleStudent, "cs_student"); err != nil {
		return nil, err
	}
	if ctx.meStudentUser, err = newUser(model.RoleStudent, "me_student"); err != nil {
		return nil, err
	}
	if ctx.lowStudentUser, err = newUser(model.RoleStudent, "low_student"); err != nil {
		return nil, err
	}

	ctx.company = &model.Company{
		UserID: ctx.companyUser.ID,
		Name:   fmt.Sprintf("Acme Recruiting %s", suffix),
		Status: model.CompanyStatusApproved,
	}
	if err := db.Create(ctx.company).Error; err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	rival := &model.Company{
		UserID: ctx.otherCompanyUser.ID,
		Name:   fmt.Sprintf("Rival Recruiting %s", suffix),
		Status: model.CompanyStatusApproved,
	}
	if err := db.Create(rival).Error; err != nil {
		return nil, fmt.Errorf("failed to create rival company: %w", err)
	}

	ctx.csStudent = &model.StudentProfile{
		UserID:         ctx.csStudentUser.ID,
		Branch:         "CS",
		CGPA:           8.2,
		ResumeFilename: "cs_resume.pdf",
		ResumeKey:      fmt.Sprintf("resumes/test/%s.pdf", suffix),
	}
	if err := db.Create(ctx.csStudent).Error; err != nil {
		return nil, fmt.Errorf("failed to create cs student: %w", err)
	}
	if err := db.Create(&model.StudentProfile{
		UserID: ctx.meStudentUser.ID,
		Branch: "ME",
		CGPA:   8.5,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to create me student: %w", err)
	}
	if err := db.Create(&model.StudentProfile{
		UserID: ctx.lowStudentUser.ID,
		Branch: "CS",
		CGPA:   6.4,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to create low-cgpa student: %w", err)
	}

	pastDeadline := time.Now().Add(-24 * time.Hour)
	ctx.openJob = &model.Job{
		CompanyID:        ctx.company.ID,
		Title:            "Backend Engineer",
		EligibleBranches: pq.StringArray{"CS", "IT"},
		MinCGPA:          7.0,
		Status:           model.JobStatusActive,
	}
	ctx.closedJob = &model.Job{
		CompanyID: ctx.company.ID,
		Title:     "Closed Role",
		Status:    model.JobStatusClosed,
	}
	ctx.expiredJob = &model.Job{
		CompanyID: ctx.company.ID,
		Title:     "Expired Role",
		Deadline:  &pastDeadline,
		Status:    model.JobStatusActive,
	}
	ctx.openAllJob = &model.Job{
		CompanyID: ctx.company.ID,
		Title:     "Open To All",
		Status:    model.JobStatusActive,
	}
	for _, job := range []*model.Job{ctx.openJob, ctx.closedJob, ctx.expiredJob, ctx.openAllJob} {
		if err := db.Create(job).Error; err != nil {
			return nil, fmt.Errorf("failed to create job %q: %w", job.Title, err)
		}
	}

	log.Printf("✓ Test data seeded (%.2fs)", time.Since(ctx.startTime).Seconds())
	return ctx, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// cleanupPlacementTest hard-deletes the seeded rows. Applications and
// profiles cascade from their users.
func cleanupPlacementTest(ctx *placementTestContext) {
	log.Println("Cleaning up placement test data...")
	users := []*model.User{
		ctx.companyUser, ctx.otherCompanyUser, ctx.adminUser,
		ctx.csStudentUser, ctx.meStudentUser, ctx.lowStudentUser,
	}
	for _, u := range users {
		if u == nil {
			continue
		}
		if err := ctx.db.Unscoped().Delete(u).Error; err != nil {
			log.Printf("  Warning: failed to delete user %d: %v", u.ID, err)
		}
	}
	log.Println("✓ Cleanup complete")
}

// TestPlacementLifecycleIntegration drives the apply-and-transition flow
// against a real Postgres database: ordered precondition failures, the
// constraint-backed duplicate guard under concurrency, the deadline
// policy both ways, the student projection ordering, and the status
// state machine with ownership checks.
func TestPlacementLifecycleIntegration(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	testCtx, err := setupPlacementTest(t)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanupPlacementTest(testCtx)

	bg := context.Background()
	var firstApplication *model.Application

	t.Run("ApplySucceeds", func(t *testing.T) {
		app, err := testCtx.placements.Apply(bg, testCtx.csStudentUser.ID, testCtx.openJob.ID, ApplyInput{CoverLetter: "Looking forward to it"})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if app.Status != model.StatusApplied {
			t.Errorf("new application status = %q, want %q", app.Status, model.StatusApplied)
		}
		if app.ResumeFilename != testCtx.csStudent.ResumeFilename {
			t.Errorf("resume snapshot = %q, want %q", app.ResumeFilename, testCtx.csStudent.ResumeFilename)
		}
		firstApplication = app
	})

	t.Run("ApplyPreconditionOrder", func(t *testing.T) {
		if _, err := testCtx.placements.Apply(bg, testCtx.csStudentUser.ID, 99999999, ApplyInput{}); !errors.Is(err, ErrJobNotFound) {
			t.Errorf("unknown job: error = %v, want ErrJobNotFound", err)
		}
		// A company user has no student profile.
		if _, err := testCtx.placements.Apply(bg, testCtx.companyUser.ID, testCtx.openJob.ID, ApplyInput{}); !errors.Is(err, ErrStudentNotFound) {
			t.Errorf("no profile: error = %v, want ErrStudentNotFound", err)
		}
		if _, err := testCtx.placements.Apply(bg, testCtx.csStudentUser.ID, testCtx.closedJob.ID, ApplyInput{}); !errors.Is(err, ErrJobClosed) {
			t.Errorf("closed job: error = %v, want ErrJobClosed", err)
		}
		// The closed-job check fires before the student lookup, so even a
		// company user gets ErrJobClosed here.
		if _, err := testCtx.placements.Apply(bg, testCtx.companyUser.ID, testCtx.closedJob.ID, ApplyInput{}); !errors.Is(err, ErrJobClosed) {
			t.Errorf("closed job before student check: error = %v, want ErrJobClosed", err)
		}
	})

	t.Run("ApplyIneligible", func(t *testing.T) {
		var ineligible *IneligibleError

		_, err := testCtx.placements.Apply(bg, testCtx.meStudentUser.ID, testCtx.openJob.ID, ApplyInput{})
		if !errors.As(err, &ineligible) || ineligible.Reason != ReasonBranch {
			t.Errorf("wrong branch: error = %v, want IneligibleError{branch}", err)
		}

		_, err = testCtx.placements.Apply(bg, testCtx.lowStudentUser.ID, testCtx.openJob.ID, ApplyInput{})
		if !errors.As(err, &ineligible) || ineligible.Reason != ReasonCGPA {
			t.Errorf("low cgpa: error = %v, want IneligibleError{cgpa}", err)
		}
	})

	t.Run("DeadlinePolicy", func(t *testing.T) {
		var ineligible *IneligibleError
		_, err := testCtx.placements.Apply(bg, testCtx.csStudentUser.ID, testCtx.expiredJob.ID, ApplyInput{})
		if !errors.As(err, &ineligible) || ineligible.Reason != ReasonDeadline {
			t.Fatalf("enforced: error = %v, want IneligibleError{deadline}", err)
		}

		// With enforcement off the same apply goes through.
		app, err := testCtx.relaxed.Apply(bg, testCtx.csStudentUser.ID, testCtx.expiredJob.ID, ApplyInput{})
		if err != nil {
			t.Fatalf("relaxed Apply() error = %v", err)
		}
		if app.Status != model.StatusApplied {
			t.Errorf("relaxed application status = %q, want %q", app.Status, model.StatusApplied)
		}
	})

	t.Run("DuplicateApply", func(t *testing.T) {
		if _, err := testCtx.placements.Apply(bg, testCtx.csStudentUser.ID, testCtx.openJob.ID, ApplyInput{}); !errors.Is(err, ErrAlreadyApplied) {
			t.Errorf("second apply: error = %v, want ErrAlreadyApplied", err)
		}
	})

	t.Run("ConcurrentApplyOneWinner", func(t *testing.T) {
		const attempts = 8

		var wg sync.WaitGroup
		start := make(chan struct{})
		results := make([]error, attempts)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				_, results[i] = testCtx.placements.Apply(bg, testCtx.csStudentUser.ID, testCtx.openAllJob.ID, ApplyInput{})
			}(i)
		}
		close(start)
		wg.Wait()

		successes := 0
		for i, err := range results {
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyApplied):
			default:
				t.Errorf("attempt %d: unexpected error %v", i, err)
			}
		}
		if successes != 1 {
			t.Errorf("concurrent applies: %d succeeded, want exactly 1", successes)
		}

		var count int64
		if err := testCtx.db.Model(&model.Application{}).
			Where("student_id = ? AND job_id = ?", testCtx.csStudent.ID, testCtx.openAllJob.ID).
			Count(&count).Error; err != nil {
			t.Fatalf("count applications: %v", err)
		}
		if count != 1 {
			t.Errorf("applications stored = %d, want 1", count)
		}
	})

	t.Run("StudentApplicationsOrdering", func(t *testing.T) {
		views, err := testCtx.placements.StudentApplications(bg, testCtx.csStudentUser.ID)
		if err != nil {
			t.Fatalf("StudentApplications() error = %v", err)
		}
		// openJob, expiredJob (relaxed) and openAllJob applies above.
		if len(views) != 3 {
			t.Fatalf("projection rows = %d, want 3", len(views))
		}
		for i := 1; i < len(views); i++ {
			prev, cur := views[i-1], views[i]
			if cur.AppliedDate.Before(prev.AppliedDate) {
				t.Errorf("row %d applied before row %d", i, i-1)
			}
			if cur.AppliedDate.Equal(prev.AppliedDate) && cur.ApplicationID < prev.ApplicationID {
				t.Errorf("row %d breaks the id tiebreak", i)
			}
		}
		if views[0].JobTitle != testCtx.openJob.Title {
			t.Errorf("first row job = %q, want %q", views[0].JobTitle, testCtx.openJob.Title)
		}
		if views[0].CompanyName != testCtx.company.Name {
			t.Errorf("first row company = %q, want %q", views[0].CompanyName, testCtx.company.Name)
		}
	})

	t.Run("TransitionStatus", func(t *testing.T) {
		if firstApplication == nil {
			t.Skip("apply subtest did not run")
		}

		if _, err := testCtx.placements.TransitionStatus(bg, firstApplication.ID, testCtx.otherCompanyUser, model.StatusShortlisted); !errors.Is(err, ErrForbidden) {
			t.Errorf("rival company: error = %v, want ErrForbidden", err)
		}

		var invalid *InvalidTransitionError
		_, err := testCtx.placements.TransitionStatus(bg, firstApplication.ID, testCtx.companyUser, model.StatusSelected)
		if !errors.As(err, &invalid) {
			t.Errorf("skip to selected: error = %v, want InvalidTransitionError", err)
		}

		app, err := testCtx.placements.TransitionStatus(bg, firstApplication.ID, testCtx.companyUser, model.StatusShortlisted)
		if err != nil {
			t.Fatalf("owner shortlist: error = %v", err)
		}
		if app.Status != model.StatusShortlisted {
			t.Errorf("status after transition = %q, want %q", app.Status, model.StatusShortlisted)
		}

		// Admins can manage any application.
		if _, err := testCtx.placements.TransitionStatus(bg, firstApplication.ID, testCtx.adminUser, model.StatusRejected); err != nil {
			t.Fatalf("admin reject: error = %v", err)
		}

		// Rejected is terminal.
		_, err = testCtx.placements.TransitionStatus(bg, firstApplication.ID, testCtx.companyUser, model.StatusInterview)
		if !errors.As(err, &invalid) {
			t.Errorf("transition out of rejected: error = %v, want InvalidTransitionError", err)
		}

		views, err := testCtx.placements.StudentApplications(bg, testCtx.csStudentUser.ID)
		if err != nil {
			t.Fatalf("StudentApplications() error = %v", err)
		}
		if views[0].Status != model.StatusRejected {
			t.Errorf("projection status = %q, want %q", views[0].Status, model.StatusRejected)
		}
	})

	t.Run("ResumeDownloadURL", func(t *testing.T) {
		// Presigning is a local computation, so a throwaway credential
		// pair is enough to exercise the link path without network access.
		store, err := storage.NewClient(storage.Config{
			AccessKey: "integration-test-key",
			SecretKey: "integration-test-secret",
			Bucket:    "placement-test",
			Region:    "us-east-1",
			Endpoint:  "s3.amazonaws.com",
		})
		if err != nil {
			t.Fatalf("storage.NewClient() error = %v", err)
		}
		resumes := NewResumeService(testCtx.db, store)

		url, err := resumes.DownloadURL(bg, testCtx.csStudent.ID)
		if err != nil {
			t.Fatalf("DownloadURL() error = %v", err)
		}
		if !strings.Contains(url, testCtx.csStudent.ResumeKey) {
			t.Errorf("presigned url %q does not reference key %q", url, testCtx.csStudent.ResumeKey)
		}

		// The ME student never uploaded a resume.
		var meStudent model.StudentProfile
		if err := testCtx.db.Where("user_id = ?", testCtx.meStudentUser.ID).First(&meStudent).Error; err != nil {
			t.Fatalf("fetch me student: %v", err)
		}
		if _, err := resumes.DownloadURL(bg, meStudent.ID); !errors.Is(err, ErrNoResume) {
			t.Errorf("no resume on file: error = %v, want ErrNoResume", err)
		}
	})

	log.Printf("✓ Placement lifecycle integration test complete (%.2fs)", time.Since(testCtx.startTime).Seconds())
}
