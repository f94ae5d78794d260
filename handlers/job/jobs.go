package job

import (
	"errors"
	"strconv"
	"time"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/services"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/campushire/placement-api/utils/response"
	"github.com/campushire/placement-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// JobHandler handles job posting and browsing requests
type JobHandler struct {
	db         *gorm.DB
	jobs       *services.JobService
	placements *services.PlacementService
	validator  *validation.Validator
}

// NewJobHandler creates a new job handler
func NewJobHandler(db *gorm.DB, jobs *services.JobService, placements *services.PlacementService) *JobHandler {
	return &JobHandler{
		db:         db,
		jobs:       jobs,
		placements: placements,
		validator:  validation.NewValidator(),
	}
}

// CreateJobRequest represents a job creation request
type CreateJobRequest struct {
	Title            string   `json:"title" validate:"required,min=3,max=255"`
	Description      string   `json:"description,omitempty" validate:"omitempty,max=10000"`
	Location         string   `json:"location,omitempty" validate:"omitempty,max=255"`
	Salary           string   `json:"salary,omitempty" validate:"omitempty,max=100"`
	JobType          string   `json:"job_type,omitempty" validate:"omitempty,oneof=full_time part_time internship"`
	EligibleBranches []string `json:"eligible_branches,omitempty"`
	MinCGPA          float64  `json:"min_cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	Deadline         *string  `json:"deadline,omitempty"` // RFC3339
}

// UpdateJobRequest represents a job update request
type UpdateJobRequest struct {
	Title            string   `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description      *string  `json:"description,omitempty" validate:"omitempty,max=10000"`
	Location         *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Salary           *string  `json:"salary,omitempty" validate:"omitempty,max=100"`
	JobType          string   `json:"job_type,omitempty" validate:"omitempty,oneof=full_time part_time internship"`
	EligibleBranches []string `json:"eligible_branches,omitempty"`
	MinCGPA          *float64 `json:"min_cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	Deadline         *string  `json:"deadline,omitempty"`
}

// approvedCompany loads the caller's company and verifies it has been
// approved by an admin. Unapproved companies cannot manage jobs.
func (h *JobHandler) approvedCompany(c *fiber.Ctx) (*model.Company, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, response.Unauthorized(c, "Not authenticated")
	}

	var company model.Company
	if err := h.db.Where("user_id = ?", userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound(c, "Company profile not found")
		}
		return nil, response.InternalServerError(c, "Failed to fetch company")
	}

	if company.Status != model.CompanyStatusApproved {
		return nil, response.Forbidden(c, "Company is not approved yet")
	}

	return &company, nil
}

func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListJobs handles GET /api/v1/jobs with filters and pagination
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	companyID, _ := strconv.Atoi(c.Query("company_id", "0"))

	opts := services.ListJobsOptions{
		Search:    c.Query("search"),
		Location:  c.Query("location"),
		JobType:   c.Query("job_type"),
		CompanyID: uint(companyID),
		Status:    c.Query("status", string(model.JobStatusActive)),
		Page:      page,
		Limit:     limit,
	}

	jobs, total, err := h.jobs.ListJobs(c.Context(), opts)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch jobs")
	}

	return response.Paginated(c, jobs, response.CalculatePagination(page, limit, total))
}

// ActiveJobs handles GET /api/v1/jobs/active, the cached open-job feed
func (h *JobHandler) ActiveJobs(c *fiber.Ctx) error {
	jobs, err := h.jobs.ActiveJobs(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch jobs")
	}
	return response.Success(c, jobs)
}

// eligibleJobView is a job plus whether the student already applied
type eligibleJobView struct {
	model.Job
	HasApplied bool `json:"has_applied"`
}

// EligibleJobs handles GET /api/v1/jobs/eligible. It filters the active
// feed down to the jobs the authenticated student may apply to.
func (h *JobHandler) EligibleJobs(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var student model.StudentProfile
	if err := h.db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Student profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch student profile")
	}

	jobs, err := h.jobs.ActiveJobs(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch jobs")
	}

	var appliedJobIDs []uint
	if err := h.db.Model(&model.Application{}).
		Where("student_id = ?", student.ID).
		Pluck("job_id", &appliedJobIDs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch applications")
	}
	applied := make(map[uint]bool, len(appliedJobIDs))
	for _, id := range appliedJobIDs {
		applied[id] = true
	}

	// Deadline-passed jobs stay in the cached active feed until the
	// closing cron runs; filter them here so the feed never lists a job
	// whose apply would be refused.
	now := time.Now()
	views := make([]eligibleJobView, 0, len(jobs))
	for i := range jobs {
		if !h.placements.JobAcceptsApplications(&jobs[i], now) {
			continue
		}
		if services.IsEligible(&student, &jobs[i]) {
			views = append(views, eligibleJobView{
				Job:        jobs[i],
				HasApplied: applied[jobs[i].ID],
			})
		}
	}

	return response.Success(c, views)
}

// GetJob handles GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := strconv.Atoi(c.Params("id"))
	if err != nil || jobID < 1 {
		return response.BadRequest(c, "Invalid job ID")
	}

	var job model.Job
	if err := h.db.Preload("Company").First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to fetch job")
	}

	return response.Success(c, job)
}

// CreateJob handles POST /api/v1/jobs for approved companies
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	company, err := h.approvedCompany(c)
	if company == nil {
		return err
	}

	var req CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return response.BadRequest(c, "Deadline must be an RFC3339 timestamp")
	}

	if req.JobType == "" {
		req.JobType = model.JobTypeFullTime
	}

	job := model.Job{
		CompanyID:        company.ID,
		Title:            validation.SanitizeString(req.Title),
		Description:      validation.SanitizeString(req.Description),
		Location:         validation.SanitizeString(req.Location),
		Salary:           validation.SanitizeString(req.Salary),
		JobType:          req.JobType,
		EligibleBranches: pq.StringArray(req.EligibleBranches),
		MinCGPA:          req.MinCGPA,
		Deadline:         deadline,
		Status:           model.JobStatusActive,
	}

	if err := h.db.Create(&job).Error; err != nil {
		return response.InternalServerError(c, "Failed to create job")
	}

	h.jobs.InvalidateActiveJobs(c.Context())

	return response.Created(c, job)
}

// ownedJob loads the job and checks the caller's company owns it.
// Admins pass the ownership check for any job.
func (h *JobHandler) ownedJob(c *fiber.Ctx) (*model.Job, error) {
	jobID, err := strconv.Atoi(c.Params("id"))
	if err != nil || jobID < 1 {
		return nil, response.BadRequest(c, "Invalid job ID")
	}

	var job model.Job
	if err := h.db.Preload("Company").First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound(c, "Job not found")
		}
		return nil, response.InternalServerError(c, "Failed to fetch job")
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		return nil, response.Unauthorized(c, "Not authenticated")
	}

	if !services.CanManageApplication(user, job.Company.UserID) {
		return nil, response.Forbidden(c, "You do not own this job")
	}

	return &job, nil
}

// UpdateJob handles PUT /api/v1/jobs/:id
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	job, err := h.ownedJob(c)
	if job == nil {
		return err
	}

	var req UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = validation.SanitizeString(req.Title)
	}
	if req.Description != nil {
		updates["description"] = validation.SanitizeString(*req.Description)
	}
	if req.Location != nil {
		updates["location"] = validation.SanitizeString(*req.Location)
	}
	if req.Salary != nil {
		updates["salary"] = validation.SanitizeString(*req.Salary)
	}
	if req.JobType != "" {
		updates["job_type"] = req.JobType
	}
	if req.EligibleBranches != nil {
		updates["eligible_branches"] = pq.StringArray(req.EligibleBranches)
	}
	if req.MinCGPA != nil {
		updates["min_cgpa"] = *req.MinCGPA
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(req.Deadline)
		if err != nil {
			return response.BadRequest(c, "Deadline must be an RFC3339 timestamp")
		}
		updates["deadline"] = deadline
	}

	if len(updates) == 0 {
		return response.Success(c, job)
	}

	if err := h.db.Model(job).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update job")
	}

	h.jobs.InvalidateActiveJobs(c.Context())

	return response.SuccessWithMessage(c, "Job updated", job)
}

// CloseJob handles POST /api/v1/jobs/:id/close. Closing is idempotent.
func (h *JobHandler) CloseJob(c *fiber.Ctx) error {
	job, err := h.ownedJob(c)
	if job == nil {
		return err
	}

	if job.Status == model.JobStatusClosed {
		return response.Success(c, job)
	}

	if err := h.db.Model(job).Update("status", model.JobStatusClosed).Error; err != nil {
		return response.InternalServerError(c, "Failed to close job")
	}
	job.Status = model.JobStatusClosed

	h.jobs.InvalidateActiveJobs(c.Context())

	return response.SuccessWithMessage(c, "Job closed", job)
}
