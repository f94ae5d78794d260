package application

import (
	"errors"
	"strconv"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/services"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/campushire/placement-api/utils/response"
	"github.com/campushire/placement-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ApplicationHandler handles apply and application management requests
type ApplicationHandler struct {
	db         *gorm.DB
	placements *services.PlacementService
	resumes    *services.ResumeService
	validator  *validation.Validator
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(db *gorm.DB, placements *services.PlacementService, resumes *services.ResumeService) *ApplicationHandler {
	return &ApplicationHandler{
		db:         db,
		placements: placements,
		resumes:    resumes,
		validator:  validation.NewValidator(),
	}
}

// ApplyRequest represents an apply request body
type ApplyRequest struct {
	CoverLetter string `json:"cover_letter,omitempty" validate:"omitempty,max=5000"`
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=shortlisted interview selected rejected"`
}

// placementError maps service-layer errors onto HTTP responses. Every
// business failure has a stable error code so clients can branch on it.
func placementError(c *fiber.Ctx, err error) error {
	var ineligible *services.IneligibleError
	var invalidTransition *services.InvalidTransitionError

	switch {
	case errors.Is(err, services.ErrJobNotFound):
		return response.NotFound(c, "Job not found")
	case errors.Is(err, services.ErrStudentNotFound):
		return response.NotFound(c, "Student profile not found")
	case errors.Is(err, services.ErrApplicationNotFound):
		return response.NotFound(c, "Application not found")
	case errors.Is(err, services.ErrJobClosed):
		return response.UnprocessableEntity(c, "This job is no longer accepting applications", "JOB_CLOSED")
	case errors.Is(err, services.ErrAlreadyApplied):
		return response.Conflict(c, "You have already applied to this job")
	case errors.Is(err, services.ErrForbidden):
		return response.Forbidden(c, "You are not allowed to manage this application")
	case errors.As(err, &ineligible):
		return response.UnprocessableEntity(c, ineligible.Message(), "NOT_ELIGIBLE")
	case errors.As(err, &invalidTransition):
		return response.UnprocessableEntity(c, invalidTransition.Error(), "INVALID_TRANSITION")
	default:
		return response.InternalServerError(c, "Failed to process request")
	}
}

// Apply handles POST /api/v1/jobs/:id/apply for students
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	jobID, err := strconv.Atoi(c.Params("id"))
	if err != nil || jobID < 1 {
		return response.BadRequest(c, "Invalid job ID")
	}

	var req ApplyRequest
	// Body is optional
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
		if err := h.validator.ValidateStruct(req); err != nil {
			return response.ValidationError(c, err)
		}
	}

	app, err := h.placements.Apply(c.Context(), userID, uint(jobID), services.ApplyInput{
		CoverLetter: validation.SanitizeString(req.CoverLetter),
	})
	if err != nil {
		return placementError(c, err)
	}

	return response.Created(c, app)
}

// GetApplication handles GET /api/v1/applications/:id. Students see their
// own applications; companies see applications to their jobs; admins see
// everything.
func (h *ApplicationHandler) GetApplication(c *fiber.Ctx) error {
	applicationID, err := strconv.Atoi(c.Params("id"))
	if err != nil || applicationID < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var app model.Application
	if err := h.db.
		Preload("Job").
		Preload("Job.Company").
		Preload("Student").
		First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to fetch application")
	}

	allowed := services.CanManageApplication(user, app.Job.Company.UserID) ||
		(user.Role == model.RoleStudent && app.Student.UserID == user.ID)
	if !allowed {
		return response.Forbidden(c, "You are not allowed to view this application")
	}

	return response.Success(c, app)
}

// DownloadResume handles GET /api/v1/applications/:id/resume. Resumes are
// stored as private objects, so the stored URL is not directly fetchable;
// this returns a short-lived presigned link instead. Same visibility as
// GetApplication.
func (h *ApplicationHandler) DownloadResume(c *fiber.Ctx) error {
	applicationID, err := strconv.Atoi(c.Params("id"))
	if err != nil || applicationID < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var app model.Application
	if err := h.db.
		Preload("Job").
		Preload("Job.Company").
		Preload("Student").
		First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to fetch application")
	}

	allowed := services.CanManageApplication(user, app.Job.Company.UserID) ||
		(user.Role == model.RoleStudent && app.Student.UserID == user.ID)
	if !allowed {
		return response.Forbidden(c, "You are not allowed to view this application")
	}

	if !h.resumes.Enabled() {
		return response.Error(c, fiber.StatusServiceUnavailable, "Resume storage is not configured", "STORAGE_UNAVAILABLE")
	}

	url, err := h.resumes.DownloadURL(c.Context(), app.StudentID)
	if err != nil {
		if errors.Is(err, services.ErrNoResume) {
			return response.NotFound(c, "Student has no resume on file")
		}
		return response.InternalServerError(c, "Failed to generate resume link")
	}

	return response.Success(c, fiber.Map{
		"url":        url,
		"filename":   app.Student.ResumeFilename,
		"expires_in": int(services.ResumeLinkTTL.Seconds()),
	})
}

// UpdateStatus handles PUT /api/v1/applications/:id/status for the owning
// company or an admin.
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	applicationID, err := strconv.Atoi(c.Params("id"))
	if err != nil || applicationID < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	app, err := h.placements.TransitionStatus(c.Context(), uint(applicationID), user, model.ApplicationStatus(req.Status))
	if err != nil {
		return placementError(c, err)
	}

	return response.SuccessWithMessage(c, "Application status updated", app)
}

// ListJobApplications handles GET /api/v1/jobs/:id/applications for the
// owning company or an admin, with an optional status filter.
func (h *ApplicationHandler) ListJobApplications(c *fiber.Ctx) error {
	jobID, err := strconv.Atoi(c.Params("id"))
	if err != nil || jobID < 1 {
		return response.BadRequest(c, "Invalid job ID")
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var job model.Job
	if err := h.db.Preload("Company").First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to fetch job")
	}

	if !services.CanManageApplication(user, job.Company.UserID) {
		return response.Forbidden(c, "You do not own this job")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&model.Application{}).Where("job_id = ?", jobID)
	if status := c.Query("status"); status != "" {
		if !model.ApplicationStatus(status).IsValid() {
			return response.BadRequest(c, "Invalid status filter")
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count applications")
	}

	var apps []model.Application
	if err := query.
		Preload("Student").
		Order("applied_date ASC, id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&apps).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch applications")
	}

	return response.Paginated(c, apps, response.CalculatePagination(page, limit, total))
}
