package student

import (
	"errors"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/services"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/campushire/placement-api/utils/response"
	"github.com/campushire/placement-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// StudentHandler handles student profile and application requests
type StudentHandler struct {
	db         *gorm.DB
	placements *services.PlacementService
	resumes    *services.ResumeService
	validator  *validation.Validator
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(db *gorm.DB, placements *services.PlacementService, resumes *services.ResumeService) *StudentHandler {
	return &StudentHandler{
		db:         db,
		placements: placements,
		resumes:    resumes,
		validator:  validation.NewValidator(),
	}
}

// UpdateProfileRequest represents a student profile update
type UpdateProfileRequest struct {
	Branch   string   `json:"branch,omitempty" validate:"omitempty,min=2,max=50"`
	CGPA     *float64 `json:"cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	Backlogs *int     `json:"backlogs,omitempty" validate:"omitempty,gte=0"`
	Skills   []string `json:"skills,omitempty"`
	RollNo   string   `json:"roll_no,omitempty"`
	Phone    string   `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
}

// GetMyProfile handles GET /api/v1/students/me
func (h *StudentHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var profile model.StudentProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Student profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch profile")
	}

	return response.Success(c, profile)
}

// UpdateMyProfile handles PUT /api/v1/students/me
func (h *StudentHandler) UpdateMyProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var profile model.StudentProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Student profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch profile")
	}

	updates := map[string]interface{}{}
	if req.Branch != "" {
		updates["branch"] = validation.SanitizeString(req.Branch)
	}
	if req.CGPA != nil {
		updates["cgpa"] = *req.CGPA
	}
	if req.Backlogs != nil {
		updates["backlogs"] = *req.Backlogs
	}
	if req.Skills != nil {
		updates["skills"] = pq.StringArray(req.Skills)
	}
	if req.RollNo != "" {
		updates["roll_no"] = validation.SanitizeString(req.RollNo)
	}
	if req.Phone != "" {
		updates["phone"] = validation.SanitizeString(req.Phone)
	}

	if len(updates) == 0 {
		return response.Success(c, profile)
	}

	if err := h.db.Model(&profile).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.SuccessWithMessage(c, "Profile updated", profile)
}

// UploadResume handles POST /api/v1/students/me/resume
func (h *StudentHandler) UploadResume(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if !h.resumes.Enabled() {
		return response.Error(c, fiber.StatusServiceUnavailable, "Resume storage is not configured", "STORAGE_UNAVAILABLE")
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return response.BadRequest(c, "Resume file is required")
	}

	profile, err := h.resumes.Upload(c.Context(), userID, file)
	if err != nil {
		var invalid *services.ErrInvalidResume
		switch {
		case errors.As(err, &invalid):
			return response.UnprocessableEntity(c, invalid.Reason, "INVALID_RESUME")
		case errors.Is(err, services.ErrStudentNotFound):
			return response.NotFound(c, "Student profile not found")
		default:
			return response.InternalServerError(c, "Failed to upload resume")
		}
	}

	return response.SuccessWithMessage(c, "Resume uploaded", fiber.Map{
		"filename":    profile.ResumeFilename,
		"url":         profile.ResumeURL,
		"size":        profile.ResumeSize,
		"uploaded_at": profile.ResumeUploadedAt,
	})
}

// MyApplications handles GET /api/v1/students/me/applications. The list
// is computed from the applications table on every read.
func (h *StudentHandler) MyApplications(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	views, err := h.placements.StudentApplications(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			return response.NotFound(c, "Student profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch applications")
	}

	return response.Success(c, views)
}
