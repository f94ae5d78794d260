package company

import (
	"errors"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/campushire/placement-api/utils/response"
	"github.com/campushire/placement-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CompanyHandler handles company profile requests
type CompanyHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// UpdateCompanyRequest represents a company profile update
type UpdateCompanyRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
	Industry    string `json:"industry,omitempty" validate:"omitempty,max=100"`
}

// GetMyCompany handles GET /api/v1/companies/me
func (h *CompanyHandler) GetMyCompany(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var company model.Company
	if err := h.db.Where("user_id = ?", userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Company profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch company")
	}

	return response.Success(c, company)
}

// UpdateMyCompany handles PUT /api/v1/companies/me. Approval status is
// managed by admins and cannot be changed here.
func (h *CompanyHandler) UpdateMyCompany(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var company model.Company
	if err := h.db.Where("user_id = ?", userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Company profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch company")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = validation.SanitizeString(req.Name)
	}
	if req.Description != "" {
		updates["description"] = validation.SanitizeString(req.Description)
	}
	if req.Website != "" {
		updates["website"] = validation.SanitizeString(req.Website)
	}
	if req.Industry != "" {
		updates["industry"] = validation.SanitizeString(req.Industry)
	}

	if len(updates) == 0 {
		return response.Success(c, company)
	}

	if err := h.db.Model(&company).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update company")
	}

	return response.SuccessWithMessage(c, "Company updated", company)
}
