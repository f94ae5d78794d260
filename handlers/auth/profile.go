package auth

import (
	"github.com/campushire/placement-api/model"
	authutil "github.com/campushire/placement-api/utils/auth"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/campushire/placement-api/utils/response"
	"github.com/campushire/placement-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// ProfileResponse represents the authenticated user with role details
type ProfileResponse struct {
	User    UserResponse          `json:"user"`
	Student *model.StudentProfile `json:"student,omitempty"`
	Company *model.Company        `json:"company,omitempty"`
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	res := ProfileResponse{User: toUserResponse(user)}

	switch user.Role {
	case model.RoleStudent:
		var profile model.StudentProfile
		if err := h.db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			res.Student = &profile
		}
	case model.RoleCompany:
		var company model.Company
		if err := h.db.Where("user_id = ?", user.ID).First(&company).Error; err == nil {
			res.Company = &company
		}
	}

	return response.Success(c, res)
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
}

// UpdateMe handles PUT /api/v1/auth/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
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

	if req.Name != "" {
		user.Name = validation.SanitizeString(req.Name)
	}

	if err := h.db.Save(user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.SuccessWithMessage(c, "Profile updated", toUserResponse(user))
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// ChangePassword handles POST /api/v1/auth/change-password. All existing
// sessions are invalidated afterwards.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := authutil.VerifyPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	if err := authutil.ValidatePassword(req.NewPassword); err != nil {
		return response.BadRequest(c, err.Error())
	}

	hashedPassword, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user.PasswordHash = hashedPassword
	if err := h.db.Save(user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}

	if err := h.blacklistService.RevokeAllUserTokens(c.Context(), user.ID); err != nil {
		return response.InternalServerError(c, "Failed to invalidate sessions")
	}

	return response.SuccessWithMessage(c, "Password changed. Please log in again.", nil)
}
