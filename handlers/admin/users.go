package admin

import (
	"errors"
	"strconv"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/campushire/placement-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListUsers handles GET /api/v1/admin/users with an optional role filter
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&model.User{})
	if role := c.Query("role"); role != "" {
		switch role {
		case model.RoleStudent, model.RoleCompany, model.RoleAdmin:
			query = query.Where("role = ?", role)
		default:
			return response.BadRequest(c, "Invalid role filter")
		}
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("email ILIKE ? OR name ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count users")
	}

	var users []model.User
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	return response.Paginated(c, users, response.CalculatePagination(page, limit, total))
}

// GetUser handles GET /api/v1/admin/users/:id with role details preloaded
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var user model.User
	if err := h.db.
		Preload("StudentProfile").
		Preload("Company").
		First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	return response.Success(c, user)
}

// DeleteUser handles DELETE /api/v1/admin/users/:id. Admins cannot
// delete themselves; role profiles cascade via soft delete.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	adminID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	if uint(userID) == adminID {
		return response.BadRequest(c, "You cannot delete your own account")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	if err := h.db.Delete(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.SuccessWithMessage(c, "User deleted", nil)
}
