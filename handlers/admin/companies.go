package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/services"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/campushire/placement-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles admin operations: company approvals, user
// management, and reports.
type AdminHandler struct {
	db            *gorm.DB
	notifications *services.NotificationService
	reports       *services.ReportService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, notifications *services.NotificationService, reports *services.ReportService) *AdminHandler {
	return &AdminHandler{
		db:            db,
		notifications: notifications,
		reports:       reports,
	}
}

// ListCompanies handles GET /api/v1/admin/companies with a status filter
func (h *AdminHandler) ListCompanies(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&model.Company{})
	if status := c.Query("status"); status != "" {
		switch model.CompanyStatus(status) {
		case model.CompanyStatusPending, model.CompanyStatusApproved, model.CompanyStatusRejected:
			query = query.Where("status = ?", status)
		default:
			return response.BadRequest(c, "Invalid status filter")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count companies")
	}

	var companies []model.Company
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&companies).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch companies")
	}

	return response.Paginated(c, companies, response.CalculatePagination(page, limit, total))
}

// reviewCompany records the admin decision and notifies the company
func (h *AdminHandler) reviewCompany(c *fiber.Ctx, status model.CompanyStatus) error {
	companyID, err := strconv.Atoi(c.Params("id"))
	if err != nil || companyID < 1 {
		return response.BadRequest(c, "Invalid company ID")
	}

	adminID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var company model.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to fetch company")
	}

	if company.Status == status {
		return response.Success(c, company)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         status,
		"reviewed_by_id": adminID,
		"reviewed_at":    now,
	}
	if err := h.db.Model(&company).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update company")
	}
	company.Status = status
	company.ReviewedByID = &adminID
	company.ReviewedAt = &now

	h.notifications.NotifyCompanyReviewed(c.Context(), &company)

	message := "Company approved"
	if status == model.CompanyStatusRejected {
		message = "Company rejected"
	}
	return response.SuccessWithMessage(c, message, company)
}

// ApproveCompany handles POST /api/v1/admin/companies/:id/approve
func (h *AdminHandler) ApproveCompany(c *fiber.Ctx) error {
	return h.reviewCompany(c, model.CompanyStatusApproved)
}

// RejectCompany handles POST /api/v1/admin/companies/:id/reject
func (h *AdminHandler) RejectCompany(c *fiber.Ctx) error {
	return h.reviewCompany(c, model.CompanyStatusRejected)
}
