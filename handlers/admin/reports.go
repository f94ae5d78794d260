package admin

import (
	"strconv"

	"github.com/campushire/placement-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// FunnelReport handles GET /api/v1/admin/reports/funnel
func (h *AdminHandler) FunnelReport(c *fiber.Ctx) error {
	report, err := h.reports.Funnel(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute funnel report")
	}
	return response.Success(c, report)
}

// BranchReport handles GET /api/v1/admin/reports/branches
func (h *AdminHandler) BranchReport(c *fiber.Ctx) error {
	rows, err := h.reports.ByBranch(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute branch report")
	}
	return response.Success(c, rows)
}

// CompanyReport handles GET /api/v1/admin/reports/companies
func (h *AdminHandler) CompanyReport(c *fiber.Ctx) error {
	rows, err := h.reports.ByCompany(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute company report")
	}
	return response.Success(c, rows)
}

// TrendReport handles GET /api/v1/admin/reports/trend?days=30
func (h *AdminHandler) TrendReport(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}

	stats, err := h.reports.Trend(c.Context(), days)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch placement trend")
	}
	return response.Success(c, stats)
}
