package handlers

import (
	"flexfit-api/internal/core/services"
	"flexfit-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles admin dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the admin dashboard figures
// @Summary Dashboard stats
// @Description Member counts, active subscriptions, monthly revenue, growth
// and recent members
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get dashboard stats")
	}

	return response.Success(c, "Stats retrieved successfully", fiber.Map{
		"stats": stats,
	})
}
