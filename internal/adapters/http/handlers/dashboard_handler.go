package handlers

import (
	"hotel-desk/internal/core/services"
	"hotel-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the front desk statistics
// @Summary Dashboard statistics
// @Description Occupancy, today's check-ins and check-outs, booking trend for the window
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param filter query string false "today, 7days or 30days" default(7days)
// @Success 200 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetDashboardStats(c.UserContext(), c.Query("filter", services.Filter7Days))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Dashboard statistics retrieved successfully", stats)
}
