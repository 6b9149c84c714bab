package handlers

import (
	"clubhub-backend/internal/core/services"
	"clubhub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MonitorHandler handles the admin monitoring endpoints
type MonitorHandler struct {
	monitorService *services.MonitorService
}

// NewMonitorHandler creates a new monitor handler
func NewMonitorHandler(monitorService *services.MonitorService) *MonitorHandler {
	return &MonitorHandler{monitorService: monitorService}
}

// GetOverview returns platform-wide counters
// @Summary Admin overview
// @Tags Monitor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/monitor/overview [get]
func (h *MonitorHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.monitorService.GetOverview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to gather overview")
	}

	return response.Success(c, fiber.Map{"overview": overview})
}
