package handler

import (
	"it-inventory/internal/middleware"
	"it-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	l           logrus.FieldLogger
	dashService service.DashboardService
}

func NewDashboardHandler(l logrus.FieldLogger, dashService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{l: l, dashService: dashService}
}

// GetDashboard returns the statistics visible to the caller
// GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.dashService.Get(middleware.CurrentViewer(c))
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(d)
}
