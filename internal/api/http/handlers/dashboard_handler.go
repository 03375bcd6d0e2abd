package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/process-tracker/internal/api/dto"
	"github.com/spec-kit/process-tracker/internal/service"
)

// DashboardHandler serves the KPI summary.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary GET /dashboard.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		GeneratedAt:           summary.GeneratedAt,
		OpenTickets:           summary.OpenTickets,
		InProgressTickets:     summary.InProgressTickets,
		OverdueTickets:        summary.OverdueTickets,
		DueTodayTickets:       summary.DueTodayTickets,
		CriticalTickets:       summary.CriticalTickets,
		AverageResolutionDays: summary.AverageResolutionDays,
		RenewalWithin3Months:  summary.RenewalWithin3Months,
		Renewal3To6Months:     summary.Renewal3To6Months,
		Renewal6To12Months:    summary.Renewal6To12Months,
	}})
}
