package handler

import (
	"strconv"

	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultMovementDays = 7
	maxMovementDays     = 366
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns per-day inbound and outbound totals for charts.
// Query params: days (default 7, at most 366)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days := movementDays(c.Query("days"))

	data, err := h.service.GetStockMovement(c.UserContext(), days)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func movementDays(raw string) int {
	days, err := strconv.Atoi(raw)
	switch {
	case err != nil || days <= 0:
		return defaultMovementDays
	case days > maxMovementDays:
		return maxMovementDays
	}
	return days
}
