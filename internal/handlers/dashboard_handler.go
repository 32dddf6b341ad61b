package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/services"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
	seed      *services.SeedService
}

func NewDashboardHandler(dashboard *services.DashboardService, seed *services.SeedService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, seed: seed}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) Charts(c *fiber.Ctx) error {
	charts, err := h.dashboard.Charts(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(charts)
}

func (h *DashboardHandler) Activities(c *fiber.Ctx) error {
	acts, err := h.dashboard.Activities(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(acts)
}

func (h *DashboardHandler) Seed(c *fiber.Ctx) error {
	res, err := h.seed.Seed(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

func (h *DashboardHandler) SeedStatus(c *fiber.Ctx) error {
	status, err := h.seed.Status(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(status)
}
