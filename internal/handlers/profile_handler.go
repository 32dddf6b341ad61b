package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get returns the caller's profile, or the one named by ?userId= for admins.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	caller, ok := auth.IdentityFrom(c.UserContext())
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	p, err := h.profiles.Get(c.UserContext(), caller, c.Query("userId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	caller, ok := auth.IdentityFrom(c.UserContext())
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	p, err := h.profiles.Upsert(c.UserContext(), caller, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}
