package middleware

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

// RequireRole admits callers holding one of roles. The role is checked in
// this order:
// 1. Config-based admin emails (always admin)
// 2. DB-based user Role field, so a demotion applies before the token expires
func RequireRole(s store.Store, cfg *config.Config, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.GetIdentity(c)
		if err != nil {
			return unauthorized(c)
		}

		role := ""
		if cfg.IsAdminEmail(id.Email) {
			role = models.RoleAdmin
		} else if user, err := s.Users().Get(c.UserContext(), id.UserID); err == nil {
			role = user.Role
		}

		if role == "" || !slices.Contains(roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient permissions",
			})
		}
		if role != id.Role {
			id.Role = role
			c.SetUserContext(auth.WithIdentity(c.UserContext(), id))
		}
		return c.Next()
	}
}

// AdminRequired admits administrators only.
func AdminRequired(s store.Store, cfg *config.Config) fiber.Handler {
	return RequireRole(s, cfg, models.RoleAdmin)
}

// StaffRequired admits administrators and officers.
func StaffRequired(s store.Store, cfg *config.Config) fiber.Handler {
	return RequireRole(s, cfg, models.RoleAdmin, models.RoleOfficer)
}
