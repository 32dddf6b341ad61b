package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
)

// JWTProtected verifies the bearer token and exposes the caller to services
// through the request's user context.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			id, err := auth.GetIdentity(c)
			if err != nil {
				return unauthorized(c)
			}
			c.SetUserContext(auth.WithIdentity(c.UserContext(), id))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}
