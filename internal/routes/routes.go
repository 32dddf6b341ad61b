package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

func rateLimit(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               perMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func Setup(app *fiber.App, cfg *config.Config, s store.Store, h *handlers.Set) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(rateLimit(60))

	api.Get("/health", h.Health.Check)
	api.Get("/seed/status", h.Dashboard.SeedStatus)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	api.Post("/auth/login", rateLimit(10), h.Auth.Login)
	api.Post("/auth/refresh", rateLimit(10), h.Auth.Refresh)

	jwt := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired(s, cfg)
	staff := middleware.StaffRequired(s, cfg)

	api.Post("/auth/logout", jwt, h.Auth.Logout)
	api.Get("/auth/user", jwt, h.Auth.User)

	users := api.Group("/users", jwt, admin)
	users.Get("/", h.Users.List)
	users.Post("/", h.Users.Create)
	users.Get("/:id", h.Users.Get)
	users.Patch("/:id", h.Users.Update)

	api.Get("/profile", jwt, h.Profiles.Get)
	api.Patch("/profile", jwt, h.Profiles.Update)

	h.Stations.Register(api.Group("/police-stations", jwt), admin)
	h.Officers.Register(api.Group("/officers", jwt), admin)
	h.Criminals.Register(api.Group("/criminals", jwt), staff)
	h.Firs.Register(api.Group("/fir", jwt), staff)

	dashboard := api.Group("/dashboard", jwt)
	dashboard.Get("/stats", h.Dashboard.Stats)
	dashboard.Get("/charts", h.Dashboard.Charts)
	dashboard.Get("/activities", h.Dashboard.Activities)

	api.Post("/admin/seed", jwt, admin, h.Dashboard.Seed)
}
