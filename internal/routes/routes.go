package routes

import (
	"time"

	"github.com/denizozkan/sensorhub/internal/config"
	"github.com/denizozkan/sensorhub/internal/handlers"
	"github.com/denizozkan/sensorhub/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	deviceHandler *handlers.DeviceHandler,
	sensorHandler *handlers.SensorHandler,
	telemetryHandler *handlers.TelemetryHandler,
	alertHandler *handlers.AlertHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Everything below is ownership-scoped and requires a valid token.
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Post("/devices", deviceHandler.Create)
	protected.Get("/devices", deviceHandler.List)
	protected.Get("/devices/:id", deviceHandler.Get)
	protected.Put("/devices/:id", deviceHandler.Update)
	protected.Delete("/devices/:id", deviceHandler.Delete)

	protected.Post("/devices/:id/sensors", sensorHandler.Create)
	protected.Get("/devices/:id/sensors", sensorHandler.ListByDevice)
	protected.Get("/sensors/:id", sensorHandler.Get)
	protected.Put("/sensors/:id", sensorHandler.Update)
	protected.Delete("/sensors/:id", sensorHandler.Delete)

	protected.Post("/readings", telemetryHandler.Ingest)
	protected.Post("/sensors/:id/data", telemetryHandler.IngestForSensor)
	protected.Get("/sensors/:id/data", telemetryHandler.GetReadings)
	protected.Get("/sensors/:id/data/latest", telemetryHandler.GetLatestReading)
	protected.Delete("/sensors/:id/data/:dataId", telemetryHandler.DeleteReading)
	protected.Delete("/sensors/:id/data", telemetryHandler.DeleteAllReadings)

	protected.Get("/alerts", alertHandler.List)
	protected.Get("/alerts/:id", alertHandler.Get)
	protected.Put("/alerts/:id/ack", alertHandler.Acknowledge)

	// Admin panel: cross-user alert view
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/alerts", alertHandler.ListAll)
}
