package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saecheverry/stefanini-go-tickets/internal/api/http/handlers"
	"github.com/saecheverry/stefanini-go-tickets/internal/auth"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	StatesHistory  *handlers.ResourceHandler[domain.StatusHistory]
	Comments       *handlers.ResourceHandler[domain.Comment]
	Evidences      *handlers.ResourceHandler[domain.Evidence]
	Devices        *handlers.ResourceHandler[domain.Device]
	Appointments   *handlers.ResourceHandler[domain.Appointment]
	AuthMiddleware *auth.Middleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/v1")
	if cfg.RateLimiter != nil {
		v1.Use(cfg.RateLimiter)
	}
	if cfg.AuthMiddleware != nil {
		v1.Use(cfg.AuthMiddleware.Handle)
	}

	tickets := v1.Group("/tickets")
	// Static segments must register before /:id so fiber matches them first.
	tickets.Get("/flows/all", cfg.Tickets.ListFlows)
	tickets.Get("/summary", cfg.Tickets.Summary)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Get("/:id/flows", cfg.Tickets.Flows)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	registerResource(v1, "/states-history", cfg.StatesHistory)
	registerResource(v1, "/comments", cfg.Comments)
	registerResource(v1, "/evidences", cfg.Evidences)
	registerResource(v1, "/devices", cfg.Devices)
	registerResource(v1, "/appointments", cfg.Appointments)
}

func registerResource[T any](router fiber.Router, prefix string, handler *handlers.ResourceHandler[T]) {
	group := router.Group(prefix)
	group.Post("/", handler.Create)
	group.Get("/", handler.List)
	group.Get("/:id", handler.Get)
	group.Patch("/:id", handler.Update)
	group.Delete("/:id", handler.Delete)
}
