package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bafa2024/complaint-hub-beta/internal/api/http/handlers"
	"github.com/bafa2024/complaint-hub-beta/internal/auth"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Brands         *handlers.BrandsHandler
	Public         *handlers.PublicHandler
	Webhooks       *handlers.WebhooksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Auth.RegisterUser)
	authGroup.Post("/brands/register", cfg.Auth.RegisterBrand)
	authGroup.Post("/login", cfg.Auth.Login)

	// Anonymous intake from external providers.
	webhooks := app.Group("/webhooks")
	webhooks.Post("/voice", cfg.Webhooks.Voice)
	webhooks.Post("/chat", cfg.Webhooks.Chat)

	// Unauthenticated complaint wall.
	app.Get("/public/complaints", cfg.Public.ListComplaints)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/responses", cfg.Tickets.AddResponse)
	tickets.Post("/:id/rate", auth.RequireRole(domain.RoleUser), cfg.Tickets.Rate)
	tickets.Post("/:id/status", auth.RequireRole(domain.RoleBrand, domain.RoleAdmin), cfg.Tickets.Transition)
	tickets.Post("/:id/assign", auth.RequireRole(domain.RoleBrand, domain.RoleAdmin), cfg.Tickets.Assign)

	brands := app.Group("/brands", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleBrand, domain.RoleAdmin))
	brands.Get("/:id/dashboard", cfg.Brands.Dashboard)
	brands.Get("/:id/analytics", cfg.Brands.Report)
	brands.Get("/:id/credits", cfg.Brands.Balance)
	brands.Post("/:id/credits", cfg.Brands.TopUp)
	brands.Get("/:id/credits/transactions", cfg.Brands.Transactions)
}
