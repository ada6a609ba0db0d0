package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/api/http/handlers"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/auth"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Meta           *handlers.MetaHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:ticket_number", cfg.Tickets.GetTicket)
	tickets.Put("/:ticket_number", cfg.Tickets.UpdateTicket)
	tickets.Put("/:ticket_number/status", cfg.Tickets.UpdateStatus)
	tickets.Get("/:ticket_number/audit", cfg.Tickets.AuditTrail)

	protected.Get("/modules", cfg.Meta.Modules)
	protected.Get("/developers", cfg.Meta.Developers)
	protected.Get("/support-engineers", cfg.Meta.SupportEngineers)
	protected.Get("/statuses", cfg.Meta.Statuses)
	protected.Get("/resolution-types", cfg.Meta.ResolutionTypes)

	users := protected.Group("/users")
	users.Put("/change-password", cfg.Users.ChangePassword)

	admin := users.Group("", auth.RequireRole(domain.RoleAdmin))
	admin.Post("", cfg.Users.CreateUser)
	admin.Get("", cfg.Users.ListUsers)
	admin.Delete("/:username", cfg.Users.DeleteUser)
	admin.Put("/:username/role", cfg.Users.UpdateRole)
	admin.Put("/:username/reset-password", cfg.Users.ResetPassword)
}
