package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/process-tracker/internal/api/http/handlers"
	"github.com/spec-kit/process-tracker/internal/auth"
	"github.com/spec-kit/process-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Operators      *handlers.OperatorsHandler
	Tickets        *handlers.TicketsHandler
	Projects       *handlers.ProjectsHandler
	Stages         *handlers.StagesHandler
	Renewals       *handlers.RenewalsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Operators.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Operators.ChangePassword)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.OpenTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/sector", cfg.Tickets.ReassignSector)

	projects := protected.Group("/projects")
	projects.Post("", cfg.Projects.CreateProject)
	projects.Get("", cfg.Projects.ListProjects)
	projects.Get("/:id/timeline", cfg.Projects.GetTimeline)
	projects.Patch("/:id/window",
		auth.RequireRole(domain.OperatorRoleAdmin, domain.OperatorRoleManager),
		cfg.Projects.UpdateWindow)

	projects.Get("/:id/stages", cfg.Stages.GetChecklist)
	projects.Post("/:id/stages/check", cfg.Stages.CheckItem)
	projects.Post("/:id/stages/interactions", cfg.Stages.LogInteraction)
	projects.Post("/:id/stages/survey", cfg.Stages.RecordSurvey)
	projects.Post("/:id/stages/complete", cfg.Stages.MarkComplete)

	protected.Get("/renewals", cfg.Renewals.Report)
	protected.Get("/dashboard", cfg.Dashboard.Summary)
}
