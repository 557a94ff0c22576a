package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/barangay-portal/internal/api/http/handlers"
	"github.com/spec-kit/barangay-portal/internal/auth"
	"github.com/spec-kit/barangay-portal/internal/observability"
	"github.com/spec-kit/barangay-portal/internal/portalapi"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Public      *handlers.PublicHandler
	Resident    *handlers.ResidentHandler
	Admin       *handlers.AdminHandler
	Credentials *auth.Credentials
	Metrics     *observability.Metrics
	MetricsPath string
}

// RegisterRoutes wires the public, resident and administrative route trees.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		app.Get(cfg.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	residentGate := auth.NewGate(cfg.Credentials, auth.Resident)
	adminGate := auth.NewGate(cfg.Credentials, auth.Admin)

	app.Get("/", cfg.Public.Home)
	app.Get("/news", cfg.Public.News)
	app.Get("/contact", cfg.Public.ContactPage)
	app.Post("/contact", cfg.Public.Contact)
	app.Get("/register", cfg.Public.RegisterPage)
	app.Post("/register", cfg.Public.Register)
	app.Get("/login", residentGate.GuestOnly, cfg.Public.LoginPage)
	app.Post("/login", residentGate.GuestOnly, cfg.Public.Login)
	app.Post("/logout", cfg.Public.Logout)

	gated := residentGate.Handle
	app.Get("/dashboard", gated, cfg.Resident.Dashboard)
	app.Post("/dashboard/complaints", gated, cfg.Resident.SubmitComplaint)
	app.Post("/dashboard/projects/:id/vote", gated, cfg.Resident.Vote)
	app.Get("/about", gated, cfg.Resident.About)
	app.Get("/fund-records", gated, cfg.Resident.FundRecords)
	app.Get("/project-suggestion", gated, cfg.Resident.Suggestions)
	app.Post("/project-suggestion", gated, cfg.Resident.SubmitSuggestion)
	app.Get("/faqs", gated, cfg.Resident.FAQs)

	app.Get("/admin-login", adminGate.GuestOnly, cfg.Admin.LoginPage)
	app.Post("/admin-login", adminGate.GuestOnly, cfg.Admin.Login)
	app.Post("/admin/logout", cfg.Admin.Logout)

	admin := app.Group("/admin")
	guard := adminGate.Handle
	admin.Get("/dashboard", guard, cfg.Admin.Dashboard)

	admin.Get("/projects", guard, cfg.Admin.Projects)
	admin.Post("/projects", guard, cfg.Admin.CreateProject)
	admin.Post("/projects/:id/delete", guard, cfg.Admin.Delete(portalapi.ResourceProjects))

	admin.Get("/officials", guard, cfg.Admin.Officials)
	admin.Post("/officials", guard, cfg.Admin.SaveOfficial)
	admin.Post("/officials/:id/delete", guard, cfg.Admin.Delete(portalapi.ResourceOfficials))
	admin.Post("/officials/:id", guard, cfg.Admin.SaveOfficial)

	admin.Get("/news", guard, cfg.Admin.News)
	admin.Post("/news", guard, cfg.Admin.SaveNews)
	admin.Post("/news/:id/delete", guard, cfg.Admin.Delete(portalapi.ResourceNews))
	admin.Post("/news/:id", guard, cfg.Admin.SaveNews)

	admin.Get("/funds", guard, cfg.Admin.Funds)
	admin.Post("/funds", guard, cfg.Admin.SaveFund)
	admin.Post("/funds/:id/delete", guard, cfg.Admin.Delete(portalapi.ResourceFunds))
	admin.Post("/funds/:id", guard, cfg.Admin.SaveFund)

	admin.Get("/complaints", guard, cfg.Admin.Complaints)
	admin.Post("/complaints/:id/delete", guard, cfg.Admin.Delete(portalapi.ResourceComplaints))

	admin.Get("/project-suggestions", guard, cfg.Admin.Suggestions)
	admin.Post("/project-suggestions/:id/delete", guard, cfg.Admin.Delete(portalapi.ResourceSuggestions))

	admin.Get("/home", guard, cfg.Admin.HomeEditor)
	admin.Post("/home", guard, cfg.Admin.SaveHome)
}
