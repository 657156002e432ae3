package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/leadcallpro/LeadCallPro/app/controllers"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/env"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/middleware"
)

func csrfMiddleware() fiber.Handler {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			// API routes authenticate per request and webhooks are
			// signature-verified; both are exempt from CSRF.
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}
	return csrf.New(csrfConf)
}

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	group := app.Group("", cors.New(), csrfMiddleware())
	group.Get("/", loggedInMiddleware, controllers.HandleHome)
	group.Get("/login", loggedInMiddleware, controllers.HandleLogin)
	group.Get("/contact", loggedInMiddleware, controllers.HandleContact)
	group.Post("/contact", loggedInMiddleware, controllers.HandleContact)

	// Customer dashboard
	group.Get("/dashboard", middleware.RequireAuth, controllers.HandleDashboard)

	// Business profiles
	group.Get("/dashboard/businesses", middleware.RequireAuth, controllers.HandleBusinessList)
	group.Get("/dashboard/businesses/new", middleware.RequireAuth, controllers.HandleBusinessNew)
	group.Post("/dashboard/businesses/new", middleware.RequireAuth, controllers.HandleBusinessNew)
	group.Get("/dashboard/businesses/:uuid/edit", middleware.RequireAuth, controllers.HandleBusinessEdit)
	group.Post("/dashboard/businesses/:uuid/edit", middleware.RequireAuth, controllers.HandleBusinessEdit)
	group.Post("/dashboard/businesses/:uuid/delete", middleware.RequireAuth, controllers.HandleBusinessDelete)

	// Campaigns
	group.Get("/dashboard/campaigns", middleware.RequireAuth, controllers.HandleCampaignList)
	group.Get("/dashboard/campaigns/new", middleware.RequireAuth, controllers.HandleCampaignNew)
	group.Post("/dashboard/campaigns/new", middleware.RequireAuth, controllers.HandleCampaignNew)
	group.Get("/dashboard/campaigns/:uuid", middleware.RequireAuth, controllers.HandleCampaignShow)
	group.Get("/dashboard/campaigns/:uuid/edit", middleware.RequireAuth, controllers.HandleCampaignEdit)
	group.Post("/dashboard/campaigns/:uuid/edit", middleware.RequireAuth, controllers.HandleCampaignEdit)
	group.Post("/dashboard/campaigns/:uuid/status", middleware.RequireAuth, controllers.HandleCampaignStatus)
	group.Post("/dashboard/campaigns/:uuid/delete", middleware.RequireAuth, controllers.HandleCampaignDelete)

	// Account settings
	group.Get("/user/settings", middleware.RequireAuth, controllers.HandleUserSettings)
	group.Post("/user/settings", middleware.RequireAuth, controllers.HandleUserSettingsUpdate)
	group.Post("/user/settings/billing/resync", middleware.RequireAuth, controllers.HandleUserBillingResync)
}
