package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/app/controllers"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Public marketing pages
	app.Get("/about", loggedInMiddleware, controllers.HandleAbout)
	app.Get("/pricing", loggedInMiddleware, controllers.HandlePricing)
	app.Get("/faq", loggedInMiddleware, controllers.HandleFAQ)

	// Public blog
	app.Get("/blog", loggedInMiddleware, controllers.HandleBlogIndex)
	app.Get("/blog/rss", loggedInMiddleware, controllers.HandleBlogRSS)
	app.Get("/blog/:slug", loggedInMiddleware, controllers.HandleBlogShow)

	// Public page display
	app.Get("/page/:slug", loggedInMiddleware, controllers.HandleStaticPage)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleLogout)

	// Social OAuth
	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
