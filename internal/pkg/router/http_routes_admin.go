package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/app/controllers"
	"github.com/leadcallpro/LeadCallPro/app/repository"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin, csrfMiddleware())
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// User management
	adminGroup.Get("/users", controllers.HandleAdminUsers)
	adminGroup.Post("/users/toggle-status/:id", controllers.HandleAdminUserToggleStatus)

	// Blog management
	postController := controllers.NewAdminPostController(repository.GetGlobalFactory().GetPostRepository())
	adminGroup.Get("/posts", postController.HandleAdminPosts)
	adminGroup.Get("/posts/create", postController.HandleAdminPostCreate)
	adminGroup.Post("/posts/store", postController.HandleAdminPostStore)
	adminGroup.Get("/posts/edit/:id", postController.HandleAdminPostEdit)
	adminGroup.Post("/posts/update/:id", postController.HandleAdminPostUpdate)
	adminGroup.Post("/posts/delete/:id", postController.HandleAdminPostDelete)

	// Static page management
	pageController := controllers.NewAdminPageController(repository.GetGlobalFactory().GetPageRepository())
	adminGroup.Get("/pages", pageController.HandleAdminPages)
	adminGroup.Get("/pages/create", pageController.HandleAdminPageCreate)
	adminGroup.Post("/pages/store", pageController.HandleAdminPageStore)
	adminGroup.Get("/pages/edit/:id", pageController.HandleAdminPageEdit)
	adminGroup.Post("/pages/update/:id", pageController.HandleAdminPageUpdate)
	adminGroup.Post("/pages/delete/:id", pageController.HandleAdminPageDelete)
}
