package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/leadcallpro/LeadCallPro/app/controllers"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Webhook deliveries are registered outside the limiter group: the
	// provider retries on 429 and bursts during backfills are normal.
	app.Post("/api/webhooks/stripe", controllers.HandleStripeWebhook)

	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Lead Call Pro API",
		})
	})

	billingGroup := api.Group("/billing", middleware.RequireAPISessionAuth)
	billingGroup.Post("/checkout", controllers.HandleBillingCheckout)
	billingGroup.Post("/portal", controllers.HandleBillingPortal)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
