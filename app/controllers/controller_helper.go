package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/leadcallpro/LeadCallPro/internal/pkg/env"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/usercontext"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/viewmodel"
)

// newLayout builds the base view model for a rendered page from the
// request's user context and flash state.
func newLayout(c *fiber.Ctx, page string) viewmodel.Layout {
	userCtx := usercontext.GetUserContext(c)
	return viewmodel.Layout{
		Page:       page,
		IsLoggedIn: userCtx.IsLoggedIn,
		IsAdmin:    userCtx.IsAdmin,
		Username:   userCtx.Name,
		Plan:       userCtx.Plan,
		Msg:        flash.Get(c),
	}
}

// renderPage renders a template with the layout plus page-specific bindings.
func renderPage(c *fiber.Ctx, template string, layout viewmodel.Layout, data fiber.Map) error {
	bind := fiber.Map{
		"Page":       layout.Page,
		"IsLoggedIn": layout.IsLoggedIn,
		"IsAdmin":    layout.IsAdmin,
		"Username":   layout.Username,
		"Plan":       layout.Plan,
		"Msg":        layout.Msg,
	}
	if layout.OGViewModel != nil {
		bind["OG"] = layout.OGViewModel
	}
	bind["CSRFToken"] = ""
	if token, ok := c.Locals("csrf").(string); ok {
		bind["CSRFToken"] = token
	}
	bind["StripePublicKey"] = env.GetEnv("STRIPE_PUBLIC_KEY", "")
	for k, v := range data {
		bind[k] = v
	}
	return c.Render(template, bind)
}

func flashError(c *fiber.Ctx, message, redirectTo string) error {
	return flash.WithError(c, fiber.Map{"type": "error", "message": message}).Redirect(redirectTo)
}

func flashSuccess(c *fiber.Ctx, message, redirectTo string) error {
	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": message}).Redirect(redirectTo)
}

// GetClientIP determines the actual client IP address considering proxies
func GetClientIP(c *fiber.Ctx) string {
	if cfIP := strings.TrimSpace(c.Get("CF-Connecting-IP")); cfIP != "" {
		return cfIP
	}
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	return strings.TrimPrefix(c.IP(), "::ffff:")
}
