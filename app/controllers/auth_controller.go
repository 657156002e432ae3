package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/internal/pkg/session"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/usercontext"
)

// HandleLogin renders the login page with the available OAuth providers.
func HandleLogin(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if userCtx.IsLoggedIn {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	return renderPage(c, "auth/login", newLayout(c, "Sign In"), fiber.Map{
		"Providers": []fiber.Map{
			{"Key": "google", "Label": "Continue with Google"},
			{"Key": "facebook", "Label": "Continue with Facebook"},
		},
	})
}

// HandleLogout destroys the session and returns to the landing page.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return flashError(c, "logged out (no session)", "/login")
	}

	if err := sess.Destroy(); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/login")
	}

	c.Locals(usercontext.KeyFromProtected, false)

	return flashSuccess(c, "You have been signed out.", "/")
}
