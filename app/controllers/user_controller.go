package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/app/repository"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/database"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/entitlements"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/session"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/usercontext"
)

// HandleUserSettings renders the account settings page with profile,
// notification and subscription sections.
func HandleUserSettings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	settings, err := models.GetOrCreateUserSettings(database.GetDB(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	plan := entitlements.NormalizePlan(settings.Plan)
	var planInfo *entitlements.PlanInfo
	for _, p := range entitlements.AllPlans() {
		if p.Plan == plan {
			cp := p
			planInfo = &cp
			break
		}
	}

	return renderPage(c, "user/settings", newLayout(c, "Account Settings"), fiber.Map{
		"User":        user,
		"Settings":    settings,
		"PlanInfo":    planInfo,
		"HasCustomer": user.StripeCustomerID != "",
	})
}

// HandleUserSettingsUpdate updates the profile and notification preferences.
func HandleUserSettingsUpdate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	userRepo := repository.GetGlobalFactory().GetUserRepository()

	user, err := userRepo.GetByID(userCtx.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	if name := strings.TrimSpace(c.FormValue("name")); name != "" {
		user.Name = name
	}
	if err := user.Validate(); err != nil {
		return flashError(c, "Please check the form: "+err.Error(), "/user/settings")
	}
	if err := userRepo.Update(user); err != nil {
		return flashError(c, "Profile could not be saved", "/user/settings")
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err == nil {
		settings.NotifyOnLeadCalls = c.FormValue("notify_on_lead_calls") == "on"
		settings.NotifyOnBilling = c.FormValue("notify_on_billing") == "on"
		settings.WeeklyReportEmails = c.FormValue("weekly_report_emails") == "on"
		_ = db.Save(settings).Error
	}

	_ = session.SetSessionValue(c, usercontext.KeyUserName, user.Name)
	return flashSuccess(c, "Settings saved.", "/user/settings")
}
