package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/app/repository"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/database"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/entitlements"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/usercontext"
)

// HandleDashboard renders the customer dashboard overview with the user's
// businesses, campaigns and subscription state.
func HandleDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalFactory()
	businesses, err := repos.GetBusinessRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load businesses")
	}
	campaigns, err := repos.GetCampaignRepository().GetByUserID(userCtx.UserID, 0, 25)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load campaigns")
	}

	var subscriptions []models.Subscription
	_ = database.GetDB().Where("user_id = ?", userCtx.UserID).
		Order("created_at DESC").
		Find(&subscriptions).Error

	var current *models.Subscription
	for i := range subscriptions {
		if subscriptions[i].IsEntitling() {
			current = &subscriptions[i]
			break
		}
	}

	plan := entitlements.NormalizePlan(userCtx.Plan)
	activeCampaigns, _ := repos.GetCampaignRepository().CountActiveByUserID(userCtx.UserID)

	return renderPage(c, "dashboard/index", newLayout(c, "Dashboard"), fiber.Map{
		"Businesses":      businesses,
		"Campaigns":       campaigns,
		"Subscription":    current,
		"CheckoutSuccess": c.Query("success") == "true",
		"ActiveCampaigns": activeCampaigns,
		"MaxCampaigns":    entitlements.MaxCampaigns(plan),
		"MaxBusinesses":   entitlements.MaxBusinesses(plan),
	})
}
