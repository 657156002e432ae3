package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/app/repository"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/entitlements"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/usercontext"
)

const campaignPageSize = 20

// HandleCampaignList renders the user's campaigns.
func HandleCampaignList(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	campaignRepo := repository.GetGlobalFactory().GetCampaignRepository()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	campaigns, err := campaignRepo.GetByUserID(userCtx.UserID, (page-1)*campaignPageSize, campaignPageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load campaigns")
	}

	plan := entitlements.NormalizePlan(userCtx.Plan)
	return renderPage(c, "campaign/index", newLayout(c, "My Campaigns"), fiber.Map{
		"Campaigns":    campaigns,
		"MaxCampaigns": entitlements.MaxCampaigns(plan),
		"Templates":    models.CampaignTemplates,
		"PageNum":      page,
	})
}

// HandleCampaignNew renders the create form and accepts submissions. A
// template key prefills the form; the plan's campaign limit is enforced.
func HandleCampaignNew(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalFactory()

	if c.Method() == fiber.MethodPost {
		plan := entitlements.NormalizePlan(userCtx.Plan)
		if limit := entitlements.MaxCampaigns(plan); limit > 0 {
			count, err := repos.GetCampaignRepository().CountByUserID(userCtx.UserID)
			if err != nil {
				return flashError(c, "Could not check your plan limits", "/dashboard/campaigns")
			}
			if count >= int64(limit) {
				return flashError(c, fmt.Sprintf("Your plan allows up to %d campaigns. Upgrade to add more.", limit), "/pricing")
			}
		}

		businessUUID := c.FormValue("business_uuid")
		business, err := repos.GetBusinessRepository().GetByUUID(businessUUID)
		if err != nil || business.UserID != userCtx.UserID {
			return flashError(c, "Select one of your businesses for this campaign", "/dashboard/campaigns/new")
		}

		budget, _ := strconv.ParseFloat(c.FormValue("budget", "0"), 64)
		dailyBudget, _ := strconv.ParseFloat(c.FormValue("daily_budget", "0"), 64)

		campaign := &models.Campaign{
			UUID:        uuid.New().String(),
			UserID:      userCtx.UserID,
			BusinessID:  business.ID,
			Name:        strings.TrimSpace(c.FormValue("name")),
			Description: strings.TrimSpace(c.FormValue("description")),
			Status:      models.CampaignStatusDraft,
			Type:        c.FormValue("type", models.CampaignTypeGoogleAds),
			Budget:      budget,
			DailyBudget: dailyBudget,
		}
		if tpl := models.TemplateByKey(c.FormValue("template")); tpl != nil {
			if campaign.Description == "" {
				campaign.Description = tpl.Description
			}
			campaign.Type = tpl.Type
			_ = campaign.SetKeywords(tpl.Keywords)
		}
		if kw := strings.TrimSpace(c.FormValue("keywords")); kw != "" {
			var list []string
			for _, k := range strings.Split(kw, ",") {
				if k = strings.TrimSpace(k); k != "" {
					list = append(list, k)
				}
			}
			_ = campaign.SetKeywords(list)
		}
		_ = campaign.SetLocation(models.TargetLocation{
			City:        strings.TrimSpace(c.FormValue("target_city", business.City)),
			State:       strings.TrimSpace(c.FormValue("target_state", business.State)),
			RadiusMiles: atoiDefault(c.FormValue("radius_miles"), 25),
		})

		if err := campaign.Validate(); err != nil {
			return flashError(c, "Please check the form: "+err.Error(), "/dashboard/campaigns/new")
		}
		if err := repos.GetCampaignRepository().Create(campaign); err != nil {
			return flashError(c, "Campaign could not be saved", "/dashboard/campaigns/new")
		}

		return flashSuccess(c, "Campaign created as draft.", "/dashboard/campaigns")
	}

	businesses, _ := repos.GetBusinessRepository().GetByUserID(userCtx.UserID)
	return renderPage(c, "campaign/form", newLayout(c, "New Campaign"), fiber.Map{
		"Businesses": businesses,
		"Templates":  models.CampaignTemplates,
		"Template":   c.Query("template"),
	})
}

// HandleCampaignShow renders a single campaign with its targeting details.
func HandleCampaignShow(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	campaign, err := repository.GetGlobalFactory().GetCampaignRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "campaign not found")
	}
	if campaign.UserID != userCtx.UserID {
		return fiber.NewError(fiber.StatusForbidden, "not your campaign")
	}

	location, _ := campaign.Location()
	return renderPage(c, "campaign/show", newLayout(c, campaign.Name), fiber.Map{
		"Campaign": campaign,
		"Location": location,
		"Keywords": campaign.Keywords(),
	})
}

// HandleCampaignEdit renders the edit form and accepts updates.
func HandleCampaignEdit(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	campaignRepo := repository.GetGlobalFactory().GetCampaignRepository()

	campaign, err := campaignRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "campaign not found")
	}
	if campaign.UserID != userCtx.UserID {
		return fiber.NewError(fiber.StatusForbidden, "not your campaign")
	}

	if c.Method() == fiber.MethodPost {
		campaign.Name = strings.TrimSpace(c.FormValue("name", campaign.Name))
		campaign.Description = strings.TrimSpace(c.FormValue("description", campaign.Description))
		if v := c.FormValue("budget"); v != "" {
			campaign.Budget, _ = strconv.ParseFloat(v, 64)
		}
		if v := c.FormValue("daily_budget"); v != "" {
			campaign.DailyBudget, _ = strconv.ParseFloat(v, 64)
		}
		if v := strings.TrimSpace(c.FormValue("call_tracking_number")); v != "" {
			campaign.CallTrackingNumber = v
		}

		if err := campaign.Validate(); err != nil {
			return flashError(c, "Please check the form: "+err.Error(), "/dashboard/campaigns/"+campaign.UUID+"/edit")
		}
		if err := campaignRepo.Update(campaign); err != nil {
			return flashError(c, "Campaign could not be saved", "/dashboard/campaigns/"+campaign.UUID+"/edit")
		}

		return flashSuccess(c, "Campaign updated.", "/dashboard/campaigns/"+campaign.UUID)
	}

	location, _ := campaign.Location()
	return renderPage(c, "campaign/form", newLayout(c, "Edit Campaign"), fiber.Map{
		"Campaign": campaign,
		"Location": location,
		"Keywords": strings.Join(campaign.Keywords(), ", "),
	})
}

// HandleCampaignStatus applies a lifecycle transition (activate, pause,
// complete, archive). Invalid transitions are rejected.
func HandleCampaignStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	campaignRepo := repository.GetGlobalFactory().GetCampaignRepository()

	campaign, err := campaignRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "campaign not found")
	}
	if campaign.UserID != userCtx.UserID {
		return fiber.NewError(fiber.StatusForbidden, "not your campaign")
	}

	target := c.FormValue("status")
	if !campaign.CanTransitionTo(target) {
		return flashError(c, fmt.Sprintf("A %s campaign cannot move to %s.", campaign.Status, target), "/dashboard/campaigns/"+campaign.UUID)
	}

	// Activation counts against the plan's concurrent-campaign limit.
	if target == models.CampaignStatusActive {
		plan := entitlements.NormalizePlan(userCtx.Plan)
		if limit := entitlements.MaxCampaigns(plan); limit > 0 {
			active, err := campaignRepo.CountActiveByUserID(userCtx.UserID)
			if err != nil {
				return flashError(c, "Could not check your plan limits", "/dashboard/campaigns")
			}
			if active >= int64(limit) {
				return flashError(c, fmt.Sprintf("Your plan allows %d active campaigns. Upgrade for more.", limit), "/pricing")
			}
		}
	}

	campaign.Status = target
	if err := campaignRepo.Update(campaign); err != nil {
		return flashError(c, "Campaign status could not be changed", "/dashboard/campaigns/"+campaign.UUID)
	}

	return flashSuccess(c, "Campaign is now "+target+".", "/dashboard/campaigns/"+campaign.UUID)
}

// HandleCampaignDelete removes a campaign and is owner-only.
func HandleCampaignDelete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	campaignRepo := repository.GetGlobalFactory().GetCampaignRepository()

	campaign, err := campaignRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "campaign not found")
	}
	if campaign.UserID != userCtx.UserID {
		return fiber.NewError(fiber.StatusForbidden, "not your campaign")
	}

	if err := campaignRepo.Delete(campaign.ID); err != nil {
		return flashError(c, "Campaign could not be deleted", "/dashboard/campaigns")
	}

	return flashSuccess(c, "Campaign deleted.", "/dashboard/campaigns")
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
