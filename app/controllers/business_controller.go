package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/app/repository"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/entitlements"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/usercontext"
)

// HandleBusinessList renders the user's business profiles.
func HandleBusinessList(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	businesses, err := repository.GetGlobalFactory().GetBusinessRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load businesses")
	}

	plan := entitlements.NormalizePlan(userCtx.Plan)
	return renderPage(c, "business/index", newLayout(c, "My Businesses"), fiber.Map{
		"Businesses":    businesses,
		"MaxBusinesses": entitlements.MaxBusinesses(plan),
		"Categories":    models.BusinessCategories,
	})
}

// HandleBusinessNew renders the create form and accepts submissions. The
// plan's business limit is enforced before creation.
func HandleBusinessNew(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	businessRepo := repository.GetGlobalFactory().GetBusinessRepository()

	if c.Method() == fiber.MethodPost {
		plan := entitlements.NormalizePlan(userCtx.Plan)
		if limit := entitlements.MaxBusinesses(plan); limit > 0 {
			count, err := businessRepo.CountByUserID(userCtx.UserID)
			if err != nil {
				return flashError(c, "Could not check your plan limits", "/dashboard/businesses")
			}
			if count >= int64(limit) {
				return flashError(c, fmt.Sprintf("Your plan allows up to %d business profiles. Upgrade to add more.", limit), "/pricing")
			}
		}

		business := &models.Business{
			UUID:          uuid.New().String(),
			UserID:        userCtx.UserID,
			Name:          strings.TrimSpace(c.FormValue("name")),
			Category:      c.FormValue("category", "Other"),
			Description:   strings.TrimSpace(c.FormValue("description")),
			WebsiteURL:    strings.TrimSpace(c.FormValue("website_url")),
			PhoneNumber:   strings.TrimSpace(c.FormValue("phone_number")),
			Email:         strings.TrimSpace(c.FormValue("email")),
			StreetAddress: strings.TrimSpace(c.FormValue("street_address")),
			City:          strings.TrimSpace(c.FormValue("city")),
			State:         strings.TrimSpace(c.FormValue("state")),
			ZipCode:       strings.TrimSpace(c.FormValue("zip_code")),
			Country:       c.FormValue("country", "US"),
		}
		if err := business.Validate(); err != nil {
			return flashError(c, "Please check the form: "+err.Error(), "/dashboard/businesses/new")
		}
		if err := businessRepo.Create(business); err != nil {
			return flashError(c, "Business could not be saved", "/dashboard/businesses/new")
		}

		return flashSuccess(c, "Business profile created.", "/dashboard/businesses")
	}

	return renderPage(c, "business/form", newLayout(c, "New Business"), fiber.Map{
		"Categories": models.BusinessCategories,
	})
}

// HandleBusinessEdit renders the edit form and accepts updates. Only the
// owner can modify a profile.
func HandleBusinessEdit(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	businessRepo := repository.GetGlobalFactory().GetBusinessRepository()

	business, err := businessRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "business not found")
	}
	if business.UserID != userCtx.UserID {
		return fiber.NewError(fiber.StatusForbidden, "not your business")
	}

	if c.Method() == fiber.MethodPost {
		business.Name = strings.TrimSpace(c.FormValue("name", business.Name))
		business.Category = c.FormValue("category", business.Category)
		business.Description = strings.TrimSpace(c.FormValue("description", business.Description))
		business.WebsiteURL = strings.TrimSpace(c.FormValue("website_url", business.WebsiteURL))
		business.PhoneNumber = strings.TrimSpace(c.FormValue("phone_number", business.PhoneNumber))
		business.Email = strings.TrimSpace(c.FormValue("email", business.Email))
		business.StreetAddress = strings.TrimSpace(c.FormValue("street_address", business.StreetAddress))
		business.City = strings.TrimSpace(c.FormValue("city", business.City))
		business.State = strings.TrimSpace(c.FormValue("state", business.State))
		business.ZipCode = strings.TrimSpace(c.FormValue("zip_code", business.ZipCode))
		business.Country = c.FormValue("country", business.Country)

		if err := business.Validate(); err != nil {
			return flashError(c, "Please check the form: "+err.Error(), "/dashboard/businesses/"+business.UUID+"/edit")
		}
		if err := businessRepo.Update(business); err != nil {
			return flashError(c, "Business could not be saved", "/dashboard/businesses/"+business.UUID+"/edit")
		}

		return flashSuccess(c, "Business profile updated.", "/dashboard/businesses")
	}

	hours, _ := business.Hours()
	return renderPage(c, "business/form", newLayout(c, "Edit Business"), fiber.Map{
		"Business":   business,
		"Hours":      hours,
		"Categories": models.BusinessCategories,
	})
}

// HandleBusinessDelete removes a business profile and is owner-only.
func HandleBusinessDelete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	businessRepo := repository.GetGlobalFactory().GetBusinessRepository()

	business, err := businessRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "business not found")
	}
	if business.UserID != userCtx.UserID {
		return fiber.NewError(fiber.StatusForbidden, "not your business")
	}

	campaigns, err := repository.GetGlobalFactory().GetCampaignRepository().GetByBusinessID(business.ID)
	if err == nil && len(campaigns) > 0 {
		return flashError(c, "Archive or delete the campaigns attached to this business first.", "/dashboard/businesses")
	}

	if err := businessRepo.Delete(business.ID); err != nil {
		return flashError(c, "Business could not be deleted", "/dashboard/businesses")
	}

	return flashSuccess(c, "Business profile deleted.", "/dashboard/businesses")
}
