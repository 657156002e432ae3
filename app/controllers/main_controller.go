package controllers

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/app/repository"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/entitlements"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/env"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/hcaptcha"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/mail"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/statistics"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/utils"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/viewmodel"
)

// HandleHome renders the marketing landing page.
func HandleHome(c *fiber.Ctx) error {
	layout := newLayout(c, "Lead Call Pro - Pay-Per-Call Lead Generation")
	layout.OGViewModel = &viewmodel.OpenGraph{
		Title:       "Lead Call Pro",
		Description: "Qualified phone leads for local service businesses. Pay only for calls that ring.",
		URL:         env.PublicBaseURL(),
	}
	stats := statistics.GetStatisticsData()
	return renderPage(c, "home", layout, fiber.Map{
		"Categories":      models.BusinessCategories,
		"TotalUsers":      stats.TotalUsers,
		"TotalBusinesses": stats.TotalBusinesses,
		"ActiveCampaigns": stats.ActiveCampaigns,
	})
}

// HandleAbout renders the about page.
func HandleAbout(c *fiber.Ctx) error {
	return renderPage(c, "about", newLayout(c, "About Us"), nil)
}

// HandlePricing renders the plan comparison page.
func HandlePricing(c *fiber.Ctx) error {
	type planView struct {
		entitlements.PlanInfo
		PriceID string
	}
	var plans []planView
	for _, p := range entitlements.AllPlans() {
		plans = append(plans, planView{PlanInfo: p, PriceID: entitlements.StripePriceID(p.Plan)})
	}

	layout := newLayout(c, "Pricing")
	return renderPage(c, "pricing", layout, fiber.Map{
		"Plans":    plans,
		"Canceled": c.Query("canceled") == "true",
	})
}

// HandleFAQ renders the FAQ page.
func HandleFAQ(c *fiber.Ctx) error {
	return renderPage(c, "faq", newLayout(c, "Frequently Asked Questions"), nil)
}

// HandleContact renders the contact form and accepts submissions.
func HandleContact(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		name := strings.TrimSpace(c.FormValue("name"))
		email := strings.TrimSpace(c.FormValue("email"))
		message := strings.TrimSpace(c.FormValue("message"))
		if name == "" || email == "" || message == "" {
			return flashError(c, "Please fill in all fields", "/contact")
		}

		if env.GetEnv("HCAPTCHA_SECRET", "") != "" {
			ok, err := hcaptcha.Verify(c.FormValue("h-captcha-response"))
			if err != nil || !ok {
				fiberlog.Warn(fmt.Sprintf("[Contact] captcha rejected for %s: %v", GetClientIP(c), err))
				return flashError(c, "Captcha verification failed, please try again", "/contact")
			}
		}

		fiberlog.Info(fmt.Sprintf("[Contact] submission from %s <%s> (ip %s)", name, email, GetClientIP(c)))

		if to := env.GetEnv("CONTACT_EMAIL", ""); to != "" {
			body := fmt.Sprintf("<p><b>From:</b> %s &lt;%s&gt;</p><p>%s</p>", name, email, message)
			if err := mail.SendMail(to, "New contact form message", body); err != nil {
				fiberlog.Error(fmt.Sprintf("[Contact] failed to forward message: %v", err))
			}
		}

		return flashSuccess(c, "Thanks! We will get back to you within one business day.", "/contact")
	}

	return renderPage(c, "contact", newLayout(c, "Contact"), fiber.Map{
		"HCaptchaSiteKey": env.GetEnv("HCAPTCHA_SITE_KEY", ""),
	})
}

// HandleStaticPage renders a CMS page by slug.
func HandleStaticPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	page, err := repository.GetGlobalFactory().GetPageRepository().GetBySlug(slug)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "page not found")
	}

	return renderPage(c, "page", newLayout(c, page.Title), fiber.Map{
		"PageTitle":   page.Title,
		"PageContent": template.HTML(utils.ProcessHTMLContent(page.Content)),
	})
}
