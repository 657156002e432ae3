package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/internal/pkg/billing"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/database"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/entitlements"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/session"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/usercontext"
)

type checkoutRequest struct {
	PriceID string `json:"priceId"`
}

// HandleBillingCheckout creates a hosted checkout session for the logged-in
// user and returns its id for client-side redirection.
func HandleBillingCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication_required"})
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request_body"})
	}
	priceID := strings.TrimSpace(req.PriceID)
	if priceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price_id_required"})
	}
	if entitlements.PlanForPriceID(priceID) == entitlements.PlanFree {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_price_id"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	sessionID, err := svc.CreateCheckout(ctx, userCtx.UserID, userCtx.Email, priceID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "checkout_session_failed"})
	}

	return c.JSON(fiber.Map{"sessionId": sessionID})
}

// HandleBillingPortal creates a billing-portal session so the user can manage
// their subscription. Users who never checked out have no customer and get 404.
func HandleBillingPortal(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication_required"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	url, err := svc.CreatePortal(ctx, userCtx.UserID)
	if err != nil {
		if errors.Is(err, billing.ErrNoCustomer) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_billing_customer"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "portal_session_failed"})
	}

	return c.JSON(fiber.Map{"url": url})
}

// HandleStripeWebhook receives provider event deliveries. Signature failures
// are rejected before any state change; duplicates are acknowledged without
// reprocessing; handler failures return 500 so the provider redelivers.
func HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := c.Body()
	signature := c.Get("Stripe-Signature")

	client := billing.NewStripeClientFromEnv()
	event, err := client.VerifyWebhook(rawBody, signature)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	created, stored, err := svc.RecordWebhookEvent(ctx, event, rawBody)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	// Only successfully applied events are acknowledged as duplicates. A
	// redelivery of an event whose first apply failed is processed again so
	// the provider's retry can complete the state change.
	if !created && stored.Processed() {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if event.Payload == nil {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	applyErr := svc.ApplyEvent(ctx, event)
	_ = svc.MarkWebhookProcessed(ctx, stored.ID, applyErr)
	if applyErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "event_apply_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// HandleUserBillingResync recomputes the user's plan from their stored
// subscriptions and refreshes the session copy.
func HandleUserBillingResync(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	effectivePlan, err := svc.ReconcileUserPlan(ctx, userCtx.UserID)
	if err != nil {
		return flashError(c, "Plan could not be recalculated", "/user/settings")
	}

	_ = session.SetSessionValue(c, usercontext.KeyUserPlan, effectivePlan)
	return flashSuccess(c, "Plan recalculated: "+effectivePlan, "/user/settings")
}
