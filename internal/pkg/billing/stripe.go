package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	portalsession "github.com/stripe/stripe-go/v82/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/leadcallpro/LeadCallPro/internal/pkg/env"
)

const ProviderStripe = "stripe"

// StripeAPI is the outbound Stripe surface the billing service depends on.
type StripeAPI interface {
	CreateCustomer(ctx context.Context, userID uint, email string) (string, error)
	CreateCheckoutSession(ctx context.Context, customerID, priceID string, userID uint) (string, error)
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
}

// StripeClient talks to the Stripe API with the configured secret key.
type StripeClient struct {
	webhookSecret string
}

// NewStripeClientFromEnv configures the stripe-go SDK key from the
// environment and returns a client.
func NewStripeClientFromEnv() *StripeClient {
	stripe.Key = strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", ""))
	return &StripeClient{
		webhookSecret: strings.TrimSpace(env.GetEnv("STRIPE_WEBHOOK_SECRET", "")),
	}
}

// CreateCustomer creates a Stripe customer tagged with the internal user id.
// The idempotency key is derived from the user id so concurrent first-checkout
// requests cannot create duplicate provider customers.
func (c *StripeClient) CreateCustomer(ctx context.Context, userID uint, email string) (string, error) {
	if userID == 0 {
		return "", errors.New("user id is required")
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.SetIdempotencyKey(fmt.Sprintf("customer-create-user-%d", userID))
	params.AddMetadata("userId", fmt.Sprintf("%d", userID))

	cus, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe customer create failed: %w", err)
	}
	return cus.ID, nil
}

// CreateCheckoutSession creates a subscription-mode hosted checkout session
// and returns its id. The internal user id travels in the session metadata so
// the webhook projector can link the resulting subscription back to the user.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, customerID, priceID string, userID uint) (string, error) {
	if strings.TrimSpace(customerID) == "" || strings.TrimSpace(priceID) == "" {
		return "", errors.New("customer id and price id are required")
	}

	base := env.PublicBaseURL()
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(base + "/dashboard?success=true"),
		CancelURL:  stripe.String(base + "/pricing?canceled=true"),
	}
	params.Context = ctx
	params.AddMetadata("userId", fmt.Sprintf("%d", userID))

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session create failed: %w", err)
	}
	return sess.ID, nil
}

// CreatePortalSession creates a hosted billing-portal session and returns its URL.
func (c *StripeClient) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	if strings.TrimSpace(customerID) == "" {
		return "", errors.New("customer id is required")
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(env.PublicBaseURL() + "/dashboard"),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe portal session create failed: %w", err)
	}
	return sess.URL, nil
}

// VerifyWebhook authenticates a raw delivery against the signing secret and
// returns the parsed tagged event. A signature failure is permanent: the
// caller must reject without touching any state.
func (c *StripeClient) VerifyWebhook(payload []byte, signatureHeader string) (*Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signatureHeader, c.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	parsed, err := ParseEventPayload(string(ev.Type), ev.Data.Raw)
	if err != nil {
		return nil, fmt.Errorf("webhook payload decode failed: %w", err)
	}

	return &Event{
		ID:      ev.ID,
		Type:    string(ev.Type),
		Created: time.Unix(ev.Created, 0),
		Payload: parsed,
	}, nil
}
