package entitlements

import (
	"strings"

	"github.com/leadcallpro/LeadCallPro/internal/pkg/env"
)

type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// PlanInfo is the static pricing configuration shown on the pricing page and
// used to resolve Stripe price ids.
type PlanInfo struct {
	Plan        Plan
	Name        string
	Description string
	PriceMonth  int // USD, 0 for free
	Features    []string
}

var plans = []PlanInfo{
	{
		Plan:        PlanFree,
		Name:        "Free",
		Description: "Basic features",
		PriceMonth:  0,
		Features:    []string{"Basic lead access", "Email support", "Limited leads per month"},
	},
	{
		Plan:        PlanPro,
		Name:        "Pro",
		Description: "Professional features",
		PriceMonth:  49,
		Features:    []string{"Premium lead access", "Priority support", "Unlimited leads", "Advanced analytics"},
	},
	{
		Plan:        PlanEnterprise,
		Name:        "Enterprise",
		Description: "Custom solutions",
		PriceMonth:  199,
		Features:    []string{"All Pro features", "Dedicated account manager", "Custom integrations", "API access"},
	},
}

// AllPlans returns the pricing table in display order.
func AllPlans() []PlanInfo {
	return plans
}

// NormalizePlan maps any stored plan string onto a known plan, defaulting to free.
func NormalizePlan(plan string) Plan {
	switch strings.ToLower(strings.TrimSpace(plan)) {
	case string(PlanPro):
		return PlanPro
	case string(PlanEnterprise):
		return PlanEnterprise
	default:
		return PlanFree
	}
}

// Rank orders plans so the best one wins when a user has several subscriptions.
func Rank(plan Plan) int {
	switch plan {
	case PlanEnterprise:
		return 2
	case PlanPro:
		return 1
	default:
		return 0
	}
}

// StripePriceID resolves the Stripe price id configured for a paid plan.
// The free plan has no price id.
func StripePriceID(plan Plan) string {
	switch plan {
	case PlanPro:
		return env.GetEnv("STRIPE_PRICE_PRO", "")
	case PlanEnterprise:
		return env.GetEnv("STRIPE_PRICE_ENTERPRISE", "")
	default:
		return ""
	}
}

// PlanForPriceID maps a Stripe price id back onto the internal plan.
func PlanForPriceID(priceID string) Plan {
	switch strings.TrimSpace(priceID) {
	case "":
		return PlanFree
	case env.GetEnv("STRIPE_PRICE_PRO", "price_pro"):
		return PlanPro
	case env.GetEnv("STRIPE_PRICE_ENTERPRISE", "price_enterprise"):
		return PlanEnterprise
	default:
		return PlanFree
	}
}

// MaxCampaigns returns the active-campaign limit for a plan; 0 means unlimited.
func MaxCampaigns(plan Plan) int {
	switch plan {
	case PlanEnterprise:
		return 0
	case PlanPro:
		return 25
	default:
		return 3
	}
}

// MaxBusinesses returns the business-profile limit for a plan; 0 means unlimited.
func MaxBusinesses(plan Plan) int {
	switch plan {
	case PlanEnterprise:
		return 0
	case PlanPro:
		return 10
	default:
		return 1
	}
}
