package entitlements

import "testing"

func TestNormalizePlan(t *testing.T) {
	tests := []struct {
		in   string
		want Plan
	}{
		{in: "free", want: PlanFree},
		{in: "pro", want: PlanPro},
		{in: "enterprise", want: PlanEnterprise},
		{in: "PRO", want: PlanPro},
		{in: "  enterprise  ", want: PlanEnterprise},
		{in: "invalid", want: PlanFree},
		{in: "", want: PlanFree},
	}

	for _, tt := range tests {
		if got := NormalizePlan(tt.in); got != tt.want {
			t.Fatalf("NormalizePlan(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRank(t *testing.T) {
	if Rank(PlanFree) >= Rank(PlanPro) {
		t.Fatalf("expected pro to outrank free")
	}
	if Rank(PlanPro) >= Rank(PlanEnterprise) {
		t.Fatalf("expected enterprise to outrank pro")
	}
}

func TestPlanForPriceID(t *testing.T) {
	t.Setenv("STRIPE_PRICE_PRO", "price_pro_123")
	t.Setenv("STRIPE_PRICE_ENTERPRISE", "price_ent_456")

	if got := PlanForPriceID("price_pro_123"); got != PlanPro {
		t.Fatalf("expected pro plan, got %q", got)
	}
	if got := PlanForPriceID("price_ent_456"); got != PlanEnterprise {
		t.Fatalf("expected enterprise plan, got %q", got)
	}
	if got := PlanForPriceID("price_unknown"); got != PlanFree {
		t.Fatalf("expected unknown price to map to free, got %q", got)
	}
	if got := PlanForPriceID(""); got != PlanFree {
		t.Fatalf("expected empty price to map to free, got %q", got)
	}
}

func TestStripePriceID(t *testing.T) {
	t.Setenv("STRIPE_PRICE_PRO", "price_pro_123")

	if got := StripePriceID(PlanPro); got != "price_pro_123" {
		t.Fatalf("expected configured pro price id, got %q", got)
	}
	if got := StripePriceID(PlanFree); got != "" {
		t.Fatalf("free plan must not have a price id, got %q", got)
	}
}

func TestPlanLimits(t *testing.T) {
	if MaxCampaigns(PlanFree) != 3 || MaxBusinesses(PlanFree) != 1 {
		t.Fatalf("unexpected free plan limits")
	}
	if MaxCampaigns(PlanPro) != 25 || MaxBusinesses(PlanPro) != 10 {
		t.Fatalf("unexpected pro plan limits")
	}
	// 0 means unlimited
	if MaxCampaigns(PlanEnterprise) != 0 || MaxBusinesses(PlanEnterprise) != 0 {
		t.Fatalf("enterprise plan should be unlimited")
	}
}
