package models

import "time"

const (
	SubscriptionStatusActive     = "active"
	SubscriptionStatusTrialing   = "trialing"
	SubscriptionStatusPastDue    = "past_due"
	SubscriptionStatusCanceled   = "canceled"
	SubscriptionStatusIncomplete = "incomplete"
)

// Subscription mirrors the provider's subscription state into a local,
// read-optimized row. The provider subscription id is the idempotency key
// for every projector write; status values are only ever copied from
// accepted webhook events, never invented locally.
type Subscription struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	UserID               uint       `gorm:"not null;index" json:"user_id"`
	StripeSubscriptionID string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"stripe_subscription_id"`
	Status               string     `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`
	PriceID              string     `gorm:"type:varchar(191);not null" json:"price_id"`
	Quantity             int64      `gorm:"not null;default:1" json:"quantity"`
	CancelAtPeriodEnd    bool       `gorm:"default:false" json:"cancel_at_period_end"`
	CurrentPeriodEnd     *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	// LastEventAt is the provider-side created timestamp of the most recent
	// applied event. Writes carrying an older timestamp are dropped, which
	// turns the provider's unordered at-least-once delivery into a
	// deterministic last-event-wins policy.
	LastEventAt *time.Time `gorm:"type:timestamp;default:null" json:"last_event_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsEntitling reports whether the subscription status grants paid access.
func (s *Subscription) IsEntitling() bool {
	switch s.Status {
	case SubscriptionStatusActive, SubscriptionStatusTrialing, SubscriptionStatusPastDue:
		return true
	default:
		return false
	}
}
