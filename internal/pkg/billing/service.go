package billing

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/entitlements"
)

// Service projects provider billing events onto local subscription rows and
// resolves provider customers for users. Every projector write is idempotent
// and tolerant of missing rows and out-of-order delivery: webhook providers
// guarantee at-least-once, not-ordered delivery.
type Service struct {
	repo   Repository
	stripe StripeAPI
}

// NewService creates a billing service from an injected repository and
// Stripe client.
func NewService(repo Repository, api StripeAPI) *Service {
	return &Service{repo: repo, stripe: api}
}

// NewServiceFromDB creates a billing service from a GORM DB handle, using
// the environment-configured Stripe client.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), NewStripeClientFromEnv())
}

// EnsureCustomer returns the user's provider customer id, creating the
// customer with the provider on first use and persisting the returned id.
// Once set the id is never regenerated.
func (s *Service) EnsureCustomer(ctx context.Context, userID uint, email string) (string, error) {
	if userID == 0 {
		return "", errors.New("user id is required")
	}

	existing, err := s.repo.GetStripeCustomerID(userID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(existing) != "" {
		return existing, nil
	}

	customerID, err := s.stripe.CreateCustomer(ctx, userID, email)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetStripeCustomerID(userID, customerID); err != nil {
		return "", err
	}
	return customerID, nil
}

// CreateCheckout resolves the user's customer and creates a hosted checkout
// session for the given price, returning the session id.
func (s *Service) CreateCheckout(ctx context.Context, userID uint, email, priceID string) (string, error) {
	customerID, err := s.EnsureCustomer(ctx, userID, email)
	if err != nil {
		return "", err
	}
	return s.stripe.CreateCheckoutSession(ctx, customerID, priceID, userID)
}

// ErrNoCustomer is returned when a portal session is requested for a user
// who has never checked out.
var ErrNoCustomer = errors.New("no billing customer exists for user")

// CreatePortal creates a hosted billing-portal session for the user's
// existing customer. Users without a customer id get ErrNoCustomer.
func (s *Service) CreatePortal(ctx context.Context, userID uint) (string, error) {
	if userID == 0 {
		return "", errors.New("user id is required")
	}
	customerID, err := s.repo.GetStripeCustomerID(userID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(customerID) == "" {
		return "", ErrNoCustomer
	}
	return s.stripe.CreatePortalSession(ctx, customerID)
}

// RecordWebhookEvent persists a delivery idempotently; the bool result is
// false when the same provider event id was seen before.
func (s *Service) RecordWebhookEvent(ctx context.Context, ev *Event, payload []byte) (bool, *models.BillingWebhookEvent, error) {
	_ = ctx
	if ev == nil || strings.TrimSpace(ev.ID) == "" {
		return false, nil, errors.New("event id is required")
	}
	stored := &models.BillingWebhookEvent{
		Provider:        ProviderStripe,
		ProviderEventID: ev.ID,
		EventType:       ev.Type,
		PayloadJSON:     string(payload),
	}
	return s.repo.CreateWebhookEventIfNotExists(stored)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook event id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

// ApplyEvent dispatches an accepted event to its projector handler. A nil
// payload (ignored type) is a successful no-op. Returned errors mean the
// write failed and the delivery should be surfaced as a handler failure so
// the provider redelivers.
func (s *Service) ApplyEvent(ctx context.Context, ev *Event) error {
	if ev == nil {
		return errors.New("event is required")
	}

	switch p := ev.Payload.(type) {
	case CheckoutCompleted:
		return s.applyCheckoutCompleted(ctx, ev, p)
	case SubscriptionChanged:
		return s.applySubscriptionChanged(ctx, ev, p)
	case SubscriptionDeleted:
		return s.applySubscriptionDeleted(ctx, ev, p)
	case InvoicePaymentSucceeded:
		return s.applyInvoiceResult(ctx, ev, p.SubscriptionID, models.SubscriptionStatusActive)
	case InvoicePaymentFailed:
		return s.applyInvoiceResult(ctx, ev, p.SubscriptionID, models.SubscriptionStatusPastDue)
	case nil:
		return nil
	default:
		return nil
	}
}

func (s *Service) applyCheckoutCompleted(ctx context.Context, ev *Event, p CheckoutCompleted) error {
	// A checkout without a subscription (one-time payment) or without a user
	// linkage is not this projector's concern.
	if p.SubscriptionID == "" || p.UserID == "" {
		return nil
	}
	userID, err := strconv.ParseUint(p.UserID, 10, 64)
	if err != nil || userID == 0 {
		return nil
	}

	// The upsert obeys the same ordering guard as the update handlers: a
	// checkout event older than the row's last applied event is dropped.
	if existing, ok, err := s.lookup(p.SubscriptionID); err != nil {
		return err
	} else if ok && staleEvent(existing, ev) {
		return nil
	}

	var periodEnd *time.Time
	if p.ExpiresAt > 0 {
		t := time.Unix(p.ExpiresAt, 0)
		periodEnd = &t
	}
	eventAt := ev.Created

	sub := &models.Subscription{
		UserID:               uint(userID),
		StripeSubscriptionID: p.SubscriptionID,
		Status:               models.SubscriptionStatusActive,
		PriceID:              p.PriceID,
		Quantity:             p.Quantity,
		CancelAtPeriodEnd:    false,
		CurrentPeriodEnd:     periodEnd,
		LastEventAt:          &eventAt,
	}
	if err := s.repo.UpsertSubscription(sub); err != nil {
		return err
	}
	return s.reconcileUserPlan(ctx, uint(userID))
}

func (s *Service) applySubscriptionChanged(ctx context.Context, ev *Event, p SubscriptionChanged) error {
	if p.SubscriptionID == "" {
		return nil
	}
	sub, ok, err := s.lookup(p.SubscriptionID)
	if err != nil {
		return err
	}
	// The row is expected to exist from checkout-completed; a missing row is
	// tolerated out-of-order delivery, not an upsert opportunity.
	if !ok {
		return nil
	}
	if staleEvent(sub, ev) {
		return nil
	}

	sub.Status = p.Status
	sub.CancelAtPeriodEnd = p.CancelAtPeriodEnd
	sub.PriceID = p.PriceID
	sub.Quantity = p.Quantity
	if p.CurrentPeriodEnd > 0 {
		t := time.Unix(p.CurrentPeriodEnd, 0)
		sub.CurrentPeriodEnd = &t
	}
	eventAt := ev.Created
	sub.LastEventAt = &eventAt
	if err := s.repo.SaveSubscription(sub); err != nil {
		return err
	}
	return s.reconcileUserPlan(ctx, sub.UserID)
}

func (s *Service) applySubscriptionDeleted(ctx context.Context, ev *Event, p SubscriptionDeleted) error {
	if p.SubscriptionID == "" {
		return nil
	}
	sub, ok, err := s.lookup(p.SubscriptionID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if staleEvent(sub, ev) {
		return nil
	}

	sub.Status = models.SubscriptionStatusCanceled
	sub.CancelAtPeriodEnd = true
	eventAt := ev.Created
	sub.LastEventAt = &eventAt
	if err := s.repo.SaveSubscription(sub); err != nil {
		return err
	}
	return s.reconcileUserPlan(ctx, sub.UserID)
}

func (s *Service) applyInvoiceResult(ctx context.Context, ev *Event, subscriptionID, status string) error {
	if subscriptionID == "" {
		return nil
	}
	sub, ok, err := s.lookup(subscriptionID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if staleEvent(sub, ev) {
		return nil
	}

	sub.Status = status
	eventAt := ev.Created
	sub.LastEventAt = &eventAt
	if err := s.repo.SaveSubscription(sub); err != nil {
		return err
	}
	return s.reconcileUserPlan(ctx, sub.UserID)
}

func (s *Service) lookup(stripeSubscriptionID string) (*models.Subscription, bool, error) {
	sub, err := s.repo.GetSubscriptionByProviderID(stripeSubscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return sub, true, nil
}

// staleEvent guards subscription rows against regressing to an older state:
// an event created before the last applied one is dropped.
func staleEvent(sub *models.Subscription, ev *Event) bool {
	return sub.LastEventAt != nil && ev.Created.Before(*sub.LastEventAt)
}

// ReconcileUserPlan recomputes and stores the user's effective plan from
// their entitling subscriptions.
func (s *Service) ReconcileUserPlan(ctx context.Context, userID uint) (string, error) {
	if userID == 0 {
		return "", errors.New("user id is required")
	}
	if err := s.reconcileUserPlan(ctx, userID); err != nil {
		return "", err
	}
	us, err := s.repo.GetOrCreateUserSettings(userID)
	if err != nil {
		return "", err
	}
	return us.Plan, nil
}

func (s *Service) reconcileUserPlan(ctx context.Context, userID uint) error {
	_ = ctx
	subs, err := s.repo.ListSubscriptionsByUser(userID)
	if err != nil {
		return err
	}

	best := entitlements.PlanFree
	for i := range subs {
		if !subs[i].IsEntitling() {
			continue
		}
		candidate := entitlements.PlanForPriceID(subs[i].PriceID)
		if entitlements.Rank(candidate) > entitlements.Rank(best) {
			best = candidate
		}
	}

	us, err := s.repo.GetOrCreateUserSettings(userID)
	if err != nil {
		return err
	}
	if entitlements.NormalizePlan(us.Plan) == best {
		return nil
	}
	us.Plan = string(best)
	return s.repo.SaveUserSettings(us)
}
