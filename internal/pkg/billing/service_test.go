package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/leadcallpro/LeadCallPro/app/models"
)

type fakeRepository struct {
	subs      map[string]*models.Subscription
	customers map[uint]string
	settings  map[uint]*models.UserSettings
	events    map[string]*models.BillingWebhookEvent
	nextID    uint
	failSave  bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		subs:      map[string]*models.Subscription{},
		customers: map[uint]string{},
		settings:  map[uint]*models.UserSettings{},
		events:    map[string]*models.BillingWebhookEvent{},
	}
}

func (r *fakeRepository) GetSubscriptionByProviderID(id string) (*models.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeRepository) UpsertSubscription(sub *models.Subscription) error {
	if r.failSave {
		return errors.New("db write failed")
	}
	if existing, ok := r.subs[sub.StripeSubscriptionID]; ok {
		sub.ID = existing.ID
	} else {
		r.nextID++
		sub.ID = r.nextID
	}
	cp := *sub
	r.subs[sub.StripeSubscriptionID] = &cp
	return nil
}

func (r *fakeRepository) SaveSubscription(sub *models.Subscription) error {
	if r.failSave {
		return errors.New("db write failed")
	}
	cp := *sub
	r.subs[sub.StripeSubscriptionID] = &cp
	return nil
}

func (r *fakeRepository) ListSubscriptionsByUser(userID uint) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range r.subs {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeRepository) GetStripeCustomerID(userID uint) (string, error) {
	return r.customers[userID], nil
}

func (r *fakeRepository) SetStripeCustomerID(userID uint, customerID string) error {
	r.customers[userID] = customerID
	return nil
}

func (r *fakeRepository) GetOrCreateUserSettings(userID uint) (*models.UserSettings, error) {
	if us, ok := r.settings[userID]; ok {
		cp := *us
		return &cp, nil
	}
	us := &models.UserSettings{UserID: userID, Plan: "free"}
	r.settings[userID] = us
	cp := *us
	return &cp, nil
}

func (r *fakeRepository) SaveUserSettings(us *models.UserSettings) error {
	cp := *us
	r.settings[us.UserID] = &cp
	return nil
}

func (r *fakeRepository) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	key := event.Provider + "/" + event.ProviderEventID
	if existing, ok := r.events[key]; ok {
		cp := *existing
		return false, &cp, nil
	}
	r.nextID++
	event.ID = r.nextID
	cp := *event
	r.events[key] = &cp
	return true, event, nil
}

func (r *fakeRepository) MarkWebhookProcessed(id uint, processingError string) error {
	for _, ev := range r.events {
		if ev.ID == id {
			now := time.Now()
			ev.ProcessedAt = &now
			ev.ProcessingError = processingError
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeStripeAPI struct {
	createCustomerCalls int
	checkoutCalls       int
	portalCalls         int
}

func (f *fakeStripeAPI) CreateCustomer(_ context.Context, userID uint, _ string) (string, error) {
	f.createCustomerCalls++
	return fmt.Sprintf("cus_%d", userID), nil
}

func (f *fakeStripeAPI) CreateCheckoutSession(_ context.Context, customerID, priceID string, _ uint) (string, error) {
	f.checkoutCalls++
	return "cs_test_" + customerID + "_" + priceID, nil
}

func (f *fakeStripeAPI) CreatePortalSession(_ context.Context, customerID string) (string, error) {
	f.portalCalls++
	return "https://billing.stripe.com/session/" + customerID, nil
}

func newTestService() (*Service, *fakeRepository, *fakeStripeAPI) {
	repo := newFakeRepository()
	api := &fakeStripeAPI{}
	return NewService(repo, api), repo, api
}

func checkoutEvent(id string, created time.Time, p CheckoutCompleted) *Event {
	return &Event{ID: id, Type: EventCheckoutCompleted, Created: created, Payload: p}
}

func TestApplyEventCheckoutCompletedCreatesActiveSubscription(t *testing.T) {
	svc, repo, _ := newTestService()

	now := time.Now().Truncate(time.Second)
	expires := now.Add(30 * 24 * time.Hour)
	ev := checkoutEvent("evt_1", now, CheckoutCompleted{
		CustomerID:     "cus_42",
		SubscriptionID: "sub_999",
		UserID:         "42",
		PriceID:        "price_pro",
		Quantity:       1,
		ExpiresAt:      expires.Unix(),
	})

	require.NoError(t, svc.ApplyEvent(context.Background(), ev))

	sub, ok := repo.subs["sub_999"]
	require.True(t, ok)
	assert.Equal(t, uint(42), sub.UserID)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "price_pro", sub.PriceID)
	assert.Equal(t, int64(1), sub.Quantity)
	assert.False(t, sub.CancelAtPeriodEnd)
	require.NotNil(t, sub.CurrentPeriodEnd)
	assert.Equal(t, expires.Unix(), sub.CurrentPeriodEnd.Unix())
}

func TestApplyEventCheckoutWithoutUserMetadataIsNoOp(t *testing.T) {
	svc, repo, _ := newTestService()

	ev := checkoutEvent("evt_1", time.Now(), CheckoutCompleted{
		SubscriptionID: "sub_1",
		UserID:         "",
	})
	require.NoError(t, svc.ApplyEvent(context.Background(), ev))
	assert.Empty(t, repo.subs)

	ev = checkoutEvent("evt_2", time.Now(), CheckoutCompleted{
		SubscriptionID: "sub_1",
		UserID:         "not-a-number",
	})
	require.NoError(t, svc.ApplyEvent(context.Background(), ev))
	assert.Empty(t, repo.subs)
}

func TestApplyEventSubscriptionUpdatedWithoutRowIsNoOp(t *testing.T) {
	svc, repo, _ := newTestService()

	ev := &Event{
		ID:      "evt_1",
		Type:    EventSubscriptionUpdated,
		Created: time.Now(),
		Payload: SubscriptionChanged{
			SubscriptionID: "sub_missing",
			Status:         models.SubscriptionStatusActive,
			PriceID:        "price_pro",
			Quantity:       1,
		},
	}
	require.NoError(t, svc.ApplyEvent(context.Background(), ev))
	assert.Empty(t, repo.subs)
}

func TestApplyEventSubscriptionDeletedMarksCanceled(t *testing.T) {
	svc, repo, _ := newTestService()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, svc.ApplyEvent(context.Background(), checkoutEvent("evt_1", base, CheckoutCompleted{
		SubscriptionID: "sub_123",
		UserID:         "7",
		PriceID:        "price_pro",
		Quantity:       1,
	})))

	ev := &Event{
		ID:      "evt_2",
		Type:    EventSubscriptionDeleted,
		Created: base.Add(time.Minute),
		Payload: SubscriptionDeleted{SubscriptionID: "sub_123"},
	}
	require.NoError(t, svc.ApplyEvent(context.Background(), ev))

	sub := repo.subs["sub_123"]
	assert.Equal(t, models.SubscriptionStatusCanceled, sub.Status)
	assert.True(t, sub.CancelAtPeriodEnd)
}

func TestApplyEventInvoiceResultsForceStatus(t *testing.T) {
	svc, repo, _ := newTestService()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, svc.ApplyEvent(context.Background(), checkoutEvent("evt_1", base, CheckoutCompleted{
		SubscriptionID: "sub_inv",
		UserID:         "3",
		PriceID:        "price_pro",
		Quantity:       1,
	})))

	failed := &Event{
		ID:      "evt_2",
		Type:    EventInvoicePaymentFailed,
		Created: base.Add(time.Minute),
		Payload: InvoicePaymentFailed{SubscriptionID: "sub_inv"},
	}
	require.NoError(t, svc.ApplyEvent(context.Background(), failed))
	assert.Equal(t, models.SubscriptionStatusPastDue, repo.subs["sub_inv"].Status)

	succeeded := &Event{
		ID:      "evt_3",
		Type:    EventInvoicePaymentSucceeded,
		Created: base.Add(2 * time.Minute),
		Payload: InvoicePaymentSucceeded{SubscriptionID: "sub_inv"},
	}
	require.NoError(t, svc.ApplyEvent(context.Background(), succeeded))
	assert.Equal(t, models.SubscriptionStatusActive, repo.subs["sub_inv"].Status)
}

func TestApplyEventOlderEventDoesNotRegressState(t *testing.T) {
	svc, repo, _ := newTestService()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, svc.ApplyEvent(context.Background(), checkoutEvent("evt_1", base, CheckoutCompleted{
		SubscriptionID: "sub_ord",
		UserID:         "9",
		PriceID:        "price_pro",
		Quantity:       1,
	})))

	newer := &Event{
		ID:      "evt_3",
		Type:    EventSubscriptionUpdated,
		Created: base.Add(10 * time.Minute),
		Payload: SubscriptionChanged{
			SubscriptionID: "sub_ord",
			Status:         models.SubscriptionStatusActive,
			PriceID:        "price_enterprise",
			Quantity:       1,
		},
	}
	require.NoError(t, svc.ApplyEvent(context.Background(), newer))

	older := &Event{
		ID:      "evt_2",
		Type:    EventSubscriptionUpdated,
		Created: base.Add(5 * time.Minute),
		Payload: SubscriptionChanged{
			SubscriptionID: "sub_ord",
			Status:         models.SubscriptionStatusPastDue,
			PriceID:        "price_pro",
			Quantity:       1,
		},
	}
	require.NoError(t, svc.ApplyEvent(context.Background(), older))

	sub := repo.subs["sub_ord"]
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "price_enterprise", sub.PriceID)
}

func TestApplyEventOlderCheckoutDoesNotRegressState(t *testing.T) {
	svc, repo, _ := newTestService()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, svc.ApplyEvent(context.Background(), checkoutEvent("evt_2", base.Add(10*time.Minute), CheckoutCompleted{
		SubscriptionID: "sub_ooo",
		UserID:         "8",
		PriceID:        "price_enterprise",
		Quantity:       1,
	})))

	// Redelivered older checkout must not overwrite the newer state.
	require.NoError(t, svc.ApplyEvent(context.Background(), checkoutEvent("evt_1", base, CheckoutCompleted{
		SubscriptionID: "sub_ooo",
		UserID:         "8",
		PriceID:        "price_pro",
		Quantity:       1,
	})))

	assert.Equal(t, "price_enterprise", repo.subs["sub_ooo"].PriceID)
}

func TestApplyEventReplayIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()

	now := time.Now().Truncate(time.Second)
	ev := checkoutEvent("evt_1", now, CheckoutCompleted{
		SubscriptionID: "sub_rep",
		UserID:         "5",
		PriceID:        "price_pro",
		Quantity:       1,
	})
	require.NoError(t, svc.ApplyEvent(context.Background(), ev))
	first := *repo.subs["sub_rep"]

	require.NoError(t, svc.ApplyEvent(context.Background(), ev))
	second := *repo.subs["sub_rep"]

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.PriceID, second.PriceID)
	assert.Len(t, repo.subs, 1)
}

func TestApplyEventSaveFailureSurfacesError(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.failSave = true

	ev := checkoutEvent("evt_1", time.Now(), CheckoutCompleted{
		SubscriptionID: "sub_err",
		UserID:         "1",
		PriceID:        "price_pro",
		Quantity:       1,
	})
	assert.Error(t, svc.ApplyEvent(context.Background(), ev))
}

func TestApplyEventReconcilesUserPlan(t *testing.T) {
	svc, repo, _ := newTestService()

	t.Setenv("STRIPE_PRICE_PRO", "price_pro")
	t.Setenv("STRIPE_PRICE_ENTERPRISE", "price_enterprise")

	base := time.Now().Add(-time.Hour)
	require.NoError(t, svc.ApplyEvent(context.Background(), checkoutEvent("evt_1", base, CheckoutCompleted{
		SubscriptionID: "sub_plan",
		UserID:         "11",
		PriceID:        "price_pro",
		Quantity:       1,
	})))
	assert.Equal(t, "pro", repo.settings[11].Plan)

	deleted := &Event{
		ID:      "evt_2",
		Type:    EventSubscriptionDeleted,
		Created: base.Add(time.Minute),
		Payload: SubscriptionDeleted{SubscriptionID: "sub_plan"},
	}
	require.NoError(t, svc.ApplyEvent(context.Background(), deleted))
	assert.Equal(t, "free", repo.settings[11].Plan)
}

func TestEnsureCustomerCreatesOnce(t *testing.T) {
	svc, repo, api := newTestService()

	id1, err := svc.EnsureCustomer(context.Background(), 42, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "cus_42", id1)
	assert.Equal(t, 1, api.createCustomerCalls)
	assert.Equal(t, "cus_42", repo.customers[42])

	id2, err := svc.EnsureCustomer(context.Background(), 42, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, api.createCustomerCalls)
}

func TestCreatePortalWithoutCustomerFails(t *testing.T) {
	svc, _, api := newTestService()

	_, err := svc.CreatePortal(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoCustomer)
	assert.Equal(t, 0, api.portalCalls)
}

func TestCreateCheckoutResolvesCustomer(t *testing.T) {
	svc, _, api := newTestService()

	sessionID, err := svc.CreateCheckout(context.Background(), 7, "user@example.com", "price_pro")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_cus_7_price_pro", sessionID)
	assert.Equal(t, 1, api.createCustomerCalls)
	assert.Equal(t, 1, api.checkoutCalls)
}

func TestRecordWebhookEventDeduplicates(t *testing.T) {
	svc, _, _ := newTestService()

	ev := &Event{ID: "evt_dup", Type: EventCheckoutCompleted, Created: time.Now()}
	created, stored, err := svc.RecordWebhookEvent(context.Background(), ev, []byte(`{}`))
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, stored)

	createdAgain, _, err := svc.RecordWebhookEvent(context.Background(), ev, []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, createdAgain)
}

func TestRedeliveryAfterFailedApplyIsReprocessed(t *testing.T) {
	svc, repo, _ := newTestService()

	ev := checkoutEvent("evt_retry", time.Now(), CheckoutCompleted{
		SubscriptionID: "sub_retry",
		UserID:         "4",
		PriceID:        "price_pro",
		Quantity:       1,
	})

	// First delivery: the projector write fails, the failure is recorded and
	// the delivery is answered 500 so the provider retries.
	repo.failSave = true
	created, stored, err := svc.RecordWebhookEvent(context.Background(), ev, []byte(`{}`))
	require.NoError(t, err)
	require.True(t, created)
	applyErr := svc.ApplyEvent(context.Background(), ev)
	require.Error(t, applyErr)
	require.NoError(t, svc.MarkWebhookProcessed(context.Background(), stored.ID, applyErr))

	// Redelivery after the transient failure clears: the stored row shows a
	// failed apply, so the event must go through the projector again.
	repo.failSave = false
	created, stored, err = svc.RecordWebhookEvent(context.Background(), ev, []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, created)
	require.False(t, stored.Processed())

	require.NoError(t, svc.ApplyEvent(context.Background(), ev))
	require.NoError(t, svc.MarkWebhookProcessed(context.Background(), stored.ID, nil))

	_, ok := repo.subs["sub_retry"]
	assert.True(t, ok)
	assert.True(t, repo.events[ProviderStripe+"/evt_retry"].Processed())
}

func TestMarkWebhookProcessedStoresError(t *testing.T) {
	svc, repo, _ := newTestService()

	ev := &Event{ID: "evt_proc", Type: EventCheckoutCompleted, Created: time.Now()}
	_, stored, err := svc.RecordWebhookEvent(context.Background(), ev, []byte(`{}`))
	require.NoError(t, err)

	require.NoError(t, svc.MarkWebhookProcessed(context.Background(), stored.ID, errors.New("boom")))

	saved := repo.events[ProviderStripe+"/evt_proc"]
	require.NotNil(t, saved.ProcessedAt)
	assert.Equal(t, "boom", saved.ProcessingError)
}
