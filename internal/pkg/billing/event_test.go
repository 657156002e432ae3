package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRelevantEventType(t *testing.T) {
	relevant := []string{
		EventCheckoutCompleted,
		EventSubscriptionCreated,
		EventSubscriptionUpdated,
		EventSubscriptionDeleted,
		EventInvoicePaymentSucceeded,
		EventInvoicePaymentFailed,
	}
	for _, et := range relevant {
		assert.True(t, IsRelevantEventType(et), et)
	}

	assert.False(t, IsRelevantEventType("charge.refunded"))
	assert.False(t, IsRelevantEventType("customer.created"))
	assert.False(t, IsRelevantEventType(""))
}

func TestParseEventPayloadCheckoutCompleted(t *testing.T) {
	data := []byte(`{
		"customer": "cus_42",
		"subscription": "sub_999",
		"expires_at": 1767225600,
		"metadata": {"userId": "42"},
		"line_items": {"data": [{"quantity": 3, "price": {"id": "price_pro"}}]}
	}`)

	payload, err := ParseEventPayload(EventCheckoutCompleted, data)
	require.NoError(t, err)

	checkout, ok := payload.(CheckoutCompleted)
	require.True(t, ok)
	assert.Equal(t, "cus_42", checkout.CustomerID)
	assert.Equal(t, "sub_999", checkout.SubscriptionID)
	assert.Equal(t, "42", checkout.UserID)
	assert.Equal(t, "price_pro", checkout.PriceID)
	assert.Equal(t, int64(3), checkout.Quantity)
	assert.Equal(t, int64(1767225600), checkout.ExpiresAt)
}

func TestParseEventPayloadCheckoutDefaults(t *testing.T) {
	payload, err := ParseEventPayload(EventCheckoutCompleted, []byte(`{"subscription": "sub_1"}`))
	require.NoError(t, err)

	checkout, ok := payload.(CheckoutCompleted)
	require.True(t, ok)
	assert.Equal(t, "price_free", checkout.PriceID)
	assert.Equal(t, int64(1), checkout.Quantity)
	assert.Empty(t, checkout.UserID)
}

func TestParseEventPayloadSubscriptionUpdated(t *testing.T) {
	data := []byte(`{
		"id": "sub_123",
		"status": "past_due",
		"cancel_at_period_end": true,
		"current_period_end": 1767225600,
		"items": {"data": [{"quantity": 2, "price": {"id": "price_enterprise"}}]}
	}`)

	payload, err := ParseEventPayload(EventSubscriptionUpdated, data)
	require.NoError(t, err)

	changed, ok := payload.(SubscriptionChanged)
	require.True(t, ok)
	assert.Equal(t, "sub_123", changed.SubscriptionID)
	assert.Equal(t, "past_due", changed.Status)
	assert.True(t, changed.CancelAtPeriodEnd)
	assert.Equal(t, int64(1767225600), changed.CurrentPeriodEnd)
	assert.Equal(t, "price_enterprise", changed.PriceID)
	assert.Equal(t, int64(2), changed.Quantity)
}

func TestParseEventPayloadSubscriptionDeleted(t *testing.T) {
	payload, err := ParseEventPayload(EventSubscriptionDeleted, []byte(`{"id": "sub_123"}`))
	require.NoError(t, err)

	deleted, ok := payload.(SubscriptionDeleted)
	require.True(t, ok)
	assert.Equal(t, "sub_123", deleted.SubscriptionID)
}

func TestParseEventPayloadInvoices(t *testing.T) {
	payload, err := ParseEventPayload(EventInvoicePaymentSucceeded, []byte(`{"subscription": "sub_inv"}`))
	require.NoError(t, err)
	succeeded, ok := payload.(InvoicePaymentSucceeded)
	require.True(t, ok)
	assert.Equal(t, "sub_inv", succeeded.SubscriptionID)

	payload, err = ParseEventPayload(EventInvoicePaymentFailed, []byte(`{"subscription": "sub_inv"}`))
	require.NoError(t, err)
	failed, ok := payload.(InvoicePaymentFailed)
	require.True(t, ok)
	assert.Equal(t, "sub_inv", failed.SubscriptionID)
}

func TestParseEventPayloadIgnoredType(t *testing.T) {
	payload, err := ParseEventPayload("charge.refunded", []byte(`{"id": "ch_1"}`))
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestParseEventPayloadMalformedJSON(t *testing.T) {
	_, err := ParseEventPayload(EventCheckoutCompleted, []byte(`{`))
	assert.Error(t, err)
}
