package billing

import (
	"encoding/json"
	"strings"
	"time"
)

// Allow-listed Stripe event types. Everything else is ignored without work.
const (
	EventCheckoutCompleted       = "checkout.session.completed"
	EventSubscriptionCreated     = "customer.subscription.created"
	EventSubscriptionUpdated     = "customer.subscription.updated"
	EventSubscriptionDeleted     = "customer.subscription.deleted"
	EventInvoicePaymentSucceeded = "invoice.payment_succeeded"
	EventInvoicePaymentFailed    = "invoice.payment_failed"
)

// IsRelevantEventType reports whether the type is on the allow-list.
func IsRelevantEventType(eventType string) bool {
	switch eventType {
	case EventCheckoutCompleted,
		EventSubscriptionCreated,
		EventSubscriptionUpdated,
		EventSubscriptionDeleted,
		EventInvoicePaymentSucceeded,
		EventInvoicePaymentFailed:
		return true
	default:
		return false
	}
}

// Event is the verified webhook event as a closed tagged union: Payload holds
// one of the typed variants below, or nil for ignored event types.
type Event struct {
	ID      string
	Type    string
	Created time.Time
	Payload EventPayload
}

// EventPayload is implemented by exactly the allow-listed payload variants.
type EventPayload interface {
	isEventPayload()
}

// CheckoutCompleted carries the fields consumed from a completed checkout
// session. UserID comes from the session metadata written at creation time.
type CheckoutCompleted struct {
	CustomerID     string
	SubscriptionID string
	UserID         string
	PriceID        string
	Quantity       int64
	ExpiresAt      int64
}

// SubscriptionChanged covers both subscription created and updated events.
type SubscriptionChanged struct {
	SubscriptionID    string
	Status            string
	CancelAtPeriodEnd bool
	CurrentPeriodEnd  int64
	PriceID           string
	Quantity          int64
}

// SubscriptionDeleted marks a subscription as ended on the provider side.
type SubscriptionDeleted struct {
	SubscriptionID string
}

// InvoicePaymentSucceeded recovers a past_due subscription once payment clears.
type InvoicePaymentSucceeded struct {
	SubscriptionID string
}

// InvoicePaymentFailed pushes a subscription into past_due.
type InvoicePaymentFailed struct {
	SubscriptionID string
}

func (CheckoutCompleted) isEventPayload()       {}
func (SubscriptionChanged) isEventPayload()     {}
func (SubscriptionDeleted) isEventPayload()     {}
func (InvoicePaymentSucceeded) isEventPayload() {}
func (InvoicePaymentFailed) isEventPayload()    {}

// Wire shapes decoded from the event's data.object. Kept local and minimal so
// provider API version churn in unrelated fields cannot break decoding.
type rawCheckoutSession struct {
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
	ExpiresAt    int64             `json:"expires_at"`
	LineItems    struct {
		Data []struct {
			Quantity int64 `json:"quantity"`
			Price    struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"line_items"`
}

type rawSubscription struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	Items             struct {
		Data []struct {
			Quantity int64 `json:"quantity"`
			Price    struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

type rawInvoice struct {
	Subscription string `json:"subscription"`
}

// ParseEventPayload decodes the data.object of an allow-listed event into the
// matching tagged variant. Ignored types yield a nil payload and no error.
func ParseEventPayload(eventType string, dataObject []byte) (EventPayload, error) {
	switch eventType {
	case EventCheckoutCompleted:
		var raw rawCheckoutSession
		if err := json.Unmarshal(dataObject, &raw); err != nil {
			return nil, err
		}
		out := CheckoutCompleted{
			CustomerID:     strings.TrimSpace(raw.Customer),
			SubscriptionID: strings.TrimSpace(raw.Subscription),
			UserID:         strings.TrimSpace(raw.Metadata["userId"]),
			PriceID:        "price_free",
			Quantity:       1,
			ExpiresAt:      raw.ExpiresAt,
		}
		if len(raw.LineItems.Data) > 0 {
			if id := strings.TrimSpace(raw.LineItems.Data[0].Price.ID); id != "" {
				out.PriceID = id
			}
			if q := raw.LineItems.Data[0].Quantity; q > 0 {
				out.Quantity = q
			}
		}
		return out, nil

	case EventSubscriptionCreated, EventSubscriptionUpdated:
		var raw rawSubscription
		if err := json.Unmarshal(dataObject, &raw); err != nil {
			return nil, err
		}
		out := SubscriptionChanged{
			SubscriptionID:    strings.TrimSpace(raw.ID),
			Status:            strings.TrimSpace(raw.Status),
			CancelAtPeriodEnd: raw.CancelAtPeriodEnd,
			CurrentPeriodEnd:  raw.CurrentPeriodEnd,
			PriceID:           "price_free",
			Quantity:          1,
		}
		if len(raw.Items.Data) > 0 {
			if id := strings.TrimSpace(raw.Items.Data[0].Price.ID); id != "" {
				out.PriceID = id
			}
			if q := raw.Items.Data[0].Quantity; q > 0 {
				out.Quantity = q
			}
		}
		return out, nil

	case EventSubscriptionDeleted:
		var raw rawSubscription
		if err := json.Unmarshal(dataObject, &raw); err != nil {
			return nil, err
		}
		return SubscriptionDeleted{SubscriptionID: strings.TrimSpace(raw.ID)}, nil

	case EventInvoicePaymentSucceeded:
		var raw rawInvoice
		if err := json.Unmarshal(dataObject, &raw); err != nil {
			return nil, err
		}
		return InvoicePaymentSucceeded{SubscriptionID: strings.TrimSpace(raw.Subscription)}, nil

	case EventInvoicePaymentFailed:
		var raw rawInvoice
		if err := json.Unmarshal(dataObject, &raw); err != nil {
			return nil, err
		}
		return InvoicePaymentFailed{SubscriptionID: strings.TrimSpace(raw.Subscription)}, nil

	default:
		return nil, nil
	}
}
