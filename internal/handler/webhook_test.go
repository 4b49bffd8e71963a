package handler_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/checkout-relay/internal/handler"
	"github.com/acme/checkout-relay/internal/service"
	"github.com/acme/checkout-relay/internal/service/payment"
)

// --- Mock notifier ---

type mockNotifier struct {
	dispatched []service.Purchase
}

func (m *mockNotifier) DispatchPurchase(_ context.Context, p service.Purchase) {
	m.dispatched = append(m.dispatched, p)
}

func postWebhook(t *testing.T, h *handler.WebhookHandler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)
	return rec
}

func TestHandleWebhookSignatureFailure(t *testing.T) {
	provider := &mockProvider{
		verifyFunc: func(_ []byte, _ http.Header) (*payment.CheckoutCompleted, error) {
			return nil, &payment.SignatureVerificationError{Err: errors.New("no valid signature")}
		},
	}
	notifier := &mockNotifier{}
	h := handler.NewWebhookHandler(provider, notifier)

	rec := postWebhook(t, h, []byte("garbled"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Webhook Error:"), "body was %q", rec.Body.String())
	assert.Empty(t, notifier.dispatched, "notifier must not run for unverified deliveries")
}

func TestHandleWebhookIgnoredEventType(t *testing.T) {
	provider := &mockProvider{
		verifyFunc: func(_ []byte, _ http.Header) (*payment.CheckoutCompleted, error) {
			// Verified, but not checkout.session.completed
			return nil, nil
		},
	}
	notifier := &mockNotifier{}
	h := handler.NewWebhookHandler(provider, notifier)

	rec := postWebhook(t, h, []byte(`{"type":"invoice.paid"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, notifier.dispatched)
}

func TestHandleWebhookCompletedCheckoutDispatches(t *testing.T) {
	provider := &mockProvider{
		verifyFunc: func(_ []byte, _ http.Header) (*payment.CheckoutCompleted, error) {
			return &payment.CheckoutCompleted{
				SessionID:     "sess_1",
				CustomerEmail: "buyer@example.com",
				Metadata: map[string]string{
					"product_name": "Widget",
					"template_id":  "tmpl_7",
				},
			}, nil
		},
	}
	notifier := &mockNotifier{}
	h := handler.NewWebhookHandler(provider, notifier)

	rec := postWebhook(t, h, []byte(`{}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	require.Len(t, notifier.dispatched, 1)
	p := notifier.dispatched[0]
	assert.Equal(t, "sess_1", p.SessionID)
	assert.Equal(t, "buyer@example.com", p.CustomerEmail)
	assert.Equal(t, "Widget", p.ProductName)
	assert.Equal(t, "tmpl_7", p.TemplateID)
}

func TestHandleWebhookRedeliveryDispatchesAgain(t *testing.T) {
	// No dedup store exists: delivering the same verified event twice
	// must notify twice.
	provider := &mockProvider{
		verifyFunc: func(_ []byte, _ http.Header) (*payment.CheckoutCompleted, error) {
			return &payment.CheckoutCompleted{SessionID: "sess_1", CustomerEmail: "buyer@example.com"}, nil
		},
	}
	notifier := &mockNotifier{}
	h := handler.NewWebhookHandler(provider, notifier)

	body := []byte(`{}`)
	postWebhook(t, h, body)
	postWebhook(t, h, body)

	assert.Len(t, notifier.dispatched, 2)
}

func TestHandleWebhookEmptyCustomerEmailStillAcknowledged(t *testing.T) {
	provider := &mockProvider{
		verifyFunc: func(_ []byte, _ http.Header) (*payment.CheckoutCompleted, error) {
			return &payment.CheckoutCompleted{SessionID: "sess_1", CustomerEmail: ""}, nil
		},
	}
	notifier := &mockNotifier{}
	h := handler.NewWebhookHandler(provider, notifier)

	rec := postWebhook(t, h, []byte(`{}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	require.Len(t, notifier.dispatched, 1)
	assert.Empty(t, notifier.dispatched[0].CustomerEmail)
}

func TestHandleWebhookVerifiedButUnparsablePayload(t *testing.T) {
	// A verified delivery that cannot be handled is still acknowledged,
	// since a non-2xx would make the processor redeliver.
	provider := &mockProvider{
		verifyFunc: func(_ []byte, _ http.Header) (*payment.CheckoutCompleted, error) {
			return nil, errors.New("failed to parse checkout session")
		},
	}
	notifier := &mockNotifier{}
	h := handler.NewWebhookHandler(provider, notifier)

	rec := postWebhook(t, h, []byte(`{}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, notifier.dispatched)
}
