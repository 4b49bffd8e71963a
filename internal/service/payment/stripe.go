package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/acme/checkout-relay/internal/config"
	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

const ProviderStripe = "stripe"

type StripeProvider struct {
	cfg *config.Config
}

func NewStripeProvider(cfg *config.Config) *StripeProvider {
	// Set Stripe API key
	stripe.Key = cfg.StripeSecretKey

	slog.Info("stripe provider initialized", "app_env", cfg.AppEnv)

	return &StripeProvider{cfg: cfg}
}

func (s *StripeProvider) Name() string {
	return ProviderStripe
}

func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: p.Metadata,
	}
	params.Context = ctx

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	slog.Info("stripe checkout created", "price_id", p.PriceID, "session_id", sess.ID)
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

func (s *StripeProvider) VerifyWebhook(payload []byte, headers http.Header) (*CheckoutCompleted, error) {
	signature := headers.Get("Stripe-Signature")

	// Use ConstructEventWithOptions to ignore API version mismatch
	// Stripe's API versions are backwards compatible, so this is safe
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		s.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return nil, &SignatureVerificationError{Err: err}
	}

	slog.Info("stripe webhook received", "event_type", event.Type)

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	return parseCheckoutCompleted(event.Data.Raw)
}

func parseCheckoutCompleted(data json.RawMessage) (*CheckoutCompleted, error) {
	var checkoutSession struct {
		ID              string `json:"id"`
		CustomerEmail   string `json:"customer_email"`
		CustomerDetails struct {
			Email string `json:"email"`
		} `json:"customer_details"`
		Metadata map[string]string `json:"metadata"`
	}

	err := json.Unmarshal(data, &checkoutSession)
	if err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}

	// Hosted checkout reports the address the customer typed under
	// customer_details; customer_email is only set when pre-filled.
	email := checkoutSession.CustomerEmail
	if email == "" {
		email = checkoutSession.CustomerDetails.Email
	}

	return &CheckoutCompleted{
		SessionID:     checkoutSession.ID,
		CustomerEmail: email,
		Metadata:      checkoutSession.Metadata,
	}, nil
}
