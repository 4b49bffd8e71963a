package payment

import (
	"context"
	"net/http"
)

// CheckoutParams encapsulates everything needed to create a hosted
// checkout session for a one-time payment.
type CheckoutParams struct {
	PriceID    string
	SuccessURL string
	CancelURL  string

	// Metadata is attached to the session verbatim and echoed back on the
	// completed-checkout webhook. It is the only channel carrying
	// application context (product name, template selector) forward,
	// since the processor treats this service as stateless between the
	// checkout call and the webhook delivery.
	Metadata map[string]string
}

// Session is the processor's view of a created checkout session.
type Session struct {
	ID  string
	URL string
}

// CheckoutCompleted is a verified "payment finished" event extracted
// from a webhook delivery.
type CheckoutCompleted struct {
	SessionID     string
	CustomerEmail string
	Metadata      map[string]string
}

// Provider defines the interface a payment processor must implement.
type Provider interface {
	// CreateCheckoutSession creates a hosted checkout session for a
	// single card payment and returns it. One-shot: a failed attempt is
	// reported immediately, the caller owns retries.
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)

	// VerifyWebhook authenticates a raw webhook delivery against the
	// signing secret. It returns a *SignatureVerificationError when the
	// payload cannot be trusted, the completed-checkout event when the
	// delivery is one, and (nil, nil) for verified events of any other
	// type, which the caller acknowledges and drops.
	VerifyWebhook(payload []byte, headers http.Header) (*CheckoutCompleted, error)

	// Name returns the provider name (e.g., "stripe")
	Name() string
}

// SignatureVerificationError marks a webhook delivery whose signature
// did not verify. The event must be discarded unprocessed.
type SignatureVerificationError struct {
	Err error
}

func (e *SignatureVerificationError) Error() string {
	return e.Err.Error()
}

func (e *SignatureVerificationError) Unwrap() error {
	return e.Err
}
