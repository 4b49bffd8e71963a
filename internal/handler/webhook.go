package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/acme/checkout-relay/internal/service"
	"github.com/acme/checkout-relay/internal/service/payment"
)

// PurchaseNotifier is the notification boundary the webhook handler
// dispatches into.
type PurchaseNotifier interface {
	DispatchPurchase(ctx context.Context, p service.Purchase)
}

type WebhookHandler struct {
	paymentService payment.Provider
	notifier       PurchaseNotifier
}

func NewWebhookHandler(paymentService payment.Provider, notifier PurchaseNotifier) *WebhookHandler {
	return &WebhookHandler{
		paymentService: paymentService,
		notifier:       notifier,
	}
}

// HandleWebhook receives signed event callbacks from the payment
// processor. Verification runs against the unmodified byte stream; the
// route is wired without any structured body parsing for that reason.
// Once a delivery verifies, the response is 200 no matter what happens
// during handling — a 2xx tells the processor not to redeliver.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		http.Error(w, "Webhook Error: failed to read payload", http.StatusBadRequest)
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	completed, err := h.paymentService.VerifyWebhook(payload, r.Header)
	if err != nil {
		var sigErr *payment.SignatureVerificationError
		if errors.As(err, &sigErr) {
			slog.Error("webhook signature verification failed", "error", err, "provider", h.paymentService.Name())
			http.Error(w, "Webhook Error: "+err.Error(), http.StatusBadRequest)
			return
		}

		// Verified but unusable payload. Acknowledge anyway, the
		// processor treats non-2xx as "retry delivery".
		slog.Error("failed to handle verified webhook", "error", err, "provider", h.paymentService.Name())
		h.ack(w)
		return
	}

	// Only checkout.session.completed carries a non-nil event; everything
	// else is acknowledged and dropped.
	if completed != nil {
		h.notifier.DispatchPurchase(r.Context(), service.Purchase{
			SessionID:     completed.SessionID,
			CustomerEmail: completed.CustomerEmail,
			ProductName:   completed.Metadata[service.MetadataProductName],
			TemplateID:    completed.Metadata[service.MetadataTemplateID],
		})
	}

	h.ack(w)
}

func (h *WebhookHandler) ack(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("ok"))
	if err != nil {
		slog.Error("failed to write webhook response", "error", err)
	}
}
