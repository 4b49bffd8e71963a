package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/acme/checkout-relay/internal/service"
	"github.com/acme/checkout-relay/internal/service/payment"
)

type CheckoutHandler struct {
	paymentService payment.Provider
}

func NewCheckoutHandler(paymentService payment.Provider) *CheckoutHandler {
	return &CheckoutHandler{
		paymentService: paymentService,
	}
}

type checkoutRequest struct {
	Price                  string `json:"price"`
	SuccessURL             string `json:"success_url"`
	CancelURL              string `json:"cancel_url"`
	ProductName            string `json:"productName"`
	NotificationTemplateID string `json:"notificationTemplateId"`
}

type checkoutResponse struct {
	ID string `json:"id"`
}

// CreateCheckoutSession builds a hosted payment session with the
// processor and returns its id. One failed attempt is reported
// immediately; the caller owns retries.
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	if req.Price == "" || req.SuccessURL == "" || req.CancelURL == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "price, success_url and cancel_url are required"})
		return
	}

	// Notification context rides on session metadata, the processor
	// echoes it back on the completed-checkout webhook.
	metadata := map[string]string{}
	if req.ProductName != "" {
		metadata[service.MetadataProductName] = req.ProductName
	}
	if req.NotificationTemplateID != "" {
		metadata[service.MetadataTemplateID] = req.NotificationTemplateID
	}

	sess, err := h.paymentService.CreateCheckoutSession(r.Context(), payment.CheckoutParams{
		PriceID:    req.Price,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata:   metadata,
	})
	if err != nil {
		slog.Error("failed to create checkout", "error", err, "price", req.Price, "provider", h.paymentService.Name())
		respondJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, checkoutResponse{ID: sess.ID})
}
