package routes

import (
	"net/http"

	"github.com/acme/checkout-relay/internal/app"
	"github.com/acme/checkout-relay/internal/handler"
	"github.com/acme/checkout-relay/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.Cfg.AppName)
	checkout := handler.NewCheckoutHandler(app.PaymentService)
	webhook := handler.NewWebhookHandler(app.PaymentService, app.Notifier)

	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /{$}", health.Live)

	// Checkout (JSON body, decoded in the handler)
	mux.HandleFunc("POST /api/create-checkout-session", checkout.CreateCheckoutSession)

	// Payment processor webhook. Raw body route: signature verification
	// must see the exact bytes the processor signed, so nothing between
	// here and the handler may parse or re-serialize the body.
	mux.HandleFunc("POST /webhook", webhook.HandleWebhook)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.CORS(app.Cfg.CORSAllowedOrigin),
		middleware.RequestLogging,
	)
}
