package app

import (
	"github.com/acme/checkout-relay/internal/config"
	"github.com/acme/checkout-relay/internal/service"
	"github.com/acme/checkout-relay/internal/service/payment"
)

type App struct {
	Cfg            *config.Config
	EmailService   *service.EmailService
	Notifier       *service.Notifier
	PaymentService payment.Provider
}

func New(cfg *config.Config) (*App, error) {
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)

	templateStore := service.NewRemoteConfigClient(cfg.RemoteConfigURL, cfg.RemoteConfigAPIKey)
	notifier := service.NewNotifier(emailService, templateStore, cfg.OperatorEmail, cfg.AppName)

	paymentProvider := payment.NewStripeProvider(cfg)

	return &App{
		Cfg:            cfg,
		EmailService:   emailService,
		Notifier:       notifier,
		PaymentService: paymentProvider,
	}, nil
}
