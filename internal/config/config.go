package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Email
	EmailFrom     string
	OperatorEmail string
	ResendAPIKey  string

	// Payment
	StripeSecretKey     string
	StripeWebhookSecret string

	// Remote config for notification templates (optional)
	RemoteConfigURL    string
	RemoteConfigAPIKey string

	// Observability (optional)
	SentryDSN string

	// HTTP
	CORSAllowedOrigin string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Acme"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "3000"),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:     envString("EMAIL_FROM", "noreply@example.com"),
		OperatorEmail: envString("OPERATOR_EMAIL", "sales@example.com"),
		ResendAPIKey:  envString("RESEND_API_KEY", ""),

		// Payment: both keys required at boot, every route depends on the processor
		StripeSecretKey:     envRequired("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: envRequired("STRIPE_WEBHOOK_SECRET"),

		// Remote config (unset disables template lookups, built-in template is used)
		RemoteConfigURL:    envString("REMOTE_CONFIG_URL", ""),
		RemoteConfigAPIKey: envString("REMOTE_CONFIG_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// HTTP
		CORSAllowedOrigin: envString("CORS_ALLOWED_ORIGIN", "*"),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production
// deployments. Development allows email to fall back to log mode for easier
// local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
