package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailSender is the outbound email boundary. Satisfied by EmailService
// and by test fakes.
type EmailSender interface {
	SendHTML(ctx context.Context, to, subject, html string) error
}

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appName   string
}

func NewEmailService(apiKey, fromEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appName:   appName,
	}
}

// SendHTML sends a single transactional email. One-shot: provider
// errors are returned to the caller, never retried here.
func (s *EmailService) SendHTML(ctx context.Context, to, subject, html string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "to", to, "subject", subject)
	}
	return err
}
