package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/acme/checkout-relay/internal/validation"
)

// Metadata keys attached to the checkout session at creation and echoed
// back on the completed-checkout webhook.
const (
	MetadataProductName = "product_name"
	MetadataTemplateID  = "template_id"
)

// ErrInvalidRecipient marks a notification branch whose destination
// address is empty or malformed.
var ErrInvalidRecipient = errors.New("invalid notification recipient")

// NotificationError reports which dispatch branch failed. Notification
// failure is non-fatal by contract: the dispatcher logs these and the
// webhook response stays 200.
type NotificationError struct {
	Branch string // "purchaser" or "operator"
	Err    error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("%s notification failed: %v", e.Branch, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// Purchase is a completed checkout as the notifier sees it.
type Purchase struct {
	SessionID     string
	CustomerEmail string
	ProductName   string
	TemplateID    string
}

// Notifier sends the two emails a completed checkout triggers: a
// confirmation to the purchaser and a sale alert to the operator
// mailbox.
type Notifier struct {
	email         EmailSender
	templates     TemplateResolver
	operatorEmail string
	appName       string
}

func NewNotifier(email EmailSender, templates TemplateResolver, operatorEmail, appName string) *Notifier {
	return &Notifier{
		email:         email,
		templates:     templates,
		operatorEmail: operatorEmail,
		appName:       appName,
	}
}

// DispatchPurchase runs both notification branches and waits for both.
// Each branch's failure is logged and swallowed here; callers get no
// error because a missed email must never fail the webhook response.
// There is no dedup: a redelivered event dispatches again.
func (n *Notifier) DispatchPurchase(ctx context.Context, p Purchase) {
	err := n.notifyPurchaser(ctx, p)
	if err != nil {
		slog.Error("notification failed", "error", &NotificationError{Branch: "purchaser", Err: err}, "session_id", p.SessionID)
	}

	// The operator alert is attempted even when the purchaser branch failed
	err = n.notifyOperator(ctx, p)
	if err != nil {
		slog.Error("notification failed", "error", &NotificationError{Branch: "operator", Err: err}, "session_id", p.SessionID)
	}
}

func (n *Notifier) notifyPurchaser(ctx context.Context, p Purchase) error {
	err := validation.ValidateEmail(p.CustomerEmail)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	subject, html := purchaseConfirmationTemplate(p.ProductName, n.appName)
	if p.TemplateID != "" {
		remote, lookupErr := n.templates.Template(ctx, p.TemplateID)
		if lookupErr != nil {
			slog.Warn("template lookup failed, using built-in template", "error", lookupErr, "template_id", p.TemplateID)
		} else {
			html = remote
		}
	}

	return n.email.SendHTML(ctx, p.CustomerEmail, subject, html)
}

func (n *Notifier) notifyOperator(ctx context.Context, p Purchase) error {
	err := validation.ValidateEmail(n.operatorEmail)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	subject, html := operatorSaleAlertTemplate(p.CustomerEmail, p.ProductName, n.appName)
	return n.email.SendHTML(ctx, n.operatorEmail, subject, html)
}
