package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"gallery-shop/internal/audit"
	"gallery-shop/internal/fulfillment"
	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

// Error carries enough detail to map a webhook failure to an HTTP response
// without leaking internals to the payment provider.
type Error struct {
	Category      string // "configuration", "validation", "processing"
	StatusCode    int
	PublicError   string
	InternalError string
	OriginalErr   error
}

func (e *Error) Error() string {
	return e.InternalError
}

func (e *Error) Unwrap() error {
	return e.OriginalErr
}

type Fulfiller interface {
	Dispatch(ctx context.Context, sale models.Sale) []fulfillment.TaskResult
}

type AuditLog interface {
	Record(ctx context.Context, ev *audit.PaymentEvent) error
}

// WebhookService verifies and processes payment-provider events. Once a
// signature checks out the provider always gets a 2xx back; its retry policy
// keys on HTTP status, and redelivering an event whose fulfillment failed
// downstream would only amplify the failure.
type WebhookService struct {
	secret    string
	fulfiller Fulfiller
	audit     AuditLog // nil disables the audit trail
	log       *logger.Logger
}

func NewWebhookService(secret string, fulfiller Fulfiller, auditLog AuditLog, log *logger.Logger) *WebhookService {
	return &WebhookService{secret: secret, fulfiller: fulfiller, audit: auditLog, log: log}
}

// Handle processes a single webhook delivery. A returned *Error maps to a
// non-2xx response; nil means the event was acknowledged.
func (s *WebhookService) Handle(r *http.Request) error {
	if s.secret == "" {
		s.log.Error("WEBHOOK", "Stripe webhook secret is not configured")
		return &Error{
			Category:      "configuration",
			StatusCode:    http.StatusInternalServerError,
			PublicError:   "Webhook processing error",
			InternalError: "stripe webhook secret is not configured",
		}
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		// The body never made it to signature verification, so this is an
		// unexpected failure, not a rejection. 5xx lets the provider retry.
		return &Error{
			Category:      "processing",
			StatusCode:    http.StatusInternalServerError,
			PublicError:   "Webhook processing error",
			InternalError: fmt.Sprintf("failed to read webhook payload: %v", err),
			OriginalErr:   err,
		}
	}

	opts := webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	}
	event, err := webhook.ConstructEventWithOptions(payload, r.Header.Get("Stripe-Signature"), s.secret, opts)
	if err != nil {
		s.log.Error("WEBHOOK", fmt.Sprintf("Signature verification failed: %v", err))
		return &Error{
			Category:      "validation",
			StatusCode:    http.StatusBadRequest,
			PublicError:   "Invalid signature",
			InternalError: fmt.Sprintf("signature verification failed: %v", err),
			OriginalErr:   err,
		}
	}

	s.log.Info("WEBHOOK", fmt.Sprintf("Processing event %s (%s)", event.ID, event.Type))

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		s.handleSessionCompleted(r.Context(), event)

	case stripe.EventTypePaymentIntentPaymentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			s.log.Error("WEBHOOK", fmt.Sprintf("Failed to unmarshal payment intent: %v", err))
			break
		}
		s.log.Warn("WEBHOOK", fmt.Sprintf("Payment failed: %s", intent.ID))

	case stripe.EventTypeChargeSucceeded,
		stripe.EventTypeChargeUpdated,
		stripe.EventTypePaymentIntentSucceeded,
		stripe.EventTypePaymentIntentCreated:
		s.log.Debug("WEBHOOK", fmt.Sprintf("Event %s requires no action", event.Type))

	default:
		s.log.Info("WEBHOOK", fmt.Sprintf("Unhandled event type: %s", event.Type))
	}

	return nil
}

func (s *WebhookService) handleSessionCompleted(ctx context.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		// Verified but undecodable; acknowledge anyway so the provider
		// does not redeliver a payload we cannot parse.
		s.log.Error("WEBHOOK", fmt.Sprintf("Failed to unmarshal checkout session: %v", err))
		return
	}

	sale := models.Sale{
		SessionID:    session.ID,
		ArtworkSlug:  session.Metadata["artwork_slug"],
		ArtworkTitle: session.Metadata["artwork_title"],
		AmountTotal:  session.AmountTotal,
	}
	if session.CustomerDetails != nil {
		sale.CustomerEmail = session.CustomerDetails.Email
	}

	s.log.Info("WEBHOOK", fmt.Sprintf("Payment successful: session=%s slug=%s amount=%d", sale.SessionID, sale.ArtworkSlug, sale.AmountTotal))

	if s.audit != nil {
		record := &audit.PaymentEvent{
			ID:            event.ID,
			Type:          string(event.Type),
			ArtworkSlug:   sale.ArtworkSlug,
			CustomerEmail: sale.CustomerEmail,
			AmountTotal:   sale.AmountTotal,
			ReceivedAt:    time.Now(),
		}
		if err := s.audit.Record(ctx, record); err != nil {
			s.log.Error("AUDIT", fmt.Sprintf("Failed to record event %s: %v", event.ID, err))
		}
	}

	results := s.fulfiller.Dispatch(ctx, sale)
	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}
	if failed > 0 {
		s.log.Warn("WEBHOOK", fmt.Sprintf("Fulfillment for session %s finished with %d of %d tasks failed", sale.SessionID, failed, len(results)))
	}
}
